// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package aok

import (
	"time"

	"github.com/openshade/aokrf/pkg/pulse"
)

// Decoder recovers frames from received pulse trains.
type Decoder struct{}

// NewDecoder creates an A-OK pulse decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode recovers at most one frame from src, advancing its cursor. It
// scans forward to the first sync-shaped pair, consumes the sync, reads
// exactly 64 data symbols, and validates start code and checksum before
// returning the frame. A trailing EOM is consumed when present but its
// absence is not an error; EOM is framing, not payload.
//
// One call, one frame: to harvest the remaining repetitions of a burst,
// call Decode again on the same source.
func (d *Decoder) Decode(src *pulse.Source) (*Frame, error) {
	// Scan for a sync-shaped pair.
	found := false
	for src.Size() > 0 {
		if src.PeekPair(symSync[0], symSync[1]) {
			found = true
			break
		}
		src.Advance(1)
	}
	if !found {
		return nil, ErrNoSync
	}

	if !src.Expect(symSync[0], symSync[1]) {
		return nil, ErrSyncLost
	}

	var r bitReader
	r.bits = make([]bool, 0, FrameBits)
	for i := 0; i < FrameBits; i++ {
		switch {
		case d.expectOne(src):
			r.bits = append(r.bits, true)
		case d.expectZero(src):
			r.bits = append(r.bits, false)
		default:
			return nil, ErrBadSymbol
		}
	}

	f, err := unpackBits(&r)
	if err != nil {
		return nil, err
	}

	d.expectEOM(src)

	f.ReceivedAt = time.Now()
	return f, nil
}

// expectOne consumes a one symbol if the next pair matches its timing.
func (d *Decoder) expectOne(src *pulse.Source) bool {
	return src.Expect(symOne[0], symOne[1])
}

// expectZero consumes a zero symbol if the next pair matches its timing.
func (d *Decoder) expectZero(src *pulse.Source) bool {
	return src.Expect(symZero[0], symZero[1])
}

func (d *Decoder) expectEOM(src *pulse.Source) bool {
	return src.Expect(symEOM[0], symEOM[1])
}
