// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package aok

import "github.com/openshade/aokrf/pkg/pulse"

// StreamDecoder feeds an unbounded live pulse stream through the
// single-shot Decoder. It buffers incoming pairs, discards noise ahead
// of the first sync-shaped pair, and attempts a decode once a full
// frame could be present. Repetitions are not deduplicated; each clean
// copy in a burst comes out as its own frame.
type StreamDecoder struct {
	dec       *Decoder
	buf       []pulse.Pair
	tolerance int
}

// NewStreamDecoder creates a streaming decoder with the default timing
// tolerance.
func NewStreamDecoder() *StreamDecoder {
	return &StreamDecoder{
		dec:       NewDecoder(),
		tolerance: pulse.DefaultTolerance,
	}
}

// SetTolerance overrides the timing tolerance percentage.
func (sd *StreamDecoder) SetTolerance(percent int) {
	sd.tolerance = percent
}

// Push appends one received pair. It returns a frame when one completed
// and validated, a decode error when a candidate frame was present but
// rejected, and (nil, nil) while more pulses are needed. Errors are
// informational; pushing may continue.
func (sd *StreamDecoder) Push(p pulse.Pair) (*Frame, error) {
	sd.buf = append(sd.buf, p)

	// Drop noise until the buffer starts at a sync-shaped pair.
	for len(sd.buf) > 0 && !sd.syncShaped(sd.buf[0]) {
		sd.buf = sd.buf[1:]
	}

	// Sync plus 64 data symbols; EOM is optional so it is not waited for.
	if len(sd.buf) < 1+FrameBits {
		return nil, nil
	}

	src := pulse.NewSource(sd.buf)
	src.SetTolerance(sd.tolerance)
	frame, err := sd.dec.Decode(src)
	if frame != nil {
		sd.buf = sd.buf[src.Cursor():]
		return frame, nil
	}

	// Rejected candidate: skip the false sync and rescan from there.
	sd.buf = sd.buf[1:]
	return nil, err
}

func (sd *StreamDecoder) syncShaped(p pulse.Pair) bool {
	return pulse.Within(p.Mark, symSync[0], sd.tolerance) &&
		pulse.Within(p.Space, symSync[1], sd.tolerance)
}

// Pending returns how many buffered pairs await more data.
func (sd *StreamDecoder) Pending() int {
	return len(sd.buf)
}
