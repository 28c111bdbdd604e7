// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package aok

import "github.com/openshade/aokrf/pkg/pulse"

// Encoder turns frames into pulse trains.
type Encoder struct{}

// NewEncoder creates an A-OK pulse encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode appends the full transmission for f to dst: the optional
// wake-up preamble, then six repetitions of sync + 64 data bits + EOM.
// The carrier is declared off; the protocol is plain on-off keying.
// Encoding cannot fail for in-range field values.
func (e *Encoder) Encode(dst *pulse.TransmitData, f *Frame) {
	dst.SetCarrierFrequency(0)

	if f.Preamble {
		for i := 0; i < PreambleLength; i++ {
			e.zero(dst)
		}
	}

	var w bitWriter
	f.packBits(&w)

	for rep := 0; rep < RepeatCount; rep++ {
		e.sync(dst)
		for _, bit := range w.bits {
			if bit {
				e.one(dst)
			} else {
				e.zero(dst)
			}
		}
		e.eom(dst)
	}
}

func (e *Encoder) sync(dst *pulse.TransmitData) {
	dst.Emit(symSync[0], symSync[1])
}

func (e *Encoder) one(dst *pulse.TransmitData) {
	dst.Emit(symOne[0], symOne[1])
}

func (e *Encoder) zero(dst *pulse.TransmitData) {
	dst.Emit(symZero[0], symZero[1])
}

func (e *Encoder) eom(dst *pulse.TransmitData) {
	dst.Emit(symEOM[0], symEOM[1])
}
