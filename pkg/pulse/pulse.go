// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

// Package pulse models on-off keyed RF pulse trains as sequences of
// mark/space duration pairs, and provides the transmit and receive
// collaborators protocol codecs are built against: an append-only
// transmit sink and a tolerance-aware receive cursor.
package pulse

import "time"

// DefaultTolerance is the default timing tolerance for receive
// comparisons, as a percentage of the nominal duration. RF receiver
// modules routinely stretch and shrink pulses by 10-20%.
const DefaultTolerance = 25

// Pair is one physical pulse: the duration the carrier was keyed on
// (mark) followed by the duration it was off (space).
type Pair struct {
	Mark  time.Duration
	Space time.Duration
}

// Within reports whether measured is inside tolerance percent of nominal.
func Within(measured, nominal time.Duration, tolerance int) bool {
	margin := nominal * time.Duration(tolerance) / 100
	return measured >= nominal-margin && measured <= nominal+margin
}

// TransmitData collects the pulse train for one transmission. Codecs
// append pairs; the bridge driver drains them.
type TransmitData struct {
	pairs     []Pair
	carrierHz uint32
}

// NewTransmitData creates an empty transmit pulse train.
func NewTransmitData() *TransmitData {
	return &TransmitData{}
}

// Emit appends one mark/space pair to the train.
func (t *TransmitData) Emit(mark, space time.Duration) {
	t.pairs = append(t.pairs, Pair{Mark: mark, Space: space})
}

// SetCarrierFrequency declares the carrier modulation for the whole
// burst. Zero means unmodulated on-off keying, which is what the 433 MHz
// shade remotes use.
func (t *TransmitData) SetCarrierFrequency(hz uint32) {
	t.carrierHz = hz
}

// CarrierFrequency returns the declared carrier frequency in Hz.
func (t *TransmitData) CarrierFrequency() uint32 {
	return t.carrierHz
}

// Pairs returns the accumulated pulse train.
func (t *TransmitData) Pairs() []Pair {
	return t.pairs
}

// Reset discards the accumulated train so the buffer can be reused.
func (t *TransmitData) Reset() {
	t.pairs = t.pairs[:0]
	t.carrierHz = 0
}

// Source is a read cursor over a received pulse train. The underlying
// slice is caller-owned; Source only ever moves its cursor forward.
// All peek comparisons apply the configured tolerance, never exact
// equality: real captures are noisy.
type Source struct {
	pairs     []Pair
	cursor    int
	tolerance int
}

// NewSource wraps a captured pulse train with the default tolerance.
func NewSource(pairs []Pair) *Source {
	return &Source{pairs: pairs, tolerance: DefaultTolerance}
}

// SetTolerance overrides the timing tolerance percentage.
func (s *Source) SetTolerance(percent int) {
	s.tolerance = percent
}

// Size returns the number of pulse pairs remaining ahead of the cursor.
func (s *Source) Size() int {
	return len(s.pairs) - s.cursor
}

// PeekMark reports whether the mark duration at cursor+offset matches
// nominal within tolerance. A non-existent pair never matches.
func (s *Source) PeekMark(nominal time.Duration, offset int) bool {
	i := s.cursor + offset
	if i >= len(s.pairs) {
		return false
	}
	return Within(s.pairs[i].Mark, nominal, s.tolerance)
}

// PeekSpace reports whether the space duration at cursor+offset matches
// nominal within tolerance.
func (s *Source) PeekSpace(nominal time.Duration, offset int) bool {
	i := s.cursor + offset
	if i >= len(s.pairs) {
		return false
	}
	return Within(s.pairs[i].Space, nominal, s.tolerance)
}

// PeekPair reports whether the pair at the cursor matches both nominal
// durations within tolerance.
func (s *Source) PeekPair(mark, space time.Duration) bool {
	return s.PeekMark(mark, 0) && s.PeekSpace(space, 0)
}

// Expect consumes the pair at the cursor if it matches both nominal
// durations, reporting whether it did.
func (s *Source) Expect(mark, space time.Duration) bool {
	if !s.PeekPair(mark, space) {
		return false
	}
	s.cursor++
	return true
}

// Advance moves the cursor forward by n pairs.
func (s *Source) Advance(n int) {
	s.cursor += n
	if s.cursor > len(s.pairs) {
		s.cursor = len(s.pairs)
	}
}

// Cursor returns the current cursor position, counted in pairs from the
// start of the train.
func (s *Source) Cursor() int {
	return s.cursor
}
