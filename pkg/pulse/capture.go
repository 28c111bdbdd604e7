// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package pulse

import (
	"fmt"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Capture is a recorded pulse train with enough metadata to replay or
// re-decode it later. Durations are stored as signed microseconds
// (positive mark, negative space), matching the bridge wire format, so
// a capture survives tooling round-trips byte-exactly.
type Capture struct {
	Bridge     string    `cbor:"1,keyasint,omitempty"`
	Tolerance  int       `cbor:"2,keyasint,omitempty"`
	RecordedAt time.Time `cbor:"3,keyasint"`
	Durations  []int32   `cbor:"4,keyasint"`
}

// NewCapture builds a capture record from a pulse train.
func NewCapture(bridge string, pairs []Pair) *Capture {
	c := &Capture{
		Bridge:     bridge,
		Tolerance:  DefaultTolerance,
		RecordedAt: time.Now(),
		Durations:  make([]int32, 0, len(pairs)*2),
	}
	for _, p := range pairs {
		c.Durations = append(c.Durations,
			int32(p.Mark.Microseconds()), int32(-p.Space.Microseconds()))
	}
	return c
}

// Pairs reconstructs the pulse train from the stored durations.
func (c *Capture) Pairs() []Pair {
	pairs := make([]Pair, 0, len(c.Durations)/2)
	var mark time.Duration
	hasMark := false
	for _, us := range c.Durations {
		d := time.Duration(us) * time.Microsecond
		if us >= 0 {
			if hasMark {
				pairs = append(pairs, Pair{Mark: mark})
			}
			mark = d
			hasMark = true
			continue
		}
		if !hasMark {
			continue
		}
		pairs = append(pairs, Pair{Mark: mark, Space: -d})
		hasMark = false
	}
	if hasMark {
		pairs = append(pairs, Pair{Mark: mark})
	}
	return pairs
}

// Source builds a receive cursor over the capture, honoring its
// recorded tolerance.
func (c *Capture) Source() *Source {
	s := NewSource(c.Pairs())
	if c.Tolerance > 0 {
		s.SetTolerance(c.Tolerance)
	}
	return s
}

// Marshal encodes the capture to CBOR.
func (c *Capture) Marshal() ([]byte, error) {
	return cbor.Marshal(c)
}

// UnmarshalCapture decodes a CBOR capture.
func UnmarshalCapture(data []byte) (*Capture, error) {
	var c Capture
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode capture: %w", err)
	}
	return &c, nil
}

// SaveCapture writes a capture file.
func SaveCapture(path string, c *Capture) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode capture: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadCapture reads a capture file.
func LoadCapture(path string) (*Capture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalCapture(data)
}
