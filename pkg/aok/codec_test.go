// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package aok

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/openshade/aokrf/pkg/pulse"
)

// encodeFrame returns the pulse train for f.
func encodeFrame(f *Frame) []pulse.Pair {
	dst := pulse.NewTransmitData()
	NewEncoder().Encode(dst, f)
	return dst.Pairs()
}

// classifySymbol names the symbol a nominal-timing pair encodes.
func classifySymbol(p pulse.Pair) string {
	switch {
	case p.Mark == symSync[0] && p.Space == symSync[1]:
		return "sync"
	case p.Mark == symOne[0] && p.Space == symOne[1]:
		return "1"
	case p.Mark == symZero[0] && p.Space == symZero[1]:
		return "0"
	case p.Mark == symEOM[0] && p.Space == symEOM[1]:
		return "eom"
	default:
		return "?"
	}
}

func TestEncode_KnownBitVector(t *testing.T) {
	// Captured AC123-02D UP press:
	// start    device                   address          command  checksum
	// 10100011 010100000101110111101001 0000000100000000 00001011 10100010
	const want = "10100011" +
		"010100000101110111101001" +
		"0000000100000000" +
		"00001011" +
		"10100010"

	f := &Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdUp}
	pairs := encodeFrame(f)

	if len(pairs) != RepeatCount*(FrameBits+2) {
		t.Fatalf("expected %d pairs, got %d", RepeatCount*(FrameBits+2), len(pairs))
	}

	// Every repetition must carry the same sync/bits/eom sequence.
	for rep := 0; rep < RepeatCount; rep++ {
		base := rep * (FrameBits + 2)
		if got := classifySymbol(pairs[base]); got != "sync" {
			t.Fatalf("rep %d: expected sync at %d, got %s", rep, base, got)
		}
		var bits strings.Builder
		for i := 0; i < FrameBits; i++ {
			bits.WriteString(classifySymbol(pairs[base+1+i]))
		}
		if bits.String() != want {
			t.Errorf("rep %d: bit vector mismatch\n got %s\nwant %s", rep, bits.String(), want)
		}
		if got := classifySymbol(pairs[base+FrameBits+1]); got != "eom" {
			t.Errorf("rep %d: expected eom, got %s", rep, got)
		}
	}
}

func TestEncode_Preamble(t *testing.T) {
	f := &Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdStop, Preamble: true}
	pairs := encodeFrame(f)

	if len(pairs) != PreambleLength+RepeatCount*(FrameBits+2) {
		t.Fatalf("expected %d pairs, got %d", PreambleLength+RepeatCount*(FrameBits+2), len(pairs))
	}
	for i := 0; i < PreambleLength; i++ {
		if got := classifySymbol(pairs[i]); got != "0" {
			t.Errorf("preamble pair %d: expected zero symbol, got %s", i, got)
		}
	}
	if got := classifySymbol(pairs[PreambleLength]); got != "sync" {
		t.Errorf("expected sync after preamble, got %s", got)
	}
}

func TestEncode_CarrierOff(t *testing.T) {
	dst := pulse.NewTransmitData()
	dst.SetCarrierFrequency(433920000)
	NewEncoder().Encode(dst, &Frame{Device: 1, Address: 1, Command: CmdUp})
	if dst.CarrierFrequency() != 0 {
		t.Errorf("encode must declare carrier off, got %d Hz", dst.CarrierFrequency())
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{name: "up single channel", frame: Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdUp}},
		{name: "down all channels", frame: Frame{Device: 0x000001, Address: 0xFFFF, Command: CmdDown}},
		{name: "stop with preamble", frame: Frame{Device: 0xABCDEF, Address: 0x8001, Command: CmdStop, Preamble: true}},
		{name: "program zero address", frame: Frame{Device: 0xFFFFFF, Address: 0x0000, Command: CmdProgram}},
		{name: "unknown command code", frame: Frame{Device: 0x123456, Address: 0x0010, Command: 0x77}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := pulse.NewSource(encodeFrame(&tt.frame))
			dec := NewDecoder()

			// Every one of the six repetitions must decode independently.
			for rep := 0; rep < RepeatCount; rep++ {
				got, err := dec.Decode(src)
				if err != nil {
					t.Fatalf("rep %d: decode error: %v", rep, err)
				}
				if !got.Equal(&tt.frame) {
					t.Errorf("rep %d: round trip mismatch: got %s", rep, FormatFrame(got))
				}
			}

			// The source is drained; a seventh call finds no sync.
			if _, err := dec.Decode(src); !errors.Is(err, ErrNoSync) {
				t.Errorf("expected ErrNoSync after last repetition, got %v", err)
			}
		})
	}
}

func TestDecode_GarbagePrefix(t *testing.T) {
	f := Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdDown}
	garbage := []pulse.Pair{
		{Mark: 950 * time.Microsecond, Space: 4100 * time.Microsecond},
		{Mark: 40 * time.Microsecond, Space: 12 * time.Microsecond},
		{Mark: 300 * time.Microsecond, Space: 300 * time.Microsecond},
		{Mark: 7000 * time.Microsecond, Space: 90 * time.Microsecond},
	}
	pairs := append(garbage, encodeFrame(&f)...)

	got, err := NewDecoder().Decode(pulse.NewSource(pairs))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !got.Equal(&f) {
		t.Errorf("round trip through garbage prefix mismatch: got %s", FormatFrame(got))
	}
}

func TestDecode_JitteredTiming(t *testing.T) {
	// Stretch every duration by 15%; inside the default 25% tolerance.
	f := Frame{Device: 0x031337, Address: 0x0004, Command: CmdUp}
	pairs := encodeFrame(&f)
	for i := range pairs {
		pairs[i].Mark = pairs[i].Mark * 115 / 100
		pairs[i].Space = pairs[i].Space * 115 / 100
	}

	got, err := NewDecoder().Decode(pulse.NewSource(pairs))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !got.Equal(&f) {
		t.Errorf("jittered round trip mismatch: got %s", FormatFrame(got))
	}
}

func TestDecode_Exhaustion(t *testing.T) {
	tests := []struct {
		name  string
		pairs []pulse.Pair
	}{
		{name: "empty source", pairs: nil},
		{name: "all garbage", pairs: []pulse.Pair{
			{Mark: 100 * time.Microsecond, Space: 100 * time.Microsecond},
			{Mark: 900 * time.Microsecond, Space: 20 * time.Microsecond},
			{Mark: 1200 * time.Microsecond, Space: 4000 * time.Microsecond},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder().Decode(pulse.NewSource(tt.pairs))
			if !errors.Is(err, ErrNoSync) {
				t.Errorf("expected ErrNoSync, got %v", err)
			}
		})
	}
}

// flipBitPair swaps a one symbol for a zero or vice versa in place.
func flipBitPair(pairs []pulse.Pair, i int) {
	if pairs[i].Mark == symOne[0] {
		pairs[i] = pulse.Pair{Mark: symZero[0], Space: symZero[1]}
	} else {
		pairs[i] = pulse.Pair{Mark: symOne[0], Space: symOne[1]}
	}
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	f := Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdUp}
	pairs := encodeFrame(&f)

	// Flip the last checksum bit of the first repetition.
	// Layout per repetition: sync, 64 bits, eom.
	flipBitPair(pairs, 1+FrameBits-1)

	dec := NewDecoder()
	if _, err := dec.Decode(pulse.NewSource(pairs[:FrameBits+2])); !errors.Is(err, ErrChecksum) {
		t.Errorf("expected ErrChecksum, got %v", err)
	}
}

func TestDecode_CorruptPayloadRejected(t *testing.T) {
	// Flip a device bit; the transmitted checksum no longer matches.
	f := Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdStop}
	pairs := encodeFrame(&f)
	flipBitPair(pairs, 1+StartBits+3)

	if _, err := NewDecoder().Decode(pulse.NewSource(pairs[:FrameBits+2])); !errors.Is(err, ErrChecksum) {
		t.Errorf("expected ErrChecksum, got %v", err)
	}
}

func TestDecode_StartCodeRejected(t *testing.T) {
	// Flip a start-code bit and patch nothing else: the checksum still
	// matches (it does not cover start), so rejection must come from
	// the start-code check.
	f := Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdUp}
	pairs := encodeFrame(&f)
	flipBitPair(pairs, 1+0)

	if _, err := NewDecoder().Decode(pulse.NewSource(pairs[:FrameBits+2])); !errors.Is(err, ErrStartCode) {
		t.Errorf("expected ErrStartCode, got %v", err)
	}
}

func TestDecode_BadSymbolAborts(t *testing.T) {
	f := Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdUp}
	pairs := encodeFrame(&f)

	// Replace a mid-frame bit with a pair matching no symbol.
	pairs[1+20] = pulse.Pair{Mark: 4 * PulseUnit, Space: 4 * PulseUnit}

	if _, err := NewDecoder().Decode(pulse.NewSource(pairs[:FrameBits+2])); !errors.Is(err, ErrBadSymbol) {
		t.Errorf("expected ErrBadSymbol, got %v", err)
	}
}

func TestDecode_TruncatedFrame(t *testing.T) {
	f := Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdUp}
	pairs := encodeFrame(&f)

	// Sync plus only 30 bits: the field read runs out of pulses.
	_, err := NewDecoder().Decode(pulse.NewSource(pairs[:31]))
	if !errors.Is(err, ErrBadSymbol) {
		t.Errorf("expected ErrBadSymbol on truncated train, got %v", err)
	}
}

func TestDecode_MissingEOMIsFine(t *testing.T) {
	f := Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdDown}
	pairs := encodeFrame(&f)

	// Sync + 64 bits, EOM cut off.
	got, err := NewDecoder().Decode(pulse.NewSource(pairs[:FrameBits+1]))
	if err != nil {
		t.Fatalf("decode error without EOM: %v", err)
	}
	if !got.Equal(&f) {
		t.Errorf("round trip without EOM mismatch: got %s", FormatFrame(got))
	}
}

func TestDecode_CursorAdvancesPastFrame(t *testing.T) {
	f := Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdUp}
	src := pulse.NewSource(encodeFrame(&f))

	dec := NewDecoder()
	if _, err := dec.Decode(src); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	// Cursor sits past sync + 64 bits + eom of the first repetition.
	if src.Cursor() != FrameBits+2 {
		t.Errorf("expected cursor at %d, got %d", FrameBits+2, src.Cursor())
	}
}
