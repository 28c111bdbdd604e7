// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package aok

import (
	"strings"
	"testing"
)

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		command  uint8
		expected string
	}{
		{CmdUp, "UP"},
		{CmdDown, "DOWN"},
		{CmdStop, "STOP"},
		{CmdProgram, "PROGRAM"},
		{CmdAfterUpDown, "AFTER_UP_DOWN"},
		{CmdUpLong, "UP_LONG_PRESS"},
		{CmdDownLong, "DOWN_LONG_PRESS"},
		{0x99, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := FormatCommand(tt.command); got != tt.expected {
			t.Errorf("FormatCommand(0x%02X) = %q, want %q", tt.command, got, tt.expected)
		}
	}
}

func TestParseCommand_RoundTrip(t *testing.T) {
	for _, code := range []uint8{CmdUp, CmdDown, CmdStop, CmdProgram, CmdAfterUpDown, CmdUpLong, CmdDownLong} {
		got, ok := ParseCommand(FormatCommand(code))
		if !ok || got != code {
			t.Errorf("ParseCommand(FormatCommand(0x%02X)) = 0x%02X, %v", code, got, ok)
		}
	}
	if _, ok := ParseCommand("LEVITATE"); ok {
		t.Error("ParseCommand should reject unknown names")
	}
}

func TestChannels(t *testing.T) {
	tests := []struct {
		address  uint16
		expected []int
	}{
		{0x0000, nil},
		{0x0001, []int{1}},
		{0x0100, []int{9}},
		{0x8001, []int{1, 16}},
	}

	for _, tt := range tests {
		got := Channels(tt.address)
		if len(got) != len(tt.expected) {
			t.Errorf("Channels(0x%04X) = %v, want %v", tt.address, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("Channels(0x%04X) = %v, want %v", tt.address, got, tt.expected)
				break
			}
		}
	}
}

func TestFormatFrame(t *testing.T) {
	f := &Frame{Device: 0x505DE9, Address: 0x0100, Command: CmdUp}
	out := FormatFrame(f)

	for _, want := range []string{"device=0x505DE9", "address=0x0100", "UP", "checksum=0xA2", "channels=9"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatFrame output missing %q: %s", want, out)
		}
	}
}
