// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package aok

import (
	"fmt"
	"strings"
)

// FormatCommand returns the human-readable name for a command code.
func FormatCommand(command uint8) string {
	switch command {
	case CmdUp:
		return "UP"
	case CmdDown:
		return "DOWN"
	case CmdStop:
		return "STOP"
	case CmdProgram:
		return "PROGRAM"
	case CmdAfterUpDown:
		return "AFTER_UP_DOWN"
	case CmdUpLong:
		return "UP_LONG_PRESS"
	case CmdDownLong:
		return "DOWN_LONG_PRESS"
	default:
		return "UNKNOWN"
	}
}

// ParseCommand maps a command name (as printed by FormatCommand,
// case-insensitive) back to its code.
func ParseCommand(name string) (uint8, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UP":
		return CmdUp, true
	case "DOWN":
		return CmdDown, true
	case "STOP":
		return CmdStop, true
	case "PROGRAM", "PROG":
		return CmdProgram, true
	case "AFTER_UP_DOWN":
		return CmdAfterUpDown, true
	case "UP_LONG_PRESS", "UP_LONG":
		return CmdUpLong, true
	case "DOWN_LONG_PRESS", "DOWN_LONG":
		return CmdDownLong, true
	default:
		return 0, false
	}
}

// Channels expands an address bitmask into 1-based channel numbers.
func Channels(address uint16) []int {
	var chans []int
	for i := 0; i < AddressBits; i++ {
		if address&(1<<uint(i)) != 0 {
			chans = append(chans, i+1)
		}
	}
	return chans
}

// FormatFrame formats a frame into a one-line human-readable summary.
func FormatFrame(f *Frame) string {
	var b strings.Builder
	if !f.ReceivedAt.IsZero() {
		fmt.Fprintf(&b, "[%s] ", f.ReceivedAt.Format("15:04:05.000"))
	}
	fmt.Fprintf(&b, "device=0x%06X address=0x%04X command=%s (0x%02X) checksum=0x%02X",
		f.Device, f.Address, FormatCommand(f.Command), f.Command, f.Checksum())

	if chans := Channels(f.Address); len(chans) > 0 {
		parts := make([]string, len(chans))
		for i, ch := range chans {
			parts[i] = fmt.Sprintf("%d", ch)
		}
		fmt.Fprintf(&b, " channels=%s", strings.Join(parts, ","))
	}
	return b.String()
}
