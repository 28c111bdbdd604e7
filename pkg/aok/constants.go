// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

// Package aok implements the A-OK 433 MHz remote control protocol used
// by motorized window shades (A-OK AM25/AM68 tubular motors, sold under
// Zemismart and others).
//
// The protocol is unmodulated on-off keying. A transmission is an
// optional wake-up preamble followed by six identical repetitions of
// SYNC + 64-bit frame + EOM, every symbol a mark/space pulse pair in
// multiples of a 300 microsecond unit. This package provides the frame
// type, the pulse encoder/decoder, checksum validation, and formatting.
package aok

import "time"

// PulseUnit is the base pulse length. All symbol durations are integer
// multiples of it.
const PulseUnit = 300 * time.Microsecond

// StartCode is the fixed first byte of every frame.
const StartCode = 0xA3

// Symbol durations, stated as {mark, space} multiples of PulseUnit.
var (
	symSync = [2]time.Duration{17 * PulseUnit, 2 * PulseUnit}
	symOne  = [2]time.Duration{2 * PulseUnit, 1 * PulseUnit}
	symZero = [2]time.Duration{1 * PulseUnit, 2 * PulseUnit}
	symEOM  = [2]time.Duration{2 * PulseUnit, 17 * PulseUnit}
)

// Frame layout
const (
	StartBits    = 8
	DeviceBits   = 24
	AddressBits  = 16
	CommandBits  = 8
	ChecksumBits = 8
	FrameBits    = StartBits + DeviceBits + AddressBits + CommandBits + ChecksumBits
)

// RepeatCount is how many times a frame is sent per transmission. The
// channel is one-way and lossy; the remotes repeat for robustness.
const RepeatCount = 6

// PreambleLength is the number of zero symbols some remotes send ahead
// of the first sync to wake receivers.
const PreambleLength = 8

// Command codes observed from AC123-02D remotes.
const (
	CmdUp          = 0x0B
	CmdStop        = 0x23
	CmdAfterUpDown = 0x24 // sent after a short UP/DOWN press
	CmdDown        = 0x43
	CmdProgram     = 0x53
	CmdUpLong      = 0x8B
	CmdDownLong    = 0xC3
)
