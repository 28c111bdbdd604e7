// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package aok

import "time"

// Frame is one 64-bit A-OK command.
//
// Device identifies the transmitting remote (24 bits, factory-assigned).
// Address is a 16-bit channel bitmask; setting several bits commands
// several shades at once. Command is the operation code; the codec
// treats it as opaque payload. Preamble selects the transmit-time
// wake-up burst and is not part of the wire frame.
type Frame struct {
	Device   uint32
	Address  uint16
	Command  uint8
	Preamble bool

	// ReceivedAt is set by the decoder on recovered frames.
	ReceivedAt time.Time
}

// Checksum computes the frame's 8-bit additive checksum: the sum of the
// three device bytes, the two address bytes, and the command, with
// unsigned wraparound. It is always derived, never taken from caller
// input.
func (f *Frame) Checksum() uint8 {
	return Checksum(f.Device, f.Address, f.Command)
}

// Checksum computes the A-OK additive checksum over the mutable frame
// fields.
func Checksum(device uint32, address uint16, command uint8) uint8 {
	sum := uint32(device&0xFF) + uint32(device>>8&0xFF) + uint32(device>>16&0xFF) +
		uint32(address&0xFF) + uint32(address>>8&0xFF) +
		uint32(command)
	return uint8(sum)
}

// Equal reports whether two frames carry the same command. Checksum is
// derived and preamble is transport-only, so neither participates.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Device == other.Device &&
		f.Address == other.Address &&
		f.Command == other.Command
}

// packBits writes the 64 wire bits: start, device, address, command,
// checksum, each field MSB first. The checksum is computed here, not
// read from the frame.
func (f *Frame) packBits(w *bitWriter) {
	w.writeBits(StartCode, StartBits)
	w.writeBits(f.Device, DeviceBits)
	w.writeBits(uint32(f.Address), AddressBits)
	w.writeBits(uint32(f.Command), CommandBits)
	w.writeBits(uint32(f.Checksum()), ChecksumBits)
}

// unpackBits reads the 64 wire bits back into a frame, validating the
// start code and the transmitted checksum. A frame is only ever
// returned when both check out.
func unpackBits(r *bitReader) (*Frame, error) {
	start, ok := r.readBits(StartBits)
	if !ok {
		return nil, ErrShortFrame
	}
	device, ok := r.readBits(DeviceBits)
	if !ok {
		return nil, ErrShortFrame
	}
	address, ok := r.readBits(AddressBits)
	if !ok {
		return nil, ErrShortFrame
	}
	command, ok := r.readBits(CommandBits)
	if !ok {
		return nil, ErrShortFrame
	}
	sum, ok := r.readBits(ChecksumBits)
	if !ok {
		return nil, ErrShortFrame
	}

	if start != StartCode {
		return nil, ErrStartCode
	}

	f := &Frame{
		Device:  device,
		Address: uint16(address),
		Command: uint8(command),
	}
	if uint8(sum) != f.Checksum() {
		return nil, ErrChecksum
	}
	return f, nil
}
