// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package aok

// Big-endian bit cursor shared by frame packing and unpacking. Using
// one abstraction for both directions keeps the wire order symmetric
// without duplicated shift loops.

type bitWriter struct {
	bits []bool
}

// writeBits appends the low width bits of v, most significant first.
func (w *bitWriter) writeBits(v uint32, width int) {
	for i := width - 1; i >= 0; i-- {
		w.bits = append(w.bits, v>>uint(i)&1 == 1)
	}
}

type bitReader struct {
	bits []bool
	pos  int
}

// readBits consumes width bits, most significant first. ok is false if
// the source runs out before width bits are read.
func (r *bitReader) readBits(width int) (v uint32, ok bool) {
	if r.pos+width > len(r.bits) {
		return 0, false
	}
	for i := 0; i < width; i++ {
		v <<= 1
		if r.bits[r.pos] {
			v |= 1
		}
		r.pos++
	}
	return v, true
}
