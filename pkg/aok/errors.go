// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package aok

import "errors"

// Decode failures. All of them are expected, frequent conditions on a
// shared noisy band; callers retry on the next repetition.
var (
	// ErrNoSync means the pulse train ran out before any pair matched
	// the sync timing.
	ErrNoSync = errors.New("no sync pulse found")

	// ErrSyncLost means a sync-like pair was seen during the scan but
	// did not confirm when consumed.
	ErrSyncLost = errors.New("sync pulse lost")

	// ErrBadSymbol means a pair inside the frame body matched neither
	// the one nor the zero timing.
	ErrBadSymbol = errors.New("unrecognized pulse symbol")

	// ErrShortFrame means the bit source was exhausted mid-field.
	ErrShortFrame = errors.New("frame truncated")

	// ErrStartCode means the frame did not begin with the A-OK start
	// byte; most likely a foreign protocol on the same band.
	ErrStartCode = errors.New("bad start code")

	// ErrChecksum means all 64 bits were read but the transmitted
	// checksum disagrees with the computed one.
	ErrChecksum = errors.New("checksum mismatch")
)
