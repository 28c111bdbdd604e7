// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openshade
//
// aokrf - A-OK shade remote protocol tool
//
// Encodes, decodes, records, and monitors the A-OK 433 MHz RF protocol
// used by motorized window shades, via a serial or WebSocket pulse bridge.

package main

import (
	"os"

	"github.com/openshade/aokrf/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
