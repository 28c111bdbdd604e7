// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openshade

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial bridge flags
	portName string
	baudRate int

	// WebSocket bridge flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Decoding flags
	tolerance int
)

var rootCmd = &cobra.Command{
	Use:   "aokrf",
	Short: "A-OK shade remote protocol tool",
	Long: `aokrf encodes, decodes, records, and monitors the A-OK 433 MHz RF
protocol used by motorized window shades (A-OK tubular motors, sold as
Zemismart AM25 and others).

The tool talks to a pulse bridge: a small MCU that captures and replays raw
OOK pulse timings, streaming them as signed microsecond durations (positive
mark, negative space) over a serial port or a WebSocket.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the AOKRF_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell
history.`,
	Version: "1.0.0",
}

func init() {
	// Serial bridge flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial bridge device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket bridge flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().IntVar(&tolerance, "tolerance", 25, "Pulse timing tolerance in percent")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
