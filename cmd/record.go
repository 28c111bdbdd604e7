// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openshade

package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/openshade/aokrf/pkg/pulse"
	"github.com/spf13/cobra"
)

var (
	recordDuration int
	recordOut      string
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record raw pulses from the bridge into a capture file",
	Long: `Capture the raw pulse stream from the bridge for a fixed duration and
write it to a CBOR capture file. Captures preserve exact microsecond
timings and can be decoded offline with 'aokrf decode', which makes them
the right artifact to attach when reporting a shade that will not pair.`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().IntVar(&recordDuration, "duration", 10, "Recording duration in seconds")
	recordCmd.Flags().StringVar(&recordOut, "out", "capture.aokcap", "Output capture file")
}

func runRecord(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("aokrf - Pulse Recorder\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Recording for %d seconds...\n", recordDuration)

	reader := pulse.NewStreamReader(conn)
	deadline := time.Now().Add(time.Duration(recordDuration) * time.Second)

	var pairs []pulse.Pair
	for time.Now().Before(deadline) {
		pair, err := reader.Next()
		if err == io.EOF || errors.Is(err, ErrConnectionClosed) {
			break
		}
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			continue
		}
		pairs = append(pairs, pair)
	}

	if len(pairs) == 0 {
		return fmt.Errorf("no pulses received; nothing to save")
	}

	capture := pulse.NewCapture(connInfo, pairs)
	capture.Tolerance = tolerance
	if err := pulse.SaveCapture(recordOut, capture); err != nil {
		return err
	}

	fmt.Printf("Wrote %d pulse pairs to %s\n", len(pairs), recordOut)
	return nil
}
