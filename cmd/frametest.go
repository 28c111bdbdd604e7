// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openshade

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/openshade/aokrf/pkg/aok"
	"github.com/openshade/aokrf/pkg/pulse"
	"github.com/spf13/cobra"
)

var frameTestTimeout int

var frameTestCmd = &cobra.Command{
	Use:   "frame_test",
	Short: "Test the bridge by waiting for one valid frame",
	Long: `Wait for a valid A-OK frame on the bridge until timeout.

Connects to the pulse bridge and waits for any frame that passes start code
and checksum validation, ignoring noise and rejected candidates. Press a
button on a paired remote to produce traffic.

Exit codes:
  0 - Frame received before timeout
  1 - Timeout reached without a valid frame
  2 - Connection error`,
	RunE: runFrameTest,
}

func init() {
	rootCmd.AddCommand(frameTestCmd)
	frameTestCmd.Flags().IntVar(&frameTestTimeout, "timeout", 10, "Timeout in seconds to wait for a frame")
}

func runFrameTest(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("aokrf - Frame Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n", frameTestTimeout)
	fmt.Printf("Waiting for a valid A-OK frame...\n\n")

	frameChan := make(chan *aok.Frame, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := pulse.NewStreamReader(conn)
		decoder := aok.NewStreamDecoder()
		decoder.SetTolerance(tolerance)

		rejected := 0
		for {
			pair, err := reader.Next()
			if err == io.EOF {
				errChan <- fmt.Errorf("bridge stream ended")
				return
			}
			if err != nil {
				errChan <- err
				return
			}

			frame, decodeErr := decoder.Push(pair)
			if decodeErr != nil {
				rejected++
				continue
			}
			if frame != nil {
				if rejected > 0 {
					fmt.Printf("(rejected %d candidates before this frame)\n", rejected)
				}
				frameChan <- frame
				return
			}
		}
	}()

	select {
	case frame := <-frameChan:
		fmt.Printf("SUCCESS: Received valid frame\n")
		fmt.Printf("  %s\n", aok.FormatFrame(frame))
		os.Exit(0)

	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(2)

	case <-time.After(time.Duration(frameTestTimeout) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: No valid frame received within %d seconds\n", frameTestTimeout)
		os.Exit(1)
	}

	return nil
}
