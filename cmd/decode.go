// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openshade

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/openshade/aokrf/pkg/aok"
	"github.com/openshade/aokrf/pkg/pulse"
	"github.com/spf13/cobra"
)

var decodeText bool

var decodeCmd = &cobra.Command{
	Use:   "decode <capture-file>",
	Short: "Decode a pulse capture offline",
	Long: `Decode every A-OK frame from a recorded capture.

Reads a CBOR capture file produced by 'aokrf record' (or, with --text, the
signed-duration text format from a file or stdin via '-'), then repeatedly
runs the frame decoder until the pulse train is exhausted, printing each
recovered frame and a final summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().BoolVar(&decodeText, "text", false, "Input is duration text, not a CBOR capture")
}

func loadPairs(path string) ([]pulse.Pair, error) {
	if decodeText {
		var r io.Reader
		if path == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		return pulse.ReadPairs(r)
	}

	capture, err := pulse.LoadCapture(path)
	if err != nil {
		return nil, err
	}
	return capture.Pairs(), nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	pairs, err := loadPairs(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Capture: %d pulse pairs\n\n", len(pairs))

	src := pulse.NewSource(pairs)
	src.SetTolerance(tolerance)

	decoder := aok.NewDecoder()
	stats := aok.NewStatistics()

	for {
		frame, err := decoder.Decode(src)
		if errors.Is(err, aok.ErrNoSync) {
			break
		}
		stats.Update(frame, err)
		if err != nil {
			fmt.Printf("[REJECTED] %v\n", err)
			continue
		}
		fmt.Println(aok.FormatFrame(frame))
	}

	fmt.Printf("\nDecoded %d frames, rejected %d candidates\n",
		stats.ValidFrames,
		stats.SymbolErrors+stats.StartRejects+stats.ChecksumErrors)
	return nil
}
