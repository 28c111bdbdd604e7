// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openshade

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/openshade/aokrf/pkg/aok"
	"github.com/openshade/aokrf/pkg/pulse"
	"github.com/spf13/cobra"
)

var (
	listenStatsInterval int
	listenShowErrors    bool
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Decode and display shade commands as they arrive",
	Long: `Continuously decode A-OK frames from the pulse bridge.

Each valid frame is printed with its timestamp, device ID, address bitmask,
command, and checksum. Remotes repeat every frame six times; each clean
repetition is shown (pipe through 'uniq -f1' if that is too chatty).

With --show-errors, rejected frame candidates (checksum mismatches, foreign
start codes, malformed symbols) are printed too. --stats-interval N prints a
reception statistics summary every N seconds.`,
	RunE: runListen,
}

func init() {
	rootCmd.AddCommand(listenCmd)
	listenCmd.Flags().IntVar(&listenStatsInterval, "stats-interval", 0, "Print statistics every N seconds (0 = never)")
	listenCmd.Flags().BoolVar(&listenShowErrors, "show-errors", false, "Print rejected frame candidates")
}

func runListen(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("aokrf - A-OK Frame Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	reader := pulse.NewStreamReader(conn)
	decoder := aok.NewStreamDecoder()
	decoder.SetTolerance(tolerance)
	stats := aok.NewStatistics()

	lastStats := time.Now()

	for {
		pair, err := reader.Next()
		if err == io.EOF || errors.Is(err, ErrConnectionClosed) {
			log.Printf("Connection closed")
			return nil
		}
		if err != nil {
			log.Printf("Read error: %v", err)
			continue
		}

		frame, decodeErr := decoder.Push(pair)
		if frame != nil || decodeErr != nil {
			stats.Update(frame, decodeErr)
		}
		if frame != nil {
			fmt.Println(aok.FormatFrame(frame))
		}
		if decodeErr != nil && listenShowErrors {
			fmt.Printf("[REJECTED] %v\n", decodeErr)
		}

		if listenStatsInterval > 0 && time.Since(lastStats) >= time.Duration(listenStatsInterval)*time.Second {
			fmt.Print(stats.String())
			lastStats = time.Now()
		}
	}
}
