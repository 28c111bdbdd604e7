// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openshade

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/openshade/aokrf/pkg/aok"
	"github.com/openshade/aokrf/pkg/pulse"
	"github.com/spf13/cobra"
)

var (
	sendDevice   string
	sendAddress  string
	sendChannel  int
	sendCommand  string
	sendPreamble bool
	sendOut      string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Encode a shade command and transmit it via the bridge",
	Long: `Build an A-OK command frame and emit its pulse train.

The frame is sent to the pulse bridge selected by --port or --url. With
--out the pulse train is written to a CBOR capture file instead, and with
neither destination it is printed as duration text on stdout, suitable for
piping into 'aokrf decode --text -'.

The device ID must match one already programmed into the shade (or use the
PROGRAM command to pair a new one). Address is a 16-bit channel bitmask;
--channel N is shorthand for the single bit N.

Examples:
  # Raise channel 9 of remote 0x505DE9
  aokrf send --port /dev/ttyUSB0 --device 0x505DE9 --channel 9 --command UP

  # Stop every channel, write the train to a capture file
  aokrf send --device 0x505DE9 --address 0xFFFF --command STOP --out stop.aokcap`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVar(&sendDevice, "device", "", "24-bit transmitter ID (e.g. 0x505DE9)")
	sendCmd.Flags().StringVar(&sendAddress, "address", "", "16-bit channel bitmask (e.g. 0x0100)")
	sendCmd.Flags().IntVar(&sendChannel, "channel", 0, "Single channel number 1-16 (alternative to --address)")
	sendCmd.Flags().StringVar(&sendCommand, "command", "", "Command name (UP, DOWN, STOP, PROGRAM, ...) or hex code")
	sendCmd.Flags().BoolVar(&sendPreamble, "preamble", false, "Send the wake-up preamble before the burst")
	sendCmd.Flags().StringVar(&sendOut, "out", "", "Write pulse train to a capture file instead of transmitting")
	sendCmd.MarkFlagRequired("device")
	sendCmd.MarkFlagRequired("command")
}

func buildFrame() (*aok.Frame, error) {
	device, err := strconv.ParseUint(sendDevice, 0, 32)
	if err != nil || device > 0xFFFFFF {
		return nil, fmt.Errorf("invalid device ID %q (24-bit value required)", sendDevice)
	}

	var address uint64
	switch {
	case sendAddress != "" && sendChannel != 0:
		return nil, fmt.Errorf("--address and --channel are mutually exclusive")
	case sendAddress != "":
		address, err = strconv.ParseUint(sendAddress, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q (16-bit bitmask required)", sendAddress)
		}
	case sendChannel != 0:
		if sendChannel < 1 || sendChannel > 16 {
			return nil, fmt.Errorf("channel %d out of range 1-16", sendChannel)
		}
		address = 1 << uint(sendChannel-1)
	default:
		return nil, fmt.Errorf("either --address or --channel must be specified")
	}

	command, ok := aok.ParseCommand(sendCommand)
	if !ok {
		code, err := strconv.ParseUint(sendCommand, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("unknown command %q", sendCommand)
		}
		command = uint8(code)
	}

	return &aok.Frame{
		Device:   uint32(device),
		Address:  uint16(address),
		Command:  command,
		Preamble: sendPreamble,
	}, nil
}

func runSend(cmd *cobra.Command, args []string) error {
	frame, err := buildFrame()
	if err != nil {
		return err
	}

	dst := pulse.NewTransmitData()
	aok.NewEncoder().Encode(dst, frame)

	fmt.Fprintf(os.Stderr, "Frame: %s\n", aok.FormatFrame(frame))
	fmt.Fprintf(os.Stderr, "Pulse train: %d pairs\n", len(dst.Pairs()))

	if sendOut != "" {
		capture := pulse.NewCapture("aokrf send", dst.Pairs())
		if err := pulse.SaveCapture(sendOut, capture); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", sendOut)
		return nil
	}

	if portName == "" && wsURL == "" {
		return pulse.WritePairs(os.Stdout, dst.Pairs())
	}

	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Fprintf(os.Stderr, "Transmitting via %s\n", connInfo)
	return pulse.WritePairs(conn, dst.Pairs())
}
