// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openshade

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports that may host a pulse bridge",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serial.GetPortsList()
		if err != nil {
			return fmt.Errorf("failed to enumerate serial ports: %v", err)
		}
		if len(ports) == 0 {
			fmt.Println("No serial ports found")
			return nil
		}
		for _, port := range ports {
			fmt.Println(port)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
