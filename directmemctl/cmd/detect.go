// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect [Section.Option=value]...",
	Short: "Print the detected limit, ignoring any configured one",
	RunE:  detectRunE,
}

func detectRunE(cmd *cobra.Command, args []string) (err error) {
	maxDirectMemory := limiter.Detector().Detect()
	fmt.Fprintf(cmd.OutOrStdout(), "%d (%s)\n", maxDirectMemory, humanize.IBytes(maxDirectMemory))
	return
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
