// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/NVIDIA/directmem/directmem"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [Section.Option=value]...",
	Short: "Print the configured setting and the limit it resolves to",
	RunE:  showRunE,
}

func settingString(maxDirectMemory int64) string {
	switch maxDirectMemory {
	case directmem.MaxDirectMemoryNotSet:
		return "not set"
	case directmem.MaxDirectMemoryUseDefault:
		return "default"
	default:
		return fmt.Sprintf("%d", maxDirectMemory)
	}
}

func showRunE(cmd *cobra.Command, args []string) (err error) {
	fmt.Fprintf(cmd.OutOrStdout(), "setting: %s\n", settingString(limiter.Setting().Get()))

	maxDirectMemory, err := limiter.MaxDirectMemory()
	if nil != err {
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "limit:   %d (%s)\n", maxDirectMemory, humanize.IBytes(maxDirectMemory))

	return
}

func init() {
	rootCmd.AddCommand(showCmd)
}
