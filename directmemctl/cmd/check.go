// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [Section.Option=value]...",
	Short: "Fail unless the limit was configured (when the check is enabled)",
	RunE:  checkRunE,
}

func checkRunE(cmd *cobra.Command, args []string) (err error) {
	err = limiter.Setting().CheckWasConfigured(processReader)
	if nil != err {
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), "ok")

	return
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
