// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// The directmemctl program reports the direct memory limit a process would be
// given and runs the check that the limit was configured.
package main

import (
	"fmt"
	"os"

	"github.com/NVIDIA/directmem/blunder"
	"github.com/NVIDIA/directmem/directmemctl/cmd"
)

func main() {
	err := cmd.Execute()
	if nil != err {
		fmt.Fprintf(os.Stderr, "directmemctl: %v\n", blunder.ErrorString(err))
		os.Exit(1)
	}
}
