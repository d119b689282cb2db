// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

//go:build !linux && !darwin
// +build !linux,!darwin

package platform

import (
	"fmt"
	"runtime"

	"github.com/pbnjay/memory"
)

// MemSize returns the total RAM of the host
func MemSize() (memSize uint64, err error) {
	memSize = memory.TotalMemory()
	if 0 == memSize {
		err = fmt.Errorf("total memory not available on %v", runtime.GOOS)
	}

	return
}
