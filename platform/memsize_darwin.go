// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MemSize returns the total RAM of the host
func MemSize() (memSize uint64, err error) {
	memSize, err = unix.SysctlUint64("hw.memsize")
	if nil != err {
		err = fmt.Errorf("sysctl(hw.memsize) failed: %v", err)
	}

	return
}
