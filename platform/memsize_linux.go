// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"fmt"
	"syscall"
)

// MemSize returns the total RAM of the host
func MemSize() (memSize uint64, err error) {
	var (
		sysinfo syscall.Sysinfo_t
	)

	err = syscall.Sysinfo(&sysinfo)
	if nil != err {
		err = fmt.Errorf("sysinfo() failed: %v", err)
		return
	}

	// Totalram is expressed in units of sysinfo.Unit bytes (and is a uint32 on 32-bit platforms)
	memSize = uint64(sysinfo.Totalram) * uint64(sysinfo.Unit)

	return
}
