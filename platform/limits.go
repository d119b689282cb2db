// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"fmt"
	"runtime/debug"

	"github.com/KimMachineGun/automemlimit/memlimit"
)

// GoMemLimit returns the Go runtime's soft memory limit without changing it.
// ok is false if no limit has been set.
func GoMemLimit() (limit uint64, ok bool) {
	// A negative input only queries the current limit
	current := debug.SetMemoryLimit(-1)
	if (current <= 0) || (NoGoMemLimit == current) {
		return
	}

	limit = uint64(current)
	ok = true

	return
}

// ContainerMemLimit returns the memory limit of the cgroup this process runs in.
// An error is returned on platforms without cgroups and when the group is unconstrained.
func ContainerMemLimit() (limit uint64, err error) {
	limit, err = memlimit.FromCgroup()
	if nil != err {
		return
	}

	if (0 == limit) || (limit >= cgroupUnlimited) {
		err = fmt.Errorf("cgroup memory limit not set")
		limit = 0
	}

	return
}

// AddressableMemory returns the memory this process could address: the host's
// total RAM, capped by the container limit when useContainerLimit is set and
// one is in effect.
func AddressableMemory(useContainerLimit bool) (memSize uint64, err error) {
	memSize, err = MemSize()

	if useContainerLimit {
		containerLimit, containerErr := ContainerMemLimit()
		if nil == containerErr {
			if (nil != err) || (containerLimit < memSize) {
				memSize = containerLimit
				err = nil
			}
		}
	}

	return
}
