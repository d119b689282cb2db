// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package platform reports the memory figures the operating system, the
// container runtime, and the Go runtime make available to this process.
package platform

const (
	// NoGoMemLimit is what debug.SetMemoryLimit reports when GOMEMLIMIT was
	// never set (neither in the environment nor programmatically).
	NoGoMemLimit = int64(^uint64(0) >> 1)

	// cgroupUnlimited is what cgroup v1 reports in memory.limit_in_bytes for an
	// unconstrained group (the largest page aligned int64).
	cgroupUnlimited = uint64(0x7FFFFFFFFFFFF000)
)
