// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package directmem provides the maximum amount of direct (off-heap) memory a
// process may allocate.
//
// A Setting holds an explicit limit supplied by an operator or by the embedding
// application. It starts out as MaxDirectMemoryNotSet and is changed only by
// Set() or SetUseDefault(). An allocator asks the Setting first and falls back to
// a Detector when the Setting defers to detection:
//
//	setting := directmem.NewSetting()
//	err = setting.Set(512 * 1024 * 1024) // during start-up, before any allocator asks
//	...
//	maxDirectMemory := setting.Get()
//	if maxDirectMemory < 0 {
//	    maxDirectMemory = int64(detector.Detect())
//	}
//
// A Limiter bundles the two (plus the enforcement check) for callers that do not
// need to tell them apart.
//
// The Detector first asks the Go runtime for its limit (GOMEMLIMIT), unless the
// runtime is one known to report it inaccurately. Next it looks for a
// "<flag>=<size>[kKmMgG]" launch argument, the last one winning. Failing both it
// reports the memory addressable by the process, logged as "(maybe)".
//
// The package does not enforce the limit itself.
package directmem

const (
	// MaxDirectMemoryUseDefault is stored by SetUseDefault(): the Detector should be consulted
	MaxDirectMemoryUseDefault = int64(-1)

	// MaxDirectMemoryNotSet is the initial value: nobody configured the limit
	MaxDirectMemoryNotSet = int64(-2)
)

const (
	// CheckEnableProperty names the property that turns on CheckWasConfigured().
	// Any value other than NoCheck enables the check.
	CheckEnableProperty = "directmem.max.check.enable"

	// NoCheck is the CheckEnableProperty value (and default) that disables the check
	NoCheck = "none"
)

// DefaultLaunchArgFlag is the launch argument the Detector scans for
const DefaultLaunchArgFlag = "-XX:MaxDirectMemorySize"
