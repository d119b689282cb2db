// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package directmem

import (
	"sync"

	"github.com/NVIDIA/directmem/blunder"
	"github.com/NVIDIA/directmem/environ"
	"github.com/NVIDIA/directmem/logger"
)

// Setting is the explicitly configured direct memory limit.
//
// A Setting is meant to be created once by the program's start-up code and
// handed to every component that needs the limit. The zero value holds
// MaxDirectMemoryNotSet.
type Setting struct {
	sync.Mutex
	configured      bool  // Set() or SetUseDefault() was called
	maxDirectMemory int64 // MaxDirectMemoryUseDefault or a byte count; meaningful only if configured
}

// NewSetting returns a Setting holding MaxDirectMemoryNotSet
func NewSetting() (setting *Setting) {
	setting = &Setting{}
	return
}

// Set records an explicit limit of maxDirectMemory bytes.
//
// A negative maxDirectMemory fails with blunder.InvalidArgError and leaves the Setting unchanged.
func (setting *Setting) Set(maxDirectMemory int64) (err error) {
	if maxDirectMemory < 0 {
		err = blunder.NewError(blunder.InvalidArgError, "specified maxDirectMemory (%d) must be greater or equal to 0", maxDirectMemory)
		return
	}

	setting.Lock()
	setting.configured = true
	setting.maxDirectMemory = maxDirectMemory
	setting.Unlock()

	return
}

// SetUseDefault records that the detected limit should be used. Unlike a Setting
// that was never touched, this satisfies CheckWasConfigured().
func (setting *Setting) SetUseDefault() {
	setting.Lock()
	setting.configured = true
	setting.maxDirectMemory = MaxDirectMemoryUseDefault
	setting.Unlock()
}

// Get returns the stored value: a byte count, MaxDirectMemoryUseDefault, or MaxDirectMemoryNotSet.
// Any negative value means the caller should use a Detector.
func (setting *Setting) Get() (maxDirectMemory int64) {
	setting.Lock()
	if setting.configured {
		maxDirectMemory = setting.maxDirectMemory
	} else {
		maxDirectMemory = MaxDirectMemoryNotSet
	}
	setting.Unlock()

	return
}

// CheckWasConfigured fails with blunder.NotConfiguredError if neither Set() nor
// SetUseDefault() was ever called.
//
// The check only happens if property CheckEnableProperty is set in env to
// something other than NoCheck; otherwise a warning is logged and nil returned.
func (setting *Setting) CheckWasConfigured(env environ.Reader) (err error) {
	checkEnable, ok := env.Property(CheckEnableProperty)
	if !ok || (NoCheck == checkEnable) {
		logger.Warnf("CheckWasConfigured() called but disabled. To enable this check, set property '%s' (environment variable %s) to yes",
			CheckEnableProperty, environ.PropertyEnvName(CheckEnableProperty))
		return
	}

	setting.Lock()
	defer setting.Unlock()

	if !setting.configured {
		err = blunder.NewError(blunder.NotConfiguredError, "max direct memory is not set.")
	}

	return
}
