// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package directmem

import (
	"github.com/NVIDIA/directmem/conf"
	"github.com/NVIDIA/directmem/environ"
)

// Limiter answers "how much direct memory may be allocated" by combining a
// Setting with a Detector.
type Limiter struct {
	setting  *Setting
	detector *Detector
}

func NewLimiter(setting *Setting, detector *Detector) (limiter *Limiter) {
	limiter = &Limiter{
		setting:  setting,
		detector: detector,
	}
	return
}

// NewLimiterFromConfMap builds a Setting and Detector from the [DirectMemory]
// section of confMap.
func NewLimiterFromConfMap(confMap conf.ConfMap, env environ.Reader) (limiter *Limiter, err error) {
	config, err := ParseConfMap(confMap)
	if nil != err {
		return
	}

	setting := NewSetting()

	err = config.Apply(setting)
	if nil != err {
		return
	}

	limiter = NewLimiter(setting, config.NewDetector(env))

	return
}

func (limiter *Limiter) Setting() *Setting {
	return limiter.setting
}

func (limiter *Limiter) Detector() *Detector {
	return limiter.detector
}

// MaxDirectMemory returns the limit in bytes.
//
// CheckWasConfigured() runs first and its error, if any, is returned. Otherwise an
// explicitly Set() value (0 included) wins over the detected one.
func (limiter *Limiter) MaxDirectMemory() (maxDirectMemory uint64, err error) {
	err = limiter.setting.CheckWasConfigured(limiter.detector.Env())
	if nil != err {
		return
	}

	configured := limiter.setting.Get()
	if configured >= 0 {
		maxDirectMemory = uint64(configured)
		return
	}

	maxDirectMemory = limiter.detector.Detect()

	return
}
