// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package directmem

import (
	"math"
	"strings"

	"github.com/NVIDIA/directmem/blunder"
	"github.com/NVIDIA/directmem/conf"
	"github.com/NVIDIA/directmem/environ"
)

// ConfSection is the .conf section read by ParseConfMap
const ConfSection = "DirectMemory"

// DefaultKnownBadRuntimes are runtimes whose reported memory limit is ignored
var DefaultKnownBadRuntimes = []string{"gccgo", "tinygo"}

// Config captures the [DirectMemory] section of a ConfMap:
//
//	[DirectMemory]
//	MaxDirectMemory           : 512MB      # or "default"; omit to leave the limit unset
//	LaunchArgFlag             : -XX:MaxDirectMemorySize
//	KnownBadRuntimes          : gccgo, tinygo
//	FallbackUseContainerLimit : true
type Config struct {
	MaxDirectMemory           int64 // MaxDirectMemoryNotSet, MaxDirectMemoryUseDefault, or a byte count
	LaunchArgFlag             string
	KnownBadRuntimes          []string
	FallbackUseContainerLimit bool
}

// DefaultConfig returns the Config used when a ConfMap has no [DirectMemory] section
func DefaultConfig() (config Config) {
	config = Config{
		MaxDirectMemory:           MaxDirectMemoryNotSet,
		LaunchArgFlag:             DefaultLaunchArgFlag,
		KnownBadRuntimes:          append([]string{}, DefaultKnownBadRuntimes...),
		FallbackUseContainerLimit: true,
	}
	return
}

func optionPresent(confMap conf.ConfMap, optionName string) (present bool) {
	section, ok := confMap[ConfSection]
	if ok {
		_, present = section[optionName]
	}
	return
}

// ParseConfMap returns DefaultConfig() updated by whatever options confMap supplies.
// A malformed option fails with blunder.ConfigError.
func ParseConfMap(confMap conf.ConfMap) (config Config, err error) {
	config = DefaultConfig()

	if optionPresent(confMap, "MaxDirectMemory") {
		var (
			maxDirectMemory       uint64
			maxDirectMemoryString string
		)

		maxDirectMemoryString, err = confMap.FetchOptionValueString(ConfSection, "MaxDirectMemory")
		if nil != err {
			err = blunder.AddError(err, blunder.ConfigError)
			return
		}

		if "default" == strings.ToLower(maxDirectMemoryString) {
			config.MaxDirectMemory = MaxDirectMemoryUseDefault
		} else {
			maxDirectMemory, err = confMap.FetchOptionValueByteSize(ConfSection, "MaxDirectMemory")
			if nil != err {
				err = blunder.AddError(err, blunder.ConfigError)
				return
			}
			if maxDirectMemory > math.MaxInt64 {
				err = blunder.NewError(blunder.ConfigError, "[%s]MaxDirectMemory (%s) is too large", ConfSection, maxDirectMemoryString)
				return
			}
			config.MaxDirectMemory = int64(maxDirectMemory)
		}
	}

	if optionPresent(confMap, "LaunchArgFlag") {
		config.LaunchArgFlag, err = confMap.FetchOptionValueString(ConfSection, "LaunchArgFlag")
		if nil != err {
			err = blunder.AddError(err, blunder.ConfigError)
			return
		}
	}

	if optionPresent(confMap, "KnownBadRuntimes") {
		// An empty list is legal: every runtime is trusted
		config.KnownBadRuntimes, err = confMap.FetchOptionValueStringSlice(ConfSection, "KnownBadRuntimes")
		if nil != err {
			err = blunder.AddError(err, blunder.ConfigError)
			return
		}
	}

	if optionPresent(confMap, "FallbackUseContainerLimit") {
		config.FallbackUseContainerLimit, err = confMap.FetchOptionValueBool(ConfSection, "FallbackUseContainerLimit")
		if nil != err {
			err = blunder.AddError(err, blunder.ConfigError)
			return
		}
	}

	return
}

// Apply stores config.MaxDirectMemory in setting. A Config leaving the limit
// unset does not touch setting.
func (config Config) Apply(setting *Setting) (err error) {
	switch config.MaxDirectMemory {
	case MaxDirectMemoryNotSet:
		// Nothing configured
	case MaxDirectMemoryUseDefault:
		setting.SetUseDefault()
	default:
		err = setting.Set(config.MaxDirectMemory)
	}
	return
}

// NewDetector returns a Detector trying the runtime-reported limit, then the
// launch arguments, then falling back to the addressable memory.
func (config Config) NewDetector(env environ.Reader) (detector *Detector) {
	detector = NewDetector(env,
		NewAddressableMemoryFallback(config.FallbackUseContainerLimit),
		NewRuntimeProbe(config.KnownBadRuntimes),
		NewLaunchArgProbe(config.LaunchArgFlag))
	return
}
