// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package directmem

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/NVIDIA/directmem/blunder"
	"github.com/NVIDIA/directmem/environ"
	"github.com/NVIDIA/directmem/platform"
)

// RuntimeProbe reports the memory limit the Go runtime was given (GOMEMLIMIT).
//
// Runtimes whose name starts with one of KnownBadRuntimes (compared without
// regard to case) are skipped since they do not report it accurately.
type RuntimeProbe struct {
	KnownBadRuntimes []string
	memLimit         func() (limit uint64, ok bool)
}

func NewRuntimeProbe(knownBadRuntimes []string) (runtimeProbe *RuntimeProbe) {
	runtimeProbe = &RuntimeProbe{
		KnownBadRuntimes: knownBadRuntimes,
		memLimit:         platform.GoMemLimit,
	}
	return
}

func (runtimeProbe *RuntimeProbe) Name() string {
	return "runtime"
}

func (runtimeProbe *RuntimeProbe) Probe(env environ.Reader) (maxDirectMemory uint64, err error) {
	runtimeName := strings.ToLower(env.RuntimeName())

	for _, knownBadRuntime := range runtimeProbe.KnownBadRuntimes {
		if strings.HasPrefix(runtimeName, strings.ToLower(knownBadRuntime)) {
			err = blunder.NewError(blunder.ProbeSkippedError, "runtime %q does not report its memory limit accurately", env.RuntimeName())
			return
		}
	}

	maxDirectMemory, ok := runtimeProbe.memLimit()
	if !ok {
		err = blunder.NewError(blunder.ProbeUnavailableError, "runtime %q has no memory limit set", env.RuntimeName())
	}

	return
}

// LaunchArgProbe scans the launch arguments, last to first, for one of the form
//
//	<Flag>=<decimal>[kKmMgG]
//
// optionally surrounded by whitespace. The suffix multiplies by 1024, 1024^2, or 1024^3.
type LaunchArgProbe struct {
	Flag     string
	argMatch *regexp.Regexp
}

func NewLaunchArgProbe(flag string) (launchArgProbe *LaunchArgProbe) {
	launchArgProbe = &LaunchArgProbe{
		Flag:     flag,
		argMatch: regexp.MustCompile(`^\s*` + regexp.QuoteMeta(flag) + `=([0-9]+)([kKmMgG]?)\s*$`),
	}
	return
}

func (launchArgProbe *LaunchArgProbe) Name() string {
	return "launch argument " + launchArgProbe.Flag
}

func (launchArgProbe *LaunchArgProbe) Probe(env environ.Reader) (maxDirectMemory uint64, err error) {
	args := env.Args()

	// When a flag is repeated the last one is the one in effect
	for i := len(args) - 1; i >= 0; i-- {
		match := launchArgProbe.argMatch.FindStringSubmatch(args[i])
		if nil == match {
			continue
		}

		maxDirectMemory, err = parseLaunchArgSize(match[1], match[2])
		if nil != err {
			err = blunder.AddError(err, blunder.ProbeMalformedError)
		}
		return
	}

	err = blunder.NewError(blunder.ProbeUnavailableError, "no %s launch argument", launchArgProbe.Flag)

	return
}

// parseLaunchArgSize returns digits scaled by unit. The result must fit in an int64.
func parseLaunchArgSize(digits string, unit string) (size uint64, err error) {
	var (
		multiplier int64
		value      int64
	)

	value, err = strconv.ParseInt(digits, 10, 64)
	if nil != err {
		return
	}

	switch unit {
	case "k", "K":
		multiplier = 1024
	case "m", "M":
		multiplier = 1024 * 1024
	case "g", "G":
		multiplier = 1024 * 1024 * 1024
	default:
		multiplier = 1
	}

	if value > math.MaxInt64/multiplier {
		err = blunder.NewError(blunder.ProbeMalformedError, "%s%s overflows", digits, unit)
		return
	}

	size = uint64(value * multiplier)

	return
}

// AddressableMemoryFallback reports the memory the process could address at all
// (see platform.AddressableMemory). It is a heuristic stand-in for a real limit.
type AddressableMemoryFallback struct {
	UseContainerLimit bool
	addressable       func(useContainerLimit bool) (memSize uint64, err error)
}

func NewAddressableMemoryFallback(useContainerLimit bool) (fallback *AddressableMemoryFallback) {
	fallback = &AddressableMemoryFallback{
		UseContainerLimit: useContainerLimit,
		addressable:       platform.AddressableMemory,
	}
	return
}

func (fallback *AddressableMemoryFallback) Name() string {
	return "addressable memory"
}

func (fallback *AddressableMemoryFallback) Probe(env environ.Reader) (maxDirectMemory uint64, err error) {
	maxDirectMemory, err = fallback.addressable(fallback.UseContainerLimit)
	if nil != err {
		err = blunder.AddError(err, blunder.ProbeUnavailableError)
	}
	return
}
