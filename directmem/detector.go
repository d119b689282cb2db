// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package directmem

import (
	"github.com/NVIDIA/directmem/blunder"
	"github.com/NVIDIA/directmem/environ"
	"github.com/NVIDIA/directmem/logger"
)

// lastResortMaxDirectMemory is returned should even the fallback come up empty
const lastResortMaxDirectMemory = uint64(64 << 20)

// Probe is one way of finding out the direct memory limit.
//
// A Probe returns either a limit > 0 and a nil error, or an error annotated with
// one of the blunder.Probe*Error values describing why it had nothing to offer.
type Probe interface {
	Name() string
	Probe(env environ.Reader) (maxDirectMemory uint64, err error)
}

// Detector derives the direct memory limit from the process environment.
//
// Nothing is cached: every Detect() consults the probes again. A Detector may be
// used by any number of goroutines at once.
type Detector struct {
	env      environ.Reader
	probes   []Probe
	fallback Probe
}

// NewDetector returns a Detector trying probes in the order given and using
// fallback when none of them yields a limit.
func NewDetector(env environ.Reader, fallback Probe, probes ...Probe) (detector *Detector) {
	detector = &Detector{
		env:      env,
		probes:   probes,
		fallback: fallback,
	}
	return
}

// Env returns the environment the Detector probes
func (detector *Detector) Env() environ.Reader {
	return detector.env
}

// Detect returns the direct memory limit in bytes. The result is always > 0.
//
// Exactly one line is logged at info level reporting the result; a result from
// the fallback is qualified with "(maybe)".
func (detector *Detector) Detect() (maxDirectMemory uint64) {
	var (
		err error
	)

	for _, probe := range detector.probes {
		maxDirectMemory, err = runProbe(probe, detector.env)
		if nil == err {
			logger.Infof("maxDirectMemory: %d bytes", maxDirectMemory)
			return
		}
		logger.DebugfIDWithError(logger.DbgInternal, err, "probe %s found no limit", probe.Name())
	}

	maxDirectMemory, err = runProbe(detector.fallback, detector.env)
	if nil != err {
		logger.DebugfIDWithError(logger.DbgInternal, err, "fallback %s found no limit", detector.fallback.Name())
		maxDirectMemory = lastResortMaxDirectMemory
	}

	logger.Infof("maxDirectMemory: %d bytes (maybe)", maxDirectMemory)

	return
}

// runProbe calls probe.Probe() turning a panic or a zero limit into an error
func runProbe(probe Probe, env environ.Reader) (maxDirectMemory uint64, err error) {
	defer func() {
		if r := recover(); nil != r {
			maxDirectMemory = 0
			err = blunder.NewError(blunder.ProbeUnavailableError, "probe %s panicked: %v", probe.Name(), r)
		}
	}()

	maxDirectMemory, err = probe.Probe(env)
	if (nil == err) && (0 == maxDirectMemory) {
		err = blunder.NewError(blunder.ProbeUnavailableError, "probe %s reported a limit of 0", probe.Name())
	}
	if nil != err {
		maxDirectMemory = 0
	}

	return
}
