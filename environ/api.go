// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package environ supplies the process facts the direct memory limit is derived
// from: launch arguments, named properties, and the identity of the runtime.
//
// Properties are the equivalent of system properties: a name such as
// "directmem.max.check.enable" is looked up first among properties set on the
// Reader (e.g. from the [Properties] section of a .conf file) and then in the
// process environment as DIRECTMEM_MAX_CHECK_ENABLE. Nothing is cached; every
// lookup sees the current environment.
package environ

import (
	"runtime"
	"strings"
)

// Reader is the read-only view of the process environment.
type Reader interface {
	// Args returns the launch arguments in order, program name first.
	Args() []string
	// Property returns the value of the named property and whether it was set.
	Property(name string) (value string, ok bool)
	// RuntimeName identifies the runtime executing the process.
	RuntimeName() string
}

// PropertiesSection is the .conf section whose options become properties.
const PropertiesSection = "Properties"

// PropertyEnvName returns the environment variable consulted for a property name.
func PropertyEnvName(name string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(name))
}

// RuntimeName returns the identity of the Go toolchain this binary was built by,
// e.g. "gc go1.22.3" or "gccgo go1.18 gccgo (GCC) 12.2.0".
func RuntimeName() string {
	return runtime.Compiler + " " + runtime.Version()
}

// Static is a Reader with fixed contents.
type Static struct {
	Argv       []string
	Properties map[string]string
	Runtime    string
}

func (s Static) Args() []string {
	return s.Argv
}

func (s Static) Property(name string) (value string, ok bool) {
	value, ok = s.Properties[name]
	return
}

func (s Static) RuntimeName() string {
	return s.Runtime
}
