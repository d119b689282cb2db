// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package environ

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"sync"

	"github.com/NVIDIA/directmem/conf"
	"github.com/NVIDIA/directmem/logger"
)

// ProcessReader reads the environment of a live process.
type ProcessReader struct {
	sync.RWMutex
	args       []string
	properties map[string]string // set explicitly; take precedence over the environment
}

// Process returns a Reader for the calling process.
func Process() (processReader *ProcessReader) {
	processReader = &ProcessReader{
		args:       os.Args,
		properties: make(map[string]string),
	}
	return
}

// ForPID returns a Reader whose launch arguments are those of process pid as
// recorded in /proc/<pid>/cmdline. Properties still come from the calling process.
func ForPID(pid int) (processReader *ProcessReader, err error) {
	cmdlinePath := fmt.Sprintf("/proc/%d/cmdline", pid)

	cmdline, err := ioutil.ReadFile(cmdlinePath)
	if nil != err {
		err = fmt.Errorf("cannot read launch arguments of pid %d: %v", pid, err)
		return
	}

	processReader = Process()
	processReader.args = splitCmdline(cmdline)

	return
}

// splitCmdline splits the NUL separated (and NUL terminated) contents of a cmdline file
func splitCmdline(cmdline []byte) (args []string) {
	args = strings.Split(strings.TrimRight(string(cmdline), "\x00"), "\x00")
	if (1 == len(args)) && ("" == args[0]) {
		args = []string{}
	}
	return
}

func (processReader *ProcessReader) Args() (args []string) {
	args = make([]string, len(processReader.args))
	copy(args, processReader.args)
	return
}

func (processReader *ProcessReader) Property(name string) (value string, ok bool) {
	processReader.RLock()
	value, ok = processReader.properties[name]
	processReader.RUnlock()
	if ok {
		return
	}

	envName := PropertyEnvName(name)
	value, ok = os.LookupEnv(envName)
	if ok {
		logger.Tracef("property %v taken from environment variable %v=%v", name, envName, value)
	}
	return
}

func (processReader *ProcessReader) RuntimeName() string {
	return RuntimeName()
}

// SetProperty sets a property, hiding any environment variable of the same name
func (processReader *ProcessReader) SetProperty(name string, value string) {
	processReader.Lock()
	processReader.properties[name] = value
	processReader.Unlock()
}

// ClearProperty removes a property set by SetProperty or UpdateFromConfMap
func (processReader *ProcessReader) ClearProperty(name string) {
	processReader.Lock()
	delete(processReader.properties, name)
	processReader.Unlock()
}

// UpdateFromConfMap sets a property for each option in the [Properties] section of confMap.
// Multi-valued options are joined with ",".
func (processReader *ProcessReader) UpdateFromConfMap(confMap conf.ConfMap) {
	section, ok := confMap[PropertiesSection]
	if !ok {
		return
	}

	processReader.Lock()
	for name, values := range section {
		processReader.properties[name] = strings.Join(values, ",")
	}
	processReader.Unlock()
}
