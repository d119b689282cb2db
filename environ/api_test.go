// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package environ

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/directmem/conf"
)

const testPropertyName = "directmem.test.property"

func TestPropertyEnvName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("DIRECTMEM_MAX_CHECK_ENABLE", PropertyEnvName("directmem.max.check.enable"))
	assert.Equal("A_B_C", PropertyEnvName("a-b.c"))
}

func TestProcessProperties(t *testing.T) {
	assert := assert.New(t)

	envName := PropertyEnvName(testPropertyName)
	os.Unsetenv(envName)
	defer os.Unsetenv(envName)

	processReader := Process()

	_, ok := processReader.Property(testPropertyName)
	assert.False(ok)

	// Environment is read on every lookup
	os.Setenv(envName, "from-env")
	value, ok := processReader.Property(testPropertyName)
	assert.True(ok)
	assert.Equal("from-env", value)

	processReader.SetProperty(testPropertyName, "explicit")
	value, ok = processReader.Property(testPropertyName)
	assert.True(ok)
	assert.Equal("explicit", value)

	processReader.ClearProperty(testPropertyName)
	value, ok = processReader.Property(testPropertyName)
	assert.True(ok)
	assert.Equal("from-env", value)

	confMap, err := conf.MakeConfMapFromStrings([]string{
		"Properties." + testPropertyName + "=from-conf",
		"Properties.directmem.test.list=a,b",
	})
	assert.Nil(err)

	processReader.UpdateFromConfMap(confMap)
	value, _ = processReader.Property(testPropertyName)
	assert.Equal("from-conf", value)
	value, _ = processReader.Property("directmem.test.list")
	assert.Equal("a,b", value)

	processReader.UpdateFromConfMap(conf.MakeConfMap())
	value, _ = processReader.Property(testPropertyName)
	assert.Equal("from-conf", value)
}

func TestProcessArgs(t *testing.T) {
	assert := assert.New(t)

	processReader := Process()
	assert.Equal(os.Args, processReader.Args())
	assert.True(strings.HasPrefix(processReader.RuntimeName(), RuntimeName()))

	// The returned slice is a copy
	args := processReader.Args()
	if len(args) > 0 {
		args[0] = "changed"
		assert.Equal(os.Args[0], processReader.Args()[0])
	}
}

func TestForPID(t *testing.T) {
	processReader, err := ForPID(os.Getpid())
	if nil != err {
		t.Skipf("launch arguments of other processes not available: %v", err)
	}

	assert.Equal(t, os.Args, processReader.Args())

	_, err = ForPID(-1)
	assert.NotNil(t, err)
}

func TestSplitCmdline(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"java", "-XX:MaxDirectMemorySize=2g", "Main"},
		splitCmdline([]byte("java\x00-XX:MaxDirectMemorySize=2g\x00Main\x00")))
	assert.Equal([]string{}, splitCmdline([]byte{}))
	assert.Equal([]string{"a", "", "b"}, splitCmdline([]byte("a\x00\x00b\x00")))
}

func TestStatic(t *testing.T) {
	assert := assert.New(t)

	var reader Reader = Static{
		Argv:       []string{"prog", "-flag"},
		Properties: map[string]string{"p": "v"},
		Runtime:    "gccgo go1.18",
	}

	assert.Equal([]string{"prog", "-flag"}, reader.Args())
	value, ok := reader.Property("p")
	assert.True(ok)
	assert.Equal("v", value)
	_, ok = reader.Property("q")
	assert.False(ok)
	assert.Equal("gccgo go1.18", reader.RuntimeName())

	// The zero value has no properties
	_, ok = Static{}.Property("p")
	assert.False(ok)
}
