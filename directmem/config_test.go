// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package directmem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/directmem/blunder"
	"github.com/NVIDIA/directmem/conf"
)

func parseConfStrings(t *testing.T, confStrings ...string) (config Config, err error) {
	confMap, err := conf.MakeConfMapFromStrings(confStrings)
	if nil != err {
		t.Fatalf("conf.MakeConfMapFromStrings() failed: %v", err)
	}
	config, err = ParseConfMap(confMap)
	return
}

func TestParseConfMapDefaults(t *testing.T) {
	assert := assert.New(t)

	testSetup(t)
	defer testTeardown(t)

	config, err := ParseConfMap(conf.MakeConfMap())
	assert.Nil(err)
	assert.Equal(DefaultConfig(), config)
	assert.Equal(MaxDirectMemoryNotSet, config.MaxDirectMemory)
	assert.Equal(DefaultLaunchArgFlag, config.LaunchArgFlag)
	assert.Equal([]string{"gccgo", "tinygo"}, config.KnownBadRuntimes)
	assert.True(config.FallbackUseContainerLimit)
}

func TestParseConfMap(t *testing.T) {
	assert := assert.New(t)

	testSetup(t)
	defer testTeardown(t)

	config, err := parseConfStrings(t,
		"DirectMemory.MaxDirectMemory=512MB",
		"DirectMemory.LaunchArgFlag=-Dio.netty.maxDirectMemory",
		"DirectMemory.KnownBadRuntimes=",
		"DirectMemory.FallbackUseContainerLimit=no",
	)
	assert.Nil(err)
	assert.Equal(int64(512*1024*1024), config.MaxDirectMemory)
	assert.Equal("-Dio.netty.maxDirectMemory", config.LaunchArgFlag)
	assert.Equal([]string{}, config.KnownBadRuntimes)
	assert.False(config.FallbackUseContainerLimit)

	config, err = parseConfStrings(t, "DirectMemory.KnownBadRuntimes=gccgo, llgo,tinygo")
	assert.Nil(err)
	assert.Equal([]string{"gccgo", "llgo", "tinygo"}, config.KnownBadRuntimes)

	config, err = parseConfStrings(t, "DirectMemory.MaxDirectMemory=Default")
	assert.Nil(err)
	assert.Equal(MaxDirectMemoryUseDefault, config.MaxDirectMemory)

	config, err = parseConfStrings(t, "DirectMemory.MaxDirectMemory=0")
	assert.Nil(err)
	assert.Equal(int64(0), config.MaxDirectMemory)
}

func TestParseConfMapErrors(t *testing.T) {
	assert := assert.New(t)

	testSetup(t)
	defer testTeardown(t)

	for _, confString := range []string{
		"DirectMemory.MaxDirectMemory=12parsecs",
		"DirectMemory.MaxDirectMemory=1g,2g",
		"DirectMemory.MaxDirectMemory=",
		"DirectMemory.LaunchArgFlag=",
		"DirectMemory.FallbackUseContainerLimit=sometimes",
	} {
		_, err := parseConfStrings(t, confString)
		assert.True(blunder.Is(err, blunder.ConfigError), confString)
	}
}

func TestApply(t *testing.T) {
	assert := assert.New(t)

	testSetup(t)
	defer testTeardown(t)

	setting := NewSetting()
	assert.Nil(DefaultConfig().Apply(setting))
	assert.Equal(MaxDirectMemoryNotSet, setting.Get())

	config := DefaultConfig()
	config.MaxDirectMemory = 4096
	assert.Nil(config.Apply(setting))
	assert.Equal(int64(4096), setting.Get())

	config.MaxDirectMemory = MaxDirectMemoryUseDefault
	assert.Nil(config.Apply(setting))
	assert.Equal(MaxDirectMemoryUseDefault, setting.Get())

	config.MaxDirectMemory = -7
	assert.True(blunder.Is(config.Apply(setting), blunder.InvalidArgError))
	assert.Equal(MaxDirectMemoryUseDefault, setting.Get())
}
