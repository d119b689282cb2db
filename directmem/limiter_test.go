// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package directmem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/directmem/blunder"
	"github.com/NVIDIA/directmem/conf"
	"github.com/NVIDIA/directmem/environ"
)

func TestLimiter(t *testing.T) {
	assert := assert.New(t)

	logTarget := testSetup(t)
	defer testTeardown(t)

	env := checkEnabledEnv()
	setting := NewSetting()
	detected := &fixedProbe{maxDirectMemory: 8192}
	limiter := NewLimiter(setting, NewDetector(env, &fixedProbe{maxDirectMemory: 1}, detected))

	assert.Equal(setting, limiter.Setting())

	_, err := limiter.MaxDirectMemory()
	assert.True(blunder.Is(err, blunder.NotConfiguredError))
	assert.Equal(0, detected.calls)

	setting.SetUseDefault()
	maxDirectMemory, err := limiter.MaxDirectMemory()
	assert.Nil(err)
	assert.Equal(uint64(8192), maxDirectMemory)
	assert.Equal(1, detected.calls)
	assert.Contains(logTarget.LogBuf.LogEntries[0], "maxDirectMemory: 8192 bytes")

	// An explicit 0 is honored and skips detection
	assert.Nil(setting.Set(0))
	maxDirectMemory, err = limiter.MaxDirectMemory()
	assert.Nil(err)
	assert.Equal(uint64(0), maxDirectMemory)
	assert.Equal(1, detected.calls)

	assert.Nil(setting.Set(1 << 20))
	maxDirectMemory, err = limiter.MaxDirectMemory()
	assert.Nil(err)
	assert.Equal(uint64(1<<20), maxDirectMemory)
}

func TestLimiterCheckDisabled(t *testing.T) {
	assert := assert.New(t)

	logTarget := testSetup(t)
	defer testTeardown(t)

	limiter := NewLimiter(NewSetting(), NewDetector(environ.Static{}, &fixedProbe{maxDirectMemory: 300}))

	maxDirectMemory, err := limiter.MaxDirectMemory()
	assert.Nil(err)
	assert.Equal(uint64(300), maxDirectMemory)
	assert.Equal(2, logTarget.LogBuf.TotalEntries)
	assert.Contains(logTarget.LogBuf.LogEntries[1], "level=warning")
	assert.Contains(logTarget.LogBuf.LogEntries[0], "maxDirectMemory: 300 bytes (maybe)")
}

func TestNewLimiterFromConfMap(t *testing.T) {
	assert := assert.New(t)

	testSetup(t)
	defer testTeardown(t)

	confMap, err := conf.MakeConfMapFromStrings([]string{
		"DirectMemory.LaunchArgFlag=-Dmaxdirect",
	})
	assert.Nil(err)

	env := environ.Static{
		Argv:       []string{"prog", "-Dmaxdirect=6m"},
		Properties: map[string]string{CheckEnableProperty: "on"},
		Runtime:    "tinygo 0.31",
	}

	limiter, err := NewLimiterFromConfMap(confMap, env)
	assert.Nil(err)
	_, err = limiter.MaxDirectMemory()
	assert.True(blunder.Is(err, blunder.NotConfiguredError))

	err = confMap.UpdateFromString("DirectMemory.MaxDirectMemory=default")
	assert.Nil(err)
	limiter, err = NewLimiterFromConfMap(confMap, env)
	assert.Nil(err)
	maxDirectMemory, err := limiter.MaxDirectMemory()
	assert.Nil(err)
	assert.Equal(uint64(6*1024*1024), maxDirectMemory)

	err = confMap.UpdateFromString("DirectMemory.MaxDirectMemory=2g")
	assert.Nil(err)
	limiter, err = NewLimiterFromConfMap(confMap, env)
	assert.Nil(err)
	maxDirectMemory, err = limiter.MaxDirectMemory()
	assert.Nil(err)
	assert.Equal(uint64(2*1024*1024*1024), maxDirectMemory)

	err = confMap.UpdateFromString("DirectMemory.MaxDirectMemory=12parsecs")
	assert.Nil(err)
	_, err = NewLimiterFromConfMap(confMap, env)
	assert.True(blunder.Is(err, blunder.ConfigError))
}
