// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

package conf

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTestConfFile(t *testing.T, dir string, name string, contents string) (path string) {
	path = filepath.Join(dir, name)
	err := ioutil.WriteFile(path, []byte(contents), 0600)
	if nil != err {
		t.Fatalf("ioutil.WriteFile(%v) failed: %v", path, err)
	}
	return
}

func TestUpdateFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "TestConfFile_")
	if nil != err {
		t.Fatalf("ioutil.TempDir() failed: %v", err)
	}
	defer os.RemoveAll(dir)

	writeTestConfFile(t, dir, "logging.conf",
		"[Logging]\n"+
			"LogToConsole : true # A comment at the end of a line\n")

	mainPath := writeTestConfFile(t, dir, "main.conf",
		"# A comment on it's own line\n"+
			"[DirectMemory] ; A comment at the end of a line\n"+
			"MaxDirectMemory  : 512MB\n"+
			"KnownBadRuntimes = gccgo, tinygo\n"+
			"LaunchArgFlag =\n"+
			"\n"+
			".include ./logging.conf\n"+
			"[Properties]\n"+
			"directmem.max.check.enable : yes\n")

	confMap, err := MakeConfMapFromFile(mainPath)
	if nil != err {
		t.Fatalf("MakeConfMapFromFile(%v) failed: %v", mainPath, err)
	}

	byteSize, err := confMap.FetchOptionValueByteSize("DirectMemory", "MaxDirectMemory")
	if nil != err {
		t.Fatalf("FetchOptionValueByteSize() failed: %v", err)
	}
	if 512*1024*1024 != byteSize {
		t.Fatalf("FetchOptionValueByteSize() returned %v", byteSize)
	}

	runtimes, err := confMap.FetchOptionValueStringSlice("DirectMemory", "KnownBadRuntimes")
	if nil != err {
		t.Fatalf("FetchOptionValueStringSlice() failed: %v", err)
	}
	if !reflect.DeepEqual([]string{"gccgo", "tinygo"}, runtimes) {
		t.Fatalf("FetchOptionValueStringSlice() returned %v", runtimes)
	}

	empty, err := confMap.FetchOptionValueStringSlice("DirectMemory", "LaunchArgFlag")
	if nil != err || 0 != len(empty) {
		t.Fatalf("FetchOptionValueStringSlice() of empty option returned %v, %v", empty, err)
	}
	_, err = confMap.FetchOptionValueString("DirectMemory", "LaunchArgFlag")
	if nil == err {
		t.Fatalf("FetchOptionValueString() of empty option should have failed")
	}

	logToConsole, err := confMap.FetchOptionValueBool("Logging", "LogToConsole")
	if nil != err || !logToConsole {
		t.Fatalf("FetchOptionValueBool() returned %v, %v", logToConsole, err)
	}

	enable, err := confMap.FetchOptionValueString("Properties", "directmem.max.check.enable")
	if nil != err || "yes" != enable {
		t.Fatalf("FetchOptionValueString() returned %v, %v", enable, err)
	}
}

func TestUpdateFromFileErrors(t *testing.T) {
	dir, err := ioutil.TempDir("", "TestConfFile_")
	if nil != err {
		t.Fatalf("ioutil.TempDir() failed: %v", err)
	}
	defer os.RemoveAll(dir)

	noSection := writeTestConfFile(t, dir, "nosection.conf", "Option : Value\n")
	noNewline := writeTestConfFile(t, dir, "nonewline.conf", "[Section]\nOption : Value")
	malformed := writeTestConfFile(t, dir, "malformed.conf", "[Section]\nOption Value = \"\n")

	for _, path := range []string{noSection, noNewline, malformed, filepath.Join(dir, "missing.conf")} {
		_, err = MakeConfMapFromFile(path)
		if nil == err {
			t.Fatalf("MakeConfMapFromFile(%v) should have failed", path)
		}
	}
}

func TestFetchTypes(t *testing.T) {
	assert := assert.New(t)

	confMap, err := MakeConfMapFromStrings([]string{
		"DirectMemory.MaxDirectMemory=2GB",
		"DirectMemory.Count=17",
		"DirectMemory.Flag=off",
		"DirectMemory.Bogus=maybe",
		"DirectMemory.Multi=a,b",
		"DirectMemory.NotASize=12parsecs",
	})
	assert.Nil(err)

	byteSize, err := confMap.FetchOptionValueByteSize("DirectMemory", "MaxDirectMemory")
	assert.Nil(err)
	assert.Equal(uint64(2*1024*1024*1024), byteSize)

	count, err := confMap.FetchOptionValueUint64("DirectMemory", "Count")
	assert.Nil(err)
	assert.Equal(uint64(17), count)

	flag, err := confMap.FetchOptionValueBool("DirectMemory", "Flag")
	assert.Nil(err)
	assert.False(flag)

	_, err = confMap.FetchOptionValueBool("DirectMemory", "Bogus")
	assert.NotNil(err)

	_, err = confMap.FetchOptionValueString("DirectMemory", "Multi")
	assert.NotNil(err)

	_, err = confMap.FetchOptionValueByteSize("DirectMemory", "NotASize")
	assert.NotNil(err)

	_, err = confMap.FetchOptionValueString("DirectMemory", "Missing")
	assert.NotNil(err)

	_, err = confMap.FetchOptionValueString("Missing", "Missing")
	assert.NotNil(err)

	_, err = MakeConfMapFromStrings([]string{"NoDotHere=1"})
	assert.NotNil(err)

	_, err = MakeConfMapFromStrings([]string{"  "})
	assert.NotNil(err)

	// Later updates replace earlier ones
	err = confMap.UpdateFromString("DirectMemory.Count : 18")
	assert.Nil(err)
	count, err = confMap.FetchOptionValueUint64("DirectMemory", "Count")
	assert.Nil(err)
	assert.Equal(uint64(18), count)
}
