// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package utils provides call stack helpers shared by the logger and blunder packages.
package utils

import (
	"bytes"
	"regexp"
	"runtime"
	"strconv"
)

var (
	fnNameRE   = regexp.MustCompile(`[^\/]*$`) // strips the module path
	pkgPartRE  = regexp.MustCompile(`^[^.]*`)  // beginning of string to first "."
	funcPartRE = regexp.MustCompile(`[^.]*$`)  // last "." to end of string
)

// GetGID returns the id of the calling goroutine.
//
// Logging the goroutine makes it possible to match up concurrent callers of
// the override setting when reading a log.
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// getAFnName returns a string containing the package and function level frames up the stack
func getAFnName(level int) string {
	// Add one level to skip this function
	pc, _, _, ok := runtime.Caller(level + 1)
	if !ok {
		return ""
	}
	functionObject := runtime.FuncForPC(pc)
	if nil == functionObject {
		return ""
	}
	return fnNameRE.FindString(functionObject.Name())
}

// GetFuncPackage returns separate strings containing calling function and package
// along with the goroutine id
func GetFuncPackage(level int) (fn string, pkg string, gid uint64) {
	funcPkg := getAFnName(level + 1)

	pkg = pkgPartRE.FindString(funcPkg)
	fn = funcPartRE.FindString(funcPkg)
	gid = GetGID()

	return
}
