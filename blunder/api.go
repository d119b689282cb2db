// Copyright (c) 2015-2021, NVIDIA CORPORATION.
// SPDX-License-Identifier: Apache-2.0

// Package blunder provides error-handling wrappers
//
// These wrappers allow callers to provide additional information in Go errors
// while still conforming to the Go error interface.
//
// This package provides APIs to add errno information to regular Go errors so that
// callers can tell the failure classes apart.
//
// This package is currently implemented on top of the ansel1/merry package:
//
//	https://github.com/ansel1/merry
//
// merry records a stacktrace with each error and lets any value be attached to it.
// The errno travels as such a value under the "errno" key.
package blunder

import (
	"fmt"

	"github.com/ansel1/merry"
	"golang.org/x/sys/unix"

	"github.com/NVIDIA/directmem/logger"
)

// LimitError values annotate errors produced while configuring or resolving
// the direct memory limit.
//
// Each value maps to a linux/POSIX errno as defined in errno.h.
type LimitError int

const (
	InvalidArgError     LimitError = LimitError(int(unix.EINVAL))  // Invalid argument
	PermDeniedError     LimitError = LimitError(int(unix.EACCES))  // Permission denied
	NoDataError         LimitError = LimitError(int(unix.ENODATA)) // No data available
	NotSupportedError   LimitError = LimitError(int(unix.ENOTSUP)) // Operation not supported
	OutOfRangeError     LimitError = LimitError(int(unix.ERANGE))  // Math result not representable
)

// Errors that map to constants already defined above
const (
	// NotConfiguredError is returned by the enforcement check when the limit was never set
	NotConfiguredError LimitError = PermDeniedError
	// ConfigError flags a malformed DirectMemory.* option
	ConfigError LimitError = InvalidArgError

	// Probe failures never leave package directmem; they are only logged
	ProbeUnavailableError LimitError = NoDataError
	ProbeSkippedError     LimitError = NotSupportedError
	ProbeMalformedError   LimitError = OutOfRangeError
)

// SuccessError is the value reported for a nil error
const SuccessError LimitError = 0

// Default errno values for success and failure
const successErrno = 0
const failureErrno = -1

const errnoKey = "errno"

// Value returns the int value for the specified LimitError constant
func (err LimitError) Value() int {
	return int(err)
}

func (err LimitError) String() string {
	switch err {
	case SuccessError:
		return "SuccessError"
	case InvalidArgError:
		return "InvalidArgError"
	case PermDeniedError:
		return "PermDeniedError"
	case NoDataError:
		return "NoDataError"
	case NotSupportedError:
		return "NotSupportedError"
	case OutOfRangeError:
		return "OutOfRangeError"
	}
	return fmt.Sprintf("LimitError(%d)", int(err))
}

// NewError creates a new merry/blunder.LimitError-annotated error using the given
// format string and arguments.
func NewError(errValue LimitError, format string, a ...interface{}) error {
	return merry.WrapSkipping(fmt.Errorf(format, a...), 1).WithValue(errnoKey, int(errValue))
}

// AddError is used to add LimitError detail to a Go error.
//
// A warning is logged if e already carried a different value; merry replaces
// the old value with the new one.
func AddError(e error, errValue LimitError) error {
	if e == nil {
		// The caller obviously intends to make this a non-nil error, so don't
		// silently hand back nil.
		return merry.New("regular error").WithValue(errnoKey, int(errValue))
	}

	prevValue := Errno(e)
	if prevValue != successErrno && prevValue != failureErrno && prevValue != int(errValue) {
		logger.Warnf("replacing error value %v with value %v for error %v", prevValue, int(errValue), e)
	}

	return merry.WrapSkipping(e, 1).WithValue(errnoKey, int(errValue))
}

// Errno extracts errno from the error, if it was previously wrapped.
// Otherwise a default value is returned.
func Errno(e error) int {
	if e == nil {
		return successErrno
	}

	// If the "errno" key/value was not present, merry.Value returns nil.
	var errno = failureErrno
	tmp := merry.Value(e, errnoKey)
	if tmp != nil {
		errno = tmp.(int)
	}

	return errno
}

func ErrorString(e error) string {
	if e == nil {
		return ""
	}

	errPlusVal := e.Error()

	tmp := merry.Value(e, errnoKey)
	if tmp != nil {
		errPlusVal = fmt.Sprintf("%s. Error Value: %v", errPlusVal, tmp.(int))
	}

	return errPlusVal
}

// Is checks if an error matches a particular LimitError
//
// The underlying errno is compared, so LimitErrors sharing an errno (ConfigError
// and InvalidArgError, for one) cannot be told apart.
func Is(e error, theError LimitError) bool {
	return Errno(e) == theError.Value()
}

// IsNot checks if an error is NOT a particular LimitError
func IsNot(e error, theError LimitError) bool {
	return Errno(e) != theError.Value()
}

// IsSuccess checks if an error is the success LimitError
func IsSuccess(e error) bool {
	return Errno(e) == successErrno
}
