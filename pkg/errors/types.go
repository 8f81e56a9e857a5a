// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import "strconv"

// Status is an error status code.
type Status uint64

const (
	// OK means nothing went wrong.
	OK Status = 200

	// BadRequest means the caller supplied something that cannot be used.
	BadRequest Status = 400

	// NotFound means a requested account, transaction or record does not exist.
	NotFound Status = 404

	// Timeout means an operation did not complete before its deadline.
	Timeout Status = 408

	// ValidationError means an operation is missing a required field or
	// violates a structural constraint.
	ValidationError Status = 412

	// RangeError means a value does not fit the bit width it is being written
	// with.
	RangeError Status = 416

	// Truncated means the input ran out of bits, references or entries.
	Truncated Status = 420

	// InvalidTag means a tag, prefix, opcode or magic value was not
	// recognized.
	InvalidTag Status = 421

	// TypeMismatch means a value had a different type than expected.
	TypeMismatch Status = 422

	// UnknownError means the cause of the error is unknown.
	UnknownError Status = 500

	// Rejected means the remote side accepted the request but refused to
	// execute it.
	Rejected Status = 502
)

var statusNames = map[Status]string{
	OK:              "ok",
	BadRequest:      "bad request",
	NotFound:        "not found",
	Timeout:         "timeout",
	ValidationError: "validation error",
	RangeError:      "range error",
	Truncated:       "truncated",
	InvalidTag:      "invalid tag",
	TypeMismatch:    "type mismatch",
	UnknownError:    "unknown error",
	Rejected:        "rejected",
}

// String returns the name of the status.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "status(" + strconv.FormatUint(uint64(s), 10) + ")"
}

// CallSite is a location in the source that created or wrapped an error.
type CallSite struct {
	FuncName string
	File     string
	Line     int64
}

// Error is an error with a status code, an optional cause, and the call sites
// it passed through.
type Error struct {
	Message   string
	Code      Status
	Cause     *Error
	CallStack []*CallSite
}
