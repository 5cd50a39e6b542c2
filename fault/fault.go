// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// InvalidError - configuration rejected before any lane starts
	InvalidError GenericError

	// ProcessError - runtime failure inside the engine
	ProcessError GenericError
)

// common errors - keep in alphabetic order
var (
	InvalidBatchSize       = InvalidError("batch size is invalid")
	InvalidDifficulty      = InvalidError("difficulty is invalid")
	InvalidHardening       = InvalidError("hardening iteration count is invalid")
	InvalidLaneCount       = InvalidError("lane count is invalid")
	InvalidNonceLimit      = InvalidError("nonce limit is invalid")
	InvalidNumericTarget   = InvalidError("numeric target is invalid")
	InvalidOrder           = InvalidError("nonce ordering is invalid")
	InvalidPartitionSpan   = InvalidError("partition span is invalid")
	InvalidRounds          = InvalidError("round count is invalid")
	MissingLogger          = InvalidError("logger is missing")
	MissingTarget          = InvalidError("target string is missing")
	AllLanesFailed         = ProcessError("all mining lanes failed")
	BatchBufferMismatch    = ProcessError("nonce and digest buffers differ in length")
	NonceSpaceExhausted    = ProcessError("nonce space exhausted at this difficulty")
	UnexpectedDigestLength = ProcessError("primitive returned wrong digest length")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// Error - the error interface methods
func (e InvalidError) Error() string { return string(e) }

// Error - the error interface method
func (e ProcessError) Error() string { return string(e) }

// IsErrInvalid - determine if a configuration error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrProcess - determine if a runtime error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
