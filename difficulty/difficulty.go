// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package difficulty - target checks for candidate digests
//
// Two encodings are supported: a count of leading zero bytes, and a
// full numeric big endian target.  A malformed difficulty is a
// construction time error; Meets itself is a pure total function.
package difficulty

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/excalibur-exs/tetrad/fault"
	"github.com/excalibur-exs/tetrad/tetrapow"
)

// Mode - difficulty encoding selector
type Mode int

// difficulty encodings
const (
	LeadingZeroBytes Mode = iota
	NumericTarget
)

// Difficulty - a validated, immutable difficulty target
type Difficulty struct {
	mode      Mode
	zeroBytes int
	target    *big.Int
}

// NewLeadingZeroBytes - difficulty as "first n digest bytes must be zero"
func NewLeadingZeroBytes(n int) (*Difficulty, error) {
	if n < 1 || n > tetrapow.Length {
		return nil, fault.InvalidDifficulty
	}
	return &Difficulty{
		mode:      LeadingZeroBytes,
		zeroBytes: n,
	}, nil
}

// NewNumericTarget - difficulty as "digest, big endian, must not exceed target"
func NewNumericTarget(target *big.Int) (*Difficulty, error) {
	if nil == target || target.Sign() <= 0 || target.BitLen() > 8*tetrapow.Length {
		return nil, fault.InvalidNumericTarget
	}
	t := new(big.Int)
	t.Set(target)
	return &Difficulty{
		mode:   NumericTarget,
		target: t,
	}, nil
}

// Parse - decode the CLI/config difficulty encoding
//
// a plain decimal integer selects leading zero bytes; a 0x prefixed
// hex value selects a numeric target
func Parse(s string) (*Difficulty, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return nil, fault.InvalidDifficulty
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		target, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return nil, fault.InvalidNumericTarget
		}
		return NewNumericTarget(target)
	}

	n, err := strconv.Atoi(s)
	if nil != err {
		return nil, fault.InvalidDifficulty
	}
	return NewLeadingZeroBytes(n)
}

// Meets - test a digest against the target
func (difficulty *Difficulty) Meets(digest tetrapow.Digest) bool {
	switch difficulty.mode {
	case LeadingZeroBytes:
		for i := 0; i < difficulty.zeroBytes; i += 1 {
			if 0 != digest[i] {
				return false
			}
		}
		return true
	case NumericTarget:
		return digest.Cmp(difficulty.target) <= 0
	}
	return false
}

// Mode - the encoding in use
func (difficulty *Difficulty) Mode() Mode {
	return difficulty.mode
}

// ZeroBytes - leading zero byte count, zero for numeric targets
func (difficulty *Difficulty) ZeroBytes() int {
	return difficulty.zeroBytes
}

// BigInt - copy of the numeric target, nil for leading zero mode
func (difficulty *Difficulty) BigInt() *big.Int {
	if nil == difficulty.target {
		return nil
	}
	return new(big.Int).Set(difficulty.target)
}

// String - for use by the fmt package (for %s)
func (difficulty *Difficulty) String() string {
	switch difficulty.mode {
	case LeadingZeroBytes:
		return fmt.Sprintf("leading-zero-bytes:%d", difficulty.zeroBytes)
	case NumericTarget:
		return fmt.Sprintf("numeric-target:0x%064x", difficulty.target)
	}
	return "invalid"
}
