// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tetrapow

import (
	"encoding/hex"
	"math/big"

	"github.com/excalibur-exs/tetrad/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - type for a digest
// stored and printed as big endian hex value
type Digest [Length]byte

// Cmp - compare the digest, as a big endian integer, against a target
func (digest Digest) Cmp(target *big.Int) int {
	result := new(big.Int)
	return result.SetBytes(digest[:]).Cmp(target)
}

// String - convert a binary digest to a hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to a hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<TetraPoW:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(digest)))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.UnexpectedDigestLength
	}
	copy(digest[:], buffer)
	return nil
}

// DigestFromBytes - convert and validate a binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if Length != len(buffer) {
		return fault.UnexpectedDigestLength
	}
	copy(digest[:], buffer)
	return nil
}
