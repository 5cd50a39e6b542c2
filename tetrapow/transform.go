// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tetrapow

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/sha3"

	"github.com/excalibur-exs/tetrad/fault"
)

// Version - identifies the pinned round schedule
//
// the round constant table is derived from this string, so bumping
// the version re-keys every digest
const Version = "tetra-pow-v1"

// DefaultRounds - rounds applied when a job does not override
const DefaultRounds = 128

// DefaultSalt - HPP-1 key derivation salt
const DefaultSalt = "Excalibur-EXS-Ω′Δ18"

// DefaultHardeningIterations - PBKDF2 iterations for seed hardening
//
// hardening runs once per job, not once per nonce, so a moderate
// count is sufficient
const DefaultHardeningIterations = 4096

// number of rows in the round constant table
const constantRows = 16

// number of compression primitives in the rotation
const primitiveCount = 4

// round constant table, pinned to Version
var roundConstants [constantRows][4]uint64

func init() {
	// fill the table from a blake2b chain over the version string
	data := blake2b.Sum512([]byte(Version))
	j := 0
	for row := 0; row < constantRows; row += 1 {
		for col := 0; col < 4; col += 1 {
			if len(data) == j {
				data = blake2b.Sum512(data[:])
				j = 0
			}
			roundConstants[row][col] = binary.LittleEndian.Uint64(data[j:])
			j += 8
		}
	}
}

// Seed - per-job hardened key from which every candidate state is derived
type Seed struct {
	key [Length]byte
}

// NewSeed - bind a target string into a hardened per-job seed
//
// base = SHA-512(target); key = PBKDF2-HMAC-SHA256(base, salt, iterations)
func NewSeed(target []byte, iterations int) (*Seed, error) {
	if 0 == len(target) {
		return nil, fault.MissingTarget
	}
	if iterations <= 0 {
		return nil, fault.InvalidHardening
	}

	base := sha512.Sum512(target)
	key := pbkdf2.Key(base[:], []byte(DefaultSalt), iterations, Length, sha256.New)

	seed := new(Seed)
	copy(seed.key[:], key)
	return seed, nil
}

// kernel - scratch state reused across transforms
//
// all buffers and the primitive instances are local to one owner, so
// a kernel must never be shared between goroutines
type kernel struct {
	primitives [primitiveCount]hash.Hash
	block      [Length]byte // lane serialisation
	perm       [Length]byte // permuted block
	sum        []byte       // primitive output scratch
	input      [Length + 8]byte
}

func newKernel() (*kernel, error) {
	b2, err := blake2b.New256(nil)
	if nil != err {
		return nil, err
	}
	k := &kernel{
		sum: make([]byte, 0, sha512.Size),
	}
	// primitive rotation: round mod 4
	k.primitives[0] = b2
	k.primitives[1] = sha3.New256()
	k.primitives[2] = sha256.New()
	k.primitives[3] = sha512.New() // truncated to 32 bytes
	return k, nil
}

// one nonlinear lane mix
func mixLanes(lanes *[4]uint64, rc *[4]uint64, round uint64) {
	lanes[0] = lanes[0] ^ (lanes[1] << 13) ^ (lanes[3] >> 7)
	lanes[1] = lanes[1] ^ (lanes[2] << 17) ^ (lanes[0] >> 5)
	lanes[2] = lanes[2] ^ (lanes[3] << 23) ^ (lanes[1] >> 11)
	lanes[3] = lanes[3] ^ (lanes[0] << 29) ^ (lanes[2] >> 3)

	lanes[0] += rc[0]
	lanes[1] += rc[1]
	lanes[2] += rc[2]
	lanes[3] += rc[3]

	lanes[0] ^= round
}

func storeLanes(buffer []byte, lanes *[4]uint64) {
	binary.LittleEndian.PutUint64(buffer[0:8], lanes[0])
	binary.LittleEndian.PutUint64(buffer[8:16], lanes[1])
	binary.LittleEndian.PutUint64(buffer[16:24], lanes[2])
	binary.LittleEndian.PutUint64(buffer[24:32], lanes[3])
}

func loadLanes(lanes *[4]uint64, buffer []byte) {
	lanes[0] = binary.LittleEndian.Uint64(buffer[0:8])
	lanes[1] = binary.LittleEndian.Uint64(buffer[8:16])
	lanes[2] = binary.LittleEndian.Uint64(buffer[16:24])
	lanes[3] = binary.LittleEndian.Uint64(buffer[24:32])
}

// the transform proper; bit-exact for a given (seed, nonce, rounds)
func (k *kernel) transform(seed *Seed, nonce uint64, rounds int) (Digest, error) {

	var digest Digest

	if rounds <= 0 {
		return digest, fault.InvalidRounds
	}

	// lane seeding from SHA-256(key ‖ nonce)
	copy(k.input[:Length], seed.key[:])
	binary.BigEndian.PutUint64(k.input[Length:], nonce)
	h := sha256.Sum256(k.input[:])

	var lanes [4]uint64
	loadLanes(&lanes, h[:])

	for r := 0; r < rounds; r += 1 {

		mixLanes(&lanes, &roundConstants[r%constantRows], uint64(r))

		// byte permutation: rotate the serialised state left
		storeLanes(k.block[:], &lanes)
		rot := r % Length
		copy(k.perm[:], k.block[rot:])
		copy(k.perm[Length-rot:], k.block[:rot])

		p := k.primitives[r%primitiveCount]
		p.Reset()
		p.Write(k.perm[:])
		k.sum = p.Sum(k.sum[:0])
		if len(k.sum) < Length {
			return digest, fault.UnexpectedDigestLength
		}

		loadLanes(&lanes, k.sum[:Length])
	}

	// final compression
	storeLanes(k.block[:], &lanes)
	digest = sha256.Sum256(k.block[:])
	return digest, nil
}

// Transform - apply the full round schedule to one candidate nonce
//
// identical (seed, nonce, rounds) always yields the identical digest;
// batch hashing with a Hasher gives the same result at lower cost
func Transform(seed *Seed, nonce uint64, rounds int) (Digest, error) {
	k, err := newKernel()
	if nil != err {
		return Digest{}, err
	}
	return k.transform(seed, nonce, rounds)
}
