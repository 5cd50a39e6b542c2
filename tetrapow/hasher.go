// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tetrapow

import (
	"github.com/excalibur-exs/tetrad/fault"
)

// Hasher - batch digest computation with reusable scratch buffers
//
// one Hasher per lane; not safe for concurrent use
type Hasher struct {
	seed   *Seed
	rounds int
	k      *kernel
}

// NewHasher - create a hasher bound to one job's seed and round count
func NewHasher(seed *Seed, rounds int) (*Hasher, error) {
	if nil == seed {
		return nil, fault.MissingTarget
	}
	if rounds <= 0 {
		return nil, fault.InvalidRounds
	}
	k, err := newKernel()
	if nil != err {
		return nil, err
	}
	return &Hasher{
		seed:   seed,
		rounds: rounds,
		k:      k,
	}, nil
}

// HashBatch - compute digests for a batch of nonces
//
// batching amortises scratch buffer setup, never the result:
// digests[i] is exactly Transform(seed, nonces[i], rounds)
func (h *Hasher) HashBatch(nonces []uint64, digests []Digest) error {
	if len(nonces) != len(digests) {
		return fault.BatchBufferMismatch
	}
	for i, nonce := range nonces {
		digest, err := h.k.transform(h.seed, nonce, h.rounds)
		if nil != err {
			return err
		}
		digests[i] = digest
	}
	return nil
}

// Rounds - the round count this hasher was built with
func (h *Hasher) Rounds() int {
	return h.rounds
}
