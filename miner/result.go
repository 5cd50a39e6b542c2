// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miner

import (
	"sync"
	"time"

	"github.com/excalibur-exs/tetrad/tetrapow"
)

// Outcome - terminal state of a mining call
//
// exhaustion and timeout are expected outcomes, not errors; a
// configuration error never produces a Result at all
type Outcome int

// terminal outcomes
const (
	Found Outcome = iota
	Exhausted
	TimedOut
)

// String - for use by the fmt package (for %s)
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	case TimedOut:
		return "timed-out"
	}
	return "unknown"
}

// Result - produced once per mining call, immutable after creation
type Result struct {
	Outcome  Outcome
	Found    bool
	Nonce    uint64
	Digest   tetrapow.Digest
	Attempts uint64
	Elapsed  time.Duration
	LaneID   uint32
	HashRate float64

	// lane-local failures; reduced parallelism, never job failure
	// unless every lane failed
	LaneFailures []error
}

// resultSlot - single assignment success collector
//
// first writer wins; in lowest mode later writers may replace the
// stored value only with a strictly lower nonce, so exhaustive runs
// agree on the lowest winner irrespective of lane interleaving
type resultSlot struct {
	sync.Mutex

	lowest  bool
	have    bool
	nonce   uint64
	digest  tetrapow.Digest
	laneID  uint32
	won     chan struct{}
	wonOnce sync.Once
}

func newResultSlot(lowest bool) *resultSlot {
	return &resultSlot{
		lowest: lowest,
		won:    make(chan struct{}),
	}
}

// offer a winning candidate; losers are discarded
func (slot *resultSlot) offer(laneID uint32, nonce uint64, digest tetrapow.Digest) {
	slot.Lock()
	accept := !slot.have || (slot.lowest && nonce < slot.nonce)
	if accept {
		slot.have = true
		slot.nonce = nonce
		slot.digest = digest
		slot.laneID = laneID
	}
	slot.Unlock()

	slot.wonOnce.Do(func() { close(slot.won) })
}

// wonChan - closed after the first accepted offer
func (slot *resultSlot) wonChan() <-chan struct{} {
	return slot.won
}

func (slot *resultSlot) snapshot() (bool, uint64, tetrapow.Digest, uint32) {
	slot.Lock()
	defer slot.Unlock()
	return slot.have, slot.nonce, slot.digest, slot.laneID
}
