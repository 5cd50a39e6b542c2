// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package extranonce - exclusive nonce space partitioning
//
// one monotonic cursor over the 64 bit nonce space hands out fixed
// size contiguous partitions; partitions issued during one job never
// intersect and are never reissued
package extranonce

import (
	"math"
	"sync"

	"github.com/excalibur-exs/tetrad/fault"
)

// Partition - a contiguous sub-range of the nonce space owned by one lane
type Partition struct {
	LaneID uint32
	Start  uint64
	End    uint64 // exclusive
}

// Size - number of nonces in the partition
func (p Partition) Size() uint64 {
	return p.End - p.Start
}

// Allocator - thread-safe partition dispenser
type Allocator struct {
	sync.Mutex

	cursor uint64
	span   uint64
	limit  uint64 // exclusive end of the whole space
}

// NewAllocator - create an allocator issuing span sized partitions
//
// limit bounds the searchable space (exclusive); zero selects the
// full 64 bit range
func NewAllocator(span uint64, limit uint64) (*Allocator, error) {
	if 0 == span {
		return nil, fault.InvalidPartitionSpan
	}
	if 0 == limit {
		limit = math.MaxUint64
	}
	return &Allocator{
		span:  span,
		limit: limit,
	}, nil
}

// Acquire - hand out the next exclusive partition
//
// blocks only for the cursor increment; on space exhaustion the
// definitive fault.NonceSpaceExhausted is returned, there is nothing
// to retry
func (a *Allocator) Acquire(laneID uint32) (Partition, error) {
	a.Lock()
	defer a.Unlock()

	if a.cursor >= a.limit {
		return Partition{}, fault.NonceSpaceExhausted
	}

	start := a.cursor
	end := start + a.span
	if end < start || end > a.limit {
		// wrapped or past the limit: clamp to a short final partition
		end = a.limit
	}
	a.cursor = end

	return Partition{
		LaneID: laneID,
		Start:  start,
		End:    end,
	}, nil
}

// Issued - cursor position, for diagnostics
func (a *Allocator) Issued() uint64 {
	a.Lock()
	defer a.Unlock()
	return a.cursor
}
