// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scheduler - deterministic nonce ordering within a partition
//
// every nonce in [Start, End) is visited exactly once before the
// cursor reports exhaustion; the optional scored order reorders each
// window by a pure scoring function, never by hidden randomness
package scheduler

import (
	"math/bits"
	"sort"
	"strings"

	"github.com/excalibur-exs/tetrad/extranonce"
	"github.com/excalibur-exs/tetrad/fault"
)

// Order - nonce ordering selector
type Order int

// available orders
const (
	Sequential Order = iota // increasing nonce
	Scored                  // per-window stable sort by Score
)

// ParseOrder - decode the CLI/config order name
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return Sequential, nil
	case "scored":
		return Scored, nil
	}
	return Sequential, fault.InvalidOrder
}

// Score - the pure scoring key used by the Scored order
//
// population count is cheap and depends on nothing but the nonce
func Score(nonce uint64) int {
	return bits.OnesCount64(nonce)
}

// Scheduler - stateless ordering policy, shareable between cursors
type Scheduler struct {
	order Order
}

// New - create a scheduler for one ordering policy
func New(order Order) (*Scheduler, error) {
	if order != Sequential && order != Scored {
		return nil, fault.InvalidOrder
	}
	return &Scheduler{order: order}, nil
}

// Order - the policy in use
func (s *Scheduler) Order() Order {
	return s.order
}

// Cursor - opaque position within one partition
//
// lane local; advancing past the end is idempotent
type Cursor struct {
	partition extranonce.Partition
	next      uint64
	done      bool
}

// NewCursor - start a cursor at the beginning of a partition
func NewCursor(partition extranonce.Partition) *Cursor {
	return &Cursor{
		partition: partition,
		next:      partition.Start,
		done:      partition.Start >= partition.End,
	}
}

// Exhausted - true once every nonce has been handed out
func (c *Cursor) Exhausted() bool {
	return c.done
}

// NextBatch - fill buf with the next nonces in order
//
// returns the count filled; zero means the partition is spent and the
// lane must acquire a new partition rather than wrap
func (s *Scheduler) NextBatch(c *Cursor, buf []uint64) int {
	n := 0
	for n < len(buf) && !c.done {
		buf[n] = c.next
		n += 1
		if c.next+1 >= c.partition.End {
			c.done = true
		} else {
			c.next += 1
		}
	}

	if Scored == s.order && n > 1 {
		window := buf[:n]
		sort.SliceStable(window, func(i, j int) bool {
			si := Score(window[i])
			sj := Score(window[j])
			if si != sj {
				return si < sj
			}
			return window[i] < window[j]
		})
	}

	return n
}
