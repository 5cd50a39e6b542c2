// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scheduler_test

import (
	"testing"

	"github.com/excalibur-exs/tetrad/extranonce"
	"github.com/excalibur-exs/tetrad/fault"
	"github.com/excalibur-exs/tetrad/scheduler"
)

func partition(start uint64, end uint64) extranonce.Partition {
	return extranonce.Partition{LaneID: 0, Start: start, End: end}
}

// drain a cursor and return everything it produced
func drain(t *testing.T, s *scheduler.Scheduler, c *scheduler.Cursor, batchSize int) []uint64 {
	t.Helper()
	buf := make([]uint64, batchSize)
	var all []uint64
	for {
		n := s.NextBatch(c, buf)
		if 0 == n {
			break
		}
		all = append(all, buf[:n]...)
	}
	return all
}

// every nonce exactly once, regardless of order
func coverageCheck(t *testing.T, produced []uint64, start uint64, end uint64) {
	t.Helper()
	if uint64(len(produced)) != end-start {
		t.Fatalf("produced %d nonces, range holds %d", len(produced), end-start)
	}
	seen := make(map[uint64]bool, len(produced))
	for _, nonce := range produced {
		if nonce < start || nonce >= end {
			t.Fatalf("nonce %d outside [%d, %d)", nonce, start, end)
		}
		if seen[nonce] {
			t.Fatalf("nonce %d produced twice", nonce)
		}
		seen[nonce] = true
	}
}

func TestSequentialOrder(t *testing.T) {

	s, err := scheduler.New(scheduler.Sequential)
	if nil != err {
		t.Fatalf("New error: %s", err)
	}

	c := scheduler.NewCursor(partition(100, 170))
	produced := drain(t, s, c, 16)
	coverageCheck(t, produced, 100, 170)

	// sequential means strictly increasing
	for i := 1; i < len(produced); i += 1 {
		if produced[i] != produced[i-1]+1 {
			t.Fatalf("not sequential at index %d: %d after %d", i, produced[i], produced[i-1])
		}
	}
}

func TestScoredOrder(t *testing.T) {

	s, err := scheduler.New(scheduler.Scored)
	if nil != err {
		t.Fatalf("New error: %s", err)
	}

	c := scheduler.NewCursor(partition(0, 200))
	produced := drain(t, s, c, 32)
	coverageCheck(t, produced, 0, 200)

	// within each full window the score must be non-decreasing
	for w := 0; w+32 <= len(produced); w += 32 {
		window := produced[w : w+32]
		for i := 1; i < len(window); i += 1 {
			if scheduler.Score(window[i]) < scheduler.Score(window[i-1]) {
				t.Fatalf("window %d not score ordered at %d", w/32, i)
			}
		}
	}
}

// reordering is deterministic: two cursors over the same partition agree
func TestScoredDeterminism(t *testing.T) {

	s, err := scheduler.New(scheduler.Scored)
	if nil != err {
		t.Fatalf("New error: %s", err)
	}

	first := drain(t, s, scheduler.NewCursor(partition(500, 700)), 32)
	second := drain(t, s, scheduler.NewCursor(partition(500, 700)), 32)

	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("index %d: %d vs %d", i, first[i], second[i])
		}
	}
}

// exhaustion is idempotent
func TestCursorExhaustion(t *testing.T) {

	s, err := scheduler.New(scheduler.Sequential)
	if nil != err {
		t.Fatalf("New error: %s", err)
	}

	c := scheduler.NewCursor(partition(0, 5))
	buf := make([]uint64, 8)

	n := s.NextBatch(c, buf)
	if 5 != n {
		t.Fatalf("first batch size actual: %d  expected: 5", n)
	}
	if !c.Exhausted() {
		t.Errorf("cursor not exhausted after final batch")
	}

	for i := 0; i < 3; i += 1 {
		if n := s.NextBatch(c, buf); 0 != n {
			t.Errorf("exhausted cursor produced %d nonces", n)
		}
	}
}

func TestEmptyPartition(t *testing.T) {

	s, err := scheduler.New(scheduler.Sequential)
	if nil != err {
		t.Fatalf("New error: %s", err)
	}

	c := scheduler.NewCursor(partition(9, 9))
	if !c.Exhausted() {
		t.Errorf("empty partition cursor not exhausted")
	}
	if n := s.NextBatch(c, make([]uint64, 4)); 0 != n {
		t.Errorf("empty partition produced %d nonces", n)
	}
}

func TestParseOrder(t *testing.T) {

	cases := []struct {
		in       string
		expected scheduler.Order
		ok       bool
	}{
		{"sequential", scheduler.Sequential, true},
		{"Scored", scheduler.Scored, true},
		{"", scheduler.Sequential, true},
		{"random", scheduler.Sequential, false},
	}
	for _, c := range cases {
		order, err := scheduler.ParseOrder(c.in)
		if c.ok {
			if nil != err {
				t.Errorf("ParseOrder(%q) error: %s", c.in, err)
			} else if order != c.expected {
				t.Errorf("ParseOrder(%q) actual: %v  expected: %v", c.in, order, c.expected)
			}
		} else if fault.InvalidOrder != err {
			t.Errorf("ParseOrder(%q) error actual: %v  expected: %v", c.in, err, fault.InvalidOrder)
		}
	}
}
