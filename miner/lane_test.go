// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miner

import (
	"testing"

	"github.com/bitmark-inc/logger"
)

func TestLaneStateString(t *testing.T) {

	items := []struct {
		state    laneState
		expected string
	}{
		{laneIdle, "idle"},
		{lanePartitioned, "partitioned"},
		{laneHashing, "hashing"},
		{laneSuccess, "success"},
		{laneExhausted, "exhausted"},
		{laneCancelled, "cancelled"},
		{laneFailed, "failed"},
		{laneState(99), "unknown"},
	}

	for i, item := range items {
		actual := item.state.String()
		if actual != item.expected {
			t.Errorf("%d: state string actual: %q  expected: %q", i, actual, item.expected)
		}
	}
}

func TestLaneTransition(t *testing.T) {

	l := &lane{log: logger.New("lane-test")}
	if laneIdle != l.state {
		t.Fatalf("initial state actual: %s  expected: %s", l.state, laneIdle)
	}

	l.transition(laneHashing)
	if laneHashing != l.state {
		t.Errorf("state actual: %s  expected: %s", l.state, laneHashing)
	}
}
