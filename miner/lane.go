// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miner

import (
	"github.com/bitmark-inc/logger"

	"github.com/excalibur-exs/tetrad/counter"
	"github.com/excalibur-exs/tetrad/extranonce"
	"github.com/excalibur-exs/tetrad/scheduler"
	"github.com/excalibur-exs/tetrad/tetrapow"
)

// laneState - progress of one lane
type laneState int

const (
	laneIdle laneState = iota
	lanePartitioned
	laneHashing
	laneSuccess
	laneExhausted
	laneCancelled
	laneFailed
)

// String - for use by the fmt package (for %s)
func (s laneState) String() string {
	switch s {
	case laneIdle:
		return "idle"
	case lanePartitioned:
		return "partitioned"
	case laneHashing:
		return "hashing"
	case laneSuccess:
		return "success"
	case laneExhausted:
		return "exhausted"
	case laneCancelled:
		return "cancelled"
	case laneFailed:
		return "failed"
	}
	return "unknown"
}

// lane - one mining worker
//
// everything below except allocator, attempts and slot is lane local:
// no locking in the hash loop, no false sharing of scratch buffers
type lane struct {
	id        uint32
	log       *logger.L
	job       *Job
	hasher    *tetrapow.Hasher
	allocator *extranonce.Allocator
	schedule  *scheduler.Scheduler
	attempts  *counter.Counter
	slot      *resultSlot
	fail      func(laneID uint32, err error)

	state   laneState
	nonces  []uint64
	digests []tetrapow.Digest
}

// transition - record and log a state change
func (l *lane) transition(state laneState) {
	l.state = state
	l.log.Debugf("state: %s", state)
}

// Run - implements background.Process
//
// cancellation is polled once per batch so the worst case latency is
// one batch of hashing; there is no per-hash overhead
func (l *lane) Run(args interface{}, shutdown <-chan struct{}) {

	l.log.Debug("starting…")

partitionLoop:
	for {
		l.transition(lanePartitioned)

		partition, err := l.allocator.Acquire(l.id)
		if nil != err {
			// the definitive end of the nonce space
			l.transition(laneExhausted)
			l.log.Debugf("allocator: %s", err)
			return
		}
		l.log.Tracef("partition: [%d, %d)", partition.Start, partition.End)

		cursor := scheduler.NewCursor(partition)
		l.transition(laneHashing)

		for {
			select {
			case <-shutdown:
				l.transition(laneCancelled)
				return
			default:
			}

			n := l.schedule.NextBatch(cursor, l.nonces)
			if 0 == n {
				continue partitionLoop
			}

			err := l.hasher.HashBatch(l.nonces[:n], l.digests[:n])
			if nil != err {
				// fatal to this lane only; siblings keep mining
				l.transition(laneFailed)
				l.log.Errorf("hash batch failed: %s", err)
				l.fail(l.id, err)
				return
			}

			l.attempts.Add(uint64(n))

			for i := 0; i < n; i += 1 {
				if !l.job.Difficulty.Meets(l.digests[i]) {
					continue
				}
				l.log.Infof("nonce: 0x%016x  digest: %s", l.nonces[i], l.digests[i])
				l.slot.offer(l.id, l.nonces[i], l.digests[i])
				if !l.job.SearchLowest {
					l.transition(laneSuccess)
					return
				}
			}
		}
	}
}
