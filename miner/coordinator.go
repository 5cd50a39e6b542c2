// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miner

import (
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/excalibur-exs/tetrad/background"
	"github.com/excalibur-exs/tetrad/counter"
	"github.com/excalibur-exs/tetrad/extranonce"
	"github.com/excalibur-exs/tetrad/fault"
	"github.com/excalibur-exs/tetrad/scheduler"
	"github.com/excalibur-exs/tetrad/tetrapow"
)

// Coordinator - owns the lanes for one mining call at a time
type Coordinator struct {
	sync.Mutex

	laneCount uint32
	log       *logger.L

	// live statistics for the call in progress
	attempts *counter.Counter
	started  time.Time
}

// New - create a coordinator for a fixed number of lanes
func New(laneCount uint32, log *logger.L) (*Coordinator, error) {
	if 0 == laneCount {
		return nil, fault.InvalidLaneCount
	}
	if nil == log {
		return nil, fault.MissingLogger
	}
	return &Coordinator{
		laneCount: laneCount,
		log:       log,
	}, nil
}

// Mine - run one job to a terminal outcome
//
// returns when a lane succeeds, maxDuration elapses, or the allocator
// exhausts the nonce space across all lanes; maxDuration zero or
// negative means no deadline
func (c *Coordinator) Mine(job *Job, maxDuration time.Duration) (*Result, error) {

	if err := job.Verify(); nil != err {
		return nil, err
	}

	seed, err := tetrapow.NewSeed(job.Target, job.HardeningIterations)
	if nil != err {
		return nil, err
	}

	allocator, err := extranonce.NewAllocator(job.PartitionSpan, job.NonceLimit)
	if nil != err {
		return nil, err
	}

	schedule, err := scheduler.New(job.Order)
	if nil != err {
		return nil, err
	}

	slot := newResultSlot(job.SearchLowest)

	attempts := new(counter.Counter)

	var failuresLock sync.Mutex
	failures := []error(nil)
	recordFailure := func(laneID uint32, err error) {
		failuresLock.Lock()
		failures = append(failures, fmt.Errorf("lane %d: %v", laneID, err))
		failuresLock.Unlock()
	}

	processes := make(background.Processes, c.laneCount)
	for i := uint32(0); i < c.laneCount; i += 1 {
		hasher, err := tetrapow.NewHasher(seed, job.Rounds)
		if nil != err {
			return nil, err
		}
		processes[i] = &lane{
			id:        i,
			log:       logger.New(fmt.Sprintf("lane-%d", i)),
			job:       job,
			hasher:    hasher,
			allocator: allocator,
			schedule:  schedule,
			attempts:  attempts,
			slot:      slot,
			fail:      recordFailure,
			nonces:    make([]uint64, job.BatchSize),
			digests:   make([]tetrapow.Digest, job.BatchSize),
		}
	}

	start := time.Now()
	c.begin(attempts, start)
	defer c.finish()

	c.log.Infof("mining: lanes: %d  difficulty: %s  rounds: %d  batch: %d",
		c.laneCount, job.Difficulty, job.Rounds, job.BatchSize)

	register := background.Start(processes, nil)

	var deadline <-chan time.Time
	if maxDuration > 0 {
		timer := time.NewTimer(maxDuration)
		defer timer.Stop()
		deadline = timer.C
	}

	// in lowest-nonce mode the first win is not conclusive: keep
	// all lanes running to exhaustion
	winNotify := slot.wonChan()
	if job.SearchLowest {
		winNotify = nil
	}

	timedOut := false
	select {
	case <-winNotify:
		register.Stop()
	case <-deadline:
		timedOut = true
		register.Stop()
	case <-register.Done():
	}

	elapsed := time.Since(start)

	found, nonce, digest, laneID := slot.snapshot()

	failuresLock.Lock()
	laneFailures := failures
	failuresLock.Unlock()

	if !found && uint32(len(laneFailures)) == c.laneCount {
		c.log.Error("all lanes failed")
		return nil, fault.AllLanesFailed
	}

	result := &Result{
		Found:        found,
		Nonce:        nonce,
		Digest:       digest,
		Attempts:     attempts.Uint64(),
		Elapsed:      elapsed,
		LaneID:       laneID,
		LaneFailures: laneFailures,
	}
	if seconds := elapsed.Seconds(); seconds > 0 {
		result.HashRate = float64(result.Attempts) / seconds
	}

	switch {
	case found:
		result.Outcome = Found
	case timedOut:
		result.Outcome = TimedOut
	default:
		result.Outcome = Exhausted
	}

	c.log.Infof("outcome: %s  attempts: %d  elapsed: %s  rate: %.1f H/s",
		result.Outcome, result.Attempts, result.Elapsed, result.HashRate)

	return result, nil
}

// HashRate - live attempts per second for the call in progress
//
// zero when no call is running
func (c *Coordinator) HashRate() float64 {
	c.Lock()
	defer c.Unlock()

	if nil == c.attempts {
		return 0
	}
	seconds := time.Since(c.started).Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(c.attempts.Uint64()) / seconds
}

// Attempts - nonces hashed so far by the call in progress
func (c *Coordinator) Attempts() uint64 {
	c.Lock()
	defer c.Unlock()

	if nil == c.attempts {
		return 0
	}
	return c.attempts.Uint64()
}

// Lanes - the configured lane count
func (c *Coordinator) Lanes() uint32 {
	return c.laneCount
}

func (c *Coordinator) begin(attempts *counter.Counter, started time.Time) {
	c.Lock()
	c.attempts = attempts
	c.started = started
	c.Unlock()
}

func (c *Coordinator) finish() {
	c.Lock()
	c.attempts = nil
	c.Unlock()
}
