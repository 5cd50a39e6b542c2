// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miner

import (
	"github.com/excalibur-exs/tetrad/difficulty"
	"github.com/excalibur-exs/tetrad/fault"
	"github.com/excalibur-exs/tetrad/scheduler"
	"github.com/excalibur-exs/tetrad/tetrapow"
)

// batch size bounds; tuned for cancellation latency against call overhead
const (
	MinBatchSize     = 8
	MaxBatchSize     = 512
	DefaultBatchSize = 32
)

// DefaultPartitionSpan - nonces handed to a lane per acquire
const DefaultPartitionSpan = 4096

// Job - one immutable unit of mining work
//
// owned by the coordinator and shared read-only across lanes once
// dispatched
type Job struct {
	Target              []byte
	Difficulty          *difficulty.Difficulty
	Rounds              int
	BatchSize           int
	HardeningIterations int
	Order               scheduler.Order
	PartitionSpan       uint64
	NonceLimit          uint64 // exclusive; zero selects the full space

	// SearchLowest keeps all lanes running to exhaustion and reports
	// the lowest winning nonce instead of the first found
	SearchLowest bool
}

// NewJob - a job with engine defaults filled in
func NewJob(target []byte, d *difficulty.Difficulty) *Job {
	return &Job{
		Target:              target,
		Difficulty:          d,
		Rounds:              tetrapow.DefaultRounds,
		BatchSize:           DefaultBatchSize,
		HardeningIterations: tetrapow.DefaultHardeningIterations,
		Order:               scheduler.Sequential,
		PartitionSpan:       DefaultPartitionSpan,
	}
}

// Verify - reject configuration errors before any lane starts
func (job *Job) Verify() error {
	switch {
	case 0 == len(job.Target):
		return fault.MissingTarget
	case nil == job.Difficulty:
		return fault.InvalidDifficulty
	case job.Rounds <= 0:
		return fault.InvalidRounds
	case job.BatchSize < MinBatchSize || job.BatchSize > MaxBatchSize:
		return fault.InvalidBatchSize
	case job.HardeningIterations <= 0:
		return fault.InvalidHardening
	case 0 == job.PartitionSpan:
		return fault.InvalidPartitionSpan
	case job.Order != scheduler.Sequential && job.Order != scheduler.Scored:
		return fault.InvalidOrder
	}
	return nil
}
