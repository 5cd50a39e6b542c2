// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package miner - the multi-lane mining control plane
//
// a Coordinator owns a set of Lanes, one OS scheduled goroutine each,
// all sharing one extranonce allocator, one attempts counter, one
// cancellation channel and one single-assignment result slot; there
// is no other cross-lane state and no locking in the hash loop
package miner
