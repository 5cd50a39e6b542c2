// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tetrapow - the Tetra-PoW work function
//
// A multi-round nonlinear hash transform over a four lane 64 bit
// state.  Each round mixes the lanes with pinned round constants,
// folds in the round index, permutes the byte order and then
// compresses through one of four primitives selected by the round
// number.  The whole schedule is versioned: any change to a constant
// or to the primitive rotation changes every digest and is therefore
// a new kernel version.
package tetrapow
