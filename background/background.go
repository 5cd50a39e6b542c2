// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

import (
	"sync"
)

// Process - interface for a background process
//
// Run must return promptly after the shutdown channel is closed; the
// channel doubles as a cheap cancellation flag polled once per unit
// of work
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a started set of processes
type T struct {
	shutdown chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// Start - start up a set of background processes sharing one
// shutdown channel
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	register.wg.Add(len(processes))
	for _, p := range processes {
		go func(p Process) {
			defer register.wg.Done()
			p.Run(args, register.shutdown)
		}(p)
	}

	// aggregate completion signal
	go func() {
		register.wg.Wait()
		close(register.done)
	}()

	return register
}

// Stop - request shutdown and wait for all processes to finish
// safe to call more than once
func (t *T) Stop() {
	t.Cancel()
	<-t.done
}

// Cancel - request shutdown without waiting
func (t *T) Cancel() {
	t.stopOnce.Do(func() { close(t.shutdown) })
}

// Done - closed when every process has returned, whether of its own
// accord or after a Cancel; for use in a select alongside other
// conditions
func (t *T) Done() <-chan struct{} {
	return t.done
}
