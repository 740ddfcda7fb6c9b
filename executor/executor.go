// This file is part of Helios.
//
// Helios is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Helios is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Helios.  If not, see <https://www.gnu.org/licenses/>.

// Package executor runs fire-and-forget jobs on a single background
// goroutine. Jobs are executed in the order they are submitted.
//
// The CD-audio subsystem uses the executor so that decoding and opening
// audio streams never happens on the scheduler goroutine. Telemetry uses it
// to flush the telemetry file.
package executor

import (
	"sync"

	"github.com/heliosemu/helios/logger"
)

// Job is a unit of work to be performed on the executor goroutine.
type Job interface {
	Execute()
}

// JobFunc allows a plain function to be submitted as a Job.
type JobFunc func()

// Execute implements the Job interface.
func (f JobFunc) Execute() {
	f()
}

// Executor is a single-consumer job queue. The queue is unbounded so that
// Submit() never blocks the caller, even while a slow job is running.
type Executor struct {
	perm logger.Permission

	// crit guards the closed flag and the pending list
	crit    sync.Mutex
	closed  bool
	pending []Job

	// signal has a capacity of one. a send that finds it full is dropped
	// because the consumer will see the pending list anyway
	signal chan struct{}

	// closed when the consumer goroutine has finished
	done chan struct{}
}

// NewExecutor is the preferred method of initialisation for the Executor
// type. The consumer goroutine is started immediately.
func NewExecutor(perm logger.Permission) *Executor {
	ex := &Executor{
		perm:   perm,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go ex.consume()
	return ex
}

func (ex *Executor) notify() {
	select {
	case ex.signal <- struct{}{}:
	default:
	}
}

// take returns the jobs waiting in the queue and whether the executor has
// been closed.
func (ex *Executor) take() ([]Job, bool) {
	ex.crit.Lock()
	defer ex.crit.Unlock()
	jobs := ex.pending
	ex.pending = nil
	return jobs, ex.closed
}

func (ex *Executor) consume() {
	defer close(ex.done)
	for range ex.signal {
		for {
			jobs, closed := ex.take()
			for _, job := range jobs {
				ex.execute(job)
			}
			if len(jobs) == 0 {
				if closed {
					return
				}
				break // for loop
			}
		}
	}
}

// a panicking job must not bring down the consumer goroutine
func (ex *Executor) execute(job Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logf(ex.perm, "executor", "job panicked: %v", r)
		}
	}()
	job.Execute()
}

// Submit a job to the queue. Submit never blocks. Returns false if the
// executor has been closed and the job will not be executed.
func (ex *Executor) Submit(job Job) bool {
	ex.crit.Lock()
	if ex.closed {
		ex.crit.Unlock()
		return false
	}
	ex.pending = append(ex.pending, job)
	ex.crit.Unlock()
	ex.notify()
	return true
}

// Pending returns the number of jobs waiting to be executed. A job that is
// running is not counted.
func (ex *Executor) Pending() int {
	ex.crit.Lock()
	defer ex.crit.Unlock()
	return len(ex.pending)
}

// Flush blocks until every job submitted before the call has been executed.
func (ex *Executor) Flush() {
	barrier := make(chan struct{})
	if !ex.Submit(JobFunc(func() { close(barrier) })) {
		return
	}
	<-barrier
}

// Close the executor. Jobs already in the queue are executed before Close()
// returns. Further calls to Submit() will fail.
func (ex *Executor) Close() {
	ex.crit.Lock()
	ex.closed = true
	ex.crit.Unlock()
	ex.notify()
	<-ex.done
}
