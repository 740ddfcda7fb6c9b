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

package scheduler

import (
	"fmt"
	"sync/atomic"

	"github.com/heliosemu/helios/curated"
)

// Clock dividers relative to the master clock.
const (
	CPUDivider   = 1
	VideoCadence = 2
)

// CPUHalted is the error pattern returned by Run() when the CPU stops
// executing instructions.
const CPUHalted = "scheduler: cpu halted: %s"

// CPU defines the functions required by the scheduler from the CPU.
type CPU interface {
	Step() int
	Halted() bool
}

// Video defines the functions required by the scheduler from the video unit.
type Video interface {
	RunSlot() error
}

// Interrupts are delivered after every CPU instruction.
type Interrupts interface {
	HandleInterrupts()
}

// Scheduler drives the CPU and the video unit. With the exception of Cancel(),
// functions must be called from the same goroutine as Run().
type Scheduler struct {
	cpu   CPU
	video Video
	ints  Interrupts

	counter int64
	nextCPU int64

	cancel atomic.Bool
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler(cpu CPU, video Video, ints Interrupts) *Scheduler {
	return &Scheduler{
		cpu:     cpu,
		video:   video,
		ints:    ints,
		nextCPU: CPUDivider,
	}
}

func (s *Scheduler) String() string {
	return fmt.Sprintf("counter=%d cpu=%d", s.counter, s.nextCPU)
}

// Counter returns the master counter value.
func (s *Scheduler) Counter() int64 {
	return s.counter
}

// NextCPU returns the master counter value at which the CPU will next be
// stepped.
func (s *Scheduler) NextCPU() int64 {
	return s.nextCPU
}

// Cancel causes Run() to return before the next master tick. Safe to call
// from any goroutine.
func (s *Scheduler) Cancel() {
	s.cancel.Store(true)
}

// Cancelled returns true if Cancel() has been called.
func (s *Scheduler) Cancelled() bool {
	return s.cancel.Load()
}

// ResetCycleCounters rebases the next-trigger values on a master counter of
// zero. Intended to be called once per frame to keep the counters small.
func (s *Scheduler) ResetCycleCounters() {
	s.nextCPU -= s.counter
	s.counter = 0
}

// Tick advances the master clock by one tick.
func (s *Scheduler) Tick() error {
	if s.counter == s.nextCPU {
		cost := s.cpu.Step()
		if cost == 0 && s.cpu.Halted() {
			return curated.Errorf(CPUHalted, s.cpu)
		}
		s.ints.HandleInterrupts()
		s.nextCPU += CPUDivider * int64(max(1, cost))
	}

	if s.counter%VideoCadence == 1 {
		if err := s.video.RunSlot(); err != nil {
			return err
		}
	}

	s.counter++

	return nil
}

// Run the scheduler until Cancel() is called or an error occurs. A panic in
// any of the subsystems is recovered and returned as an error.
func (s *Scheduler) Run() (rerr error) {
	defer func() {
		if r := recover(); r != nil {
			rerr = curated.Errorf("scheduler: %v", r)
		}
	}()

	for !s.cancel.Load() {
		if err := s.Tick(); err != nil {
			return err
		}
	}

	return nil
}
