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

package emulation

import (
	"sync/atomic"
	"time"
)

// DriftStep is the largest amount of drift that is corrected in a single
// frame.
const DriftStep = 100 * time.Microsecond

// MaxDrift is the limit of the drift accumulator in either direction.
const MaxDrift = 10 * time.Millisecond

// Clock is the source of time for the Pacer.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time {
	return time.Now()
}

func (wallClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// WallClock is the Clock used by NewPacer().
var WallClock Clock = wallClock{}

// Pacer synchronises frames to the wall clock. With the exception of
// SetFullThrottle(), functions should only be called from the scheduler
// goroutine.
type Pacer struct {
	clock    Clock
	interval time.Duration

	fullThrottle atomic.Bool

	// positive drift means that frames are ending early. negative drift means
	// they are ending late
	drift time.Duration
}

// NewPacer is the preferred method of initialisation for the Pacer type.
func NewPacer(interval time.Duration) *Pacer {
	return NewPacerWithClock(interval, WallClock)
}

// NewPacerWithClock creates a Pacer that uses the supplied Clock.
func NewPacerWithClock(interval time.Duration, clock Clock) *Pacer {
	return &Pacer{
		clock:    clock,
		interval: interval,
	}
}

// Interval returns the target duration of a frame.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// SetFullThrottle stops the pacer from sleeping. Safe to call from any
// goroutine.
func (p *Pacer) SetFullThrottle(set bool) {
	p.fullThrottle.Store(set)
}

// FullThrottle returns true if the pacer is not sleeping.
func (p *Pacer) FullThrottle() bool {
	return p.fullThrottle.Load()
}

// Drift returns the current value of the drift accumulator.
func (p *Pacer) Drift() time.Duration {
	return p.drift
}

// Now returns the current time according to the pacer's clock.
func (p *Pacer) Now() time.Time {
	return p.clock.Now()
}

// SyncToNextFrame sleeps until the end of the frame that began at prevStart.
// Returns the start time of the new frame.
func (p *Pacer) SyncToNextFrame(prevStart time.Time) time.Time {
	now := p.clock.Now()
	if p.fullThrottle.Load() {
		return now
	}

	var step time.Duration
	if p.drift > DriftStep {
		step = DriftStep
	} else if p.drift < -DriftStep {
		step = -DriftStep
	}
	p.drift -= step

	target := prevStart.Add(p.interval + step)
	remaining := target.Sub(now)
	if remaining > 0 {
		p.clock.Sleep(remaining)
		remaining = target.Sub(p.clock.Now())
	}

	p.drift = min(MaxDrift, max(-MaxDrift, p.drift+remaining))

	return p.clock.Now()
}

// Reset the drift accumulator.
func (p *Pacer) Reset() {
	p.drift = 0
}
