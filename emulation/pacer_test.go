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

package emulation_test

import (
	"testing"
	"time"

	"github.com/heliosemu/helios/emulation"
	"github.com/heliosemu/helios/test"
)

// clock is a fake emulation.Clock. sleeping always takes longer than
// requested by the oversleep amount
type clock struct {
	now       time.Time
	oversleep time.Duration
	sleeps    int
}

func (c *clock) Now() time.Time {
	return c.now
}

func (c *clock) Sleep(d time.Duration) {
	c.sleeps++
	c.now = c.now.Add(d + c.oversleep)
}

// work advances the clock as though a frame was being emulated
func (c *clock) work(d time.Duration) {
	c.now = c.now.Add(d)
}

const interval = time.Second / 60

func TestPacerOnTime(t *testing.T) {
	c := &clock{now: time.Unix(0, 0)}
	p := emulation.NewPacerWithClock(interval, c)

	start := c.Now()
	for range 100 {
		c.work(5 * time.Millisecond)
		next := p.SyncToNextFrame(start)
		test.ExpectEquality(t, next.Sub(start), interval)
		test.ExpectEquality(t, p.Drift(), time.Duration(0))
		start = next
	}
	test.ExpectEquality(t, c.sleeps, 100)
}

func TestPacerDriftBound(t *testing.T) {
	c := &clock{now: time.Unix(0, 0), oversleep: 3 * time.Millisecond}
	p := emulation.NewPacerWithClock(interval, c)

	start := c.Now()
	for i := range 100 {
		c.work(5 * time.Millisecond)
		start = p.SyncToNextFrame(start)
		test.DemandSuccess(t, p.Drift() >= -emulation.MaxDrift, i)
		test.DemandSuccess(t, p.Drift() <= emulation.MaxDrift, i)
	}
	test.ExpectEquality(t, p.Drift(), -emulation.MaxDrift)

	// frames that take far longer than the frame interval
	for i := range 100 {
		c.work(50 * time.Millisecond)
		start = p.SyncToNextFrame(start)
		test.DemandSuccess(t, p.Drift() >= -emulation.MaxDrift, i)
	}
	test.ExpectEquality(t, p.Drift(), -emulation.MaxDrift)
}

func TestPacerCorrection(t *testing.T) {
	c := &clock{now: time.Unix(0, 0), oversleep: 2 * time.Millisecond}
	p := emulation.NewPacerWithClock(interval, c)

	start := c.Now()
	for range 10 {
		start = p.SyncToNextFrame(start)
	}
	test.ExpectEquality(t, p.Drift(), -emulation.MaxDrift)

	// with accurate sleeping the drift is paid back one step per frame by
	// shortening the frame
	c.oversleep = 0
	for i := range 10 {
		next := p.SyncToNextFrame(start)
		test.ExpectEquality(t, next.Sub(start), interval-emulation.DriftStep, i)
		start = next
	}
	test.ExpectEquality(t, p.Drift(), -emulation.MaxDrift+10*emulation.DriftStep)

	// drift smaller than the step is not corrected
	p.Reset()
	next := p.SyncToNextFrame(start)
	test.ExpectEquality(t, next.Sub(start), interval)
}

func TestPacerFullThrottle(t *testing.T) {
	c := &clock{now: time.Unix(0, 0)}
	p := emulation.NewPacerWithClock(interval, c)
	p.SetFullThrottle(true)
	test.ExpectSuccess(t, p.FullThrottle())

	start := c.Now()
	for range 10 {
		c.work(time.Millisecond)
		next := p.SyncToNextFrame(start)
		test.ExpectEquality(t, next.Sub(start), time.Millisecond)
		start = next
	}
	test.ExpectEquality(t, c.sleeps, 0)
	test.ExpectEquality(t, p.Drift(), time.Duration(0))
}
