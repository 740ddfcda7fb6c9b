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
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/emulation"
	"github.com/heliosemu/helios/hardware"
	"github.com/heliosemu/helios/hardware/video"
	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/test"
)

// events records the order in which the fake components are called. it is
// only written to by the scheduler goroutine
type events struct {
	list []string
}

func (e *events) add(s string) {
	e.list = append(e.list, s)
}

type console struct {
	ev      *events
	resets  int
	audio   int
	closed  int
	devices []hardware.Device
}

func (c *console) Reset() {
	c.resets++
	c.ev.add("reset")
}

func (c *console) ResetAudio() {
	c.audio++
	c.ev.add("audio")
}

func (c *console) Devices() []hardware.Device {
	c.ev.add("devices")
	return c.devices
}

func (c *console) Close() error {
	c.closed++
	return nil
}

type vdp struct {
	triggers []video.FrameTrigger
	mode     video.Mode
	resets   int
}

func (v *vdp) VideoMode() video.Mode {
	return v.mode
}

func (v *vdp) ScreenBuffer() []uint32 {
	return nil
}

func (v *vdp) AddFrameTrigger(t video.FrameTrigger) {
	v.triggers = append(v.triggers, t)
}

func (v *vdp) Reset() {
	v.resets++
}

// sched produces a new frame on every iteration of the Run() loop
type sched struct {
	ev     *events
	video  *vdp
	cancel atomic.Bool
	frame  int
	failAt int
}

func (s *sched) Run() error {
	for !s.cancel.Load() {
		s.frame++
		if s.failAt > 0 && s.frame == s.failAt {
			return errors.New("bad instruction")
		}
		for _, t := range s.video.triggers {
			if err := t.NewFrame(s.frame); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *sched) Cancel() {
	s.cancel.Store(true)
}

func (s *sched) ResetCycleCounters() {
	s.ev.add("counters")
}

type display struct {
	ev     *events
	frames atomic.Int64
	labels []string
	resets int
}

func (d *display) Render(_ []uint32, label string, _ video.Mode) error {
	d.ev.add("render")
	d.labels = append(d.labels, label)
	d.frames.Add(1)
	return nil
}

func (d *display) Reset() {
	d.resets++
}

type input struct {
	ev     *events
	handle func()
}

func (in *input) HandleEvents() {
	in.ev.add("input")
	if in.handle != nil {
		in.handle()
	}
}

type rig struct {
	ev      *events
	con     *console
	vdp     *vdp
	sched   *sched
	display *display
	input   *input
	session *emulation.Session
}

func newRig(cfg emulation.Config) *rig {
	r := &rig{ev: &events{}}
	r.con = &console{ev: r.ev}
	r.vdp = &vdp{mode: video.Mode{Width: 320, Height: 224}}
	r.sched = &sched{ev: r.ev, video: r.vdp}
	r.display = &display{ev: r.ev}
	r.input = &input{ev: r.ev}

	cfg.Interval = time.Second / 60
	cfg.FullThrottle = true
	r.session = emulation.NewSession(logger.Allow, r.con, r.vdp, r.sched, r.display, cfg)
	r.session.SetInput(r.input)
	return r
}

func TestBoundaryOrder(t *testing.T) {
	r := newRig(emulation.Config{FrameLimit: 1})

	fn := filepath.Join(t.TempDir(), "test.state")
	r.session.RequestSaveState(fn)
	r.session.RequestSoftReset()

	test.DemandSuccess(t, r.session.Start())
	test.DemandSuccess(t, r.session.Wait())

	expected := []string{"render", "devices", "counters", "reset", "input"}
	test.DemandEquality(t, len(r.ev.list), len(expected))
	for i := range expected {
		test.ExpectEquality(t, r.ev.list[i], expected[i], i)
	}

	_, err := os.Stat(fn)
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, r.session.Close())
}

func TestSoftResetOnce(t *testing.T) {
	r := newRig(emulation.Config{FrameLimit: 10})

	// number of resets seen by the input at each frame
	var seen []int
	r.input.handle = func() {
		seen = append(seen, r.con.resets)
		if len(seen) == 3 {
			r.session.RequestSoftReset()
		}
	}

	test.DemandSuccess(t, r.session.Start())
	test.DemandSuccess(t, r.session.Wait())

	test.ExpectEquality(t, r.con.resets, 1)
	test.DemandEquality(t, len(seen), 10)
	test.ExpectEquality(t, seen[2], 0)
	test.ExpectEquality(t, seen[3], 1)
	test.ExpectEquality(t, seen[9], 1)
	test.ExpectEquality(t, r.session.Frame(), 10)

	test.ExpectSuccess(t, r.session.Close())
}

func TestLoadState(t *testing.T) {
	r := newRig(emulation.Config{FrameLimit: 3})

	fn := filepath.Join(t.TempDir(), "test.state")
	r.input.handle = func() {
		switch r.session.Frame() {
		case 1:
			r.session.RequestSaveState(fn)
		case 2:
			r.session.RequestLoadState(fn)
		}
	}

	test.DemandSuccess(t, r.session.Start())
	test.DemandSuccess(t, r.session.Wait())
	test.ExpectEquality(t, r.con.audio, 1)

	test.ExpectSuccess(t, r.session.Close())

	// the audio is reset again when the session is closed
	test.ExpectEquality(t, r.con.audio, 2)
}

func TestPause(t *testing.T) {
	r := newRig(emulation.Config{FrameLimit: 5})

	r.session.TogglePause()
	test.ExpectSuccess(t, r.session.Paused())
	test.DemandSuccess(t, r.session.Start())

	// the session pauses at the first frame boundary
	deadline := time.Now().Add(time.Second)
	for r.display.frames.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	test.ExpectEquality(t, r.display.frames.Load(), int64(1))
	test.ExpectSuccess(t, r.session.Running())

	r.session.TogglePause()
	test.ExpectFailure(t, r.session.Paused())
	test.DemandSuccess(t, r.session.Wait())
	test.ExpectEquality(t, r.display.frames.Load(), int64(5))

	test.ExpectSuccess(t, r.session.Close())
}

func TestClose(t *testing.T) {
	r := newRig(emulation.Config{})
	test.DemandSuccess(t, r.session.Start())

	deadline := time.Now().Add(time.Second)
	for r.display.frames.Load() < 10 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	test.ExpectSuccess(t, r.session.Close())
	test.ExpectFailure(t, r.session.Running())
	test.ExpectEquality(t, r.con.closed, 1)
	test.ExpectEquality(t, r.display.resets, 1)
	test.ExpectEquality(t, r.vdp.resets, 1)

	// closing more than once does not reset the devices again
	test.ExpectSuccess(t, r.session.Close())
	test.ExpectEquality(t, r.con.closed, 1)
}

func TestCloseWhilePaused(t *testing.T) {
	r := newRig(emulation.Config{})
	r.session.TogglePause()
	test.DemandSuccess(t, r.session.Start())

	deadline := time.Now().Add(time.Second)
	for r.display.frames.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	test.ExpectSuccess(t, r.session.Close())
	test.ExpectFailure(t, r.session.Running())
	test.ExpectFailure(t, r.session.Paused())
}

func TestFailure(t *testing.T) {
	r := newRig(emulation.Config{})
	r.sched.failAt = 3

	test.DemandSuccess(t, r.session.Start())
	err := r.session.Wait()
	test.ExpectSuccess(t, curated.Is(err, emulation.ROMStopped))
	test.ExpectFailure(t, r.session.Running())

	// devices are reset without waiting for Close()
	test.ExpectEquality(t, r.con.closed, 1)
	test.ExpectEquality(t, r.display.frames.Load(), int64(2))

	test.ExpectSuccess(t, r.session.Close())
	test.ExpectEquality(t, r.con.closed, 1)
}

func TestStartTwice(t *testing.T) {
	r := newRig(emulation.Config{FrameLimit: 1})
	test.DemandSuccess(t, r.session.Start())
	test.ExpectFailure(t, r.session.Start())
	test.ExpectSuccess(t, r.session.Wait())
	test.ExpectSuccess(t, r.session.Close())
}

// stuckSched never returns from Run() and ignores Cancel()
type stuckSched struct {
	release chan struct{}
}

func (s *stuckSched) Run() error {
	<-s.release
	return nil
}

func (s *stuckSched) Cancel() {}

func (s *stuckSched) ResetCycleCounters() {}

func TestCloseTimeout(t *testing.T) {
	ev := &events{}
	con := &console{ev: ev}
	vd := &vdp{}
	disp := &display{ev: ev}
	sc := &stuckSched{release: make(chan struct{})}
	defer close(sc.release)

	s := emulation.NewSession(logger.Allow, con, vd, sc, disp, emulation.Config{
		Interval:     time.Second / 60,
		FullThrottle: true,
		CloseLimit:   50 * time.Millisecond,
	})
	test.DemandSuccess(t, s.Start())

	err := s.Close()
	test.ExpectSuccess(t, curated.Is(err, emulation.CloseTimeout))

	// devices are reset even though the scheduler did not stop
	test.ExpectEquality(t, con.closed, 1)
	test.ExpectEquality(t, con.audio, 1)
	test.ExpectEquality(t, disp.resets, 1)
	test.ExpectEquality(t, vd.resets, 1)
}
