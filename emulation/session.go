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
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware"
	"github.com/heliosemu/helios/hardware/scheduler"
	"github.com/heliosemu/helios/hardware/video"
	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/telemetry"
)

// ROMStopped is the error pattern returned by Err() when the session ended
// because of an error in the emulation.
const ROMStopped = "ROM stopped running: %v"

// CloseTimeout is the error pattern returned by Close() when the scheduler
// goroutine does not end in time.
const CloseTimeout = "emulation: scheduler did not stop within %v"

// timing of the bounded wait in Close()
const (
	closePoll  = 10 * time.Millisecond
	closeLimit = 2 * time.Second
)

// Display is the sink for rendered frames.
type Display interface {
	Render(pixels []uint32, label string, mode video.Mode) error
	Reset()
}

// Input is polled once per frame.
type Input interface {
	HandleEvents()
}

// Console is the hardware run by a Session. Implemented by hardware.Console.
type Console interface {
	Reset()
	ResetAudio()
	Devices() []hardware.Device
	Close() error
}

// Video is the video unit of the console. Implemented by video.VDP.
type Video interface {
	VideoMode() video.Mode
	ScreenBuffer() []uint32
	AddFrameTrigger(t video.FrameTrigger)
	Reset()
}

// Scheduler drives the console. Implemented by scheduler.Scheduler.
type Scheduler interface {
	Run() error
	Cancel()
	ResetCycleCounters()
}

// Config is used to create a new Session.
type Config struct {
	// the frame interval of the console's region
	Interval time.Duration

	// Clock can be nil, in which case the WallClock is used
	Clock Clock

	FullThrottle bool

	// pass the frame rate to the display with every frame
	ShowFPS bool

	// identifies the loaded ROM in save-state files
	ROM string

	// the session ends normally after this number of frames. a value of zero
	// means there is no limit
	FrameLimit int

	// Telemetry can be nil
	Telemetry *telemetry.Telemetry

	// how long Close() waits for the scheduler goroutine to end. a value of
	// zero means two seconds
	CloseLimit time.Duration
}

type stateKind int

const (
	stateSave stateKind = iota
	stateLoad
)

func (k stateKind) String() string {
	if k == stateSave {
		return "save"
	}
	return "load"
}

type stateRequest struct {
	kind stateKind
	path string
}

// Session runs a console on its own goroutine. The Start(), Close() and
// request functions are safe to call from any goroutine.
type Session struct {
	perm logger.Permission
	cfg  Config

	con   Console
	vdp   Video
	sched Scheduler
	pacer *Pacer

	display Display
	input   Input

	// the following fields are only accessed by the scheduler goroutine
	frame int
	start time.Time
	mode  video.Mode
	label string

	paused  atomic.Bool
	release chan struct{}

	state     atomic.Pointer[stateRequest]
	softReset atomic.Bool

	started atomic.Bool
	running atomic.Bool
	quit    chan struct{}
	done    chan struct{}
	err     error

	quitOnce  sync.Once
	resetOnce sync.Once
}

// NewSession is the preferred method of initialisation for the Session type.
// The session registers itself as a frame trigger with the video unit.
func NewSession(perm logger.Permission, con Console, vdp Video, sched Scheduler, display Display, cfg Config) *Session {
	clock := cfg.Clock
	if clock == nil {
		clock = WallClock
	}

	s := &Session{
		perm:    perm,
		cfg:     cfg,
		con:     con,
		vdp:     vdp,
		sched:   sched,
		pacer:   NewPacerWithClock(cfg.Interval, clock),
		display: display,
		release: make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.pacer.SetFullThrottle(cfg.FullThrottle)
	vdp.AddFrameTrigger(s)

	return s
}

// NewConsoleSession creates a Session for a hardware.Console with a new
// scheduler.
func NewConsoleSession(perm logger.Permission, con *hardware.Console, display Display, cfg Config) *Session {
	if cfg.Interval == 0 {
		cfg.Interval = con.Cart.Region.FrameInterval()
	}
	sched := scheduler.NewScheduler(con.CPU, con.VDP, con)
	return NewSession(perm, con, con.VDP, sched, display, cfg)
}

func (s *Session) String() string {
	return fmt.Sprintf("session: running=%v paused=%v", s.running.Load(), s.paused.Load())
}

// SetInput sets the input to be polled every frame. It must be called before
// Start().
func (s *Session) SetInput(input Input) {
	s.input = input
}

// Pacer returns the pacer used by the session.
func (s *Session) Pacer() *Pacer {
	return s.pacer
}

// Start the scheduler goroutine. A session can only be started once.
func (s *Session) Start() error {
	if !s.started.CompareAndSwap(false, true) {
		return curated.Errorf("emulation: session already started")
	}

	s.running.Store(true)
	s.start = s.pacer.Now()
	s.mode = s.vdp.VideoMode()
	logger.Logf(s.perm, "emulation", "video mode: %s", s.mode)

	go s.run()

	return nil
}

func (s *Session) run() {
	defer close(s.done)

	err := s.sched.Run()
	if err != nil {
		logger.Log(s.perm, "emulation", err)
		s.err = curated.Errorf(ROMStopped, err)
		s.running.Store(false)
		s.resetDevices()
		return
	}

	s.running.Store(false)
}

// Running returns true if the scheduler goroutine is running.
func (s *Session) Running() bool {
	return s.running.Load()
}

// Done returns a channel that is closed when the scheduler goroutine ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err returns the error that ended the session. Should only be called after
// the Done() channel has been closed.
func (s *Session) Err() error {
	return s.err
}

// Wait blocks until the session ends and returns the result of Err().
func (s *Session) Wait() error {
	<-s.done
	return s.err
}

// Frame returns the number of frames completed. Should only be called from
// the scheduler goroutine or after the session has ended.
func (s *Session) Frame() int {
	return s.frame
}

// Paused returns true if the session is paused.
func (s *Session) Paused() bool {
	return s.paused.Load()
}

// TogglePause flips the pause state. The scheduler goroutine pauses at the
// next frame boundary.
func (s *Session) TogglePause() {
	p := !s.paused.Load()
	s.paused.Store(p)
	logger.Logf(s.perm, "emulation", "pause: %v", p)

	// release the scheduler goroutine if it is waiting. the pause loop checks
	// the flag again so a release token left in the channel is harmless
	select {
	case s.release <- struct{}{}:
	default:
	}
}

// RequestSaveState saves the state of the console at the next frame
// boundary. Replaces any other pending save or load request.
func (s *Session) RequestSaveState(path string) {
	s.state.Store(&stateRequest{kind: stateSave, path: path})
	logger.Logf(s.perm, "emulation", "save state requested: %s", path)
}

// RequestLoadState loads the state of the console at the next frame
// boundary. Replaces any other pending save or load request.
func (s *Session) RequestLoadState(path string) {
	s.state.Store(&stateRequest{kind: stateLoad, path: path})
	logger.Logf(s.perm, "emulation", "load state requested: %s", path)
}

// RequestSoftReset resets the console at the next frame boundary.
func (s *Session) RequestSoftReset() {
	s.softReset.Store(true)
}

// Close ends the session and resets the console. The backup memory is
// flushed to disk.
func (s *Session) Close() error {
	if s.paused.Load() {
		s.TogglePause()
	}

	s.quitOnce.Do(func() {
		close(s.quit)
	})
	s.sched.Cancel()

	if s.started.Load() {
		limit := s.cfg.CloseLimit
		if limit == 0 {
			limit = closeLimit
		}

		deadline := time.Now().Add(limit)
		for s.running.Load() {
			if time.Now().After(deadline) {
				// the devices are reset anyway so that backup memory is
				// flushed and audio is stopped
				timeout := curated.Errorf(CloseTimeout, limit)
				logger.Log(s.perm, "emulation", timeout)
				if err := s.resetDevices(); err != nil {
					return errors.Join(timeout, err)
				}
				return timeout
			}
			time.Sleep(closePoll)
		}
		<-s.done
	}

	return s.resetDevices()
}

func (s *Session) resetDevices() error {
	var err error
	s.resetOnce.Do(func() {
		s.display.Reset()
		s.con.ResetAudio()
		err = s.con.Close()
		if err != nil {
			logger.Log(s.perm, "emulation", err)
		}
		if s.cfg.Telemetry != nil {
			s.cfg.Telemetry.Reset()
		}
		s.vdp.Reset()
		logger.Log(s.perm, "emulation", "session ended")
	})
	return err
}
