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
	"time"

	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/savestate"
)

// NewFrame implements the video.FrameTrigger interface. It is called by the
// video unit on the scheduler goroutine at the end of every frame.
func (s *Session) NewFrame(_ int) error {
	// 1. sync
	prevStart := s.start
	s.start = s.pacer.SyncToNextFrame(prevStart)
	s.frame++

	// 2. video mode
	if m := s.vdp.VideoMode(); m != s.mode {
		logger.Logf(s.perm, "emulation", "video mode: %s", m)
		s.mode = m
	}

	// 3. render
	s.stats(prevStart)
	label := ""
	if s.cfg.ShowFPS {
		label = s.label
	}
	if err := s.display.Render(s.vdp.ScreenBuffer(), label, s.mode); err != nil {
		return err
	}

	// 4. save and load state
	s.processState()

	// 5. pause
	s.pauseAndWait()

	// 6. cycle counters
	s.sched.ResetCycleCounters()

	// 7. soft reset
	if s.softReset.Swap(false) {
		s.con.Reset()
	}

	// 8. input
	if s.input != nil {
		s.input.HandleEvents()
	}

	if s.cfg.FrameLimit > 0 && s.frame >= s.cfg.FrameLimit {
		s.sched.Cancel()
	}

	return nil
}

func (s *Session) stats(prevStart time.Time) {
	if s.cfg.Telemetry == nil {
		return
	}
	var fps float64
	if d := s.start.Sub(prevStart); d > 0 {
		fps = float64(time.Second) / float64(d)
	}
	if label, ok := s.cfg.Telemetry.NewFrame(fps, s.pacer.Drift()); ok {
		s.label = label
	}
}

func (s *Session) processState() {
	req := s.state.Swap(nil)
	if req == nil {
		return
	}

	var err error
	switch req.kind {
	case stateSave:
		err = savestate.Save(req.path, s.cfg.ROM, s.con.Devices())
	case stateLoad:
		err = savestate.Load(req.path, s.cfg.ROM, s.con.Devices())
		if err == nil {
			s.con.ResetAudio()
		}
	}

	if err != nil {
		logger.Logf(s.perm, "emulation", "%s state: %v", req.kind, err)
		return
	}
	logger.Logf(s.perm, "emulation", "%s state: %s", req.kind, req.path)
}

// pauseAndWait blocks until the pause flag is cleared or the session is
// closed
func (s *Session) pauseAndWait() {
	if !s.paused.Load() {
		return
	}

	logger.Log(s.perm, "emulation", "paused")
	for s.paused.Load() {
		select {
		case <-s.release:
		case <-s.quit:
			return
		}
	}
	logger.Log(s.perm, "emulation", "resumed")

	// the time spent paused is not drift
	s.start = s.pacer.Now()
}
