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

package audio

import (
	"sync"
	"sync/atomic"
	"time"
)

// player is the part of a clip that is specific to an output.
type player interface {
	Play()
	Pause()
	SetVolume(float64)
	Close() error
}

// clip is the Clip implementation shared by all outputs.
type clip struct {
	crit    sync.Mutex
	stream  *stream
	player  player
	running bool
	closed  bool

	listener atomic.Pointer[Listener]
}

func newClip(s *stream, p player) *clip {
	c := &clip{
		stream: s,
		player: p,
	}
	s.onEnd = func() {
		c.crit.Lock()
		c.running = false
		c.crit.Unlock()
		c.notify(EventEnd)
	}
	return c
}

func (c *clip) notify(e Event) {
	if l := c.listener.Load(); l != nil && *l != nil {
		(*l)(e)
	}
}

// Start implements the Clip interface.
func (c *clip) Start() {
	c.crit.Lock()
	if c.closed || c.running || c.stream.finished() {
		c.crit.Unlock()
		return
	}
	c.running = true
	c.crit.Unlock()

	// the player may read from the stream immediately
	c.player.Play()
	c.notify(EventStart)
}

// Stop implements the Clip interface.
func (c *clip) Stop() {
	c.crit.Lock()
	if c.closed || !c.running {
		c.crit.Unlock()
		return
	}
	c.running = false
	c.crit.Unlock()

	c.player.Pause()
	c.notify(EventStop)
}

// Running implements the Clip interface.
func (c *clip) Running() bool {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.running
}

// Position implements the Clip interface.
func (c *clip) Position() time.Duration {
	return c.stream.position()
}

// SetPosition implements the Clip interface.
func (c *clip) SetPosition(d time.Duration) {
	c.stream.setPosition(d)
}

// SetGain implements the Clip interface.
func (c *clip) SetGain(db float64) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.player.SetVolume(min(GainToVolume(db), 1.0))
}

// SetListener implements the Clip interface.
func (c *clip) SetListener(l Listener) Listener {
	var p *Listener
	if l != nil {
		p = &l
	}
	if old := c.listener.Swap(p); old != nil {
		return *old
	}
	return nil
}

// Close implements the Clip interface.
func (c *clip) Close() error {
	c.Stop()
	c.crit.Lock()
	defer c.crit.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.player.Close()
}
