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
	"io"
	"sync"
	"time"

	"github.com/heliosemu/helios/hardware/msu/pcm"
)

// stream is an io.Reader over CDDA data. it loops to the start of the data
// if required. the stream is read by the audio output goroutine and
// positioned by the MSU goroutine
type stream struct {
	crit sync.Mutex

	data []byte
	pos  int64
	loop bool

	// called once when the end of a non-looping stream has been reached
	onEnd func()
}

func newStream(data []byte, loop bool) *stream {
	// data must be aligned to a frame
	data = data[:len(data)-len(data)%pcm.FrameSize]
	return &stream{
		data: data,
		loop: loop,
	}
}

// Read implements the io.Reader interface.
func (s *stream) Read(p []byte) (int, error) {
	s.crit.Lock()

	if len(s.data) == 0 {
		s.crit.Unlock()
		return 0, io.EOF
	}

	var n int
	for n < len(p) {
		if s.pos >= int64(len(s.data)) {
			if !s.loop {
				break
			}
			s.pos = 0
		}
		c := copy(p[n:], s.data[s.pos:])
		n += c
		s.pos += int64(c)
	}

	end := n == 0 && !s.loop
	onEnd := s.onEnd
	if end {
		s.onEnd = nil
	}
	s.crit.Unlock()

	if end {
		if onEnd != nil {
			onEnd()
		}
		return 0, io.EOF
	}

	return n, nil
}

func (s *stream) position() time.Duration {
	s.crit.Lock()
	defer s.crit.Unlock()
	return pcm.Duration(s.data[:s.pos])
}

func (s *stream) setPosition(d time.Duration) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.pos = min(pcm.Offset(d), int64(len(s.data)))
}

func (s *stream) finished() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return !s.loop && s.pos >= int64(len(s.data))
}
