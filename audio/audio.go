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
	"math"
	"time"

	"github.com/heliosemu/helios/logger"
)

// Event is sent to the Listener of a Clip.
type Event int

// List of valid Event values.
const (
	EventStart Event = iota
	EventStop

	// the end of a non-looping clip has been reached
	EventEnd
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventEnd:
		return "end"
	}
	return "unknown"
}

// Listener functions receive clip events. They may be called from the audio
// output goroutine and must not block.
type Listener func(Event)

// Clip is an opened piece of CDDA data.
type Clip interface {
	Start()
	Stop()
	Running() bool

	// the current position of playback from the start of the clip
	Position() time.Duration
	SetPosition(time.Duration)

	// gain in decibels. zero is the normal volume and negative values
	// attenuate the volume
	SetGain(db float64)

	// the previous listener is returned. a nil listener removes the
	// current listener
	SetListener(Listener) Listener

	Close() error
}

// Output opens clips.
type Output interface {
	Open(data []byte, loop bool) (Clip, error)
	String() string
}

// NewOutput returns the best available output.
func NewOutput(perm logger.Permission) Output {
	o, err := NewOto()
	if err != nil {
		logger.Logf(perm, "audio", "using null output: %v", err)
		return NewNull()
	}
	return o
}

// GainToVolume converts a gain in decibels to a linear volume value.
func GainToVolume(db float64) float64 {
	return math.Pow(10, db/20)
}
