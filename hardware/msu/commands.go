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

package msu

import (
	"fmt"
	"math"
)

// Command is the value written to the command register.
type Command uint8

// List of valid Command values.
const (
	NoCommand Command = 0x00
	Play      Command = 0x11
	PlayLoop  Command = 0x12
	Pause     Command = 0x13
	Resume    Command = 0x14
	Volume    Command = 0x15
)

func (c Command) String() string {
	switch c {
	case Play:
		return "PLAY"
	case PlayLoop:
		return "PLAY_LOOP"
	case Pause:
		return "PAUSE"
	case Resume:
		return "RESUME"
	case Volume:
		return "VOL"
	}
	return "NONE"
}

// commands maps the value written to the command register to a Command.
// values not in the table are NoCommand
var commands = map[uint8]Command{
	0x11: Play,
	0x12: PlayLoop,
	0x13: Pause,
	0x14: Resume,
	0x15: Volume,
}

// LookupCommand returns the Command for the value written to the command
// register.
func LookupCommand(v uint8) Command {
	if c, ok := commands[v]; ok {
		return c
	}
	return NoCommand
}

// CommandRegister is the staged command and argument. It is committed by a
// write to the clock register.
type CommandRegister struct {
	Command Command
	Arg     uint8
}

func (r CommandRegister) String() string {
	return fmt.Sprintf("%s %d", r.Command, r.Arg)
}

// JobKind is the type of work performed by a Job.
type JobKind int

// List of valid JobKind values.
const (
	JobPlay JobKind = iota
	JobPause
	JobResume
	JobVolume
	JobStop
)

func (k JobKind) String() string {
	switch k {
	case JobPlay:
		return "play"
	case JobPause:
		return "pause"
	case JobResume:
		return "resume"
	case JobVolume:
		return "volume"
	case JobStop:
		return "stop"
	}
	return "unknown"
}

// Job describes the work resulting from a committed command.
type Job struct {
	Kind JobKind

	// JobPlay
	Track int
	Loop  bool

	// JobPause. fade time in seconds
	Fade float64

	// JobVolume. gain in decibels
	Gain float64
}

func (j Job) String() string {
	switch j.Kind {
	case JobPlay:
		if j.Loop {
			return fmt.Sprintf("play track %d (looping)", j.Track)
		}
		return fmt.Sprintf("play track %d", j.Track)
	case JobPause:
		return fmt.Sprintf("pause (fade %.2fs)", j.Fade)
	case JobVolume:
		return fmt.Sprintf("volume %.2fdB", j.Gain)
	}
	return j.Kind.String()
}

// Gain converts the argument of the VOL command to a gain in decibels. An
// argument of 255 is the normal volume. Zero is treated as 0.1 so that the
// result is finite.
func Gain(v uint8) float64 {
	return 20 * math.Log10(math.Max(float64(v), 0.1)/255.0)
}

// FadeTime converts the argument of the PAUSE command to a fade time in
// seconds. The argument is measured in frames of 1/75th of a second.
func FadeTime(v uint8) float64 {
	return float64(v) / 75.0
}
