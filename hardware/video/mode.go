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

package video

import "fmt"

// Timing values.
const (
	SlotsPerLine = 244
	LinesNTSC    = 262
	LinesPAL     = 313
)

// Maximum dimensions of the visible screen.
const (
	MaxWidth  = 320
	MaxHeight = 240
)

// Interrupt levels.
const (
	VIntLevel = 6
	HIntLevel = 4
)

// Mode describes the visible area of the screen.
type Mode struct {
	Width  int
	Height int
	PAL    bool
}

func (m Mode) String() string {
	tv := "NTSC"
	if m.PAL {
		tv = "PAL"
	}
	return fmt.Sprintf("H%dV%d %s", m.Width/8, m.Height/8, tv)
}

// Lines returns the number of lines in a frame.
func (m Mode) Lines() int {
	if m.PAL {
		return LinesPAL
	}
	return LinesNTSC
}
