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

// Package input polls the terminal for the keys that control a running
// emulation. The keys are:
//
//	p	toggle pause
//	r	soft reset
//	s	save state
//	l	load state
//	q	quit
//
// Keys are read on a separate goroutine and queued. The queue is drained by
// HandleEvents(), which is called by the emulation once per frame. This means
// that control requests are always made from the same place in the frame.
package input
