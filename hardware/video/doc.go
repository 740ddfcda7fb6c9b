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

// Package video implements the timing and register interface of the video
// display processor.
//
// The VDP is stepped one slot at a time by the scheduler with the RunSlot()
// function. A line is SlotsPerLine slots long and a frame is either LinesNTSC
// or LinesPAL lines long, depending on the region. Frame triggers registered
// with AddFrameTrigger() are called when a new frame begins.
//
// Only the backdrop colour is drawn. The pixel data in VRAM can be written to
// and read from through the data port but it is not rendered.
//
// The vertical interrupt is raised at the start of the vertical blank if it
// has been enabled in register one. The horizontal interrupt counter in
// register ten is also emulated. Pending interrupts are collected with the
// PendingInterrupt() function.
package video
