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

// Package msu implements the MSU-MD interface. Cartridges that use the
// interface play CD-audio tracks by writing commands to the registers of a
// Mega-CD unit. Without a real Mega-CD, the tracks are read from a disc image
// described by a cue sheet next to the ROM image.
//
// Commands are staged by writing to the command and argument registers and
// take effect when the clock register is written:
//
//	move.b  #$11,($a12010)   ; PLAY
//	move.b  #5,($a12011)     ; track 5
//	addq.b  #1,($a1201f)     ; clock
//
// Committed commands become Jobs that are executed on the executor goroutine.
// A PLAY command sets the busy flag immediately so that the status register
// reports the busy state until the track has started (or failed to start).
//
// If the cue sheet or the disc image cannot be loaded the MSU is replaced by
// a NoOp handler. Reads from the NoOp handler return zero and writes are
// ignored.
package msu
