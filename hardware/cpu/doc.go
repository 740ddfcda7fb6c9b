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

// Package cpu adapts the 68000 emulation in the go-chip-m68k package for use
// with the bus.Mapper interface.
//
// The CPU type is the main point of contact. The Step() function executes one
// instruction and returns the number of cycles consumed. A return value of
// zero means that the CPU has halted, which can be confirmed with the Halted()
// function.
//
// Interrupts are requested with the Interrupt() function and are serviced at
// the start of the next call to Step() if the interrupt level is higher than
// the current interrupt mask.
package cpu
