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

package backup

import (
	"encoding/binary"
	"fmt"

	"github.com/heliosemu/helios/hardware/memory/bus"
)

// Default bounds of the backup memory window. Used when the cartridge header
// does not declare any backup memory.
const (
	DefaultStart uint32 = 0x200000
	DefaultEnd   uint32 = 0x20ffff
)

// DefaultSize is the size of the SRAM buffer in bytes. Addresses in the
// window are masked to this size.
const DefaultSize = 0x10000

// location of the backup memory declaration in the cartridge header
const (
	headerID    = 0x1b0
	headerStart = 0x1b4
	headerEnd   = 0x1b8
)

// Window is the inclusive range of addresses serviced by the backup memory.
type Window struct {
	Start uint32
	End   uint32

	// the window was declared in the cartridge header
	Declared bool
}

// DefaultWindow returns the Window used by cartridges that do not declare
// backup memory.
func DefaultWindow() Window {
	return Window{Start: DefaultStart, End: DefaultEnd}
}

// WindowFromHeader reads the backup memory declaration from the cartridge
// header. The declaration is the two characters "RA" followed by two
// attribute bytes and then the start and end address as big-endian 32 bit
// values. Zero values in the declaration are replaced by the defaults.
func WindowFromHeader(rom []uint8) Window {
	w := DefaultWindow()

	if len(rom) < headerEnd+4 {
		return w
	}
	if rom[headerID] != 'R' || rom[headerID+1] != 'A' {
		return w
	}

	start := binary.BigEndian.Uint32(rom[headerStart:]) & bus.AddressMask
	end := binary.BigEndian.Uint32(rom[headerEnd:]) & bus.AddressMask
	if start > 0 {
		w.Start = start
		w.Declared = true
	}
	if end > 0 {
		w.End = end
		w.Declared = true
	}

	return w
}

func (w Window) String() string {
	return fmt.Sprintf("%06x-%06x", w.Start, w.End)
}

// Contains returns true if the address is inside the window. The address is
// masked before the comparison.
func (w Window) Contains(addr uint32) bool {
	addr &= bus.AddressMask
	return addr >= w.Start && addr <= w.End
}

// Overlaps returns true if the window overlaps a ROM of the specified size.
// The ROM is mapped from address zero so the window overlaps if it starts at
// or below the last address of the ROM.
func (w Window) Overlaps(romSize int) bool {
	if romSize <= 0 {
		return false
	}
	return w.Start <= uint32(romSize-1)
}
