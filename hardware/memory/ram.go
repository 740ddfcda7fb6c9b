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

package memory

import (
	"fmt"
	"strings"

	"github.com/heliosemu/helios/hardware/memory/bus"
	"github.com/heliosemu/helios/hardware/memory/memorymap"
)

// RAM is the 64k of work RAM. It is mirrored throughout the RAM area of the
// address space.
type RAM struct {
	memory []uint8
}

// NewRAM is the preferred method of initialisation for the RAM memory area.
func NewRAM() *RAM {
	return &RAM{
		memory: make([]uint8, memorymap.RAMSize),
	}
}

// String returns the first 128 bytes of RAM in a grid.
func (ram RAM) String() string {
	s := strings.Builder{}
	s.WriteString("      -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("    ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")
	for y := range 8 {
		s.WriteString(fmt.Sprintf("%X- | ", y))
		for x := range 16 {
			s.WriteString(fmt.Sprintf(" %02x", ram.memory[(y*16)+x]))
		}
		s.WriteString("\n")
	}
	return strings.Trim(s.String(), "\n")
}

// Reset clears the contents of RAM.
func (ram *RAM) Reset() {
	clear(ram.memory)
}

// Peek returns the byte at the address without side effects.
func (ram RAM) Peek(address uint32) uint8 {
	return ram.memory[address&memorymap.MaskRAM]
}

// Poke sets the byte at the address.
func (ram *RAM) Poke(address uint32, data uint8) {
	ram.memory[address&memorymap.MaskRAM] = data
}

// Read implements the bus.Mapper interface. Multi-byte reads that cross the
// end of RAM wrap to the start.
func (ram RAM) Read(address uint32, size bus.Size) uint32 {
	return bus.ReadBytes(address, size, ram.Peek)
}

// Write implements the bus.Mapper interface.
func (ram *RAM) Write(address uint32, data uint32, size bus.Size) {
	bus.WriteBytes(address, data, size, ram.Poke)
}

// Snapshot returns a copy of RAM.
func (ram RAM) Snapshot() []uint8 {
	d := make([]uint8, len(ram.memory))
	copy(d, ram.memory)
	return d
}

// Plumb replaces the contents of RAM.
func (ram *RAM) Plumb(data []uint8) {
	copy(ram.memory, data)
}
