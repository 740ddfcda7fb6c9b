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

package memorymap

// Area represents the different areas of memory.
type Area int

func (a Area) String() string {
	switch a {
	case Cartridge:
		return "Cartridge"
	case Expansion:
		return "Expansion"
	case Z80:
		return "Z80"
	case IO:
		return "IO"
	case Control:
		return "Control"
	case VDP:
		return "VDP"
	case RAM:
		return "RAM"
	}

	return "Undefined"
}

// The different memory areas of the console.
const (
	Undefined Area = iota
	Cartridge
	Expansion
	Z80
	IO
	Control
	VDP
	RAM
)

// The origin and memory top for each area of memory.
const (
	OriginCart      = uint32(0x000000)
	MemtopCart      = uint32(0x3fffff)
	OriginExpansion = uint32(0x400000)
	MemtopExpansion = uint32(0x7fffff)
	OriginZ80       = uint32(0xa00000)
	MemtopZ80       = uint32(0xa0ffff)
	OriginIO        = uint32(0xa10000)
	MemtopIO        = uint32(0xa10fff)
	OriginControl   = uint32(0xa11000)
	MemtopControl   = uint32(0xa1ffff)
	OriginVDP       = uint32(0xc00000)
	MemtopVDP       = uint32(0xdfffff)
	OriginRAM       = uint32(0xe00000)
	MemtopRAM       = uint32(0xffffff)
)

// Memtop is the top most address of the 24 bit address space.
const Memtop = uint32(0xffffff)

// Work RAM is 64k and is mirrored throughout the RAM area. MaskRAM keeps only
// the bits relevant to a work RAM address.
const (
	RAMSize = 0x10000
	MaskRAM = uint32(RAMSize - 1)
)

// Registers outside of the video chip that are decoded by the console.
const (
	// the version register reports the region and whether an expansion
	// unit is attached
	VersionRegister = uint32(0xa10001)

	// bit zero of the Z80 bus request register is zero when the bus has
	// been granted to the 68000
	Z80BusRequest = uint32(0xa11100)
	Z80Reset      = uint32(0xa11200)

	// the SRAM lock register of the cartridge. bit zero enables the backup
	// memory and bit one write protects it
	SRAMLock = uint32(0xa130f1)

	// writes to the TMSS register are accepted and ignored
	TMSS = uint32(0xa14000)
)

// MapAddress returns the area of memory the address belongs to. The address
// is masked to 24 bits.
func MapAddress(address uint32) (uint32, Area) {
	address &= Memtop

	switch {
	case address <= MemtopCart:
		return address, Cartridge
	case address <= MemtopExpansion:
		return address, Expansion
	case address < OriginZ80:
		return address, Undefined
	case address <= MemtopZ80:
		return address, Z80
	case address <= MemtopIO:
		return address, IO
	case address <= MemtopControl:
		return address, Control
	case address < OriginVDP:
		return address, Undefined
	case address <= MemtopVDP:
		return address, VDP
	}

	return address, RAM
}

// IsArea returns true if the address is in the specified area.
func IsArea(address uint32, area Area) bool {
	_, a := MapAddress(address)
	return area == a
}
