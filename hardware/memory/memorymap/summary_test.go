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

package memorymap_test

import (
	"testing"

	"github.com/heliosemu/helios/hardware/memory/memorymap"
	"github.com/heliosemu/helios/test"
)

const validMemMap = `000000 -> 3fffff	Cartridge
400000 -> 7fffff	Expansion
800000 -> 9fffff	Undefined
a00000 -> a0ffff	Z80
a10000 -> a10fff	IO
a11000 -> a1ffff	Control
a20000 -> bfffff	Undefined
c00000 -> dfffff	VDP
e00000 -> ffffff	RAM
`

func TestMemory(t *testing.T) {
	test.ExpectEquality(t, memorymap.Summary(), validMemMap)
}

func TestMapAddress(t *testing.T) {
	test.ExpectSuccess(t, memorymap.IsArea(memorymap.VersionRegister, memorymap.IO))
	test.ExpectSuccess(t, memorymap.IsArea(memorymap.SRAMLock, memorymap.Control))
	test.ExpectSuccess(t, memorymap.IsArea(0x200001, memorymap.Cartridge))
	test.ExpectSuccess(t, memorymap.IsArea(0x420000, memorymap.Expansion))
	test.ExpectSuccess(t, memorymap.IsArea(0xc00004, memorymap.VDP))

	// addresses are masked to 24 bits
	a, area := memorymap.MapAddress(0xffff0000)
	test.ExpectEquality(t, a, 0xff0000)
	test.ExpectEquality(t, area, memorymap.RAM)
}
