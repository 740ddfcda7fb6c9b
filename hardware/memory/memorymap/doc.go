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

// Package memorymap describes the areas of the 24 bit address space of the
// console. The MapAddress() function decides which area an address belongs
// to. Mirrors of an area are resolved by the implementation of that area; work
// RAM for example is mirrored throughout the RAM area and the mask is applied
// by the memory package.
//
// The Summary() function returns a description of the address space. Useful
// for reference:
//
//	000000 -> 3fffff	Cartridge
//	400000 -> 7fffff	Expansion
//	800000 -> 9fffff	Undefined
//	a00000 -> a0ffff	Z80
//	a10000 -> a10fff	IO
//	a11000 -> a1ffff	Control
//	a20000 -> bfffff	Undefined
//	c00000 -> dfffff	VDP
//	e00000 -> ffffff	RAM
package memorymap
