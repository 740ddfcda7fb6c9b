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

package bus

import (
	m68k "github.com/user-none/go-chip-m68k"
)

// Size is the width of a bus access. The values are shared with the 68000
// core so that accesses can be passed through without conversion.
type Size = m68k.Size

// List of access sizes.
const (
	Byte = m68k.Byte
	Word = m68k.Word
	Long = m68k.Long
)

// AddressMask is applied to every address before it is compared against an
// address window.
const AddressMask uint32 = 0xffffff

// Mapper is implemented by every device that responds to CPU reads and
// writes.
type Mapper interface {
	Read(addr uint32, size Size) uint32
	Write(addr uint32, data uint32, size Size)
}

// Interceptor is a Mapper that wraps a base Mapper. Accesses that the
// Interceptor does not service must be forwarded to the base Mapper with the
// address unchanged.
type Interceptor interface {
	Mapper
	SetBase(base Mapper)
}

// Closer is implemented by mappers that hold resources that must be released
// at the end of a session. For example, the backup memory controller flushes
// its file on Close().
type Closer interface {
	Close() error
}

// OpenBus returns the value of an undecoded read for the access size.
func OpenBus(size Size) uint32 {
	return size.Mask()
}

// Unmapped is a Mapper that does not decode any address. Reads return the
// open bus value and writes are dropped.
type Unmapped struct{}

// Read implements the Mapper interface.
func (Unmapped) Read(_ uint32, size Size) uint32 {
	return OpenBus(size)
}

// Write implements the Mapper interface.
func (Unmapped) Write(_ uint32, _ uint32, _ Size) {
}

// ReadBytes decomposes a multi-byte read into big-endian sequential byte
// reads. The most significant byte is read from the lowest address. The read
// function is responsible for any masking of the address.
func ReadBytes(addr uint32, size Size, read func(addr uint32) uint8) uint32 {
	var v uint32
	for i := range uint32(size) {
		v = (v << 8) | uint32(read(addr+i))
	}
	return v
}

// WriteBytes decomposes a multi-byte write into big-endian sequential byte
// writes. The most significant byte is written to the lowest address.
func WriteBytes(addr uint32, data uint32, size Size, write func(addr uint32, data uint8)) {
	n := uint32(size)
	for i := range n {
		write(addr+i, uint8(data>>((n-1-i)*8)))
	}
}
