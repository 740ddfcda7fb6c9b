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

package i2c

import (
	"slices"
)

// EEPROM is the non-volatile memory behind the i2c interface.
type EEPROM struct {
	// the next address an i2c read/write operation will access
	Address uint16

	// amend Data only through put() and Load()
	Data []uint8

	// the data as it is on disk. data is mutable and we need a way of
	// comparing what's on disk with what's in memory
	DiskData []uint8

	pageSize uint16
	mask     uint16
}

func newEEPROM(size int, pageSize int) *EEPROM {
	ee := &EEPROM{
		Data:     make([]uint8, size),
		DiskData: make([]uint8, size),
		pageSize: uint16(pageSize),
		mask:     uint16(size - 1),
	}

	// erased EEPROM cells read as 0xff
	for i := range ee.Data {
		ee.Data[i] = 0xff
	}
	copy(ee.DiskData, ee.Data)

	return ee
}

// Load replaces the EEPROM contents with data from disk. Data that is too
// short leaves the remaining cells erased. Data that is too long is
// truncated.
func (ee *EEPROM) Load(data []uint8) {
	n := copy(ee.Data, data)
	for i := n; i < len(ee.Data); i++ {
		ee.Data[i] = 0xff
	}
	copy(ee.DiskData, ee.Data)
}

// Saved should be called after the contents of Data have been written to
// disk.
func (ee *EEPROM) Saved() {
	copy(ee.DiskData, ee.Data)
}

// IsSaved returns true if disk data is the same as data.
func (ee *EEPROM) IsSaved() bool {
	return slices.Equal(ee.Data, ee.DiskData)
}

func (ee *EEPROM) setAddress(addr uint16) {
	ee.Address = addr & ee.mask
}

// put writes to the current address. writes wrap around inside the current
// page.
func (ee *EEPROM) put(v uint8) {
	ee.Data[ee.Address] = v
	page := ee.Address &^ (ee.pageSize - 1)
	ee.Address = page | ((ee.Address + 1) & (ee.pageSize - 1))
}

// get reads from the current address. sequential reads cross page
// boundaries and wrap at the end of the memory.
func (ee *EEPROM) get() uint8 {
	v := ee.Data[ee.Address]
	ee.Address = (ee.Address + 1) & ee.mask
	return v
}
