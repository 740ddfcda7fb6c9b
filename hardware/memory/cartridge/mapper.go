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

package cartridge

import (
	"github.com/heliosemu/helios/hardware/memory"
	"github.com/heliosemu/helios/hardware/memory/bus"
	"github.com/heliosemu/helios/hardware/memory/cartridge/backup"
	"github.com/heliosemu/helios/hardware/memory/memorymap"
	"github.com/heliosemu/helios/logger"
)

// ModeSetter is implemented by the backup memory controller. The lock
// register of the cartridge changes the SramMode.
type ModeSetter interface {
	SetMode(backup.SramMode)
}

// the controller data ports. active low so 0x7f indicates that no buttons are
// pressed
const (
	dataPort1 = 0xa10003
	dataPort2 = 0xa10005
	dataPortX = 0xa10007
	noButtons = 0x7f
)

// Mapper is the base mapper of the console address space.
type Mapper struct {
	perm logger.Permission

	cart *Cartridge
	ram  *memory.RAM

	// the video chip ports. reads return the open bus value if the video
	// chip has not been attached
	vdp bus.Mapper

	backup ModeSetter

	// the last value written to the lock register
	lock uint8
}

// NewMapper is the preferred method of initialisation for the Mapper type.
func NewMapper(perm logger.Permission, cart *Cartridge, ram *memory.RAM) *Mapper {
	return &Mapper{
		perm: perm,
		cart: cart,
		ram:  ram,
		vdp:  bus.Unmapped{},
	}
}

// AttachVDP connects the video chip ports to the mapper.
func (m *Mapper) AttachVDP(vdp bus.Mapper) {
	if vdp == nil {
		vdp = bus.Unmapped{}
	}
	m.vdp = vdp
}

// AttachBackup connects the lock register to the backup memory controller.
func (m *Mapper) AttachBackup(b ModeSetter) {
	m.backup = b
}

// Lock returns the value of the lock register.
func (m *Mapper) Lock() uint8 {
	return m.lock
}

// Reset the lock register.
func (m *Mapper) Reset() {
	m.lock = 0
}

// Read implements the bus.Mapper interface.
func (m *Mapper) Read(addr uint32, size bus.Size) uint32 {
	addr, area := memorymap.MapAddress(addr)

	switch area {
	case memorymap.Cartridge:
		return bus.ReadBytes(addr, size, m.readROM)
	case memorymap.RAM:
		return m.ram.Read(addr, size)
	case memorymap.VDP:
		return m.vdp.Read(addr, size)
	case memorymap.IO:
		return bus.ReadBytes(addr, size, m.readIO)
	case memorymap.Control:
		return bus.ReadBytes(addr, size, m.readControl)
	}

	return bus.OpenBus(size)
}

func (m *Mapper) readROM(addr uint32) uint8 {
	if addr >= uint32(len(m.cart.ROM)) {
		return 0xff
	}
	return m.cart.ROM[addr]
}

// the IO registers are at odd addresses. the even byte of each register reads
// the same value. undecoded addresses read as open bus
func (m *Mapper) readIO(addr uint32) uint8 {
	switch addr | 0x01 {
	case memorymap.VersionRegister:
		return m.cart.Region.VersionCode
	case dataPort1, dataPort2, dataPortX:
		return noButtons
	}
	return 0xff
}

func (m *Mapper) readControl(addr uint32) uint8 {
	switch addr {
	case memorymap.Z80BusRequest:
		// the bus is always granted
		return 0x00
	case memorymap.SRAMLock:
		return m.lock
	}
	return 0xff
}

// Write implements the bus.Mapper interface.
func (m *Mapper) Write(addr uint32, data uint32, size bus.Size) {
	addr, area := memorymap.MapAddress(addr)

	switch area {
	case memorymap.Cartridge:
		logger.Logf(m.perm, "mapper", "write to rom at %06x ignored", addr)
	case memorymap.RAM:
		m.ram.Write(addr, data, size)
	case memorymap.VDP:
		m.vdp.Write(addr, data, size)
	case memorymap.Control:
		bus.WriteBytes(addr, data, size, m.writeControl)
	case memorymap.IO:
		// controller ports are not emulated
	default:
		logger.Logf(m.perm, "mapper", "undecoded write to %06x (%s)", addr, area)
	}
}

func (m *Mapper) writeControl(addr uint32, data uint8) {
	switch addr {
	case memorymap.SRAMLock:
		m.setLock(data)
	case memorymap.Z80BusRequest, memorymap.Z80BusRequest + 1:
	case memorymap.Z80Reset, memorymap.Z80Reset + 1:
	case memorymap.TMSS, memorymap.TMSS + 1, memorymap.TMSS + 2, memorymap.TMSS + 3:
	default:
		if addr&0xfff000 != 0xa13000 {
			logger.Logf(m.perm, "mapper", "undecoded write to %06x", addr)
		}
	}
}

// setLock changes the value of the lock register and the mode of the backup
// memory.
func (m *Mapper) setLock(data uint8) {
	m.lock = data & 0x03

	mode := backup.Disable
	if m.lock&0x01 == 0x01 {
		if m.lock&0x02 == 0x02 {
			mode = backup.ReadOnly
		} else {
			mode = backup.ReadWrite
		}
	}

	if m.backup != nil {
		m.backup.SetMode(mode)
	}
}
