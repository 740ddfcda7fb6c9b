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
	"fmt"
	"sync/atomic"

	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware/memory/bus"
	"github.com/heliosemu/helios/hardware/memory/cartridge/backup/i2c"
	"github.com/heliosemu/helios/logger"
)

// file extensions of the backup files
const (
	SRAMExtension   = ".srm"
	EEPROMExtension = ".eep"
)

// Config is used to create a new Controller.
type Config struct {
	// name of the cartridge. the backup filename is derived from this
	Name string

	// size of the ROM image in bytes. used to decide whether the window
	// overlaps the ROM
	ROMSize int

	Window Window
	Mode   SramMode

	// the cartridge is fitted with a serial EEPROM instead of SRAM. nil if
	// the cartridge uses SRAM
	EEPROM *i2c.Spec

	// full path of the backup file. if empty the path is created in the
	// backup resource directory on first access
	Filename string
}

// Controller is the bus.Interceptor for the backup memory of a cartridge.
type Controller struct {
	perm logger.Permission
	base bus.Mapper

	name   string
	window Window

	// the window does not overlap the ROM so accesses inside it are
	// serviced regardless of mode
	noOverlap bool

	// the mode can be changed by the preferences system and by the
	// cartridge lock register
	mode atomic.Int32

	sram []uint8

	// the EEPROM device is only used if hasEEPROM is true
	hasEEPROM bool
	eeprom    *i2c.Device

	filename string

	// the backup file has been loaded or created
	materialised bool
}

// NewController is the preferred method of initialisation for the Controller
// type. The window is fixed for the lifetime of the Controller.
func NewController(perm logger.Permission, cfg Config) *Controller {
	c := &Controller{
		perm:      perm,
		base:      bus.Unmapped{},
		name:      cfg.Name,
		window:    cfg.Window,
		noOverlap: !cfg.Window.Overlaps(cfg.ROMSize),
		filename:  cfg.Filename,
	}

	if c.window == (Window{}) {
		c.window = DefaultWindow()
		c.noOverlap = !c.window.Overlaps(cfg.ROMSize)
	}

	c.mode.Store(int32(cfg.Mode))

	if cfg.EEPROM != nil {
		c.hasEEPROM = true
		c.eeprom = i2c.NewDevice(perm, *cfg.EEPROM)
		logger.Logf(perm, "backup", "eeprom %s in window %s", cfg.EEPROM, c.window)
	} else {
		c.sram = make([]uint8, DefaultSize)
		logger.Logf(perm, "backup", "sram in window %s", c.window)
	}

	if c.noOverlap {
		logger.Logf(perm, "backup", "window does not overlap rom. always enabled")
	}

	return c
}

func (c *Controller) String() string {
	if c.hasEEPROM {
		return fmt.Sprintf("eeprom %s [%s]", c.window, c.Mode())
	}
	return fmt.Sprintf("sram %s [%s]", c.window, c.Mode())
}

// SetBase implements the bus.Interceptor interface.
func (c *Controller) SetBase(base bus.Mapper) {
	if base == nil {
		base = bus.Unmapped{}
	}
	c.base = base
}

// Window returns the address window of the backup memory.
func (c *Controller) Window() Window {
	return c.window
}

// HasEEPROM returns true if the backup memory is a serial EEPROM.
func (c *Controller) HasEEPROM() bool {
	return c.hasEEPROM
}

// EEPROM returns the serial EEPROM device. Returns nil if HasEEPROM() is
// false.
func (c *Controller) EEPROM() *i2c.Device {
	if !c.hasEEPROM {
		return nil
	}
	return c.eeprom
}

// Mode returns the current SramMode.
func (c *Controller) Mode() SramMode {
	return SramMode(c.mode.Load())
}

// SetMode changes the SramMode. Safe to call from any goroutine.
func (c *Controller) SetMode(mode SramMode) {
	old := SramMode(c.mode.Swap(int32(mode)))
	if old != mode {
		logger.Logf(c.perm, "backup", "sram mode from %s to %s", old, mode)
	}
}

// serviced returns true if an access to the address should be handled by the
// backup memory rather than being forwarded to the base mapper.
func (c *Controller) serviced(addr uint32, write bool) bool {
	if !c.window.Contains(addr) {
		return false
	}
	if c.noOverlap {
		return true
	}
	if write {
		return c.Mode().canWrite()
	}
	return c.Mode().canRead()
}

// Read implements the bus.Mapper interface.
func (c *Controller) Read(addr uint32, size bus.Size) uint32 {
	addr &= bus.AddressMask
	if !c.serviced(addr, false) {
		return c.base.Read(addr, size)
	}

	c.materialise()

	if c.hasEEPROM {
		return uint32(c.eeprom.I2COut())
	}

	return bus.ReadBytes(addr&(DefaultSize-1), size, func(a uint32) uint8 {
		return c.sram[a%uint32(len(c.sram))]
	})
}

// Write implements the bus.Mapper interface.
func (c *Controller) Write(addr uint32, data uint32, size bus.Size) {
	addr &= bus.AddressMask
	if !c.serviced(addr, true) {
		c.base.Write(addr, data, size)
		return
	}

	c.materialise()

	if c.hasEEPROM {
		// the EEPROM lines are connected to the odd byte lane. a byte write
		// is always passed through because the cartridge does not decode A0
		if size == bus.Byte {
			c.eeprom.I2CIn(uint8(data))
			return
		}
		bus.WriteBytes(addr, data, size, func(a uint32, v uint8) {
			if a&0x01 == 0x01 {
				c.eeprom.I2CIn(v)
			}
		})
		return
	}

	bus.WriteBytes(addr&(DefaultSize-1), data, size, func(a uint32, v uint8) {
		c.sram[a%uint32(len(c.sram))] = v
	})
}

// Close writes the backup memory to disk if the backup file has been
// created. Implements the bus.Closer interface.
func (c *Controller) Close() error {
	if !c.materialised {
		return nil
	}
	if err := c.flush(); err != nil {
		return curated.Errorf("backup: %v", err)
	}
	return nil
}

// Contents returns a copy of the backup memory.
func (c *Controller) Contents() []uint8 {
	var src []uint8
	if c.hasEEPROM {
		src = c.eeprom.EEPROM.Data
	} else {
		src = c.sram
	}
	d := make([]uint8, len(src))
	copy(d, src)
	return d
}

// Restore replaces the backup memory with the data. Used when loading a save
// state. The backup file is not changed until the Controller is closed.
func (c *Controller) Restore(data []uint8) {
	c.materialise()
	if c.hasEEPROM {
		copy(c.eeprom.EEPROM.Data, data)
		return
	}
	copy(c.sram, data)
}
