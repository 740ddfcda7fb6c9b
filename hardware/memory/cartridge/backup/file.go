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
	"errors"
	"io/fs"
	"os"

	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/paths"
)

const backupPath = "backup"

// Filename returns the path of the backup file. Empty if the path has not
// been decided yet or if the existing file could not be read.
func (c *Controller) Filename() string {
	return c.filename
}

func (c *Controller) extension() string {
	if c.hasEEPROM {
		return EEPROMExtension
	}
	return SRAMExtension
}

// materialise loads the backup file, creating it if it does not exist. the
// backup memory is usable even if the file cannot be loaded or created but
// it will not be saved.
func (c *Controller) materialise() {
	if c.materialised {
		return
	}
	c.materialised = true

	if c.filename == "" {
		fn, err := paths.CreateResourcePath(backupPath, c.name+c.extension())
		if err != nil {
			logger.Logf(c.perm, "backup", "could not create backup file: %v", err)
			return
		}
		c.filename = fn
	}

	data, err := os.ReadFile(c.filename)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			// forget the filename so that the existing file is never
			// overwritten with the erased memory
			logger.Logf(c.perm, "backup", "could not load backup file: %v", err)
			c.filename = ""
			return
		}

		// a new file contains the erased state of the memory
		logger.Logf(c.perm, "backup", "creating backup file %s", c.filename)
		if err := c.flush(); err != nil {
			logger.Logf(c.perm, "backup", "could not create backup file: %v", err)
		}
		return
	}

	if c.hasEEPROM {
		if len(data) != len(c.eeprom.EEPROM.Data) {
			logger.Logf(c.perm, "backup", "eeprom file is of incorrect length. %d should be %d", len(data), len(c.eeprom.EEPROM.Data))
		}
		c.eeprom.EEPROM.Load(data)
	} else {
		if len(data) != len(c.sram) {
			logger.Logf(c.perm, "backup", "sram file is of incorrect length. %d should be %d", len(data), len(c.sram))
		}
		clear(c.sram)
		copy(c.sram, data)
	}

	logger.Logf(c.perm, "backup", "backup file loaded from %s", c.filename)
}

// flush writes the backup memory to the backup file.
func (c *Controller) flush() error {
	if c.filename == "" {
		return nil
	}

	var data []uint8
	if c.hasEEPROM {
		data = c.eeprom.EEPROM.Data
	} else {
		data = c.sram
	}

	if err := os.WriteFile(c.filename, data, 0o644); err != nil {
		return err
	}

	if c.hasEEPROM {
		c.eeprom.EEPROM.Saved()
	}

	logger.Logf(c.perm, "backup", "backup file saved to %s", c.filename)
	return nil
}
