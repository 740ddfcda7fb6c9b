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
	"fmt"
	"strings"

	"github.com/heliosemu/helios/cartridgeloader"
	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware/memory/cartridge/backup"
	"github.com/heliosemu/helios/hardware/memory/cartridge/backup/i2c"
	"github.com/heliosemu/helios/hardware/region"
	"github.com/heliosemu/helios/logger"
)

// Cartridge defines the information and data of a loaded ROM image.
type Cartridge struct {
	Filename string
	Hash     string

	// name of the cartridge used for filenames. the filename of the ROM
	// image without the path and extension
	Name string

	// path to the cue sheet of CD-audio cartridges. the file may not exist
	CueSheet string

	ROM    []uint8
	Header Header
	Region region.Region

	// the EEPROM fitted to the cartridge. nil if the cartridge does not
	// have an EEPROM
	EEPROM *i2c.Spec
}

// NewCartridge is the preferred method of initialisation for the Cartridge
// type. The region override is used in preference to the regions in the
// header if it names a region.
func NewCartridge(perm logger.Permission, cartload cartridgeloader.Loader, regionOverride string) (*Cartridge, error) {
	err := cartload.Load()
	if err != nil {
		return nil, curated.Errorf("cartridge: %v", err)
	}

	data := cartload.Data
	if isSMD(data) {
		logger.Logf(perm, "cartridge", "deinterleaving SMD image")
		data = deinterleaveSMD(data)
	}

	cart := &Cartridge{
		Filename: cartload.Filename,
		Hash:     cartload.Hash,
		Name:     cartload.ShortName(),
		CueSheet: cartload.CueSheet(),
		ROM:      data,
		Header:   ParseHeader(data),
	}

	cart.Region = region.Select(regionOverride, data)

	if spec, title, ok := lookupEEPROM(cart.Header.Serial); ok {
		cart.EEPROM = &spec
		logger.Logf(perm, "cartridge", "%s uses %s eeprom", title, spec.Mode)
	}

	if sum := Checksum(data); sum != cart.Header.Checksum {
		logger.Logf(perm, "cartridge", "checksum mismatch: header %04x calculated %04x", cart.Header.Checksum, sum)
	}

	logger.Logf(perm, "cartridge", "%s (%s)", cart.Header, cart.Region)

	return cart, nil
}

func (cart Cartridge) String() string {
	return cart.Summary()
}

// Summary returns brief information about the cartridge. Two lines: the
// first line is the path to the ROM image and the second line is the
// information from the header.
func (cart Cartridge) Summary() string {
	s := strings.Builder{}
	s.WriteString(cart.Filename)
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("%s %dk %s", cart.Header, len(cart.ROM)/1024, cart.Region))
	if cart.EEPROM != nil {
		s.WriteString(fmt.Sprintf(" eeprom %s", cart.EEPROM))
	}
	return s.String()
}

// BackupConfig returns the configuration for the backup memory controller of
// the cartridge.
func (cart Cartridge) BackupConfig(mode backup.SramMode) backup.Config {
	return backup.Config{
		Name:    cart.Name,
		ROMSize: len(cart.ROM),
		Window:  cart.Header.Backup,
		Mode:    mode,
		EEPROM:  cart.EEPROM,
	}
}
