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
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/heliosemu/helios/hardware/memory/cartridge/backup"
)

// offsets and lengths of the header fields
const (
	hdrSystem        = 0x100
	hdrCopyright     = 0x110
	hdrDomesticTitle = 0x120
	hdrOverseasTitle = 0x150
	hdrSerial        = 0x180
	hdrChecksum      = 0x18e
	hdrROMStart      = 0x1a0
	hdrROMEnd        = 0x1a4
	hdrRegions       = 0x1f0
	hdrEnd           = 0x200
)

// Header contains the information in the cartridge header.
type Header struct {
	System        string
	Copyright     string
	DomesticTitle string
	OverseasTitle string
	Serial        string
	Checksum      uint16
	ROMStart      uint32
	ROMEnd        uint32
	Regions       string

	// the backup memory window. if the header does not declare backup
	// memory the window has the default bounds
	Backup backup.Window
}

// field returns the header field as a trimmed string. non-printable
// characters are removed.
func field(rom []uint8, origin int, length int) string {
	s := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, string(rom[origin:origin+length]))

	// titles are often padded with runs of spaces
	return strings.Join(strings.Fields(s), " ")
}

// ParseHeader returns the Header found in the ROM image. A ROM image that is
// too short to contain a header results in an empty Header with the default
// backup window.
func ParseHeader(rom []uint8) Header {
	if len(rom) < hdrEnd {
		return Header{Backup: backup.DefaultWindow()}
	}

	return Header{
		System:        field(rom, hdrSystem, 16),
		Copyright:     field(rom, hdrCopyright, 16),
		DomesticTitle: field(rom, hdrDomesticTitle, 48),
		OverseasTitle: field(rom, hdrOverseasTitle, 48),
		Serial:        field(rom, hdrSerial, 14),
		Checksum:      binary.BigEndian.Uint16(rom[hdrChecksum:]),
		ROMStart:      binary.BigEndian.Uint32(rom[hdrROMStart:]),
		ROMEnd:        binary.BigEndian.Uint32(rom[hdrROMEnd:]),
		Regions:       field(rom, hdrRegions, 3),
		Backup:        backup.WindowFromHeader(rom),
	}
}

func (h Header) String() string {
	return fmt.Sprintf("%s [%s] %s", h.Title(), h.Serial, h.Regions)
}

// Title returns the overseas title of the cartridge or the domestic title if
// the overseas title is empty.
func (h Header) Title() string {
	if h.OverseasTitle != "" {
		return h.OverseasTitle
	}
	return h.DomesticTitle
}

// Checksum calculates the checksum of the ROM image in the same way as the
// boot code of a cartridge. The sum of all words after the header.
func Checksum(rom []uint8) uint16 {
	var sum uint16
	for i := hdrEnd; i+1 < len(rom); i += 2 {
		sum += binary.BigEndian.Uint16(rom[i:])
	}
	if len(rom)%2 == 1 && len(rom) > hdrEnd {
		sum += uint16(rom[len(rom)-1]) << 8
	}
	return sum
}
