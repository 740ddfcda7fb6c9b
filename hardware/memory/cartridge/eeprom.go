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
	"strings"

	"github.com/heliosemu/helios/hardware/memory/cartridge/backup/i2c"
)

// the data lines of Sega cartridges are on bits zero and one of the odd byte
// lane. SDA is read back on bit zero
var segaX24C01 = i2c.Spec{
	Mode:     i2c.ModeX24C01,
	Size:     128,
	PageSize: 4,
	SDAIn:    0,
	SCL:      1,
	SDAOut:   0,
}

// Acclaim cartridges read SDA back on bit one
var acclaim24C02 = i2c.Spec{
	Mode:     i2c.Mode24C02,
	Size:     256,
	PageSize: 4,
	SDAIn:    0,
	SCL:      1,
	SDAOut:   1,
}

var acclaim24C04 = i2c.Spec{
	Mode:     i2c.Mode24C02,
	Size:     512,
	PageSize: 16,
	SDAIn:    0,
	SCL:      1,
	SDAOut:   1,
}

// eepromEntry identifies a cartridge fitted with an EEPROM by the serial
// number in the header.
type eepromEntry struct {
	serial string
	title  string
	spec   i2c.Spec
}

var eepromDatabase = []eepromEntry{
	{serial: "MK-1079", title: "Wonder Boy in Monster World", spec: segaX24C01},
	{serial: "G-4060", title: "Wonder Boy V", spec: segaX24C01},
	{serial: "MK-1228", title: "Mega Man: The Wily Wars", spec: segaX24C01},
	{serial: "G-5538", title: "Rockman Mega World", spec: segaX24C01},
	{serial: "MK-12056", title: "Evander Holyfield's Real Deal Boxing", spec: segaX24C01},
	{serial: "G-4524", title: "Ninja Burai Densetsu", spec: segaX24C01},
	{serial: "T-081326", title: "NBA Jam", spec: acclaim24C02},
	{serial: "T-81033", title: "NBA Jam", spec: acclaim24C02},
	{serial: "T-081276", title: "NFL Quarterback Club", spec: acclaim24C02},
	{serial: "T-81406", title: "NBA Jam Tournament Edition", spec: acclaim24C04},
}

// lookupEEPROM returns the EEPROM specification for the serial number. The
// serial number in the header is usually surrounded by a type prefix and a
// revision suffix so the database serial only has to be contained in it.
func lookupEEPROM(serial string) (i2c.Spec, string, bool) {
	if serial == "" {
		return i2c.Spec{}, "", false
	}
	for _, e := range eepromDatabase {
		if strings.Contains(serial, e.serial) {
			return e.spec, e.title, true
		}
	}
	return i2c.Spec{}, "", false
}
