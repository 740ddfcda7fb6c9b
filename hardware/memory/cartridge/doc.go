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

// Package cartridge reads the ROM image of a cartridge and provides the base
// mapper of the console address space.
//
// The cartridge header is parsed for the fields needed by the emulation: the
// serial number (used to identify cartridges fitted with a serial EEPROM),
// the supported regions and the backup memory declaration.
//
// The base mapper is at the bottom of the bus chain. It answers every access
// that is not intercepted by the cartridge hardware above it. The ROM image is
// mapped from address zero and reads beyond the end of the image return the
// open bus value. Writes to the ROM are dropped.
package cartridge
