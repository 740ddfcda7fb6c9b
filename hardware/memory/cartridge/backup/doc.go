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

// Package backup implements the battery backed memory of a cartridge. The
// memory is either static RAM, accessed directly by the CPU, or a serial
// EEPROM accessed through the i2c protocol (see the i2c sub-package).
//
// The Controller is a bus.Interceptor. It services accesses that fall inside
// its address Window and forwards all other accesses to the base mapper.
// Whether an access inside the Window is serviced depends on the SramMode and
// on whether the Window overlaps the ROM. A Window that starts above the end
// of the ROM is always serviced, whatever the mode. Cartridges that use the
// memory without declaring it in the header rely on this.
//
// The contents of the memory are saved to disk in the "backup" resource
// directory. The file is not created until the first serviced access and is
// written when the Controller is closed.
package backup
