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

// Package bus defines the memory bus concept for the 68000 address space.
//
// Every device that responds to CPU reads and writes implements the Mapper
// interface. Devices that only respond to a window of the address space (the
// backup memory controller or the CD-audio command interface, for example)
// implement the Interceptor interface. An Interceptor wraps exactly one base
// Mapper and either services an access itself or delegates the access to the
// base Mapper unchanged.
//
// Interceptors are arranged in a Chain. The bottom of the chain is the
// default ROM/RAM handler of the console. Reads and writes enter at the top
// of the chain, so that for any address exactly one mapper answers the
// access.
//
// Addresses are masked to the 24 physical address lines with AddressMask
// before comparison. Accesses that no device decodes return the open bus
// value for the access size.
package bus
