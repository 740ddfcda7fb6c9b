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

// Package memory implements the work RAM of the console. The address space
// as a whole is described by the memorymap package and the routing of
// accesses to the different areas is done by the base mapper in the cartridge
// package.
//
//	    CPU ---- bus chain ---- backup memory ---- MSU ---- base mapper
//	                                                            |
//	                                                            |---- ROM
//	                                                            |---- RAM
//	                                                            |---- IO/Control
//	                                                             ---- VDP ports
//
// Cartridge hardware sits on top of the base mapper in the bus chain (see
// the bus package) and intercepts accesses in its own address window.
package memory
