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

// Package hardware is the base package for the console emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The Console type is the root of the emulation and contains references to
// every part of the hardware. The Console is also the Bus seen by the CPU. It
// is made up of a chain of bus.Interceptor implementations on top of the
// cartridge mapper:
//
//	CPU -> MSU -> backup memory -> cartridge mapper -> ROM, RAM, VDP, I/O
//
// Work is driven by the scheduler package and the list of stateful devices
// returned by Devices() is used by the savestate package.
package hardware
