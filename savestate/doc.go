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

// Package savestate writes and reads the state of the console to and from
// disk.
//
// A save-state file starts with a magic string and is followed by a gob
// encoded snapshot list. The list contains one entry for each stateful
// device of the console, in the order returned by Console.Devices(). A
// save-state can only be loaded into a console with the same list of devices
// and the same ROM.
package savestate
