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

// Package cartridgeloader is used to specify the ROM image that is to be
// attached to the console.
//
// The Loader type is created with NewLoader() and the data read with Load().
// The SHA-1 hash of the data is calculated on load and, if a hash was
// specified beforehand, checked for consistency.
//
// The loader also knows where the companion files for a ROM are to be found.
// The cue sheet for a CD-audio cartridge is the ROM filename with the file
// extension replaced by ".cue".
package cartridgeloader
