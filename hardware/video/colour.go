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

package video

// colour converts a 9 bit CRAM entry to a 32 bit ARGB value. The CRAM entry is
// in the format ----BBB-GGG-RRR-
func colour(c uint16) uint32 {
	r := uint32((c>>1)&0x07) * 36
	g := uint32((c>>5)&0x07) * 36
	b := uint32((c>>9)&0x07) * 36
	return 0xff000000 | r<<16 | g<<8 | b
}

// Black is the colour of the screen when the display is disabled.
const Black uint32 = 0xff000000
