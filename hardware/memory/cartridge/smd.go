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

// SMD images begin with a 512 byte header and the remaining data is arranged
// in 16k blocks. The first half of each block holds the odd bytes and the
// second half holds the even bytes.
const (
	smdHeaderLen = 512
	smdBlockLen  = 0x4000
)

// isSMD returns true if the data looks like an SMD image. Bytes eight and
// nine of the SMD header are fixed.
func isSMD(data []uint8) bool {
	if len(data) <= smdHeaderLen || (len(data)-smdHeaderLen)%smdBlockLen != 0 {
		return false
	}
	return data[8] == 0xaa && data[9] == 0xbb
}

// deinterleaveSMD converts an SMD image to a plain binary image.
func deinterleaveSMD(data []uint8) []uint8 {
	data = data[smdHeaderLen:]
	bin := make([]uint8, len(data))

	const half = smdBlockLen / 2
	for b := 0; b < len(data); b += smdBlockLen {
		block := data[b : b+smdBlockLen]
		for i := range half {
			bin[b+i*2] = block[half+i]
			bin[b+i*2+1] = block[i]
		}
	}

	return bin
}
