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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware/video"
)

// pixelDepth is the number of bytes used for each pixel in the digest
// buffer. The alpha channel is not included.
const pixelDepth = 3

// Video is a display sink that computes the SHA-1 digest of every frame.
type Video struct {
	digest   [sha1.Size]byte
	pixels   []byte
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	dig := &Video{}
	dig.resize(video.MaxWidth * video.MaxHeight)
	return dig
}

func (dig *Video) String() string {
	return fmt.Sprintf("digest (%d frames)", dig.frameNum)
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frameNum = 0
}

// Frames returns the number of frames rendered since the last reset.
func (dig *Video) Frames() int {
	return dig.frameNum
}

// the length of the pixels array has room for the previous digest value
func (dig *Video) resize(n int) {
	l := len(dig.digest) + n*pixelDepth
	if len(dig.pixels) != l {
		dig.pixels = make([]byte, l)
	}
}

// Render implements the emulation.Display interface. The label is not part
// of the digest.
func (dig *Video) Render(pixels []uint32, _ string, mode video.Mode) error {
	n := mode.Width * mode.Height
	if n > len(pixels) {
		return curated.Errorf("digest: screen buffer too small for %s", mode)
	}
	dig.resize(n)

	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the video data
	if copy(dig.pixels, dig.digest[:]) != len(dig.digest) {
		return curated.Errorf("digest: error during new frame")
	}

	i := len(dig.digest)
	for _, p := range pixels[:n] {
		dig.pixels[i] = byte(p >> 16)
		dig.pixels[i+1] = byte(p >> 8)
		dig.pixels[i+2] = byte(p)
		i += pixelDepth
	}

	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum++

	return nil
}

// Reset implements the emulation.Display interface. The digest value is not
// changed so that it can be read after the emulation has ended.
func (dig *Video) Reset() {
}
