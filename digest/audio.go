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
	"sync"
)

// Audio computes the digest of the PCM data played by the CD-audio
// subsystem. It implements the msu.Recorder interface.
type Audio struct {
	crit   sync.Mutex
	digest [sha1.Size]byte
	tracks int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

func (dig *Audio) String() string {
	return dig.Hash()
}

// Hash implements the Digest interface.
func (dig *Audio) Hash() string {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	clear(dig.digest[:])
	dig.tracks = 0
}

// Tracks returns the number of tracks recorded since the last reset.
func (dig *Audio) Tracks() int {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return dig.tracks
}

// Record implements the msu.Recorder interface. The track number is part of
// the digest.
func (dig *Audio) Record(track int, data []byte) error {
	dig.crit.Lock()
	defer dig.crit.Unlock()

	h := sha1.New()
	h.Write(dig.digest[:])
	h.Write([]byte{byte(track)})
	h.Write(data)
	copy(dig.digest[:], h.Sum(nil))
	dig.tracks++

	return nil
}
