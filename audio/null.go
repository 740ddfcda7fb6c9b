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

package audio

import (
	"github.com/heliosemu/helios/curated"
)

// Null is an Output that produces no sound. The data of a Clip is not
// consumed and the position of a Clip only changes with SetPosition().
type Null struct{}

// NewNull is the preferred method of initialisation for the Null type.
func NewNull() *Null {
	return &Null{}
}

func (*Null) String() string {
	return "null"
}

// Open implements the Output interface.
func (*Null) Open(data []byte, loop bool) (Clip, error) {
	if len(data) == 0 {
		return nil, curated.Errorf("audio: %v", "no data in clip")
	}
	return newClip(newStream(data, loop), &nullPlayer{}), nil
}

type nullPlayer struct {
	volume float64
}

func (*nullPlayer) Play()  {}
func (*nullPlayer) Pause() {}

func (p *nullPlayer) SetVolume(v float64) {
	p.volume = v
}

func (*nullPlayer) Close() error {
	return nil
}
