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

//go:build headless

package audio

import (
	"github.com/heliosemu/helios/curated"
)

// Oto is not available in headless builds.
type Oto struct{}

// NewOto always fails in headless builds.
func NewOto() (*Oto, error) {
	return nil, curated.Errorf("audio: %v", "oto not available in headless build")
}

func (*Oto) String() string {
	return "oto"
}

// Open implements the Output interface.
func (*Oto) Open(_ []byte, _ bool) (Clip, error) {
	return nil, curated.Errorf("audio: %v", "oto not available in headless build")
}
