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

//go:build !headless

package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware/msu/pcm"
)

// only one oto context can exist for the lifetime of the program
var otoContext struct {
	once sync.Once
	ctx  *oto.Context
	err  error
}

// Oto is an Output that plays clips through the oto library.
type Oto struct {
	ctx *oto.Context
}

// NewOto is the preferred method of initialisation for the Oto type.
func NewOto() (*Oto, error) {
	otoContext.once.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   pcm.SampleRate,
			ChannelCount: pcm.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoContext.err = err
			return
		}
		<-ready
		otoContext.ctx = ctx
	})

	if otoContext.err != nil {
		return nil, curated.Errorf("audio: oto: %v", otoContext.err)
	}

	return &Oto{ctx: otoContext.ctx}, nil
}

func (*Oto) String() string {
	return "oto"
}

// Open implements the Output interface.
func (o *Oto) Open(data []byte, loop bool) (Clip, error) {
	if len(data) == 0 {
		return nil, curated.Errorf("audio: %v", "no data in clip")
	}
	s := newStream(data, loop)
	return newClip(s, o.ctx.NewPlayer(s)), nil
}
