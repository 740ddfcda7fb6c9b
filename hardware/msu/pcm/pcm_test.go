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

package pcm_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/heliosemu/helios/hardware/msu/pcm"
	"github.com/heliosemu/helios/test"
)

func TestBinary(t *testing.T) {
	bin := make([]byte, 2352*4)
	for i := range bin {
		bin[i] = uint8(i / 2352)
	}
	r := bytes.NewReader(bin)

	data, err := pcm.Binary(r, 2352, 2352*2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 2352*2)
	test.ExpectEquality(t, data[0], 1)
	test.ExpectEquality(t, data[len(data)-1], 2)

	// short read is filled with silence
	data, err = pcm.Binary(r, 2352*3, 2352*2)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, len(data), 2352*2)
	test.ExpectEquality(t, data[2352], 0)

	_, err = pcm.Binary(r, 0, 0)
	test.ExpectFailure(t, err)
}

func TestEncoding(t *testing.T) {
	data := pcm.Encode([]int{0, 1, -1, 40000, -40000})
	test.ExpectEquality(t, len(data), 10)
	test.ExpectEquality(t, data[2], 0x01)
	test.ExpectEquality(t, data[3], 0x00)
	test.ExpectEquality(t, data[4], 0xff)
	test.ExpectEquality(t, data[5], 0xff)

	s := pcm.Decode(data)
	test.ExpectEquality(t, s[2], -1)
	test.ExpectEquality(t, s[3], 32767)
	test.ExpectEquality(t, s[4], -32768)
}

func TestDuration(t *testing.T) {
	test.ExpectEquality(t, pcm.Duration(make([]byte, pcm.SampleRate*pcm.FrameSize)), time.Second)
	test.ExpectEquality(t, pcm.Offset(time.Second), int64(pcm.SampleRate*pcm.FrameSize))
	test.ExpectEquality(t, pcm.Offset(-time.Second), 0)
}

func TestResample(t *testing.T) {
	in := make([]int, 22050*2)
	for i := range in {
		in[i] = 1000
	}
	out := pcm.Resample(in, 22050, 44100)
	test.ExpectEquality(t, len(out), 44100*2)
	test.ExpectEquality(t, out[len(out)-1], 1000)
}

func TestDecodeWAV(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "track.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)

	// one second of mono data at half the CDDA sample rate
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 22050},
		Data:           make([]int, 22050),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = 256
	}

	enc := wav.NewEncoder(f, 22050, 16, 1, 1)
	test.DemandSuccess(t, enc.Write(buf))
	test.DemandSuccess(t, enc.Close())
	test.DemandSuccess(t, f.Close())

	f, err = os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	data, err := pcm.DecodeWAV(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pcm.Duration(data), time.Second)

	// the mono channel is copied to both channels
	s := pcm.Decode(data)
	test.ExpectEquality(t, s[100], 256)
	test.ExpectEquality(t, s[101], 256)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := pcm.DecodeWAV(bytes.NewReader([]byte("not a wav file")))
	test.ExpectFailure(t, err)

	_, err = pcm.DecodeMP3(bytes.NewReader([]byte{}))
	test.ExpectFailure(t, err)

	_, err = pcm.DecodeOGG(bytes.NewReader([]byte("not an ogg file")))
	test.ExpectFailure(t, err)
}

func TestDecodeFloat(t *testing.T) {
	// half a second of mono data at the CDDA sample rate
	samples := make([]float32, pcm.SampleRate/2)
	for i := range samples {
		samples[i] = 0.5
	}
	samples[1] = 1.5
	samples[2] = -1.0

	data, err := pcm.DecodeFloat(samples, 1, pcm.SampleRate)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pcm.Duration(data), time.Second/2)

	s := pcm.Decode(data)
	test.DemandEquality(t, len(s), len(samples)*pcm.Channels)
	test.ExpectEquality(t, s[0], 16384)
	test.ExpectEquality(t, s[1], 16384)

	// out of range values are clipped
	test.ExpectEquality(t, s[2], 32767)
	test.ExpectEquality(t, s[4], -32767)

	// stereo data at a different sample rate is resampled
	data, err = pcm.DecodeFloat(make([]float32, 22050*2), 2, 22050)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pcm.Duration(data), time.Second)

	_, err = pcm.DecodeFloat(samples, 0, pcm.SampleRate)
	test.ExpectFailure(t, err)
}

func TestEncodeClamp(t *testing.T) {
	data := pcm.Encode([]int{40000, -40000, 0x1234})
	test.ExpectEquality(t, data[4], uint8(0x34))
	test.ExpectEquality(t, data[5], uint8(0x12))

	s := pcm.Decode(data)
	test.ExpectEquality(t, s[0], 32767)
	test.ExpectEquality(t, s[1], -32768)
	test.ExpectEquality(t, s[2], 0x1234)
}
