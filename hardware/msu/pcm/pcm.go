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

package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/heliosemu/helios/curated"
)

// The CDDA format.
const (
	SampleRate = 44100
	BitDepth   = 16
	Channels   = 2

	// number of bytes in one sample of all channels
	FrameSize = Channels * BitDepth / 8
)

// Format describes the CDDA format in the form used by the go-audio package.
var Format = &audio.Format{
	NumChannels: Channels,
	SampleRate:  SampleRate,
}

// Duration returns the playing time of CDDA data.
func Duration(data []byte) time.Duration {
	frames := len(data) / FrameSize
	return time.Duration(frames) * time.Second / SampleRate
}

// Offset returns the byte offset in CDDA data of the playing time. The offset
// is aligned to a frame.
func Offset(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	frames := int64(d) * SampleRate / int64(time.Second)
	return frames * FrameSize
}

// Binary reads length bytes of CDDA data from the offset in the reader. If
// the reader does not have enough data the remainder of the returned data
// is silence and an error is returned.
func Binary(r io.ReaderAt, offset int64, length int64) ([]byte, error) {
	if length <= 0 {
		return nil, curated.Errorf("pcm: %v", fmt.Sprintf("invalid track length (%d)", length))
	}

	data := make([]byte, length)
	n, err := r.ReadAt(data, offset)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return data, curated.Errorf("pcm: %v", fmt.Sprintf("short read (%d of %d bytes)", n, length))
		}
		return data, curated.Errorf("pcm: %v", err)
	}

	return data, nil
}

// DecodeWAV decodes the WAVE data and converts it to the CDDA format.
func DecodeWAV(r io.ReadSeeker) ([]byte, error) {
	dec := wav.NewDecoder(r)
	if dec == nil {
		return nil, curated.Errorf("pcm: wav: %v", "error decoding")
	}
	if !dec.IsValidFile() {
		return nil, curated.Errorf("pcm: wav: %v", "not a valid wav file")
	}

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf("pcm: wav: %v", err)
	}

	samples := buf.Data
	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}

	// eight bit wav data is unsigned
	if bitDepth == 8 {
		for i := range samples {
			samples[i] -= 128
		}
	}

	return convert(samples, int(dec.NumChans), bitDepth, int(dec.SampleRate))
}

// DecodeMP3 decodes the MP3 data and converts it to the CDDA format.
func DecodeMP3(r io.Reader) ([]byte, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, curated.Errorf("pcm: mp3: %v", err)
	}

	// "The stream is always formatted as 16bit (little endian) 2 channels
	// even if the source is single channel MP3"
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, curated.Errorf("pcm: mp3: %v", err)
	}

	if dec.SampleRate() == SampleRate {
		return data[:len(data)-len(data)%FrameSize], nil
	}

	return convert(Decode(data), Channels, BitDepth, dec.SampleRate())
}

// DecodeOGG decodes the Ogg Vorbis data and converts it to the CDDA format.
func DecodeOGG(r io.Reader) ([]byte, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf("pcm: ogg: %v", err)
	}
	return DecodeFloat(samples, format.Channels, format.SampleRate)
}

// DecodeFloat converts interleaved floating point samples in the range -1.0
// to 1.0 to the CDDA format. Values outside of the range are clipped.
func DecodeFloat(samples []float32, channels int, rate int) ([]byte, error) {
	ints := make([]int, len(samples))
	for i, v := range samples {
		v = max(min(v, 1.0), -1.0)
		ints[i] = int(math.Round(float64(v) * math.MaxInt16))
	}
	return convert(ints, channels, BitDepth, rate)
}

// convert interleaved samples of any channel count, bit depth and sample
// rate to CDDA data.
func convert(samples []int, channels int, bitDepth int, rate int) ([]byte, error) {
	if channels < 1 {
		return nil, curated.Errorf("pcm: %v", fmt.Sprintf("unsupported number of channels (%d)", channels))
	}
	if bitDepth < 8 || bitDepth > 32 {
		return nil, curated.Errorf("pcm: %v", fmt.Sprintf("unsupported bit depth (%d)", bitDepth))
	}
	if rate <= 0 {
		return nil, curated.Errorf("pcm: %v", fmt.Sprintf("unsupported sample rate (%d)", rate))
	}

	frames := len(samples) / channels
	stereo := make([]int, frames*Channels)

	for f := range frames {
		l := samples[f*channels]
		r := l
		if channels > 1 {
			r = samples[f*channels+1]
		}
		stereo[f*2] = scale(l, bitDepth)
		stereo[f*2+1] = scale(r, bitDepth)
	}

	if rate != SampleRate {
		stereo = Resample(stereo, rate, SampleRate)
	}

	return Encode(stereo), nil
}

// scale a sample to 16 bits
func scale(v int, bitDepth int) int {
	switch {
	case bitDepth > BitDepth:
		return v >> (bitDepth - BitDepth)
	case bitDepth < BitDepth:
		return v << (BitDepth - bitDepth)
	}
	return v
}

// Resample interleaved stereo samples from one sample rate to another using
// linear interpolation. Track files are almost always 44.1kHz already so
// the quality of the interpolation is not important.
func Resample(stereo []int, from int, to int) []int {
	if from == to || len(stereo) < Channels {
		return stereo
	}

	inFrames := len(stereo) / Channels
	outFrames := int(int64(inFrames) * int64(to) / int64(from))
	out := make([]int, outFrames*Channels)

	step := float64(from) / float64(to)
	for f := range outFrames {
		pos := float64(f) * step
		i := int(pos)
		frac := pos - float64(i)
		j := min(i+1, inFrames-1)

		for c := range Channels {
			a := float64(stereo[i*Channels+c])
			b := float64(stereo[j*Channels+c])
			out[f*Channels+c] = int(a + (b-a)*frac)
		}
	}

	return out
}

// Encode interleaved 16 bit samples as little-endian bytes. Samples are
// clamped to the 16 bit range.
func Encode(samples []int) []byte {
	data := make([]byte, len(samples)*2)
	for i, v := range samples {
		v = max(min(v, math.MaxInt16), math.MinInt16)
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(v)))
	}
	return data
}

// Decode little-endian CDDA data into interleaved samples.
func Decode(data []byte) []int {
	samples := make([]int, len(data)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(data[i*2:])))
	}
	return samples
}

// IntBuffer returns CDDA data as a go-audio IntBuffer.
func IntBuffer(data []byte) *audio.IntBuffer {
	return &audio.IntBuffer{
		Format:         Format,
		Data:           Decode(data),
		SourceBitDepth: BitDepth,
	}
}
