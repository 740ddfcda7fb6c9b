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

// Package wavwriter allows writing of CD audio data to disk as a WAV file.
// Note that audio data is buffered in memory in its entirity, and written to
// disk when the WavWriter is closed. It is therefore probably only suitable
// for testing purposes.
package wavwriter

import (
	"os"
	"sync"

	"github.com/go-audio/wav"
	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware/msu/pcm"
	"github.com/heliosemu/helios/logger"
)

// WavWriter implements the msu.Recorder interface.
type WavWriter struct {
	perm     logger.Permission
	filename string

	crit   sync.Mutex
	buffer []byte
	tracks []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(perm logger.Permission, filename string) (*WavWriter, error) {
	if filename == "" {
		return nil, curated.Errorf("wavwriter: %v", "no filename")
	}

	aw := &WavWriter{
		perm:     perm,
		filename: filename,
		buffer:   make([]byte, 0),
	}

	return aw, nil
}

// Record implements the msu.Recorder interface.
func (aw *WavWriter) Record(track int, data []byte) error {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	aw.buffer = append(aw.buffer, data[:len(data)-len(data)%pcm.FrameSize]...)
	aw.tracks = append(aw.tracks, track)

	return nil
}

// Tracks returns the list of tracks recorded so far, in the order they were
// recorded.
func (aw *WavWriter) Tracks() []int {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	return append([]int{}, aw.tracks...)
}

// Close writes the recorded audio to disk.
func (aw *WavWriter) Close() (rerr error) {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	// format value of 1 is uncompressed PCM
	enc := wav.NewEncoder(f, pcm.SampleRate, pcm.BitDepth, pcm.Channels, 1)

	logger.Logf(aw.perm, "wavwriter", "writing %d tracks (%s) to %s", len(aw.tracks), pcm.Duration(aw.buffer), aw.filename)

	if len(aw.buffer) > 0 {
		if err := enc.Write(pcm.IntBuffer(aw.buffer)); err != nil {
			return curated.Errorf("wavwriter: %v", err)
		}
	}

	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
