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

package msu

import (
	"fmt"
	"os"

	"github.com/heliosemu/helios/audio"
	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware/msu/cue"
	"github.com/heliosemu/helios/hardware/msu/pcm"
	"github.com/heliosemu/helios/logger"
)

func (m *MSU) execute(job Job) {
	switch job.Kind {
	case JobPlay:
		m.play(job.Track, job.Loop)
	case JobPause:
		m.pause(job.Fade)
	case JobResume:
		m.resume()
	case JobVolume:
		m.volume(job.Gain)
	case JobStop:
		m.stop()
		m.paused = false
		m.gain = 0
	}
}

func (m *MSU) play(track int, loop bool) {
	defer m.busy.Store(false)

	m.stop()

	if track < 0 || track >= len(m.tracks) || !m.tracks[track].Valid() {
		logger.Logf(m.perm, "msu", "track %d: no data", track)
		return
	}
	d := m.tracks[track]

	data, err := m.decode(d)
	if err != nil {
		logger.Logf(m.perm, "msu", "track %d: %v", track, err)
		if len(data) == 0 {
			return
		}
	}

	if m.recorder != nil {
		if err := m.recorder.Record(track, data); err != nil {
			logger.Logf(m.perm, "msu", "track %d: %v", track, err)
		}
	}

	clip, err := m.output.Open(data, loop)
	if err != nil {
		logger.Logf(m.perm, "msu", "track %d: %v", track, err)
		return
	}

	clip.SetListener(func(e audio.Event) {
		logger.Logf(m.perm, "msu", "track %d: %s", track, e)
	})
	clip.SetGain(m.gain)
	m.current.Store(&playing{clip: clip, track: track})

	if !m.paused {
		clip.Start()
	}

	logger.Logf(m.perm, "msu", "%s started (%s)", d, pcm.Duration(data))
}

// stop and close the current clip.
func (m *MSU) stop() {
	m.position = 0

	p := m.current.Swap(nil)
	if p == nil {
		return
	}
	p.clip.SetListener(nil)
	p.clip.Stop()
	if err := p.clip.Close(); err != nil {
		logger.Logf(m.perm, "msu", "track %d: %v", p.track, err)
	}
}

// the fade is not emulated. playback stops immediately
func (m *MSU) pause(fade float64) {
	if p := m.current.Load(); p != nil {
		m.position = p.clip.Position()
		p.clip.Stop()
		logger.Logf(m.perm, "msu", "track %d: paused at %s (fade %.2fs)", p.track, m.position, fade)
	}
	m.paused = true
}

func (m *MSU) resume() {
	if p := m.current.Load(); p != nil {
		if m.position > 0 {
			p.clip.SetPosition(m.position)
		}
		p.clip.Start()
	}
	m.paused = false
}

func (m *MSU) volume(gain float64) {
	m.gain = gain
	if p := m.current.Load(); p != nil {
		p.clip.SetGain(gain)
	}
	logger.Logf(m.perm, "msu", "volume: %.2fdB", gain)
}

func (m *MSU) decode(d TrackDescriptor) ([]byte, error) {
	switch d.Kind {
	case cue.Binary:
		return pcm.Binary(m.bin, d.Offset, d.Length)
	case cue.Wave, cue.OGG, cue.MP3:
		f, err := os.Open(d.Path)
		if err != nil {
			return nil, curated.Errorf("msu: %v", err)
		}
		defer f.Close()

		switch d.Kind {
		case cue.Wave:
			return pcm.DecodeWAV(f)
		case cue.OGG:
			return pcm.DecodeOGG(f)
		}
		return pcm.DecodeMP3(f)
	}
	return nil, curated.Errorf("msu: %v", fmt.Sprintf("unsupported track type (%s)", d.Kind))
}
