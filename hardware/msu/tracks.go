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
	"path/filepath"

	"github.com/heliosemu/helios/hardware/msu/cue"
)

// TrackDescriptor says where the audio data for a track can be found.
type TrackDescriptor struct {
	Number int
	Kind   cue.FileType

	// Offset and Length of the track in the disc image. Binary tracks only
	Offset int64
	Length int64

	// path to the audio file. WAVE, MP3 and OGG tracks only
	Path string
}

// Valid returns true if the descriptor refers to a track.
func (d TrackDescriptor) Valid() bool {
	return d.Kind != cue.Unknown
}

func (d TrackDescriptor) String() string {
	switch d.Kind {
	case cue.Binary:
		return fmt.Sprintf("track %d: %s %#x (%d bytes)", d.Number, d.Kind, d.Offset, d.Length)
	case cue.Unknown:
		return fmt.Sprintf("track %d: no data", d.Number)
	}
	return fmt.Sprintf("track %d: %s %s", d.Number, d.Kind, filepath.Base(d.Path))
}

// Tracks is the table of track descriptors indexed by track number.
type Tracks [cue.MaxTracks]TrackDescriptor

// BinaryFile returns the name of the first BINARY file in the cue sheet. The
// name is resolved relative to the directory of the cue sheet.
func BinaryFile(sheet *cue.Sheet) (string, bool) {
	for _, f := range sheet.Files {
		if f.Type == cue.Binary {
			return resolve(sheet, f.Name), true
		}
	}
	return "", false
}

func resolve(sheet *cue.Sheet, name string) string {
	if filepath.IsAbs(name) || sheet.Path == "" {
		return name
	}
	return filepath.Join(filepath.Dir(sheet.Path), name)
}

// BuildTracks creates the track table for the cue sheet. The binLen argument
// is the length of the disc image named by BinaryFile().
//
// A binary track ends where the next track in the same file starts. The last
// track in the file runs to the end of the disc image. Tracks in binary files
// other than the first are not playable and are left out of the table.
func BuildTracks(sheet *cue.Sheet, binLen int64) Tracks {
	var tracks Tracks
	for i := range tracks {
		tracks[i].Number = i
	}

	binName, _ := BinaryFile(sheet)

	for _, f := range sheet.Files {
		path := resolve(sheet, f.Name)

		for i, t := range f.Tracks {
			if t.Number < 0 || t.Number >= len(tracks) {
				continue
			}

			d := TrackDescriptor{
				Number: t.Number,
				Kind:   f.Type,
			}

			switch f.Type {
			case cue.Binary:
				if path != binName {
					continue
				}
				d.Offset = int64(t.Start().TotalFrames()) * cue.SectorSize
				if i+1 < len(f.Tracks) {
					d.Length = int64(f.Tracks[i+1].Start().TotalFrames())*cue.SectorSize - d.Offset
				} else {
					d.Length = binLen - d.Offset
				}
				if d.Length < 0 {
					d.Length = 0
				}
			case cue.Unknown:
				continue
			default:
				d.Path = path
			}

			tracks[t.Number] = d
		}
	}

	return tracks
}
