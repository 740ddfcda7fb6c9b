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

package cue

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heliosemu/helios/curated"
)

// Constants of the disc format.
const (
	SectorSize      = 2352
	FramesPerSecond = 75

	// track numbers are between 1 and 99 inclusive
	MaxTracks = 100
)

// FileType is the type of a FILE entry in the cue sheet.
type FileType int

// List of valid FileType values.
const (
	Unknown FileType = iota
	Binary
	Wave
	OGG
	MP3
)

func (t FileType) String() string {
	switch t {
	case Binary:
		return "BINARY"
	case Wave:
		return "WAVE"
	case OGG:
		return "OGG"
	case MP3:
		return "MP3"
	}
	return "UNKNOWN"
}

// parseFileType is not case sensitive. the MOTOROLA type is a big-endian
// binary file and is not supported.
func parseFileType(s string) FileType {
	switch strings.ToUpper(s) {
	case "BINARY":
		return Binary
	case "WAVE":
		return Wave
	case "OGG":
		return OGG
	case "MP3":
		return MP3
	}
	return Unknown
}

// Position is a location on the disc.
type Position struct {
	Minutes int
	Seconds int
	Frames  int
}

// ParsePosition parses a position in the MM:SS:FF format.
func ParsePosition(s string) (Position, error) {
	p := strings.Split(s, ":")
	if len(p) != 3 {
		return Position{}, curated.Errorf("cue: %v", fmt.Sprintf("malformed position (%s)", s))
	}

	var v [3]int
	for i := range p {
		n, err := strconv.Atoi(p[i])
		if err != nil || n < 0 {
			return Position{}, curated.Errorf("cue: %v", fmt.Sprintf("malformed position (%s)", s))
		}
		v[i] = n
	}

	if v[1] >= 60 || v[2] >= FramesPerSecond {
		return Position{}, curated.Errorf("cue: %v", fmt.Sprintf("position out of range (%s)", s))
	}

	return Position{Minutes: v[0], Seconds: v[1], Frames: v[2]}, nil
}

func (p Position) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", p.Minutes, p.Seconds, p.Frames)
}

// TotalFrames returns the position as a number of frames from the start of
// the file.
func (p Position) TotalFrames() int {
	return (p.Minutes*60+p.Seconds)*FramesPerSecond + p.Frames
}

// Index is an INDEX entry of a track.
type Index struct {
	Number   int
	Position Position
}

// Track is a TRACK entry in the cue sheet.
type Track struct {
	Number int

	// AUDIO, MODE1/2352, etc.
	DataType string

	Indexes []Index
}

// Start returns the position of the start of the track. This is the position
// of index one or of the first index if there is no index one.
func (t Track) Start() Position {
	for _, i := range t.Indexes {
		if i.Number == 1 {
			return i.Position
		}
	}
	if len(t.Indexes) > 0 {
		return t.Indexes[0].Position
	}
	return Position{}
}

// File is a FILE entry in the cue sheet and the tracks that are in the file.
type File struct {
	Name   string
	Type   FileType
	Tracks []Track
}

// Sheet is a parsed cue sheet.
type Sheet struct {
	// path to the cue sheet. empty if the sheet was not loaded from a file
	Path string

	Files []File
}

// NumTracks returns the number of tracks in the cue sheet.
func (s *Sheet) NumTracks() int {
	var n int
	for _, f := range s.Files {
		n += len(f.Tracks)
	}
	return n
}

// Load the cue sheet at the path.
func Load(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf("cue: %v", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, err
	}
	s.Path = path

	return s, nil
}

// fields splits a line into fields. quoted fields can contain spaces.
func fields(line string) []string {
	var f []string
	var b strings.Builder
	var quoted, inField bool

	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			inField = true
		case (r == ' ' || r == '\t') && !quoted:
			if inField {
				f = append(f, b.String())
				b.Reset()
				inField = false
			}
		default:
			b.WriteRune(r)
			inField = true
		}
	}
	if inField {
		f = append(f, b.String())
	}

	return f
}

// Parse a cue sheet from the reader.
func Parse(r io.Reader) (*Sheet, error) {
	s := &Sheet{}
	seen := make(map[int]bool)

	var file *File
	var track *Track

	scanner := bufio.NewScanner(r)
	ln := 0
	for scanner.Scan() {
		ln++

		f := fields(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if len(f) == 0 {
			continue
		}

		lineErr := func(msg string) error {
			return curated.Errorf("cue: %v", fmt.Sprintf("line %d: %s", ln, msg))
		}

		switch strings.ToUpper(f[0]) {
		case "FILE":
			if len(f) < 3 {
				return nil, lineErr("FILE requires a filename and a type")
			}
			s.Files = append(s.Files, File{Name: f[1], Type: parseFileType(f[2])})
			file = &s.Files[len(s.Files)-1]
			track = nil

		case "TRACK":
			if file == nil {
				return nil, lineErr("TRACK before FILE")
			}
			if len(f) < 3 {
				return nil, lineErr("TRACK requires a number and a data type")
			}
			n, err := strconv.Atoi(f[1])
			if err != nil || n < 1 || n >= MaxTracks {
				return nil, lineErr(fmt.Sprintf("invalid track number (%s)", f[1]))
			}
			if seen[n] {
				return nil, lineErr(fmt.Sprintf("duplicate track number (%d)", n))
			}
			seen[n] = true
			file.Tracks = append(file.Tracks, Track{Number: n, DataType: strings.ToUpper(f[2])})
			track = &file.Tracks[len(file.Tracks)-1]

		case "INDEX":
			if track == nil {
				return nil, lineErr("INDEX before TRACK")
			}
			if len(f) < 3 {
				return nil, lineErr("INDEX requires a number and a position")
			}
			n, err := strconv.Atoi(f[1])
			if err != nil || n < 0 {
				return nil, lineErr(fmt.Sprintf("invalid index number (%s)", f[1]))
			}
			p, err := ParsePosition(f[2])
			if err != nil {
				return nil, lineErr(err.Error())
			}
			track.Indexes = append(track.Indexes, Index{Number: n, Position: p})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("cue: %v", err)
	}

	if s.NumTracks() == 0 {
		return nil, curated.Errorf("cue: %v", "no tracks")
	}

	return s, nil
}
