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

// Package region describes the three console regions. A region decides the
// frame rate of the console and the value returned by the version register.
package region

import (
	"slices"
	"strings"
	"time"
)

// Region describes the timing and identification of a console region.
type Region struct {
	ID string

	// the character used in the cartridge header to indicate that the
	// cartridge supports the region
	Char byte

	// detection priority. when a cartridge supports more than one region the
	// region with the lowest order value is chosen
	Order int

	// value returned by the version register
	VersionCode uint8

	// number of frames per second
	FPS int

	// PAL regions use more scanlines per frame
	PAL bool
}

func (r Region) String() string {
	return r.ID
}

// FrameInterval returns the duration of one frame.
func (r Region) FrameInterval() time.Duration {
	return time.Second / time.Duration(r.FPS)
}

// FrameIntervalMs returns the duration of one frame in milliseconds.
func (r Region) FrameIntervalMs() float64 {
	return 1000.0 / float64(r.FPS)
}

// List of supported regions.
var (
	Japan = Region{
		ID:          "JAPAN",
		Char:        'J',
		Order:       2,
		VersionCode: 0x00,
		FPS:         60,
	}

	USA = Region{
		ID:          "USA",
		Char:        'U',
		Order:       0,
		VersionCode: 0xa0,
		FPS:         60,
	}

	Europe = Region{
		ID:          "EUROPE",
		Char:        'E',
		Order:       1,
		VersionCode: 0xc0,
		FPS:         50,
		PAL:         true,
	}
)

// Regions is the list of all regions. Useful for help messages and
// preference validation.
var Regions = []Region{Japan, USA, Europe}

// Default region if the cartridge header does not indicate a region.
var Default = USA

// the cartridge header bytes that indicate the supported regions
const (
	headerOrigin = 0x1f0
	headerMemtop = 0x1f2
)

// fromChar returns the region for the header character.
func fromChar(c byte) (Region, bool) {
	for _, r := range Regions {
		if r.Char == c {
			return r, true
		}
	}
	return Region{}, false
}

// FromString returns the region indicated by the string. Only the first
// character of the string is considered. so "E", "EUROPE" and "eur" all
// indicate the Europe region. The second return value is false if the string
// does not indicate a region; "AUTO" for example.
func FromString(s string) (Region, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Region{}, false
	}
	return fromChar(strings.ToUpper(s)[0])
}

// Detect the region from the cartridge header. The header supports up to
// three regions and the region with the lowest order is chosen. The second
// return value is false if no region could be found in the header, in which
// case the Default region is returned.
func Detect(rom []byte) (Region, bool) {
	var found []Region
	for a := headerOrigin; a <= headerMemtop && a < len(rom); a++ {
		if r, ok := fromChar(rom[a]); ok {
			found = append(found, r)
		}
	}

	if len(found) == 0 {
		return Default, false
	}

	return slices.MinFunc(found, func(a, b Region) int {
		return a.Order - b.Order
	}), true
}

// Select returns the region for a cartridge. The override string takes
// precedence if it indicates a region. Otherwise the region is detected from
// the cartridge header.
func Select(override string, rom []byte) Region {
	if r, ok := FromString(override); ok {
		return r
	}
	r, _ := Detect(rom)
	return r
}
