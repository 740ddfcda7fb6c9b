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

// DuplicatePolicy decides whether a PLAY command should be ignored.
type DuplicatePolicy interface {
	Suppress(track int) bool
}

// RepeatedTrack suppresses a PLAY command for a specific track if that track
// was also the subject of the previous PLAY command. Some MSU-MD patches
// request track 20 on every frame of a particular screen.
type RepeatedTrack struct {
	Track int
	last  int
}

// NewRepeatedTrack is the preferred method of initialisation for the
// RepeatedTrack type.
func NewRepeatedTrack(track int) *RepeatedTrack {
	return &RepeatedTrack{Track: track, last: -1}
}

// DefaultPolicy returns the DuplicatePolicy used by the MSU.
func DefaultPolicy() DuplicatePolicy {
	return NewRepeatedTrack(20)
}

// Suppress implements the DuplicatePolicy interface.
func (p *RepeatedTrack) Suppress(track int) bool {
	if track == p.Track && track == p.last {
		return true
	}
	p.last = track
	return false
}
