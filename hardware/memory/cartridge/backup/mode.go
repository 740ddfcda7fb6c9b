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

package backup

import "strings"

// SramMode controls whether the CPU can read and write the backup memory when
// the memory window overlaps the ROM.
type SramMode int

// List of valid SramMode values.
const (
	Disable SramMode = iota
	ReadOnly
	ReadWrite
)

// SramModes is the list of mode names in the form used by the preferences
// system.
var SramModes = []string{"DISABLE", "READ_ONLY", "READ_WRITE"}

func (m SramMode) String() string {
	if m < Disable || m > ReadWrite {
		return "unknown"
	}
	return SramModes[m]
}

// ParseSramMode converts a mode name into an SramMode value. The comparison
// is not case sensitive and a hyphen or space can be used instead of an
// underscore.
func ParseSramMode(s string) (SramMode, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	for i, n := range SramModes {
		if n == s {
			return SramMode(i), true
		}
	}
	return Disable, false
}

// canRead returns true if the mode permits reads.
func (m SramMode) canRead() bool {
	return m != Disable
}

// canWrite returns true if the mode permits writes.
func (m SramMode) canWrite() bool {
	return m == ReadWrite
}
