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

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with Errorf(). The first argument is a pattern,
// in the same way as fmt.Errorf(), but the pattern is retained so that the
// error can be identified later with Is() or Has().
//
//	e := curated.Errorf("backup: %v", err)
//
//	if curated.Is(e, "backup: %v") {
//		...
//	}
//
// Is() matches only the outermost pattern. Has() searches the chain of
// curated values for the pattern.
//
// Sentinel patterns are stored as exported string constants in the package
// that produces them. For example, the emulation package exports ROMStopped
// and the prefs package exports NoPrefsFile.
//
// The Error() implementation normalises the message chain by removing
// adjacent duplicate parts. A chain is made of parts separated by ": ". So
// that the error
//
//	curated.Errorf("msu: %v", curated.Errorf("msu: cue sheet not found"))
//
// prints as "msu: cue sheet not found" and not "msu: msu: cue sheet not
// found".
package curated
