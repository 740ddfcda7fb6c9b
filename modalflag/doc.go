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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Instead of the Parse() function of the flag package, a
// Modes instance is initialised with NewArgs() and then parsed:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	fullThrottle := md.AddBool("fullthrottle", false, "run without frame pacing")
//	p, err := md.Parse()
//
// Modes are added with AddSubModes() before the call to Parse(). The first
// mode in the list is the default mode. After parsing, the Mode() function
// returns the selected mode and a call to NewMode() prepares the instance
// for the flags of that mode:
//
//	md.AddSubModes("RUN", "DIGEST", "PREFS")
//	p, err := md.Parse()
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		region := md.AddString("region", "AUTO", "console region")
//		p, err = md.Parse()
//		...
//	}
//
// The Path() function returns the series of modes encountered, separated by
// a forward slash. Help messages for the -help flag are generated
// automatically and include the list of available sub-modes.
package modalflag
