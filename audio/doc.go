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

// Package audio plays CDDA clips. An Output opens Clips from CDDA data (see
// the pcm package for the format). Clips can be started, stopped, looped and
// repositioned and their gain can be adjusted.
//
// The Oto output uses the oto library and is not available in builds with
// the headless build tag. The Null output consumes no data and produces no
// sound but otherwise behaves like a real output. NewOutput() returns the Oto
// output if possible and the Null output otherwise.
package audio
