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

// Package cue parses the cue sheets that accompany CD-audio cartridges. Only
// the commands that describe the layout of the tracks are interpreted: FILE,
// TRACK and INDEX. All other commands (REM, PREGAP, TITLE, etc.) are
// accepted and ignored.
//
// Positions in a cue sheet are given in minutes, seconds and frames
// (MM:SS:FF). There are 75 frames in a second and one frame is one sector of
// the disc image. Sectors of a BINARY file are 2352 bytes long.
package cue
