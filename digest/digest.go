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

// Package digest contains implementations of sinks that produce a
// cryptographic hash of their input. The Video type is a display sink and the
// Audio type records the PCM data of the CD-audio subsystem.
//
// Digests are chained. The digest of a frame includes the digest of the
// previous frame so that the final value depends on every frame rendered.
// Useful for regression testing and for comparing two runs of the same ROM.
package digest

// Digest implementations compute a running hash of their input.
type Digest interface {
	Hash() string
	ResetDigest()
}
