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

// Package pcm prepares the audio data of a CD-audio track. Whatever the
// source, the result is CDDA formatted data: 44100Hz, 16 bit signed samples,
// two channels and little-endian byte order.
//
// Tracks stored in the BINARY file of the disc image are already in the CDDA
// format and are read directly. WAVE files are decoded with the go-audio/wav
// package, OGG files with the oggvorbis package and MP3 files with the go-mp3
// package. Decoded data is converted to
// the CDDA format; this includes resampling data that has a different sample
// rate.
package pcm
