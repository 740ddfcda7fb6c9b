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

// Package telemetry measures the performance of a running emulation.
//
// The Telemetry type is given the frame rate and the pacing drift of every
// frame. Every StatsEvery frames it produces a label with the average frame
// rate, suitable for showing alongside the rendered screen.
//
// Optionally, the samples are written to a CSV log. The log file is created
// on the second frame and samples are appended every FlushEvery frames. File
// operations happen on the executor goroutine so that the emulation is not
// held up by disk access.
//
// The package also contains helpers for CPU and memory profiling.
package telemetry
