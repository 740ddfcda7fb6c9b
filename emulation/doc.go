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

// Package emulation runs a console in real time.
//
// The Pacer keeps emulated time in step with wall-clock time. The scheduler
// runs as quickly as it can and at the end of every frame the Pacer sleeps
// for the remainder of the frame interval. Any error in the sleep (waking
// late for example) is collected in a drift accumulator and paid back in
// small steps over the following frames.
//
// The Session type owns the scheduler goroutine for a loaded ROM. Requests
// from the control goroutine (pause, soft reset, save and load state) are
// stored and serviced at the next frame boundary, in a fixed order:
//
//  1. sync to wall clock
//  2. recompute video mode
//  3. render screen (with stats label)
//  4. pending save or load state
//  5. pause
//  6. reset cycle counters
//  7. pending soft reset
//  8. poll input
//
// A failure of the scheduler ends the session. The error is logged and
// returned by Err() with the ROMStopped pattern.
package emulation
