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

// Package scheduler interleaves the CPU and the video unit on a common master
// clock.
//
// Each subsystem has a next-trigger value. On every master tick the CPU is
// stepped if the master counter has reached its trigger value, after which
// the trigger is advanced by the cost of the instruction multiplied by the CPU
// divider. The video unit runs one slot on every odd tick.
//
// Frame boundaries are not the concern of the scheduler. They are signalled
// by the video unit to whoever has registered an interest.
package scheduler
