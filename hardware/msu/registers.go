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

package msu

// Addresses of the Mega-CD registers used by the MSU-MD interface.
const (
	// gate array registers. writes are ignored
	GateArray = 0xa12001
	MemWP     = 0xa12002
	MMod      = 0xa12003
	ComF      = 0xa1200f

	Cmd    = 0xa12010
	CmdArg = 0xa12011
	Clock  = 0xa1201f
	Status = 0xa12020
)

// The address window of the Mega-CD registers.
const (
	OriginRegisters = 0xa12000
	MemtopRegisters = 0xa120ff
)

// The sub-CPU word RAM. Writes are ignored.
const (
	OriginWRAM = 0x420000
	MemtopWRAM = 0x4207ff
)

// State is the value read from the status register.
type State uint8

// List of valid State values.
const (
	Ready State = iota
	Init
	Busy
)

func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Init:
		return "INIT"
	case Busy:
		return "CMD_BUSY"
	}
	return "unknown"
}

// ignoredRegisters are written to by MSU-MD drivers but have no effect.
var ignoredRegisters = map[uint32]string{
	GateArray: "gate array",
	MemWP:     "memwp",
	MMod:      "mmod",
	ComF:      "comf",
}

// inWindow returns true if the address is handled by the MSU.
func inWindow(addr uint32) bool {
	return (addr >= OriginRegisters && addr <= MemtopRegisters) || inWRAM(addr)
}

func inWRAM(addr uint32) bool {
	return addr >= OriginWRAM && addr <= MemtopWRAM
}
