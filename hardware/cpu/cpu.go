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

package cpu

import (
	"fmt"

	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware/memory/bus"
	m68k "github.com/user-none/go-chip-m68k"
)

// the 68000 sees the bus through the m68k.Bus interface. the argument order
// is different to the bus.Mapper interface
type adapter struct {
	mem bus.Mapper
}

func (a adapter) Read(op m68k.Size, addr uint32) uint32 {
	return a.mem.Read(addr, op)
}

func (a adapter) Write(op m68k.Size, addr uint32, val uint32) {
	a.mem.Write(addr, val, op)
}

// the RESET instruction asserts the reset line for external devices. there is
// nothing connected to it
func (a adapter) Reset() {
}

// CPU is the 68000 main processor.
type CPU struct {
	mc *m68k.CPU
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// memory should be ready to be read because the reset vectors are loaded
// immediately.
func NewCPU(mem bus.Mapper) *CPU {
	return &CPU{
		mc: m68k.New(adapter{mem: mem}),
	}
}

func (mc *CPU) String() string {
	r := mc.mc.Registers()
	return fmt.Sprintf("PC=%06x SR=%04x SP=%08x IR=%04x", r.PC&bus.AddressMask, r.SR, r.A[7], r.IR)
}

// Reset the CPU. The stack pointer and program counter are loaded from the
// reset vectors.
func (mc *CPU) Reset() {
	mc.mc.Reset()
}

// Step executes a single instruction and returns the number of cycles used.
// Returns zero if the CPU has halted.
func (mc *CPU) Step() int {
	return mc.mc.Step()
}

// Halted returns true if the CPU has halted because of a bus fault.
func (mc *CPU) Halted() bool {
	return mc.mc.Halted()
}

// Interrupt requests an auto-vectored interrupt at the specified level.
func (mc *CPU) Interrupt(level uint8) {
	mc.mc.RequestInterrupt(level, nil)
}

// Registers returns a copy of the current register values.
func (mc *CPU) Registers() m68k.Registers {
	return mc.mc.Registers()
}

// Cycles returns the number of cycles executed since the last reset.
func (mc *CPU) Cycles() uint64 {
	return mc.mc.Cycles()
}

// Label implements the hardware.Device interface.
func (mc *CPU) Label() string {
	return "cpu"
}

// Snapshot implements the hardware.Device interface.
func (mc *CPU) Snapshot() ([]byte, error) {
	buf := make([]byte, m68k.SerializeSize)
	if err := mc.mc.Serialize(buf); err != nil {
		return nil, curated.Errorf("cpu: %v", err)
	}
	return buf, nil
}

// Restore implements the hardware.Device interface.
func (mc *CPU) Restore(data []byte) error {
	if err := mc.mc.Deserialize(data); err != nil {
		return curated.Errorf("cpu: %v", err)
	}
	return nil
}
