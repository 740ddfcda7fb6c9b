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

package hardware

import (
	"fmt"

	"github.com/heliosemu/helios/audio"
	"github.com/heliosemu/helios/hardware/cpu"
	"github.com/heliosemu/helios/hardware/memory"
	"github.com/heliosemu/helios/hardware/memory/bus"
	"github.com/heliosemu/helios/hardware/memory/cartridge"
	"github.com/heliosemu/helios/hardware/memory/cartridge/backup"
	"github.com/heliosemu/helios/hardware/msu"
	"github.com/heliosemu/helios/hardware/video"
	"github.com/heliosemu/helios/logger"
)

// Config is used to create a new Console.
type Config struct {
	SramMode backup.SramMode

	// do not fit the cartridge with backup memory
	NoBackup bool

	// path to the backup file. if empty the default path in the resources
	// directory is used
	BackupFilename string

	// the MSU-MD interface is enabled. the Queue and Output fields must be
	// set if MSU is true
	MSU    bool
	Queue  msu.Queue
	Output audio.Output
}

// Console is the root of the emulation.
type Console struct {
	perm logger.Permission

	Cart   *cartridge.Cartridge
	RAM    *memory.RAM
	Mapper *cartridge.Mapper
	VDP    *video.VDP
	CPU    *cpu.CPU

	// Backup is nil if HasBackup() is false
	Backup *backup.Controller
	MSU    msu.Handler

	chain *bus.Chain
}

// NewConsole is the preferred method of initialisation for the Console type.
func NewConsole(perm logger.Permission, cart *cartridge.Cartridge, cfg Config) *Console {
	con := &Console{
		perm: perm,
		Cart: cart,
		RAM:  memory.NewRAM(),
	}

	con.Mapper = cartridge.NewMapper(perm, cart, con.RAM)
	con.VDP = video.NewVDP(perm, cart.Region)
	con.Mapper.AttachVDP(con.VDP)

	con.chain = bus.NewChain(con.Mapper)

	if !cfg.NoBackup {
		bcfg := cart.BackupConfig(cfg.SramMode)
		bcfg.Filename = cfg.BackupFilename
		con.Backup = backup.NewController(perm, bcfg)
		con.Mapper.AttachBackup(con.Backup)
		con.chain.Attach(con.Backup)
	}

	if cfg.MSU && cfg.Queue != nil && cfg.Output != nil {
		con.MSU = msu.New(perm, cart.CueSheet, cfg.Queue, cfg.Output)
	} else {
		con.MSU = &msu.NoOp{}
	}
	con.chain.Attach(con.MSU)

	// the CPU reads the reset vectors through the bus so it must be
	// created last
	con.CPU = cpu.NewCPU(con)

	return con
}

func (con *Console) String() string {
	return fmt.Sprintf("%s\n%s\n%s", con.Cart.Summary(), con.CPU, con.VDP)
}

// HasBackup returns true if the cartridge is fitted with backup memory.
func (con *Console) HasBackup() bool {
	return con.Backup != nil
}

// Read implements the bus.Mapper interface.
func (con *Console) Read(addr uint32, size bus.Size) uint32 {
	return con.chain.Read(addr, size)
}

// Write implements the bus.Mapper interface.
func (con *Console) Write(addr uint32, data uint32, size bus.Size) {
	con.chain.Write(addr, data, size)
}

// HandleInterrupts passes any pending interrupt from the VDP to the CPU.
func (con *Console) HandleInterrupts() {
	if level, ok := con.VDP.PendingInterrupt(); ok {
		con.CPU.Interrupt(level)
	}
}

// Reset emulates the reset button. Only the CPU and the MSU are reset. The
// contents of RAM and the state of the VDP are unchanged.
func (con *Console) Reset() {
	con.CPU.Reset()
	con.MSU.Reset()
	logger.Log(con.perm, "console", "soft reset")
}

// Close the console. Backup memory is flushed to disk and the MSU is closed.
func (con *Console) Close() error {
	return con.chain.Close()
}

// ResetAudio stops any audio being played by the MSU and returns it to its
// initial state.
func (con *Console) ResetAudio() {
	con.MSU.Reset()
}
