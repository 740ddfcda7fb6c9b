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

package video

import (
	"fmt"

	"github.com/heliosemu/helios/hardware/memory/bus"
	"github.com/heliosemu/helios/hardware/region"
	"github.com/heliosemu/helios/logger"
)

// FrameTrigger implementations listen for NewFrame events.
type FrameTrigger interface {
	NewFrame(frameNum int) error
}

const (
	numRegisters = 24
	vramSize     = 0x10000
	cramSize     = 64
	vsramSize    = 40
)

// register bits
const (
	reg0HIntEnable    = 0x10
	reg1DisplayEnable = 0x40
	reg1VIntEnable    = 0x20
	reg1V30           = 0x08
	reg12H40          = 0x01
)

// status bits
const (
	statusFIFOEmpty = 0x0200
	statusVIntFlag  = 0x0080
	statusVBlank    = 0x0008
	statusHBlank    = 0x0004
	statusPAL       = 0x0001
)

// access codes written to the control port
const (
	codeVRAMRead  = 0x00
	codeVRAMWrite = 0x01
	codeCRAMWrite = 0x03
	codeVSRAMRead = 0x04
	codeVSRAMWrite = 0x05
	codeCRAMRead  = 0x08
)

// the slot at which the horizontal blank begins
const hblankSlot = 200

// VDP is the video display processor.
type VDP struct {
	perm logger.Permission
	pal  bool

	regs  [numRegisters]uint8
	vram  [vramSize]uint8
	cram  [cramSize]uint16
	vsram [vsramSize]uint16

	// control port state
	ctrlPending bool
	code        uint8
	address     uint16

	// timing
	slot  int
	line  int
	frame int

	vblank      bool
	vintFlag    bool
	vintPending bool
	hintPending bool
	hintCounter int

	screen []uint32

	triggers []FrameTrigger

	dmaLogged bool
}

// NewVDP is the preferred method of initialisation for the VDP type.
func NewVDP(perm logger.Permission, r region.Region) *VDP {
	vdp := &VDP{
		perm:   perm,
		pal:    r.PAL,
		screen: make([]uint32, MaxWidth*MaxHeight),
	}
	vdp.Reset()
	return vdp
}

func (vdp *VDP) String() string {
	return fmt.Sprintf("frame=%d line=%d slot=%d %s", vdp.frame, vdp.line, vdp.slot, vdp.VideoMode())
}

// Reset the VDP to the power-on state.
func (vdp *VDP) Reset() {
	vdp.regs = [numRegisters]uint8{}
	vdp.vram = [vramSize]uint8{}
	vdp.cram = [cramSize]uint16{}
	vdp.vsram = [vsramSize]uint16{}
	vdp.ctrlPending = false
	vdp.code = 0
	vdp.address = 0
	vdp.slot = 0
	vdp.line = 0
	vdp.frame = 0
	vdp.vblank = false
	vdp.vintFlag = false
	vdp.vintPending = false
	vdp.hintPending = false
	vdp.hintCounter = 0
	clear(vdp.screen)
}

// AddFrameTrigger registers an implementation of FrameTrigger.
func (vdp *VDP) AddFrameTrigger(f FrameTrigger) {
	vdp.triggers = append(vdp.triggers, f)
}

// VideoMode returns the current screen mode.
func (vdp *VDP) VideoMode() Mode {
	m := Mode{
		Width:  256,
		Height: 224,
		PAL:    vdp.pal,
	}
	if vdp.regs[12]&reg12H40 == reg12H40 {
		m.Width = 320
	}
	if vdp.pal && vdp.regs[1]&reg1V30 == reg1V30 {
		m.Height = 240
	}
	return m
}

// ScreenBuffer returns the pixels of the current screen mode. Each pixel is
// an ARGB value.
func (vdp *VDP) ScreenBuffer() []uint32 {
	m := vdp.VideoMode()
	return vdp.screen[:m.Width*m.Height]
}

// Frame returns the current frame number.
func (vdp *VDP) Frame() int {
	return vdp.frame
}

// Register returns the value of a VDP register.
func (vdp *VDP) Register(n int) uint8 {
	if n < 0 || n >= numRegisters {
		return 0
	}
	return vdp.regs[n]
}

// PendingInterrupt returns the level of the highest pending interrupt. The
// interrupt is acknowledged. The second return value is false if there is no
// pending interrupt.
func (vdp *VDP) PendingInterrupt() (uint8, bool) {
	if vdp.vintPending {
		vdp.vintPending = false
		vdp.vintFlag = false
		return VIntLevel, true
	}
	if vdp.hintPending {
		vdp.hintPending = false
		return HIntLevel, true
	}
	return 0, false
}

// Read implements the bus.Mapper interface.
func (vdp *VDP) Read(addr uint32, size bus.Size) uint32 {
	port := addr & 0x1f

	switch size {
	case bus.Byte:
		w := vdp.readPort(port &^ 0x01)
		if port&0x01 == 0x01 {
			return uint32(w & 0xff)
		}
		return uint32(w >> 8)
	case bus.Word:
		return uint32(vdp.readPort(port &^ 0x01))
	}

	hi := uint32(vdp.readPort(port &^ 0x01))
	lo := uint32(vdp.readPort((port + 2) &^ 0x01))
	return hi<<16 | lo
}

// Write implements the bus.Mapper interface.
func (vdp *VDP) Write(addr uint32, data uint32, size bus.Size) {
	port := addr & 0x1f

	switch size {
	case bus.Byte:
		// byte writes appear on both halves of the data bus
		v := uint16(data & 0xff)
		vdp.writePort(port&^0x01, v<<8|v)
	case bus.Word:
		vdp.writePort(port&^0x01, uint16(data))
	default:
		vdp.writePort(port&^0x01, uint16(data>>16))
		vdp.writePort((port+2)&^0x01, uint16(data))
	}
}

func (vdp *VDP) readPort(port uint32) uint16 {
	switch {
	case port < 0x04:
		return vdp.readData()
	case port < 0x08:
		return vdp.status()
	case port < 0x10:
		return vdp.hvCounter()
	}
	return 0xffff
}

func (vdp *VDP) writePort(port uint32, data uint16) {
	switch {
	case port < 0x04:
		vdp.writeData(data)
	case port < 0x08:
		vdp.writeControl(data)
	default:
		// PSG and debug registers are not emulated
	}
}

// reading the status register resets the control port
func (vdp *VDP) status() uint16 {
	vdp.ctrlPending = false

	s := uint16(0x3400 | statusFIFOEmpty)
	if vdp.vintFlag {
		s |= statusVIntFlag
	}
	if vdp.vblank || vdp.regs[1]&reg1DisplayEnable == 0 {
		s |= statusVBlank
	}
	if vdp.slot >= hblankSlot {
		s |= statusHBlank
	}
	if vdp.pal {
		s |= statusPAL
	}
	return s
}

func (vdp *VDP) hvCounter() uint16 {
	v := uint16(vdp.line & 0xff)
	h := uint16(vdp.slot*0xb6/SlotsPerLine) & 0xff
	return v<<8 | h
}

func (vdp *VDP) writeControl(data uint16) {
	if vdp.ctrlPending {
		vdp.ctrlPending = false
		vdp.address = (vdp.address & 0x3fff) | ((data & 0x03) << 14)
		vdp.code = (vdp.code & 0x03) | uint8((data>>2)&0x3c)
		if vdp.code&0x20 == 0x20 && !vdp.dmaLogged {
			vdp.dmaLogged = true
			logger.Log(vdp.perm, "vdp", "dma is not emulated")
		}
		return
	}

	if data&0xc000 == 0x8000 {
		reg := int((data >> 8) & 0x1f)
		if reg < numRegisters {
			vdp.regs[reg] = uint8(data)
		}
		return
	}

	vdp.ctrlPending = true
	vdp.code = (vdp.code & 0x3c) | uint8(data>>14)
	vdp.address = (vdp.address & 0xc000) | (data & 0x3fff)
}

func (vdp *VDP) increment() {
	vdp.address += uint16(vdp.regs[15])
}

func (vdp *VDP) writeData(data uint16) {
	vdp.ctrlPending = false

	switch vdp.code & 0x0f {
	case codeVRAMWrite:
		a := vdp.address &^ 0x01
		vdp.vram[a] = uint8(data >> 8)
		vdp.vram[a+1] = uint8(data)
	case codeCRAMWrite:
		vdp.cram[(vdp.address>>1)%cramSize] = data & 0x0eee
	case codeVSRAMWrite:
		vdp.vsram[(vdp.address>>1)%vsramSize] = data & 0x07ff
	}

	vdp.increment()
}

func (vdp *VDP) readData() uint16 {
	vdp.ctrlPending = false

	var v uint16
	switch vdp.code & 0x0f {
	case codeVRAMRead:
		a := vdp.address &^ 0x01
		v = uint16(vdp.vram[a])<<8 | uint16(vdp.vram[a+1])
	case codeCRAMRead:
		v = vdp.cram[(vdp.address>>1)%cramSize]
	case codeVSRAMRead:
		v = vdp.vsram[(vdp.address>>1)%vsramSize]
	}

	vdp.increment()
	return v
}
