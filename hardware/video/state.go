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
	"bytes"
	"encoding/gob"

	"github.com/heliosemu/helios/curated"
)

// the part of the VDP that is saved in a save-state
type state struct {
	Regs        [numRegisters]uint8
	VRAM        []uint8
	CRAM        [cramSize]uint16
	VSRAM       [vsramSize]uint16
	CtrlPending bool
	Code        uint8
	Address     uint16
	Slot        int
	Line        int
	Frame       int
	VBlank      bool
	VIntFlag    bool
	VIntPending bool
	HIntPending bool
	HIntCounter int
}

// Label implements the hardware.Device interface.
func (vdp *VDP) Label() string {
	return "vdp"
}

// Snapshot implements the hardware.Device interface.
func (vdp *VDP) Snapshot() ([]byte, error) {
	s := state{
		Regs:        vdp.regs,
		VRAM:        vdp.vram[:],
		CRAM:        vdp.cram,
		VSRAM:       vdp.vsram,
		CtrlPending: vdp.ctrlPending,
		Code:        vdp.code,
		Address:     vdp.address,
		Slot:        vdp.slot,
		Line:        vdp.line,
		Frame:       vdp.frame,
		VBlank:      vdp.vblank,
		VIntFlag:    vdp.vintFlag,
		VIntPending: vdp.vintPending,
		HIntPending: vdp.hintPending,
		HIntCounter: vdp.hintCounter,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, curated.Errorf("vdp: %v", err)
	}
	return buf.Bytes(), nil
}

// Restore implements the hardware.Device interface.
func (vdp *VDP) Restore(data []byte) error {
	var s state
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return curated.Errorf("vdp: %v", err)
	}

	vdp.regs = s.Regs
	copy(vdp.vram[:], s.VRAM)
	vdp.cram = s.CRAM
	vdp.vsram = s.VSRAM
	vdp.ctrlPending = s.CtrlPending
	vdp.code = s.Code
	vdp.address = s.Address
	vdp.slot = s.Slot
	vdp.line = s.Line
	vdp.frame = s.Frame
	vdp.vblank = s.VBlank
	vdp.vintFlag = s.VIntFlag
	vdp.vintPending = s.VIntPending
	vdp.hintPending = s.HIntPending
	vdp.hintCounter = s.HIntCounter

	return nil
}
