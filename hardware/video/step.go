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

// RunSlot advances the VDP by one slot. Any error returned by a FrameTrigger
// is returned.
func (vdp *VDP) RunSlot() error {
	vdp.slot++
	if vdp.slot < SlotsPerLine {
		return nil
	}
	vdp.slot = 0

	return vdp.newLine()
}

func (vdp *VDP) newLine() error {
	m := vdp.VideoMode()

	if vdp.line < m.Height {
		vdp.drawLine(m)
		vdp.hint()
	}

	vdp.line++

	if vdp.line == m.Height {
		vdp.vblank = true
		vdp.vintFlag = true
		if vdp.regs[1]&reg1VIntEnable == reg1VIntEnable {
			vdp.vintPending = true
		}
	}

	if vdp.line < m.Lines() {
		return nil
	}

	vdp.line = 0
	vdp.vblank = false
	vdp.hintCounter = int(vdp.regs[10])
	vdp.frame++

	for _, t := range vdp.triggers {
		if err := t.NewFrame(vdp.frame); err != nil {
			return err
		}
	}

	return nil
}

// the horizontal interrupt counter is decremented on every visible line and
// raises an interrupt when it underflows
func (vdp *VDP) hint() {
	vdp.hintCounter--
	if vdp.hintCounter >= 0 {
		return
	}
	vdp.hintCounter = int(vdp.regs[10])
	if vdp.regs[0]&reg0HIntEnable == reg0HIntEnable {
		vdp.hintPending = true
	}
}

func (vdp *VDP) drawLine(m Mode) {
	c := Black
	if vdp.regs[1]&reg1DisplayEnable == reg1DisplayEnable {
		c = colour(vdp.cram[vdp.regs[7]&0x3f])
	}

	row := vdp.screen[vdp.line*m.Width : (vdp.line+1)*m.Width]
	for i := range row {
		row[i] = c
	}
}
