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
	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware/memory"
	"github.com/heliosemu/helios/hardware/memory/cartridge/backup"
	"github.com/heliosemu/helios/hardware/memory/memorymap"
)

// Device is a stateful part of the console that can be saved and restored.
type Device interface {
	Label() string
	Snapshot() ([]byte, error)
	Restore(data []byte) error
}

type ramDevice struct {
	ram *memory.RAM
}

func (d ramDevice) Label() string {
	return "ram"
}

func (d ramDevice) Snapshot() ([]byte, error) {
	return d.ram.Snapshot(), nil
}

func (d ramDevice) Restore(data []byte) error {
	if len(data) != memorymap.RAMSize {
		return curated.Errorf("ram: %v", "wrong size for restore")
	}
	d.ram.Plumb(data)
	return nil
}

type backupDevice struct {
	ctrl *backup.Controller
}

func (d backupDevice) Label() string {
	return "backup"
}

func (d backupDevice) Snapshot() ([]byte, error) {
	return d.ctrl.Contents(), nil
}

func (d backupDevice) Restore(data []byte) error {
	d.ctrl.Restore(data)
	return nil
}

// Devices returns the stateful devices of the console. The order of the list
// is the same for every console.
func (con *Console) Devices() []Device {
	d := []Device{
		con.CPU,
		ramDevice{ram: con.RAM},
		con.VDP,
	}
	if con.HasBackup() {
		d = append(d, backupDevice{ctrl: con.Backup})
	}
	return d
}
