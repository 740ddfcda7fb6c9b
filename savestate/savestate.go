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

package savestate

import (
	"bufio"
	"encoding/gob"
	"io"
	"os"

	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware"
)

// Magic is the header of every save-state file.
const Magic = "helios-state\n"

// version of the snapshot list. files with a different version can not be
// loaded
const version = 1

// Sentinel errors.
const (
	NotSaveState   = "savestate: not a save-state file"
	WrongVersion   = "savestate: unsupported version (%d)"
	WrongROM       = "savestate: state is for a different ROM"
	DeviceMismatch = "savestate: device mismatch (%s)"
)

type entry struct {
	Label string
	Data  []byte
}

type snapshot struct {
	Version int
	ROM     string
	Entries []entry
}

// Write the state of the devices to the io.Writer. The rom argument
// identifies the loaded ROM, usually by its hash.
func Write(w io.Writer, rom string, devices []hardware.Device) error {
	s := snapshot{
		Version: version,
		ROM:     rom,
		Entries: make([]entry, 0, len(devices)),
	}

	for _, d := range devices {
		data, err := d.Snapshot()
		if err != nil {
			return curated.Errorf("savestate: %v", err)
		}
		s.Entries = append(s.Entries, entry{Label: d.Label(), Data: data})
	}

	if _, err := io.WriteString(w, Magic); err != nil {
		return curated.Errorf("savestate: %v", err)
	}
	if err := gob.NewEncoder(w).Encode(s); err != nil {
		return curated.Errorf("savestate: %v", err)
	}

	return nil
}

// Read state from the io.Reader and restore the devices. The devices are not
// changed if the state does not match the list of devices or the rom.
func Read(r io.Reader, rom string, devices []hardware.Device) error {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != Magic {
		return curated.Errorf(NotSaveState)
	}

	var s snapshot
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return curated.Errorf("savestate: %v", err)
	}

	if s.Version != version {
		return curated.Errorf(WrongVersion, s.Version)
	}
	if rom != "" && s.ROM != "" && s.ROM != rom {
		return curated.Errorf(WrongROM)
	}

	if len(s.Entries) != len(devices) {
		return curated.Errorf(DeviceMismatch, "number of devices")
	}
	for i, d := range devices {
		if s.Entries[i].Label != d.Label() {
			return curated.Errorf(DeviceMismatch, d.Label())
		}
	}

	for i, d := range devices {
		if err := d.Restore(s.Entries[i].Data); err != nil {
			return curated.Errorf("savestate: %v", err)
		}
	}

	return nil
}

// Save the state of the devices to the named file.
func Save(filename string, rom string, devices []hardware.Device) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("savestate: %v", err)
	}

	w := bufio.NewWriter(f)
	err = Write(w, rom, devices)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return curated.Errorf("savestate: %v", err)
	}

	return nil
}

// Load state from the named file and restore the devices.
func Load(filename string, rom string, devices []hardware.Device) error {
	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf("savestate: %v", err)
	}
	defer f.Close()

	return Read(bufio.NewReader(f), rom, devices)
}
