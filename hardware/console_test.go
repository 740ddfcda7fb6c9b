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

package hardware_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heliosemu/helios/audio"
	"github.com/heliosemu/helios/cartridgeloader"
	"github.com/heliosemu/helios/hardware"
	"github.com/heliosemu/helios/hardware/memory/bus"
	"github.com/heliosemu/helios/hardware/memory/cartridge"
	"github.com/heliosemu/helios/hardware/msu"
	"github.com/heliosemu/helios/hardware/scheduler"
	"github.com/heliosemu/helios/hardware/video"
	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/test"
)

// the test program enables the vertical interrupt, writes to RAM and then
// loops. the interrupt handler increments a counter in RAM
var program = map[uint32][]uint16{
	0x000000: {0x00ff, 0x8000, 0x0000, 0x0200},
	0x000078: {0x0000, 0x0300},
	0x000200: {
		0x33fc, 0x8164, 0x00c0, 0x0004, // move.w #$8164,($c00004).l
		0x33fc, 0x1234, 0x00ff, 0x0000, // move.w #$1234,($ff0000).l
		0x46fc, 0x2000, // move #$2000,sr
		0x60fe, // bra.s *
	},
	0x000300: {
		0x5239, 0x00ff, 0x0002, // addq.b #1,($ff0002).l
		0x4e73, // rte
	},
}

func rom() []uint8 {
	data := make([]uint8, 0x1000)
	copy(data[0x100:], "SEGA MEGA DRIVE ")
	copy(data[0x150:], "HELIOS TEST")
	copy(data[0x1f0:], "U")
	for origin, words := range program {
		for i, w := range words {
			a := origin + uint32(i*2)
			data[a] = uint8(w >> 8)
			data[a+1] = uint8(w)
		}
	}
	return data
}

func newConsole(t *testing.T, cfg hardware.Config) *hardware.Console {
	t.Helper()

	dir := t.TempDir()
	fn := filepath.Join(dir, "test.md")
	test.DemandSuccess(t, os.WriteFile(fn, rom(), 0o644))

	cart, err := cartridge.NewCartridge(logger.Allow, cartridgeloader.NewLoader(fn), "")
	test.DemandSuccess(t, err)

	if cfg.BackupFilename == "" {
		cfg.BackupFilename = filepath.Join(dir, "test.srm")
	}

	return hardware.NewConsole(logger.Allow, cart, cfg)
}

func run(t *testing.T, con *hardware.Console, frames int) {
	t.Helper()
	s := scheduler.NewScheduler(con.CPU, con.VDP, con)
	for range frames * video.SlotsPerLine * video.LinesNTSC * scheduler.VideoCadence {
		test.DemandSuccess(t, s.Tick())
	}
}

func TestProgram(t *testing.T) {
	con := newConsole(t, hardware.Config{})
	test.ExpectEquality(t, con.CPU.Registers().PC, uint32(0x200))

	run(t, con, 2)

	test.ExpectEquality(t, con.RAM.Peek(0), uint8(0x12))
	test.ExpectEquality(t, con.RAM.Peek(1), uint8(0x34))
	test.ExpectEquality(t, con.VDP.Register(1), uint8(0x64))
	test.ExpectEquality(t, con.VDP.Frame(), 2)

	// one vertical interrupt per frame
	test.ExpectEquality(t, con.RAM.Peek(2), uint8(2))

	// soft reset restarts the program without clearing RAM
	con.Reset()
	test.ExpectEquality(t, con.CPU.Registers().PC, uint32(0x200))
	test.ExpectEquality(t, con.RAM.Peek(0), uint8(0x12))

	test.ExpectSuccess(t, con.Close())
}

func TestVersionRegister(t *testing.T) {
	con := newConsole(t, hardware.Config{NoBackup: true})
	test.ExpectEquality(t, con.Read(0xa10001, bus.Byte), uint32(con.Cart.Region.VersionCode))
	test.ExpectEquality(t, con.Read(0xa10001, bus.Byte), uint32(0xa0))
}

func TestDevices(t *testing.T) {
	con := newConsole(t, hardware.Config{})
	test.ExpectSuccess(t, con.HasBackup())

	var labels []string
	for _, d := range con.Devices() {
		labels = append(labels, d.Label())
	}
	test.DemandEquality(t, len(labels), 4)
	test.ExpectEquality(t, labels[0], "cpu")
	test.ExpectEquality(t, labels[1], "ram")
	test.ExpectEquality(t, labels[2], "vdp")
	test.ExpectEquality(t, labels[3], "backup")

	con = newConsole(t, hardware.Config{NoBackup: true})
	test.ExpectFailure(t, con.HasBackup())
	test.ExpectEquality(t, len(con.Devices()), 3)
}

func TestDeviceRoundTrip(t *testing.T) {
	con := newConsole(t, hardware.Config{})
	run(t, con, 1)

	var snapshots [][]byte
	for _, d := range con.Devices() {
		s, err := d.Snapshot()
		test.DemandSuccess(t, err, d.Label())
		snapshots = append(snapshots, s)
	}

	con.RAM.Poke(0, 0xff)
	run(t, con, 1)
	test.ExpectEquality(t, con.RAM.Peek(2), uint8(2))

	for i, d := range con.Devices() {
		test.ExpectSuccess(t, d.Restore(snapshots[i]), d.Label())
	}
	test.ExpectEquality(t, con.RAM.Peek(0), uint8(0x12))
	test.ExpectEquality(t, con.RAM.Peek(2), uint8(1))
	test.ExpectEquality(t, con.VDP.Frame(), 1)

	test.ExpectFailure(t, con.Devices()[1].Restore([]byte{0x00}))
}

func TestBackupFlushedOnClose(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "flush.srm")
	con := newConsole(t, hardware.Config{BackupFilename: fn})

	// the window does not overlap the small ROM so it is always enabled
	con.Write(0x200000, 0xabcd, bus.Word)
	test.ExpectEquality(t, con.Read(0x200000, bus.Word), uint32(0xabcd))
	test.ExpectSuccess(t, con.Close())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, data[0], uint8(0xab))
	test.ExpectEquality(t, data[1], uint8(0xcd))
}

func TestMSUDisabled(t *testing.T) {
	con := newConsole(t, hardware.Config{})
	_, ok := con.MSU.(*msu.NoOp)
	test.ExpectSuccess(t, ok)

	// no cue sheet next to the ROM
	con = newConsole(t, hardware.Config{MSU: true, Queue: &queue{}, Output: audio.NewNull()})
	_, ok = con.MSU.(*msu.NoOp)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, con.Read(msu.Status, bus.Byte), uint32(0))
}
