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

package backup_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heliosemu/helios/hardware/memory/bus"
	"github.com/heliosemu/helios/hardware/memory/cartridge/backup"
	"github.com/heliosemu/helios/hardware/memory/cartridge/backup/i2c"
	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/test"
)

const (
	rom16Mbit = 0x200000
	rom32Mbit = 0x400000
)

// rom is a base mapper that returns a pattern derived from the address and
// records the writes it receives
type rom struct {
	size   uint32
	writes int
}

func (r *rom) Read(addr uint32, size bus.Size) uint32 {
	if addr >= r.size {
		return bus.OpenBus(size)
	}
	return bus.ReadBytes(addr, size, func(a uint32) uint8 {
		return uint8(a ^ (a >> 8))
	})
}

func (r *rom) Write(_ uint32, _ uint32, _ bus.Size) {
	r.writes++
}

func newController(t *testing.T, romSize uint32, mode backup.SramMode) (*backup.Controller, *rom) {
	t.Helper()
	base := &rom{size: romSize}
	c := backup.NewController(logger.Allow, backup.Config{
		Name:     "test",
		ROMSize:  int(romSize),
		Window:   backup.DefaultWindow(),
		Mode:     mode,
		Filename: filepath.Join(t.TempDir(), "test.srm"),
	})
	c.SetBase(base)
	return c, base
}

func TestPassThrough(t *testing.T) {
	c, base := newController(t, rom32Mbit, backup.ReadWrite)
	direct := &rom{size: rom32Mbit}

	for _, addr := range []uint32{0x000000, 0x000100, 0x1ffffe, 0x1fffff, 0x210000, 0x3ffffc, 0x400000, 0xff0000} {
		for _, sz := range []bus.Size{bus.Byte, bus.Word, bus.Long} {
			test.ExpectEquality(t, c.Read(addr, sz), direct.Read(addr, sz), addr, sz)
		}
		c.Write(addr, 0x12345678, bus.Word)
	}
	test.ExpectEquality(t, base.writes, 8)

	// nothing has been serviced so the backup file should not exist
	c.Close()
	_, err := os.Stat(c.Filename())
	test.ExpectFailure(t, err == nil)
}

func TestRoundTrip(t *testing.T) {
	c, base := newController(t, rom32Mbit, backup.ReadWrite)

	c.Write(0x200000, 0xab, bus.Byte)
	test.ExpectEquality(t, c.Read(0x200000, bus.Byte), 0xab)

	c.Write(0x200010, 0xbeef, bus.Word)
	test.ExpectEquality(t, c.Read(0x200010, bus.Word), 0xbeef)
	test.ExpectEquality(t, c.Read(0x200010, bus.Byte), 0xbe)
	test.ExpectEquality(t, c.Read(0x200011, bus.Byte), 0xef)

	c.Write(0x200020, 0xdeadbeef, bus.Long)
	test.ExpectEquality(t, c.Read(0x200020, bus.Long), 0xdeadbeef)
	test.ExpectEquality(t, c.Read(0x200020, bus.Word), 0xdead)
	test.ExpectEquality(t, c.Read(0x200022, bus.Word), 0xbeef)

	// multi-byte accesses at the end of the buffer wrap to the start
	c.Write(0x20fffe, 0x01020304, bus.Long)
	test.ExpectEquality(t, c.Read(0x20fffe, bus.Long), 0x01020304)
	test.ExpectEquality(t, c.Read(0x200000, bus.Word), 0x0304)

	// addresses are masked to 24 bits before the window check
	test.ExpectEquality(t, c.Read(0xff200020, bus.Long), 0xdeadbeef)

	test.ExpectEquality(t, base.writes, 0)
}

func TestDisabledWithOverlap(t *testing.T) {
	c, base := newController(t, rom32Mbit, backup.Disable)
	direct := &rom{size: rom32Mbit}

	test.ExpectEquality(t, c.Read(0x200000, bus.Long), direct.Read(0x200000, bus.Long))

	c.Write(0x200000, 0x11223344, bus.Long)
	test.ExpectEquality(t, base.writes, 1)
	test.ExpectEquality(t, c.Read(0x200000, bus.Long), direct.Read(0x200000, bus.Long))

	// the write was not seen by the backup memory
	c.SetMode(backup.ReadWrite)
	test.ExpectEquality(t, c.Read(0x200000, bus.Long), 0x00000000)
}

func TestReadOnly(t *testing.T) {
	c, base := newController(t, rom32Mbit, backup.ReadWrite)
	c.Write(0x200100, 0x5a, bus.Byte)

	c.SetMode(backup.ReadOnly)
	test.ExpectEquality(t, c.Read(0x200100, bus.Byte), 0x5a)

	// writes are forwarded to the base mapper
	c.Write(0x200100, 0xa5, bus.Byte)
	test.ExpectEquality(t, base.writes, 1)
	test.ExpectEquality(t, c.Read(0x200100, bus.Byte), 0x5a)
}

func TestNoOverlap(t *testing.T) {
	for _, mode := range []backup.SramMode{backup.Disable, backup.ReadOnly, backup.ReadWrite} {
		c, base := newController(t, rom16Mbit/2, mode)
		c.Write(0x200002, 0xcafe, bus.Word)
		test.ExpectEquality(t, c.Read(0x200002, bus.Word), 0xcafe, mode)
		test.ExpectEquality(t, base.writes, 0, mode)
	}
}

// header declares backup memory in the window 0x200001 to 0x20ffff
func header(size int) []uint8 {
	data := make([]uint8, size)
	copy(data[0x1b0:], []uint8{'R', 'A', 0x80, 0x20})
	copy(data[0x1b4:], []uint8{0x00, 0x20, 0x00, 0x01})
	copy(data[0x1b8:], []uint8{0x00, 0x20, 0xff, 0xff})
	return data
}

func TestDeclaredWindow(t *testing.T) {
	data := header(rom16Mbit)

	w := backup.WindowFromHeader(data)
	test.ExpectSuccess(t, w.Declared)
	test.ExpectEquality(t, w.Start, 0x200001)
	test.ExpectEquality(t, w.End, 0x20ffff)

	// 16Mbit rom so there is no overlap between rom and window
	test.ExpectFailure(t, w.Overlaps(len(data)))

	c := backup.NewController(logger.Allow, backup.Config{
		Name:     "declared",
		ROMSize:  len(data),
		Window:   w,
		Mode:     backup.Disable,
		Filename: filepath.Join(t.TempDir(), "declared.srm"),
	})

	// beyond the rom and outside the window
	test.ExpectEquality(t, c.Read(0x300000, bus.Long), 0xffffffff)

	test.ExpectEquality(t, c.Read(0x200001, bus.Long), 0x00000000)
	c.Write(0x200001, 0x12345678, bus.Long)
	test.ExpectEquality(t, c.Read(0x200001, bus.Long), 0x12345678)
	test.ExpectEquality(t, c.Read(0x200001, bus.Word), 0x1234)
	test.ExpectEquality(t, c.Read(0x200001, bus.Byte), 0x12)

	// 0x200000 is outside the declared window
	test.ExpectEquality(t, c.Read(0x200000, bus.Byte), 0xff)
}

func TestDefaultWindow(t *testing.T) {
	w := backup.WindowFromHeader(make([]uint8, 0x200))
	test.ExpectFailure(t, w.Declared)
	test.ExpectEquality(t, w.Start, backup.DefaultStart)
	test.ExpectEquality(t, w.End, backup.DefaultEnd)
	test.ExpectEquality(t, w.Start, 0x200000)
	test.ExpectEquality(t, w.End, 0x20ffff)

	// too short to contain a header
	w = backup.WindowFromHeader(nil)
	test.ExpectEquality(t, w, backup.DefaultWindow())

	test.ExpectSuccess(t, w.Overlaps(rom32Mbit))
	test.ExpectSuccess(t, w.Overlaps(rom16Mbit+1))
	test.ExpectFailure(t, w.Overlaps(rom16Mbit))
	test.ExpectFailure(t, w.Overlaps(0))
}

func TestPersistence(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "persist.srm")
	cfg := backup.Config{
		Name:     "persist",
		ROMSize:  rom32Mbit,
		Window:   backup.DefaultWindow(),
		Mode:     backup.ReadWrite,
		Filename: fn,
	}

	c := backup.NewController(logger.Allow, cfg)
	c.Write(0x200004, 0x0badf00d, bus.Long)

	// the file was created on the first access
	fi, err := os.Stat(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fi.Size(), int64(backup.DefaultSize))

	test.ExpectSuccess(t, c.Close())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, data[4], 0x0b)
	test.ExpectEquality(t, data[7], 0x0d)

	d := backup.NewController(logger.Allow, cfg)
	test.ExpectEquality(t, d.Read(0x200004, bus.Long), 0x0badf00d)
}

func TestUnreadableFile(t *testing.T) {
	// a directory cannot be read as a backup file
	fn := filepath.Join(t.TempDir(), "unreadable.srm")
	test.DemandSuccess(t, os.Mkdir(fn, 0o755))

	c := backup.NewController(logger.Allow, backup.Config{
		Name:     "unreadable",
		ROMSize:  rom32Mbit,
		Window:   backup.DefaultWindow(),
		Mode:     backup.ReadWrite,
		Filename: fn,
	})

	// the memory is still usable
	c.Write(0x200004, 0x0badf00d, bus.Long)
	test.ExpectEquality(t, c.Read(0x200004, bus.Long), 0x0badf00d)

	// but is never written over the existing file
	test.ExpectEquality(t, c.Filename(), "")
	test.ExpectSuccess(t, c.Close())

	fi, err := os.Stat(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, fi.IsDir())
}

func TestSramMode(t *testing.T) {
	m, ok := backup.ParseSramMode("read_write")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, m, backup.ReadWrite)

	m, ok = backup.ParseSramMode("READ-ONLY")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, m, backup.ReadOnly)

	_, ok = backup.ParseSramMode("enabled")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, backup.Disable.String(), "DISABLE")
}

func TestEEPROMWindow(t *testing.T) {
	spec := i2c.Spec{
		Mode:     i2c.Mode24C02,
		Size:     128,
		PageSize: 8,
		SDAIn:    0,
		SCL:      1,
		SDAOut:   0,
	}

	c := backup.NewController(logger.Allow, backup.Config{
		Name:     "eeprom",
		ROMSize:  rom16Mbit,
		Window:   backup.DefaultWindow(),
		EEPROM:   &spec,
		Filename: filepath.Join(t.TempDir(), "eeprom.eep"),
	})
	test.DemandSuccess(t, c.HasEEPROM())
	dev := c.EEPROM()

	// only the odd byte lane of a word write reaches the EEPROM
	c.Write(0x200000, 0xff00, bus.Word)
	test.ExpectSuccess(t, dev.SDA.Lo())
	test.ExpectSuccess(t, dev.SCL.Lo())

	c.Write(0x200000, 0x0003, bus.Word)
	test.ExpectSuccess(t, dev.SDA.Hi())
	test.ExpectSuccess(t, dev.SCL.Hi())

	// with no transfer in progress the line is pulled high
	test.ExpectEquality(t, c.Read(0x200001, bus.Byte), 0x01)

	// byte writes reach the EEPROM whatever the address
	c.Write(0x200000, 0x02, bus.Byte)
	test.ExpectSuccess(t, dev.SDA.Lo())
	test.ExpectEquality(t, c.Read(0x200001, bus.Byte), 0x00)

	test.ExpectSuccess(t, c.Close())
	data, err := os.ReadFile(c.Filename())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 128)
	test.ExpectEquality(t, data[0], 0xff)
}
