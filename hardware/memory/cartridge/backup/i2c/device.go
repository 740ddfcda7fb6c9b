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

package i2c

import (
	"fmt"
	"strings"

	"github.com/heliosemu/helios/logger"
)

// Mode is the addressing scheme used by the EEPROM chip.
type Mode int

// List of valid Mode values.
const (
	// X24C01 chips. the first byte after the start condition is the word
	// address and the direction bit. there is no device select byte
	ModeX24C01 Mode = iota + 1

	// 24C01 to 24C16 chips. a device select byte followed by a single word
	// address byte. the upper address bits of larger chips are in the device
	// select byte
	Mode24C02

	// 24C32 and larger chips. a device select byte followed by two word
	// address bytes
	Mode24C64
)

func (m Mode) String() string {
	switch m {
	case ModeX24C01:
		return "X24C01"
	case Mode24C02:
		return "24C02"
	case Mode24C64:
		return "24C64"
	}
	return "unknown"
}

// Spec describes the EEPROM fitted to a cartridge and how the data lines are
// connected to the 68000 data bus.
type Spec struct {
	Mode     Mode
	Size     int
	PageSize int

	// bit positions of the data lines in the data written by the CPU
	SDAIn uint8
	SCL   uint8

	// bit position of the data line in the data read by the CPU
	SDAOut uint8
}

func (s Spec) String() string {
	return fmt.Sprintf("%s %d bytes", s.Mode, s.Size)
}

// State records how incoming signals to the EEPROM will be interpreted.
type State int

// List of valid State values.
const (
	Stopped State = iota
	DeviceSelect
	AddressHi
	AddressLo
	Data
)

// DataDirection indicates the direction of data flow between the CPU and the
// EEPROM.
type DataDirection int

// Valid DataDirection values.
const (
	Reading DataDirection = iota
	Writing
)

// the device select code in the upper nibble of the device select byte
const deviceSelect = 0xa0

// Device is the serial EEPROM fitted to some cartridges in place of SRAM. The
// CPU drives the SDA and SCL lines by writing to the backup memory window and
// samples the SDA line by reading from it.
type Device struct {
	perm logger.Permission
	spec Spec

	SDA Trace
	SCL Trace

	State State
	Dir   DataDirection

	// Data is sent and received one bit at a time. BitsCt counts the rising
	// edges of the clock in the current byte. the ninth clock is the
	// acknowledge clock
	Bits   uint8
	BitsCt int

	// the value driven onto the SDA line by the EEPROM. the line is open
	// drain so a value of true means the EEPROM is not pulling the line low
	sdaOut bool

	// the CPU acknowledged the most recent byte sent by the EEPROM
	masterAck bool

	// the first byte of a read has not yet been sent
	firstRead bool

	EEPROM *EEPROM
}

// NewDevice is the preferred method of initialisation for the Device type.
func NewDevice(perm logger.Permission, spec Spec) *Device {
	if spec.PageSize <= 0 {
		spec.PageSize = 8
	}
	return &Device{
		perm:   perm,
		spec:   spec,
		SDA:    NewTrace(),
		SCL:    NewTrace(),
		State:  Stopped,
		sdaOut: true,
		EEPROM: newEEPROM(spec.Size, spec.PageSize),
	}
}

// Spec returns the specification of the EEPROM.
func (dev *Device) Spec() Spec {
	return dev.spec
}

func (dev *Device) String() string {
	s := strings.Builder{}
	s.WriteString("eeprom: ")

	switch dev.State {
	case Stopped:
		s.WriteString("stopped")
	case DeviceSelect:
		s.WriteString("starting")
	case AddressHi, AddressLo:
		s.WriteString("address")
	case Data:
		switch dev.Dir {
		case Reading:
			s.WriteString("reading ")
		case Writing:
			s.WriteString("writing ")
		}
		s.WriteString("data")
	}

	return s.String()
}

// I2COut returns the state of the SDA line in the format expected by the CPU.
// Both the CPU and the EEPROM can pull the line low.
func (dev *Device) I2COut() uint8 {
	if dev.sdaOut && dev.SDA.Hi() {
		return 0x01 << dev.spec.SDAOut
	}
	return 0x00
}

// I2CIn receives a byte written by the CPU to the backup memory window. The
// SDA and SCL lines are extracted from the byte and the i2c state machine is
// stepped.
func (dev *Device) I2CIn(data uint8) {
	dev.SDA.Tick(data&(0x01<<dev.spec.SDAIn) != 0)
	dev.SCL.Tick(data&(0x01<<dev.spec.SCL) != 0)

	// start and stop conditions are changes of the data line while the
	// clock is high
	if dev.SCL.Steady() {
		if dev.SDA.Falling() {
			dev.start()
			return
		}
		if dev.SDA.Rising() {
			dev.stop()
			return
		}
	}

	if dev.State == Stopped {
		return
	}

	if dev.SCL.Rising() {
		dev.clockRising()
	} else if dev.SCL.Falling() {
		dev.clockFalling()
	}
}

func (dev *Device) start() {
	dev.resetBits()
	dev.sdaOut = true
	if dev.spec.Mode == ModeX24C01 {
		dev.State = AddressLo
	} else {
		dev.State = DeviceSelect
	}
}

func (dev *Device) stop() {
	if dev.State != Stopped {
		logger.Log(dev.perm, "eeprom", "stopped message")
	}
	dev.State = Stopped
	dev.sdaOut = true
	dev.resetBits()
}

func (dev *Device) resetBits() {
	dev.Bits = 0
	dev.BitsCt = 0
}

func (dev *Device) receiving() bool {
	return !(dev.State == Data && dev.Dir == Reading)
}

// the data line is sampled on the rising edge of the clock
func (dev *Device) clockRising() {
	if dev.BitsCt < 8 {
		if dev.receiving() {
			dev.Bits <<= 1
			if dev.SDA.Hi() {
				dev.Bits |= 0x01
			}
		}
	} else if !dev.receiving() {
		dev.masterAck = dev.SDA.Lo()
	}
	dev.BitsCt++
}

// the EEPROM changes its output on the falling edge of the clock
func (dev *Device) clockFalling() {
	switch dev.BitsCt {
	case 8:
		if dev.receiving() {
			if dev.receiveByte(dev.Bits) {
				// acknowledge
				dev.sdaOut = false
			} else {
				dev.State = Stopped
				dev.sdaOut = true
			}
		} else {
			// release the line for the acknowledgement from the CPU
			dev.sdaOut = true
		}

	case 9:
		dev.resetBits()
		dev.sdaOut = true
		if dev.State == Data && dev.Dir == Reading {
			if dev.firstRead || dev.masterAck {
				dev.firstRead = false
				dev.Bits = dev.EEPROM.get()
				dev.sdaOut = dev.Bits&0x80 != 0
			} else {
				// no acknowledgement means the CPU wants no more data. wait
				// for the stop condition
				dev.State = Stopped
			}
		}

	default:
		if dev.State == Data && dev.Dir == Reading && dev.BitsCt < 8 {
			dev.sdaOut = (dev.Bits>>(7-dev.BitsCt))&0x01 != 0
		}
	}
}

// receiveByte interprets a complete byte according to the current state.
// returns false if the byte should not be acknowledged.
func (dev *Device) receiveByte(v uint8) bool {
	switch dev.State {
	case DeviceSelect:
		if v&0xf0 != deviceSelect {
			logger.Logf(dev.perm, "eeprom", "unrecognised device select %#02x", v)
			return false
		}
		if v&0x01 == 0x01 {
			dev.beginRead()
			return true
		}
		dev.Dir = Writing
		if dev.spec.Mode == Mode24C64 {
			dev.State = AddressHi
		} else {
			// block select bits of the larger 24C series chips
			dev.EEPROM.setAddress(uint16(v&0x0e) << 7)
			dev.State = AddressLo
		}

	case AddressHi:
		dev.EEPROM.setAddress(uint16(v) << 8)
		dev.State = AddressLo

	case AddressLo:
		if dev.spec.Mode == ModeX24C01 {
			dev.EEPROM.setAddress(uint16(v >> 1))
			if v&0x01 == 0x01 {
				dev.beginRead()
				return true
			}
			dev.Dir = Writing
			dev.State = Data
			return true
		}
		dev.EEPROM.setAddress(dev.EEPROM.Address | uint16(v))
		dev.Dir = Writing
		dev.State = Data

	case Data:
		dev.EEPROM.put(v)
	}

	return true
}

func (dev *Device) beginRead() {
	logger.Logf(dev.perm, "eeprom", "reading from address %#04x", dev.EEPROM.Address)
	dev.Dir = Reading
	dev.State = Data
	dev.firstRead = true
}
