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

package msu

import (
	"github.com/heliosemu/helios/hardware/memory/bus"
)

// Handler is the interface implemented by MSU and NoOp.
type Handler interface {
	bus.Interceptor
	Reset()
	Close() error
}

// NoOp is used in place of the MSU when no disc image is available. Accesses
// to the Mega-CD registers read zero and writes are ignored. Other addresses
// are passed to the base mapper.
type NoOp struct {
	base bus.Mapper
}

// SetBase implements the bus.Interceptor interface.
func (n *NoOp) SetBase(base bus.Mapper) {
	n.base = base
}

// Read implements the bus.Mapper interface.
func (n *NoOp) Read(addr uint32, size bus.Size) uint32 {
	if inWindow(addr & bus.AddressMask) {
		return 0
	}
	if n.base == nil {
		return bus.OpenBus(size)
	}
	return n.base.Read(addr, size)
}

// Write implements the bus.Mapper interface.
func (n *NoOp) Write(addr uint32, data uint32, size bus.Size) {
	if inWindow(addr & bus.AddressMask) {
		return
	}
	if n.base != nil {
		n.base.Write(addr, data, size)
	}
}

// Reset does nothing.
func (n *NoOp) Reset() {
}

// Close does nothing.
func (n *NoOp) Close() error {
	return nil
}

func (n *NoOp) String() string {
	return "msu: disabled"
}
