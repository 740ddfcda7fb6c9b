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

package bus

import (
	"errors"
	"slices"

	"github.com/heliosemu/helios/curated"
)

// Chain is an ordered list of Interceptors above a base Mapper. The most
// recently attached Interceptor is at the top of the chain.
type Chain struct {
	base   Mapper
	layers []Interceptor
}

// NewChain is the preferred method of initialisation for the Chain type. A
// nil base is replaced with the Unmapped mapper.
func NewChain(base Mapper) *Chain {
	if base == nil {
		base = Unmapped{}
	}
	return &Chain{base: base}
}

// relink rebuilds the base links of every layer
func (c *Chain) relink() {
	below := c.base
	for _, l := range c.layers {
		l.SetBase(below)
		below = l
	}
}

// top returns the entry point of the chain.
func (c *Chain) top() Mapper {
	if len(c.layers) == 0 {
		return c.base
	}
	return c.layers[len(c.layers)-1]
}

// Attach an Interceptor to the top of the chain.
func (c *Chain) Attach(m Interceptor) {
	if m == nil {
		return
	}
	c.layers = append(c.layers, m)
	c.relink()
}

// Detach removes the Interceptor from the chain. Returns false if the
// Interceptor was not in the chain.
func (c *Chain) Detach(m Interceptor) bool {
	i := slices.Index(c.layers, m)
	if i == -1 {
		return false
	}
	c.layers = slices.Delete(c.layers, i, i+1)
	c.relink()
	return true
}

// Len returns the number of Interceptors in the chain.
func (c *Chain) Len() int {
	return len(c.layers)
}

// Read implements the Mapper interface.
func (c *Chain) Read(addr uint32, size Size) uint32 {
	return c.top().Read(addr, size)
}

// Write implements the Mapper interface.
func (c *Chain) Write(addr uint32, data uint32, size Size) {
	c.top().Write(addr, data, size)
}

// Close every layer that implements the Closer interface, from the top of the
// chain down to the base. Every layer is closed even if an earlier layer
// returns an error.
func (c *Chain) Close() error {
	var errs []error

	closeMapper := func(m Mapper) {
		if cl, ok := m.(Closer); ok {
			if err := cl.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for i := len(c.layers) - 1; i >= 0; i-- {
		closeMapper(c.layers[i])
	}
	closeMapper(c.base)

	if len(errs) > 0 {
		return curated.Errorf("bus: %v", errors.Join(errs...))
	}
	return nil
}
