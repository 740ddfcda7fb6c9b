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

//go:build windows

package input

import (
	"github.com/heliosemu/helios/curated"
)

// Terminal is not supported on this platform.
type Terminal struct{}

// OpenTerminal always fails on this platform.
func OpenTerminal() (*Terminal, error) {
	return nil, curated.Errorf("input: terminal not supported on this platform")
}

// Read implements the io.Reader interface.
func (pt *Terminal) Read(_ []byte) (int, error) {
	return 0, nil
}

// Close implements the io.Closer interface.
func (pt *Terminal) Close() error {
	return nil
}
