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

//go:build !windows

package input

import (
	"io"
	"time"

	"github.com/heliosemu/helios/curated"
	"github.com/pkg/term"
)

// the terminal device opened by OpenTerminal()
const device = "/dev/tty"

// how long a read of the terminal blocks before returning
const readTimeout = 100 * time.Millisecond

// Terminal is the controlling terminal of the process, put into cbreak mode
// so that keys are available without the user pressing return.
type Terminal struct {
	t *term.Term
}

// OpenTerminal puts the controlling terminal into cbreak mode. The Close()
// function must be called to return the terminal to its original mode.
func OpenTerminal() (*Terminal, error) {
	t, err := term.Open(device, term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf("input: %v", err)
	}
	err = t.SetReadTimeout(readTimeout)
	if err != nil {
		_ = t.Restore()
		_ = t.Close()
		return nil, curated.Errorf("input: %v", err)
	}
	return &Terminal{t: t}, nil
}

// Read implements the io.Reader interface. Returns zero bytes and no error
// if no key was pressed within the read timeout.
func (pt *Terminal) Read(p []byte) (int, error) {
	n, err := pt.t.Read(p)
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// Close restores the terminal to its original mode.
func (pt *Terminal) Close() error {
	if err := pt.t.Restore(); err != nil {
		_ = pt.t.Close()
		return curated.Errorf("input: %v", err)
	}
	return pt.t.Close()
}
