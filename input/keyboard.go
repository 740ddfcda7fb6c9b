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

package input

import (
	"io"
	"sync"
	"unicode"

	"github.com/heliosemu/helios/logger"
)

// Controller is the set of requests that can be made by the keyboard.
type Controller interface {
	TogglePause()
	RequestSoftReset()
	RequestSaveState(path string)
	RequestLoadState(path string)
}

// Help summarises the key bindings.
const Help = "p: pause, r: reset, s: save state, l: load state, q: quit"

// length of key queue. keys pressed when the queue is full are dropped
const queueLength = 16

// Keyboard converts key presses into requests to the Controller.
type Keyboard struct {
	perm      logger.Permission
	ctrl      Controller
	statePath string

	keys chan byte

	quit     chan struct{}
	quitOnce sync.Once
}

// NewKeyboard is the preferred method of initialisation for the Keyboard
// type. The statePath argument is the file used by the save and load keys.
func NewKeyboard(perm logger.Permission, ctrl Controller, statePath string) *Keyboard {
	return &Keyboard{
		perm:      perm,
		ctrl:      ctrl,
		statePath: statePath,
		keys:      make(chan byte, queueLength),
		quit:      make(chan struct{}),
	}
}

// Push a key onto the queue. Does not block.
func (kb *Keyboard) Push(key byte) {
	select {
	case kb.keys <- key:
	default:
		logger.Logf(kb.perm, "input", "key queue full: dropping %q", key)
	}
}

// Feed reads keys from the io.Reader until it returns an error or until the
// quit key has been pressed. It should be run in its own goroutine. The io.EOF
// error is not returned.
func (kb *Keyboard) Feed(r io.Reader) error {
	b := make([]byte, 8)
	for {
		select {
		case <-kb.quit:
			return nil
		default:
		}

		n, err := r.Read(b)
		for _, k := range b[:n] {
			kb.Push(k)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Quit returns a channel that is closed when the quit key is pressed.
func (kb *Keyboard) Quit() <-chan struct{} {
	return kb.quit
}

// HandleEvents processes every key in the queue.
func (kb *Keyboard) HandleEvents() {
	for {
		select {
		case k := <-kb.keys:
			kb.handle(k)
		default:
			return
		}
	}
}

func (kb *Keyboard) handle(key byte) {
	switch unicode.ToLower(rune(key)) {
	case 'p':
		kb.ctrl.TogglePause()
	case 'r':
		kb.ctrl.RequestSoftReset()
	case 's':
		kb.ctrl.RequestSaveState(kb.statePath)
	case 'l':
		kb.ctrl.RequestLoadState(kb.statePath)
	case 'q':
		kb.quitOnce.Do(func() {
			logger.Log(kb.perm, "input", "quit")
			close(kb.quit)
		})
	case '\n', '\r', ' ':
	default:
		logger.Logf(kb.perm, "input", "unbound key %q", key)
	}
}
