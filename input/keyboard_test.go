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

package input_test

import (
	"strings"
	"testing"

	"github.com/heliosemu/helios/input"
	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/test"
)

type controller struct {
	pause int
	reset int
	save  []string
	load  []string
}

func (c *controller) TogglePause()                 { c.pause++ }
func (c *controller) RequestSoftReset()            { c.reset++ }
func (c *controller) RequestSaveState(path string) { c.save = append(c.save, path) }
func (c *controller) RequestLoadState(path string) { c.load = append(c.load, path) }

func quit(kb *input.Keyboard) bool {
	select {
	case <-kb.Quit():
		return true
	default:
		return false
	}
}

func TestKeys(t *testing.T) {
	ctrl := &controller{}
	kb := input.NewKeyboard(logger.Allow, ctrl, "test.state")

	// keys have no effect until HandleEvents() is called
	kb.Push('p')
	kb.Push('R')
	kb.Push('s')
	test.ExpectEquality(t, ctrl.pause, 0)

	kb.HandleEvents()
	test.ExpectEquality(t, ctrl.pause, 1)
	test.ExpectEquality(t, ctrl.reset, 1)
	test.DemandEquality(t, len(ctrl.save), 1)
	test.ExpectEquality(t, ctrl.save[0], "test.state")
	test.ExpectEquality(t, len(ctrl.load), 0)
	test.ExpectFailure(t, quit(kb))

	kb.Push('l')
	kb.Push('x')
	kb.HandleEvents()
	test.ExpectEquality(t, len(ctrl.load), 1)

	kb.Push('q')
	kb.Push('q')
	kb.HandleEvents()
	test.ExpectSuccess(t, quit(kb))
}

func TestFeed(t *testing.T) {
	ctrl := &controller{}
	kb := input.NewKeyboard(logger.Allow, ctrl, "")

	test.ExpectSuccess(t, kb.Feed(strings.NewReader("ppr\n")))
	kb.HandleEvents()
	test.ExpectEquality(t, ctrl.pause, 2)
	test.ExpectEquality(t, ctrl.reset, 1)

	// nothing is read after the quit key has been handled
	test.ExpectSuccess(t, kb.Feed(strings.NewReader("q")))
	kb.HandleEvents()
	test.ExpectSuccess(t, kb.Feed(strings.NewReader("rrr")))
	kb.HandleEvents()
	test.ExpectEquality(t, ctrl.reset, 1)
}

func TestQueueFull(t *testing.T) {
	ctrl := &controller{}
	kb := input.NewKeyboard(logger.Allow, ctrl, "")
	for range 100 {
		kb.Push('r')
	}
	kb.HandleEvents()
	test.ExpectEquality(t, ctrl.reset, 16)
}
