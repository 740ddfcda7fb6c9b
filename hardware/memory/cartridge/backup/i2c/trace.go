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

// Trace records the state of an electrical line, whether it is high or low,
// and also whether the immediately previous state is high or low.
//
// Moving from one state to the other is done with Tick(bool) where a boolean
// value of true indicates a high voltage state.
//
// Deriving conditions from two traces is convenient. For example, the start
// condition of the i2c protocol is:
//
//	if SCL.Hi() && SDA.Falling() {
//		start()
//	}
type Trace struct {
	from bool
	to   bool
}

// NewTrace is the preferred method of initialisation for the Trace type. An
// i2c line is pulled high when idle.
func NewTrace() Trace {
	return Trace{from: true, to: true}
}

// Tick moves the trace on by one state.
func (tr *Trace) Tick(v bool) {
	tr.from = tr.to
	tr.to = v
}

// Falling returns true if the line has moved from high to low.
func (tr Trace) Falling() bool {
	return tr.from && !tr.to
}

// Rising returns true if the line has moved from low to high.
func (tr Trace) Rising() bool {
	return !tr.from && tr.to
}

// Hi returns true if the line is currently high.
func (tr Trace) Hi() bool {
	return tr.to
}

// Lo returns true if the line is currently low.
func (tr Trace) Lo() bool {
	return !tr.to
}

// Steady returns true if the line was high and remains high.
func (tr Trace) Steady() bool {
	return tr.from && tr.to
}

// Changed returns true if the line has changed state.
func (tr Trace) Changed() bool {
	return tr.from != tr.to
}
