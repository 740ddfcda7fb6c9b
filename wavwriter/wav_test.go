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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heliosemu/helios/hardware/msu/pcm"
	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/test"
	"github.com/heliosemu/helios/wavwriter"
)

func TestWavWriter(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.wav")

	aw, err := wavwriter.New(logger.Allow, fn)
	test.DemandSuccess(t, err)

	a := pcm.Encode([]int{100, -100, 200, -200})
	b := pcm.Encode([]int{1, 2, 3, 4, 5, 6})

	test.ExpectSuccess(t, aw.Record(2, a))

	// partial frames are dropped
	test.ExpectSuccess(t, aw.Record(5, append(b, 0xff)))

	tracks := aw.Tracks()
	test.DemandEquality(t, len(tracks), 2)
	test.ExpectEquality(t, tracks[0], 2)
	test.ExpectEquality(t, tracks[1], 5)

	test.DemandSuccess(t, aw.Close())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	data, err := pcm.DecodeWAV(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), string(append(a, b...)))
}

func TestNoFilename(t *testing.T) {
	_, err := wavwriter.New(logger.Allow, "")
	test.ExpectFailure(t, err)
}
