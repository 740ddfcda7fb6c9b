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

package region_test

import (
	"testing"
	"time"

	"github.com/heliosemu/helios/hardware/region"
	"github.com/heliosemu/helios/test"
)

func romWithRegions(s string) []byte {
	rom := make([]byte, 0x200)
	copy(rom[0x1f0:], s)
	return rom
}

func TestDetect(t *testing.T) {
	r, ok := region.Detect(romWithRegions("JUE"))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, r.ID, "USA")

	r, ok = region.Detect(romWithRegions("JE "))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, r.ID, "EUROPE")

	r, ok = region.Detect(romWithRegions("J  "))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, r.ID, "JAPAN")

	// unrecognised characters result in the default region
	r, ok = region.Detect(romWithRegions("4  "))
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, r.ID, "USA")

	// ROM too small to contain a header
	r, ok = region.Detect([]byte{0x00})
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, r.ID, "USA")
}

func TestFromString(t *testing.T) {
	r, ok := region.FromString("EUROPE")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, r.ID, "EUROPE")

	r, ok = region.FromString("j")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, r.ID, "JAPAN")

	_, ok = region.FromString("AUTO")
	test.ExpectFailure(t, ok)

	_, ok = region.FromString("")
	test.ExpectFailure(t, ok)
}

func TestSelect(t *testing.T) {
	rom := romWithRegions("JUE")
	test.ExpectEquality(t, region.Select("AUTO", rom).ID, "USA")
	test.ExpectEquality(t, region.Select("JAPAN", rom).ID, "JAPAN")
}

func TestTiming(t *testing.T) {
	test.ExpectEquality(t, region.Europe.FPS, 50)
	test.ExpectEquality(t, region.Europe.FrameInterval(), 20*time.Millisecond)
	test.ExpectApproximate(t, region.USA.FrameIntervalMs(), 16.666, 0.001)
	test.ExpectEquality(t, region.USA.VersionCode, uint8(0xa0))
	test.ExpectEquality(t, region.Europe.VersionCode, uint8(0xc0))
	test.ExpectEquality(t, region.Japan.VersionCode, uint8(0x00))
}
