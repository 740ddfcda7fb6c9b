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

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heliosemu/helios/paths"
	"github.com/heliosemu/helios/test"
)

func TestPaths(t *testing.T) {
	t.Chdir(t.TempDir())
	test.DemandSuccess(t, os.Mkdir(".helios", 0o700))

	test.ExpectEquality(t, paths.ResourcePath("foo/bar", "baz"), filepath.Join(".helios", "foo", "bar", "baz"))
	test.ExpectEquality(t, paths.ResourcePath("foo/bar", ""), filepath.Join(".helios", "foo", "bar"))
	test.ExpectEquality(t, paths.ResourcePath("", "baz"), filepath.Join(".helios", "baz"))
	test.ExpectEquality(t, paths.ResourcePath("", ""), ".helios")
}

func TestCreateResourcePath(t *testing.T) {
	t.Chdir(t.TempDir())
	test.DemandSuccess(t, os.Mkdir(".helios", 0o700))

	pth, err := paths.CreateResourcePath("backup", "test.srm")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".helios", "backup", "test.srm"))

	info, err := os.Stat(filepath.Join(".helios", "backup"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("state", "sonic")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "state_sonic_"))
	fn = paths.UniqueFilename("state", "  ")
	test.ExpectFailure(t, strings.Contains(fn, "__"))
}
