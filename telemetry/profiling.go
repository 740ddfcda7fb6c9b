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

package telemetry

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/heliosemu/helios/curated"
)

// CPUProfile runs the supplied function, writing a CPU profile to outFile
// while it runs. If outFile is empty the function is run without profiling.
func CPUProfile(outFile string, run func() error) error {
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return curated.Errorf("telemetry: %v", err)
		}
		defer f.Close()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return curated.Errorf("telemetry: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	return run()
}

// MemProfile writes a heap profile to outFile.
func MemProfile(outFile string) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf("telemetry: %v", err)
	}
	defer f.Close()

	runtime.GC()
	err = pprof.WriteHeapProfile(f)
	if err != nil {
		return curated.Errorf("telemetry: %v", err)
	}

	return nil
}
