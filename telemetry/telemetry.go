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
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/heliosemu/helios/executor"
	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/paths"
)

// StatsEvery is the number of frames between stats labels.
const StatsEvery = 50

// FlushEvery is the number of frames between writes to the log file.
const FlushEvery = 600

// the frame on which the log file is created
const logStart = 2

// Queue is the job queue used for file operations.
type Queue interface {
	Submit(job executor.Job) bool
}

var header = []string{"frame", "fps", "drift_ns", "timestamp"}

type sample struct {
	frame int64
	fps   float64
	drift time.Duration
	when  time.Time
}

func (s sample) record() []string {
	return []string{
		strconv.FormatInt(s.frame, 10),
		strconv.FormatFloat(s.fps, 'f', 2, 64),
		strconv.FormatInt(s.drift.Nanoseconds(), 10),
		s.when.Format(time.RFC3339Nano),
	}
}

// Telemetry collects frame statistics. It is not safe for concurrent use and
// should only be called from the emulation goroutine.
type Telemetry struct {
	perm  logger.Permission
	queue Queue

	// directory for the log file. logging is disabled if the string is empty
	dir string

	frame    int64
	fpsAccum float64
	samples  []sample
	filename string
}

// NewTelemetry is the preferred method of initialisation for the Telemetry
// type. If dir is empty no log file is written.
func NewTelemetry(perm logger.Permission, queue Queue, dir string) *Telemetry {
	return &Telemetry{
		perm:  perm,
		queue: queue,
		dir:   dir,
	}
}

func (tel *Telemetry) String() string {
	return fmt.Sprintf("frame %d", tel.frame)
}

// Frame returns the number of frames seen since the last reset.
func (tel *Telemetry) Frame() int64 {
	return tel.frame
}

// Filename of the log file. Empty if the log file has not been created.
func (tel *Telemetry) Filename() string {
	return tel.filename
}

// NewFrame records the statistics for a frame. Returns a label and true
// every StatsEvery frames.
func (tel *Telemetry) NewFrame(fps float64, drift time.Duration) (string, bool) {
	tel.frame++
	tel.fpsAccum += fps

	if tel.dir != "" {
		tel.samples = append(tel.samples, sample{
			frame: tel.frame,
			fps:   fps,
			drift: drift,
			when:  time.Now(),
		})
		tel.log()
	}

	if tel.frame%StatsEvery != 0 {
		return "", false
	}

	// average is truncated, not rounded, to two decimal places
	avg := tel.fpsAccum / StatsEvery
	avg = math.Trunc(avg*100) / 100
	tel.fpsAccum = 0

	return fmt.Sprintf("%.2ffps", avg), true
}

func (tel *Telemetry) log() {
	if tel.frame == logStart {
		pth := filepath.Join(tel.dir, paths.UniqueFilename("telemetry", "")+".csv")
		tel.filename = pth
		logger.Logf(tel.perm, "telemetry", "logging to %s", pth)
		tel.submit(func() {
			tel.write(pth, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, [][]string{header})
		})
	}

	if tel.frame%FlushEvery == 0 {
		tel.flush()
	}
}

// flush the collected samples to the log file
func (tel *Telemetry) flush() {
	if tel.filename == "" || len(tel.samples) == 0 {
		tel.samples = tel.samples[:0]
		return
	}

	records := make([][]string, 0, len(tel.samples))
	for _, s := range tel.samples {
		records = append(records, s.record())
	}
	tel.samples = tel.samples[:0]

	pth := tel.filename
	tel.submit(func() {
		tel.write(pth, os.O_APPEND|os.O_WRONLY, records)
	})
}

func (tel *Telemetry) submit(f func()) {
	if !tel.queue.Submit(executor.JobFunc(f)) {
		logger.Log(tel.perm, "telemetry", "queue closed: samples dropped")
	}
}

// write is called on the executor goroutine
func (tel *Telemetry) write(pth string, flag int, records [][]string) {
	f, err := os.OpenFile(pth, flag, 0o600)
	if err != nil {
		logger.Logf(tel.perm, "telemetry", "unable to write to %s: %v", pth, err)
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		logger.Logf(tel.perm, "telemetry", "unable to write to %s: %v", pth, err)
	}
}

// Reset telemetry to its initial state. Samples that have not yet been
// written to the log file are flushed.
func (tel *Telemetry) Reset() {
	tel.flush()
	tel.frame = 0
	tel.fpsAccum = 0
	tel.filename = ""
}
