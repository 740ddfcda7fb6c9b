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

package msu

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/heliosemu/helios/audio"
	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/executor"
	"github.com/heliosemu/helios/hardware/memory/bus"
	"github.com/heliosemu/helios/hardware/msu/cue"
	"github.com/heliosemu/helios/logger"
)

// Queue is the destination of committed commands. The executor.Executor type
// satisfies the interface.
type Queue interface {
	Submit(job executor.Job) bool
	Flush()
}

// Recorder receives the PCM data of every track that is played.
type Recorder interface {
	Record(track int, data []byte) error
}

type playing struct {
	clip  audio.Clip
	track int
}

// MSU implements the MSU-MD interface. Read() and Write() are called by the
// emulation goroutine. Jobs run on the queue's goroutine.
type MSU struct {
	perm logger.Permission
	base bus.Mapper

	queue  Queue
	output audio.Output
	policy DuplicatePolicy

	sheet  *cue.Sheet
	tracks Tracks
	bin    *os.File
	binLen int64

	// register state
	init   bool
	clock  uint8
	staged CommandRegister

	busy atomic.Bool

	// the clip currently opened by a play job
	current atomic.Pointer[playing]

	// job state. only touched by jobs
	paused   bool
	position time.Duration
	gain     float64

	recorder Recorder
}

// NewMSU is the preferred method of initialisation for the MSU type. The
// cue sheet must name a BINARY file that exists and is not empty.
func NewMSU(perm logger.Permission, cuePath string, queue Queue, output audio.Output) (*MSU, error) {
	sheet, err := cue.Load(cuePath)
	if err != nil {
		return nil, curated.Errorf("msu: %v", err)
	}

	binPath, ok := BinaryFile(sheet)
	if !ok {
		return nil, curated.Errorf("msu: %v", "no BINARY file in cue sheet")
	}

	bin, err := os.Open(binPath)
	if err != nil {
		return nil, curated.Errorf("msu: %v", err)
	}

	fi, err := bin.Stat()
	if err != nil {
		bin.Close()
		return nil, curated.Errorf("msu: %v", err)
	}
	if fi.Size() == 0 {
		bin.Close()
		return nil, curated.Errorf("msu: %v", fmt.Sprintf("zero length file (%s)", binPath))
	}

	m := &MSU{
		perm:   perm,
		base:   bus.Unmapped{},
		queue:  queue,
		output: output,
		policy: DefaultPolicy(),
		sheet:  sheet,
		bin:    bin,
		binLen: fi.Size(),
	}
	m.tracks = BuildTracks(sheet, m.binLen)

	logger.Logf(perm, "msu", "using cue sheet %s (%d tracks)", cuePath, sheet.NumTracks())
	logger.Logf(perm, "msu", "audio output: %s", output)

	return m, nil
}

// New returns an MSU for the cue sheet. If the MSU cannot be created the
// reason is logged and a NoOp handler is returned.
func New(perm logger.Permission, cuePath string, queue Queue, output audio.Output) Handler {
	m, err := NewMSU(perm, cuePath, queue, output)
	if err != nil {
		logger.Logf(perm, "msu", "disabled: %v", err)
		return &NoOp{}
	}
	return m
}

func (m *MSU) String() string {
	return fmt.Sprintf("msu: %s", m.sheet.Path)
}

// SetPolicy changes the DuplicatePolicy. A nil policy allows every PLAY
// command.
func (m *MSU) SetPolicy(p DuplicatePolicy) {
	m.policy = p
}

// SetRecorder adds a Recorder to the MSU. It should be called before the first
// command is committed.
func (m *MSU) SetRecorder(r Recorder) {
	m.recorder = r
}

// Tracks returns the track table.
func (m *MSU) Tracks() Tracks {
	return m.tracks
}

// SetBase implements the bus.Interceptor interface.
func (m *MSU) SetBase(base bus.Mapper) {
	m.base = base
}

// Busy returns true while a PLAY command is in progress.
func (m *MSU) Busy() bool {
	return m.busy.Load()
}

// Playing returns the track number of the current clip and whether it is
// running.
func (m *MSU) Playing() (int, bool) {
	p := m.current.Load()
	if p == nil {
		return 0, false
	}
	return p.track, p.clip.Running()
}

// Read implements the bus.Mapper interface.
func (m *MSU) Read(addr uint32, size bus.Size) uint32 {
	a := addr & bus.AddressMask
	if !inWindow(a) {
		return m.base.Read(addr, size)
	}

	switch a {
	case Status:
		if !m.init {
			m.init = true
			return uint32(Init)
		}
		if m.busy.Load() {
			return uint32(Busy)
		}
		return uint32(Ready)
	case Clock:
		return uint32(m.clock)
	}

	if _, ok := ignoredRegisters[a]; !ok && !inWRAM(a) {
		logger.Logf(m.perm, "msu", "unexpected read: %#06x (%d bytes)", a, size)
	}

	return bus.OpenBus(size)
}

// Write implements the bus.Mapper interface. Word and long writes are
// treated as a sequence of byte writes.
func (m *MSU) Write(addr uint32, data uint32, size bus.Size) {
	a := addr & bus.AddressMask
	if !inWindow(a) {
		m.base.Write(addr, data, size)
		return
	}

	if inWRAM(a) {
		return
	}

	bus.WriteBytes(a, data, size, m.writeByte)
}

func (m *MSU) writeByte(addr uint32, data uint8) {
	switch addr {
	case Clock:
		m.commit(m.staged)
		m.clock = data
	case Cmd:
		m.staged.Command = LookupCommand(data)
	case CmdArg:
		m.staged.Arg = data
	default:
		if name, ok := ignoredRegisters[addr]; ok {
			logger.Logf(m.perm, "msu", "write to %s: %#02x", name, data)
		} else {
			logger.Logf(m.perm, "msu", "unexpected write: %#06x = %#02x", addr, data)
		}
	}
}

// commit the staged command.
func (m *MSU) commit(r CommandRegister) {
	switch r.Command {
	case Play, PlayLoop:
		track := int(r.Arg)
		if m.policy != nil && m.policy.Suppress(track) {
			logger.Logf(m.perm, "msu", "ignoring repeated %s", r)
			return
		}
		m.busy.Store(true)
		m.submit(Job{Kind: JobPlay, Track: track, Loop: r.Command == PlayLoop})
	case Pause:
		m.submit(Job{Kind: JobPause, Fade: FadeTime(r.Arg)})
	case Resume:
		m.submit(Job{Kind: JobResume})
	case Volume:
		m.submit(Job{Kind: JobVolume, Gain: Gain(r.Arg)})
	default:
		logger.Logf(m.perm, "msu", "no command (arg %d)", r.Arg)
	}
}

// Task is a Job bound to the MSU that will perform it. It is the value
// submitted to the Queue.
type Task struct {
	Job
	msu *MSU
}

// Execute implements the executor.Job interface.
func (t *Task) Execute() {
	t.msu.execute(t.Job)
}

func (m *MSU) submit(job Job) {
	if !m.queue.Submit(&Task{Job: job, msu: m}) {
		logger.Logf(m.perm, "msu", "queue closed: dropping %s", job)
		if job.Kind == JobPlay {
			m.busy.Store(false)
		}
	}
}

// Reset the MSU registers and stop playback.
func (m *MSU) Reset() {
	m.init = false
	m.clock = 0
	m.staged = CommandRegister{}
	m.busy.Store(false)
	m.submit(Job{Kind: JobStop})
}

// Close stops playback and waits for all outstanding jobs to complete. The
// disc image is closed.
func (m *MSU) Close() error {
	m.submit(Job{Kind: JobStop})
	m.queue.Flush()

	logger.Log(m.perm, "msu", "closing")

	if err := m.bin.Close(); err != nil {
		return curated.Errorf("msu: %v", err)
	}
	return nil
}
