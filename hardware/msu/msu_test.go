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

package msu_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/heliosemu/helios/audio"
	"github.com/heliosemu/helios/executor"
	"github.com/heliosemu/helios/hardware/memory/bus"
	"github.com/heliosemu/helios/hardware/msu"
	"github.com/heliosemu/helios/hardware/msu/cue"
	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/test"
)

// queue collects jobs. they are run by calling run() or Flush()
type queue struct {
	jobs   []executor.Job
	closed bool
}

func (q *queue) Submit(job executor.Job) bool {
	if q.closed {
		return false
	}
	q.jobs = append(q.jobs, job)
	return true
}

func (q *queue) Flush() {
	q.run()
}

func (q *queue) run() {
	for len(q.jobs) > 0 {
		j := q.jobs[0]
		q.jobs = q.jobs[1:]
		j.Execute()
	}
}

type clip struct {
	data     []byte
	loop     bool
	running  bool
	gain     float64
	position time.Duration
	listener audio.Listener
	closed   bool
}

func (c *clip) Start() { c.running = true }
func (c *clip) Stop() { c.running = false }
func (c *clip) Running() bool { return c.running }
func (c *clip) Position() time.Duration { return c.position }
func (c *clip) SetPosition(d time.Duration) { c.position = d }
func (c *clip) SetGain(db float64) { c.gain = db }

func (c *clip) SetListener(l audio.Listener) audio.Listener {
	p := c.listener
	c.listener = l
	return p
}

func (c *clip) Close() error {
	c.closed = true
	return nil
}

type output struct {
	clips []*clip
}

func (o *output) String() string {
	return "test output"
}

func (o *output) Open(data []byte, loop bool) (audio.Clip, error) {
	c := &clip{data: data, loop: loop}
	o.clips = append(o.clips, c)
	return c, nil
}

// base counts the accesses that are passed through the MSU
type base struct {
	reads  int
	writes int
}

func (b *base) Read(_ uint32, size bus.Size) uint32 {
	b.reads++
	return 0x1234 & size.Mask()
}

func (b *base) Write(_ uint32, _ uint32, _ bus.Size) {
	b.writes++
}

const cueSheet = `FILE "disc.bin" BINARY
  TRACK 01 MODE1/2352
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    INDEX 01 00:00:01
  TRACK 03 AUDIO
    INDEX 01 00:00:02
  TRACK 04 AUDIO
    INDEX 01 00:00:03
  TRACK 05 AUDIO
    INDEX 00 00:00:03
    INDEX 01 00:00:04
  TRACK 20 AUDIO
    INDEX 01 00:00:05
`

const binSectors = 8

func writeDisc(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cuePath := filepath.Join(dir, "game.cue")
	test.DemandSuccess(t, os.WriteFile(cuePath, []byte(cueSheet), 0o644))

	bin := make([]byte, binSectors*cue.SectorSize)
	for i := range bin {
		bin[i] = uint8(i / cue.SectorSize)
	}
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "disc.bin"), bin, 0o644))

	return cuePath
}

func newMSU(t *testing.T) (*msu.MSU, *queue, *output, *base) {
	t.Helper()
	q := &queue{}
	o := &output{}
	b := &base{}

	m, err := msu.NewMSU(logger.Allow, writeDisc(t), q, o)
	test.DemandSuccess(t, err)
	m.SetBase(b)

	t.Cleanup(func() {
		_ = m.Close()
	})

	return m, q, o, b
}

func command(m *msu.MSU, cmd uint8, arg uint8, clock uint8) {
	m.Write(msu.Cmd, uint32(cmd), bus.Byte)
	m.Write(msu.CmdArg, uint32(arg), bus.Byte)
	m.Write(msu.Clock, uint32(clock), bus.Byte)
}

func TestStatus(t *testing.T) {
	m, _, _, _ := newMSU(t)

	test.ExpectEquality(t, m.Read(msu.Status, bus.Byte), uint32(msu.Init))
	test.ExpectEquality(t, m.Read(msu.Status, bus.Byte), uint32(msu.Ready))
	test.ExpectEquality(t, m.Read(msu.Status, bus.Byte), uint32(msu.Ready))

	// reset means the driver will see INIT again
	m.Reset()
	test.ExpectEquality(t, m.Read(msu.Status, bus.Byte), uint32(msu.Init))
}

func TestPlay(t *testing.T) {
	m, q, o, _ := newMSU(t)
	_ = m.Read(msu.Status, bus.Byte)

	command(m, 0x11, 5, 1)

	test.DemandEquality(t, len(q.jobs), 1)
	task, ok := q.jobs[0].(*msu.Task)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, task.Kind, msu.JobPlay)
	test.ExpectEquality(t, task.Track, 5)
	test.ExpectFailure(t, task.Loop)

	// busy until the job has run
	test.ExpectSuccess(t, m.Busy())
	test.ExpectEquality(t, m.Read(msu.Status, bus.Byte), uint32(msu.Busy))
	test.ExpectEquality(t, m.Read(msu.Clock, bus.Byte), uint32(1))

	q.run()
	test.ExpectFailure(t, m.Busy())
	test.ExpectEquality(t, m.Read(msu.Status, bus.Byte), uint32(msu.Ready))

	test.DemandEquality(t, len(o.clips), 1)
	c := o.clips[0]
	test.ExpectSuccess(t, c.running)
	test.ExpectFailure(t, c.loop)
	test.ExpectEquality(t, len(c.data), cue.SectorSize)
	test.ExpectEquality(t, c.data[0], uint8(4))

	track, running := m.Playing()
	test.ExpectEquality(t, track, 5)
	test.ExpectSuccess(t, running)

	// a new track stops the current clip
	command(m, 0x12, 2, 2)
	q.run()
	test.ExpectSuccess(t, c.closed)
	test.ExpectSuccess(t, c.listener == nil)
	test.DemandEquality(t, len(o.clips), 2)
	test.ExpectSuccess(t, o.clips[1].loop)
	test.ExpectEquality(t, o.clips[1].data[0], uint8(1))
}

func TestWordWrites(t *testing.T) {
	m, q, _, _ := newMSU(t)

	// command and argument in a single word
	m.Write(msu.Cmd, 0x1203, bus.Word)
	m.Write(msu.Clock, 0x01, bus.Byte)

	test.DemandEquality(t, len(q.jobs), 1)
	task := q.jobs[0].(*msu.Task)
	test.ExpectEquality(t, task.Kind, msu.JobPlay)
	test.ExpectEquality(t, task.Track, 3)
	test.ExpectSuccess(t, task.Loop)
}

func TestRepeatedTrack(t *testing.T) {
	m, q, _, _ := newMSU(t)

	command(m, 0x11, 20, 1)
	command(m, 0x11, 20, 2)
	test.ExpectEquality(t, len(q.jobs), 1)

	// only track 20 is treated this way
	command(m, 0x11, 5, 3)
	command(m, 0x11, 5, 4)
	test.ExpectEquality(t, len(q.jobs), 3)

	command(m, 0x11, 20, 5)
	test.ExpectEquality(t, len(q.jobs), 4)

	// a suppressed play does not leave the MSU busy
	q.run()
	command(m, 0x12, 20, 6)
	test.ExpectEquality(t, len(q.jobs), 0)
	test.ExpectFailure(t, m.Busy())

	// the policy can be removed
	m.SetPolicy(nil)
	command(m, 0x11, 20, 7)
	test.ExpectEquality(t, len(q.jobs), 1)
}

func TestVolume(t *testing.T) {
	test.ExpectApproximate(t, msu.Gain(255), 0.0, 0.0001)
	test.ExpectApproximate(t, msu.Gain(0), 20*math.Log10(0.1/255), 0.0001)
	test.ExpectApproximate(t, msu.Gain(127), 20*math.Log10(127.0/255), 0.0001)

	m, q, o, _ := newMSU(t)

	command(m, 0x11, 2, 1)
	command(m, 0x15, 127, 2)
	test.DemandEquality(t, len(q.jobs), 2)
	task := q.jobs[1].(*msu.Task)
	test.ExpectEquality(t, task.Kind, msu.JobVolume)
	test.ExpectApproximate(t, task.Gain, msu.Gain(127), 0.0001)

	q.run()
	test.DemandEquality(t, len(o.clips), 1)
	test.ExpectApproximate(t, o.clips[0].gain, msu.Gain(127), 0.0001)

	// volume carries over to the next track
	command(m, 0x11, 3, 3)
	q.run()
	test.DemandEquality(t, len(o.clips), 2)
	test.ExpectApproximate(t, o.clips[1].gain, msu.Gain(127), 0.0001)
}

func TestPauseResume(t *testing.T) {
	m, q, o, _ := newMSU(t)

	command(m, 0x11, 2, 1)
	q.run()
	c := o.clips[0]
	c.position = 10 * time.Millisecond

	command(m, 0x13, 75, 2)
	test.DemandEquality(t, len(q.jobs), 1)
	task := q.jobs[0].(*msu.Task)
	test.ExpectEquality(t, task.Kind, msu.JobPause)
	test.ExpectApproximate(t, task.Fade, 1.0, 0.0001)

	q.run()
	test.ExpectFailure(t, c.running)

	// tracks played while paused do not start
	command(m, 0x11, 3, 3)
	q.run()
	test.DemandEquality(t, len(o.clips), 2)
	test.ExpectFailure(t, o.clips[1].running)

	command(m, 0x14, 0, 4)
	q.run()
	test.ExpectSuccess(t, o.clips[1].running)
}

func TestNoCommand(t *testing.T) {
	m, q, _, _ := newMSU(t)

	m.Write(msu.Clock, 1, bus.Byte)
	test.ExpectEquality(t, len(q.jobs), 0)

	command(m, 0x99, 1, 2)
	test.ExpectEquality(t, len(q.jobs), 0)
	test.ExpectEquality(t, m.Read(msu.Clock, bus.Byte), uint32(2))
}

func TestIgnoredRegisters(t *testing.T) {
	m, q, _, b := newMSU(t)

	for _, a := range []uint32{msu.GateArray, msu.MemWP, msu.MMod, msu.ComF} {
		m.Write(a, 0xff, bus.Byte)
		test.ExpectEquality(t, m.Read(a, bus.Byte), uint32(0xff))
	}

	// word ram
	m.Write(msu.OriginWRAM, 0x12345678, bus.Long)
	m.Write(msu.MemtopWRAM, 0x12, bus.Byte)
	test.ExpectEquality(t, m.Read(msu.OriginWRAM, bus.Word), uint32(0xffff))

	test.ExpectEquality(t, len(q.jobs), 0)
	test.ExpectEquality(t, b.reads, 0)
	test.ExpectEquality(t, b.writes, 0)

	// outside the window
	m.Write(msu.MemtopWRAM+1, 0x12, bus.Byte)
	test.ExpectEquality(t, m.Read(0xa12100, bus.Word), uint32(0x1234))
	test.ExpectEquality(t, b.reads, 1)
	test.ExpectEquality(t, b.writes, 1)

	// addresses are masked to 24 bits
	m.Write(0xff000000|msu.Cmd, 0x11, bus.Byte)
	m.Write(0xff000000|msu.CmdArg, 0x02, bus.Byte)
	m.Write(0xff000000|msu.Clock, 0x01, bus.Byte)
	test.ExpectEquality(t, len(q.jobs), 1)
}

func TestMissingTrack(t *testing.T) {
	m, q, o, _ := newMSU(t)

	command(m, 0x11, 50, 1)
	test.ExpectSuccess(t, m.Busy())
	q.run()
	test.ExpectFailure(t, m.Busy())
	test.ExpectEquality(t, len(o.clips), 0)
}

func TestQueueClosed(t *testing.T) {
	m, q, _, _ := newMSU(t)
	q.closed = true

	command(m, 0x11, 2, 1)
	test.ExpectFailure(t, m.Busy())
}

func TestClose(t *testing.T) {
	q := &queue{}
	o := &output{}

	m, err := msu.NewMSU(logger.Allow, writeDisc(t), q, o)
	test.DemandSuccess(t, err)

	command(m, 0x11, 2, 1)
	q.run()
	test.DemandEquality(t, len(o.clips), 1)

	test.ExpectSuccess(t, m.Close())
	test.ExpectSuccess(t, o.clips[0].closed)
	_, running := m.Playing()
	test.ExpectFailure(t, running)
}

func TestBuildTracks(t *testing.T) {
	m, _, _, _ := newMSU(t)
	tracks := m.Tracks()

	test.ExpectFailure(t, tracks[0].Valid())
	test.ExpectSuccess(t, tracks[1].Valid())
	test.ExpectFailure(t, tracks[6].Valid())

	test.ExpectEquality(t, tracks[2].Offset, int64(cue.SectorSize))
	test.ExpectEquality(t, tracks[2].Length, int64(cue.SectorSize))

	// index 01 is the start of the track
	test.ExpectEquality(t, tracks[5].Offset, int64(4*cue.SectorSize))

	// last track runs to the end of the disc image
	test.ExpectEquality(t, tracks[20].Offset, int64(5*cue.SectorSize))
	test.ExpectEquality(t, tracks[20].Length, int64(3*cue.SectorSize))
}

func TestFileTracks(t *testing.T) {
	s, err := cue.Parse(strings.NewReader(`FILE "disc.bin" BINARY
  TRACK 01 MODE1/2352
    INDEX 01 00:00:00
FILE "track02.wav" WAVE
  TRACK 02 AUDIO
    INDEX 01 00:00:00
FILE "track03.mp3" MP3
  TRACK 03 AUDIO
    INDEX 01 00:00:00
FILE "other.bin" BINARY
  TRACK 04 AUDIO
    INDEX 01 00:00:00
`))
	test.DemandSuccess(t, err)
	s.Path = filepath.Join("roms", "game.cue")

	bin, ok := msu.BinaryFile(s)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, bin, filepath.Join("roms", "disc.bin"))

	tracks := msu.BuildTracks(s, 1000)
	test.ExpectEquality(t, tracks[1].Length, int64(1000))
	test.ExpectEquality(t, tracks[2].Kind, cue.Wave)
	test.ExpectEquality(t, tracks[2].Path, filepath.Join("roms", "track02.wav"))
	test.ExpectEquality(t, tracks[3].Kind, cue.MP3)

	// only the first binary file is used
	test.ExpectFailure(t, tracks[4].Valid())
}

func TestNoOp(t *testing.T) {
	q := &queue{}
	h := msu.New(logger.Allow, filepath.Join(t.TempDir(), "missing.cue"), q, &output{})

	n, ok := h.(*msu.NoOp)
	test.DemandSuccess(t, ok)

	b := &base{}
	n.SetBase(b)

	test.ExpectEquality(t, n.Read(msu.Status, bus.Byte), uint32(0))
	test.ExpectEquality(t, n.Read(msu.Clock, bus.Word), uint32(0))
	n.Write(msu.Cmd, 0x11, bus.Byte)
	n.Write(msu.Clock, 0x01, bus.Byte)
	test.ExpectEquality(t, len(q.jobs), 0)
	test.ExpectEquality(t, b.writes, 0)

	test.ExpectEquality(t, n.Read(0xe00000, bus.Word), uint32(0x1234))
	test.ExpectEquality(t, b.reads, 1)
	test.ExpectSuccess(t, n.Close())
}

func TestEmptyDisc(t *testing.T) {
	dir := t.TempDir()
	cuePath := filepath.Join(dir, "game.cue")
	test.DemandSuccess(t, os.WriteFile(cuePath, []byte(cueSheet), 0o644))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "disc.bin"), nil, 0o644))

	_, err := msu.NewMSU(logger.Allow, cuePath, &queue{}, &output{})
	test.ExpectFailure(t, err)

	_, ok := msu.New(logger.Allow, cuePath, &queue{}, &output{}).(*msu.NoOp)
	test.ExpectSuccess(t, ok)
}

func TestDecodedTracks(t *testing.T) {
	dir := t.TempDir()
	cuePath := filepath.Join(dir, "game.cue")
	test.DemandSuccess(t, os.WriteFile(cuePath, []byte(`FILE "disc.bin" BINARY
  TRACK 01 MODE1/2352
    INDEX 01 00:00:00
FILE "track02.wav" WAVE
  TRACK 02 AUDIO
    INDEX 01 00:00:00
FILE "track03.ogg" OGG
  TRACK 03 AUDIO
    INDEX 01 00:00:00
`), 0o644))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "disc.bin"), make([]byte, cue.SectorSize), 0o644))

	// a quarter of a second of stereo wav data
	f, err := os.Create(filepath.Join(dir, "track02.wav"))
	test.DemandSuccess(t, err)
	enc := wav.NewEncoder(f, 44100, 16, 2, 1)
	test.DemandSuccess(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           make([]int, 44100/4*2),
		SourceBitDepth: 16,
	}))
	test.DemandSuccess(t, enc.Close())
	test.DemandSuccess(t, f.Close())

	// the ogg file is damaged
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "track03.ogg"), []byte("OggS damaged"), 0o644))

	q := &queue{}
	o := &output{}
	m, err := msu.NewMSU(logger.Allow, cuePath, q, o)
	test.DemandSuccess(t, err)
	defer m.Close()

	test.ExpectEquality(t, m.Tracks()[3].Kind, cue.OGG)

	command(m, 0x11, 2, 1)
	q.run()
	test.DemandEquality(t, len(o.clips), 1)
	test.ExpectEquality(t, len(o.clips[0].data), 44100/4*4)

	// the ogg track is passed to the decoder. the decoder fails and the
	// track does not play
	logger.Clear()
	command(m, 0x11, 3, 2)
	test.ExpectSuccess(t, m.Busy())
	q.run()
	test.ExpectFailure(t, m.Busy())
	test.ExpectEquality(t, len(o.clips), 1)

	w := &test.CompareWriter{}
	logger.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "pcm: ogg"))
}
