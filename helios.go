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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/heliosemu/helios/audio"
	"github.com/heliosemu/helios/cartridgeloader"
	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/digest"
	"github.com/heliosemu/helios/emulation"
	"github.com/heliosemu/helios/environment"
	"github.com/heliosemu/helios/executor"
	"github.com/heliosemu/helios/hardware"
	"github.com/heliosemu/helios/hardware/memory/cartridge"
	"github.com/heliosemu/helios/hardware/msu"
	"github.com/heliosemu/helios/hardware/video"
	"github.com/heliosemu/helios/input"
	"github.com/heliosemu/helios/logger"
	"github.com/heliosemu/helios/modalflag"
	"github.com/heliosemu/helios/paths"
	"github.com/heliosemu/helios/prefs"
	"github.com/heliosemu/helios/statsview"
	"github.com/heliosemu/helios/telemetry"
	"github.com/heliosemu/helios/version"
	"github.com/heliosemu/helios/wavwriter"
)

// exit values
const (
	exitOK    = 0
	exitParse = 10
	exitMode  = 20
)

// the number of frames produced by DIGEST mode if not specified
const defaultDigestFrames = 600

func main() {
	// ctrl-c ends the emulation gracefully so that backup memory is flushed
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	os.Exit(launch(os.Args[1:], os.Stdout, intChan))
}

// launch parses the arguments and runs the selected mode. returns the exit
// value for the process.
func launch(args []string, output io.Writer, intChan <-chan os.Signal) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "DIGEST", "PREFS")
	showVersion := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	if *showVersion {
		fmt.Fprintln(output, version.String())
		return exitOK
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, output, intChan)
	case "DIGEST":
		err = digestMode(md, output)
	case "PREFS":
		err = prefsMode(md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitMode
	}

	return exitOK
}

// flags shared by the RUN and DIGEST modes. values are applied to the
// preferences only if the flag has been set on the command line
type sessionFlags struct {
	region   *string
	sramMode *string
	msu      *bool
	prefs    *string
	log      *bool
	noBackup *bool
}

func addSessionFlags(md *modalflag.Modes) sessionFlags {
	return sessionFlags{
		region:   md.AddString("region", "AUTO", "console region: AUTO, JAPAN, USA, EUROPE"),
		sramMode: md.AddString("srammode", "DISABLE", "initial SRAM mode: DISABLE, READ_ONLY, READ_WRITE"),
		msu:      md.AddBool("msu", true, "enable MSU-MD CD-audio if a cue sheet is present"),
		prefs:    md.AddString("prefs", "", "preferences for this session (key::value; key::value)"),
		log:      md.AddBool("log", false, "echo log to stdout"),
		noBackup: md.AddBool("nobackup", false, "do not fit the cartridge with backup memory"),
	}
}

// apply the flags that were set on the command line to the preferences.
// the preferences are not saved
func (f sessionFlags) apply(md *modalflag.Modes, env *environment.Environment) error {
	for _, flag := range md.Changes() {
		var err error
		switch flag {
		case "region":
			err = env.Prefs.Region.Set(*f.region)
		case "srammode":
			err = env.Prefs.SramMode.Set(*f.sramMode)
		case "msu":
			err = env.Prefs.MSU.Set(*f.msu)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// loadCartridge loads the ROM named by the single remaining argument
func loadCartridge(md *modalflag.Modes, env *environment.Environment) (*cartridge.Cartridge, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, curated.Errorf("ROM image required for %s mode", md)
	case 1:
	default:
		return nil, curated.Errorf("too many arguments for %s mode", md)
	}

	cartload := cartridgeloader.NewLoader(md.GetArg(0))
	if !cartload.RecognisedExtension() {
		logger.Logf(env, "helios", "unrecognised file extension: %s", cartload.Filename)
	}

	return cartridge.NewCartridge(env, cartload, env.Prefs.RegionOverride())
}

func run(md *modalflag.Modes, output io.Writer, intChan <-chan os.Signal) error {
	md.NewMode()

	sf := addSessionFlags(md)
	fullThrottle := md.AddBool("fullthrottle", false, "run the emulation as quickly as possible")
	showFPS := md.AddBool("showfps", true, "show frame rate")
	tel := md.AddBool("telemetry", false, "write telemetry log")
	wav := md.AddString("wav", "", "record CD-audio to wav file")
	state := md.AddString("state", "", "save-state file (default in resources directory)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	memvizFile := md.AddString("memviz", "", "write console structure graph to file (dot format)")
	profile := md.AddBool("profile", false, "write cpu and memory profiles")

	md.AdditionalHelp(fmt.Sprintf("keys during emulation: %s", input.Help))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *sf.log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	if *sf.prefs != "" {
		prefs.PushCommandLineStack(*sf.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "helios", "unused preferences: %s", unused)
			}
		}()
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if err != nil {
		return err
	}
	if err := sf.apply(md, env); err != nil {
		return err
	}
	if md.Changed("fullthrottle") {
		_ = env.Prefs.FullThrottle.Set(*fullThrottle)
	}
	if md.Changed("showfps") {
		_ = env.Prefs.ShowFPS.Set(*showFPS)
	}
	if md.Changed("telemetry") {
		_ = env.Prefs.Telemetry.Set(*tel)
	}

	cart, err := loadCartridge(md, env)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, cart.Summary())

	ex := executor.NewExecutor(env)
	defer ex.Close()

	con := hardware.NewConsole(env, cart, hardware.Config{
		SramMode: env.Prefs.BackupMode(),
		NoBackup: *sf.noBackup,
		MSU:      env.Prefs.MSU.Get().(bool),
		Queue:    ex,
		Output:   audio.NewOutput(env),
	})

	if *wav != "" {
		aw, err := wavwriter.New(env, *wav)
		if err != nil {
			return err
		}
		defer func() {
			if err := aw.Close(); err != nil {
				fmt.Fprintf(output, "* %v\n", err)
			}
		}()
		if m, ok := con.MSU.(*msu.MSU); ok {
			m.SetRecorder(aw)
		}
	}

	if *memvizFile != "" {
		if err := dumpConsole(*memvizFile, con); err != nil {
			return err
		}
	}

	if *stats {
		if statsview.Available() {
			stop := statsview.Launch(env, output)
			defer stop()
		} else {
			fmt.Fprintln(output, "! stats server not available in this build")
		}
	}

	var telem *telemetry.Telemetry
	if env.Prefs.Telemetry.Get().(bool) {
		dir := paths.ResourcePath("telemetry")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return curated.Errorf("telemetry: %v", err)
		}
		telem = telemetry.NewTelemetry(env, ex, dir)
	} else {
		telem = telemetry.NewTelemetry(env, ex, "")
	}

	statePath := *state
	if statePath == "" {
		statePath, err = paths.CreateResourcePath("savestate", fmt.Sprintf("%s.state", cart.Name))
		if err != nil {
			return err
		}
	}

	session := emulation.NewConsoleSession(env, con, newStatusDisplay(output), emulation.Config{
		FullThrottle: env.Prefs.FullThrottle.Get().(bool),
		ShowFPS:      env.Prefs.ShowFPS.Get().(bool),
		ROM:          cart.Hash,
		Telemetry:    telem,
	})

	kb := input.NewKeyboard(env, session, statePath)
	session.SetInput(kb)

	term, err := input.OpenTerminal()
	if err != nil {
		logger.Log(env, "helios", err)
	} else {
		defer term.Close()
		go func() {
			if err := kb.Feed(term); err != nil {
				logger.Log(env, "helios", err)
			}
		}()
		fmt.Fprintln(output, input.Help)
	}

	runSession := func() error {
		if err := session.Start(); err != nil {
			return err
		}

		select {
		case <-session.Done():
		case <-kb.Quit():
		case <-intChan:
		}

		if err := session.Close(); err != nil {
			return err
		}
		return session.Err()
	}

	if *profile {
		err = telemetry.CPUProfile("helios.cpu.profile", runSession)
		if err != nil {
			return err
		}
		return telemetry.MemProfile("helios.mem.profile")
	}

	return runSession()
}

func digestMode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	sf := addSessionFlags(md)
	frames := md.AddInt("frames", defaultDigestFrames, "number of frames to emulate")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *frames <= 0 {
		return curated.Errorf("number of frames must be positive")
	}

	if *sf.log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	env, err := environment.NewEnvironment(environment.DigestEmulation, nil)
	if err != nil {
		return err
	}
	env.Quiet = !*sf.log

	// digests must not depend on the preferences file
	env.Normalise()
	if *sf.prefs != "" {
		prefs.PushCommandLineStack(*sf.prefs)
		env.Prefs.ApplyCommandLine()
		prefs.PopCommandLineStack()
	}
	if err := sf.apply(md, env); err != nil {
		return err
	}

	cart, err := loadCartridge(md, env)
	if err != nil {
		return err
	}

	ex := executor.NewExecutor(env)
	defer ex.Close()

	// backup memory is not written to disk so that every run starts from the
	// same state
	backupFile := filepath.Join(os.TempDir(), paths.UniqueFilename("digest", cart.Name)+".srm")
	defer os.Remove(backupFile)

	con := hardware.NewConsole(env, cart, hardware.Config{
		SramMode:       env.Prefs.BackupMode(),
		NoBackup:       *sf.noBackup,
		BackupFilename: backupFile,
		MSU:            env.Prefs.MSU.Get().(bool),
		Queue:          ex,
		Output:         audio.NewNull(),
	})

	aud := digest.NewAudio()
	if m, ok := con.MSU.(*msu.MSU); ok {
		m.SetRecorder(aud)
	}

	vid := digest.NewVideo()
	session := emulation.NewConsoleSession(env, con, vid, emulation.Config{
		FullThrottle: true,
		FrameLimit:   *frames,
		ROM:          cart.Hash,
	})

	if err := session.Start(); err != nil {
		return err
	}
	err = session.Wait()
	if cerr := session.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "video: %s\n", vid.Hash())
	if aud.Tracks() > 0 {
		fmt.Fprintf(output, "audio: %s\n", aud.Hash())
	}

	return nil
}

func prefsMode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	reset := md.AddBool("reset", false, "reset preferences to default values")
	md.AdditionalHelp("set preferences with a preferences string: \"key::value; key::value\"")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		prefs.PushCommandLineStack(md.GetArg(0))
	default:
		return curated.Errorf("too many arguments for %s mode", md)
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if len(md.RemainingArgs()) == 1 {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			fmt.Fprintf(output, "! unknown preferences: %s\n", unused)
		}
	}
	if err != nil {
		return err
	}

	if *reset {
		if err := env.Prefs.Reset(); err != nil {
			return err
		}
	} else if len(md.RemainingArgs()) == 1 {
		if err := env.Prefs.Save(); err != nil {
			return err
		}
	}

	fmt.Fprint(output, env.Prefs)

	return nil
}

// dumpConsole writes a graph of the console structure in the dot format
func dumpConsole(filename string, con *hardware.Console) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("memviz: %v", err)
	}
	defer f.Close()

	memviz.Map(f, con)

	return nil
}

// statusDisplay is the display used in RUN mode. there is no window so the
// stats label is printed when it changes
type statusDisplay struct {
	output io.Writer
	label  string
}

func newStatusDisplay(output io.Writer) *statusDisplay {
	return &statusDisplay{output: output}
}

// Render implements the emulation.Display interface.
func (d *statusDisplay) Render(_ []uint32, label string, _ video.Mode) error {
	if label != "" && label != d.label {
		d.label = label
		fmt.Fprintf(d.output, "\r%s ", strings.TrimSpace(label))
	}
	return nil
}

// Reset implements the emulation.Display interface.
func (d *statusDisplay) Reset() {
	if d.label != "" {
		fmt.Fprintln(d.output)
	}
	d.label = ""
}
