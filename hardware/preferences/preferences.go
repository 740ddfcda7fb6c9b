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

// Package preferences collates the preferences of the emulation. Preferences
// are stored on disk in the resource directory and can be overridden for a
// single session with the command line preference stack. For example:
//
//	helios -prefs "emulation.region::EUROPE; msu.enabled::false" rom.bin
package preferences

import (
	"strings"

	"github.com/heliosemu/helios/curated"
	"github.com/heliosemu/helios/hardware/memory/cartridge/backup"
	"github.com/heliosemu/helios/hardware/region"
	"github.com/heliosemu/helios/paths"
	"github.com/heliosemu/helios/prefs"
)

// RegionAuto indicates that the region is detected from the cartridge header.
const RegionAuto = "AUTO"

// Preferences for the emulation.
type Preferences struct {
	dsk *prefs.Disk

	// region of the console. one of AUTO, JAPAN, USA or EUROPE
	Region prefs.String

	// run the emulation as quickly as possible
	FullThrottle prefs.Bool

	// show the frame rate with the rendered screen
	ShowFPS prefs.Bool

	// initial SRAM mode. one of DISABLE, READ_ONLY or READ_WRITE
	SramMode prefs.String

	// enable the MSU-MD CD-audio interface if a cue sheet is present
	MSU prefs.Bool

	// write telemetry log files
	Telemetry prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file in the
// resource directory. A missing file is not an error.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.CreateResourcePath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	return newPreferences(pth)
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.Region.SetHookPre(func(v prefs.Value) error {
		s := strings.ToUpper(strings.TrimSpace(v.(string)))
		if s == "" || s == RegionAuto {
			return nil
		}
		for _, r := range region.Regions {
			if r.ID == s {
				return nil
			}
		}
		return curated.Errorf("preferences: unknown region (%s)", s)
	})

	p.SramMode.SetHookPre(func(v prefs.Value) error {
		s := v.(string)
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if _, ok := backup.ParseSramMode(s); !ok {
			return curated.Errorf("preferences: unknown sram mode (%s)", s)
		}
		return nil
	})

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	entries := []struct {
		key string
		p   prefs.Pref
	}{
		{"emulation.region", &p.Region},
		{"emulation.fullthrottle", &p.FullThrottle},
		{"emulation.showfps", &p.ShowFPS},
		{"backup.srammode", &p.SramMode},
		{"msu.enabled", &p.MSU},
		{"telemetry.enabled", &p.Telemetry},
	}
	for _, e := range entries {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	err = p.dsk.Load(false)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.Region.Set(RegionAuto)
	_ = p.FullThrottle.Set(false)
	_ = p.ShowFPS.Set(true)
	_ = p.SramMode.Set(backup.Disable.String())
	_ = p.MSU.Set(true)
	_ = p.Telemetry.Set(false)
}

// RegionOverride returns the preferred region as a string suitable for the
// region.Select() function. An empty string means the region is detected.
func (p *Preferences) RegionOverride() string {
	s := strings.ToUpper(strings.TrimSpace(p.Region.String()))
	if s == RegionAuto {
		return ""
	}
	return s
}

// BackupMode returns the preferred SRAM mode.
func (p *Preferences) BackupMode() backup.SramMode {
	m, _ := backup.ParseSramMode(p.SramMode.String())
	return m
}

// Reset all preferences to their default values and save to disk.
func (p *Preferences) Reset() error {
	p.SetDefaults()
	return p.dsk.Save()
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// ApplyCommandLine sets any preferences found on the command line stack.
func (p *Preferences) ApplyCommandLine() {
	p.dsk.ApplyCommandLine()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
