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

package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/heliosemu/helios/curated"
)

// Loader is used to specify the ROM image to attach to the console.
type Loader struct {
	// filename of the ROM image to load
	Filename string

	// expected hash of the loaded data. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: filename,
	}
}

// ShortName returns the filename without the path and without the extension.
func (cl Loader) ShortName() string {
	n := filepath.Base(cl.Filename)
	return strings.TrimSuffix(n, filepath.Ext(n))
}

// RecognisedExtension returns true if the filename has an extension found in
// the FileExtensions list. ROM images with other extensions can still be
// loaded.
func (cl Loader) RecognisedExtension() bool {
	ext := strings.ToUpper(filepath.Ext(cl.Filename))
	return slices.Contains(FileExtensions[:], ext)
}

// CueSheet returns the path to the cue sheet for the ROM image. There is no
// check that the file exists.
func (cl Loader) CueSheet() string {
	return strings.TrimSuffix(cl.Filename, filepath.Ext(cl.Filename)) + CueExtension
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the ROM image from the file. Calling Load() more than once has no
// effect.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	f, err := os.Open(cl.Filename)
	if err != nil {
		return curated.Errorf("cartridgeloader: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return curated.Errorf("cartridgeloader: %v", err)
	}
	if len(data) == 0 {
		return curated.Errorf("cartridgeloader: %v", fmt.Sprintf("empty file (%s)", cl.Filename))
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf("cartridgeloader: %v", "unexpected hash value")
	}

	cl.Hash = hash
	cl.Data = data

	return nil
}
