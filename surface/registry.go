// seehuhn.de/go/plot - a 2D/3D plotting library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package surface

import (
	"slices"
	"strings"
	"sync"

	"seehuhn.de/go/plot"
)

// Format describes an output file format.
type Format struct {
	// Name is the file name extension, without the leading dot.
	Name string

	// Page is set for page formats.  These are drawn at 72 dots per inch
	// and centred on a sheet of paper.
	Page bool

	// Open creates the output file.
	Open func(filename string, opts Options) (Surface, error)
}

var (
	formatsMu sync.RWMutex
	formats   = make(map[string]*Format)
)

// Register makes a format available under its name.  It panics if f is
// nil, has no Open function, or if a format with the same name is
// already registered.
func Register(f *Format) {
	if f == nil || f.Open == nil {
		panic("surface: Register called with nil format")
	}
	name := strings.ToLower(f.Name)
	if name == "" {
		panic("surface: Register called without a format name")
	}

	formatsMu.Lock()
	defer formatsMu.Unlock()
	if _, dup := formats[name]; dup {
		panic("surface: Register called twice for format " + name)
	}
	formats[name] = f
}

// Unregister removes a format.  This is mostly useful in tests.
func Unregister(name string) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	delete(formats, strings.ToLower(name))
}

// Lookup returns the format for a file name extension, given without the
// leading dot.  If no such format is registered, a
// *plot.UnsupportedFormatError is returned.
func Lookup(ext string) (*Format, error) {
	formatsMu.RLock()
	f, ok := formats[strings.ToLower(ext)]
	formatsMu.RUnlock()
	if !ok {
		return nil, &plot.UnsupportedFormatError{Format: ext, Supported: Formats()}
	}
	return f, nil
}

// Formats returns the names of all registered formats, in sorted order.
func Formats() []string {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
