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

package font

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
)

func TestWeightBuckets(t *testing.T) {
	for w := 100; w <= 900; w += 100 {
		t.Run(strconv.Itoa(w), func(t *testing.T) {
			p := Default()
			p.Weight = strconv.Itoa(w)
			f, err := Resolve(p)
			if err != nil {
				t.Fatal(err)
			}
			if want := w >= 600; f.Bold != want {
				t.Errorf("bold: got %t, want %t", f.Bold, want)
			}
		})
	}
}

func TestNamedWeights(t *testing.T) {
	cases := map[string]bool{
		"ultralight": false,
		"light":      false,
		"normal":     false,
		"medium":     false,
		"semibold":   true,
		"bold":       true,
		"heavy":      true,
		"ultrabold":  true,
		"black":      true,
	}
	for name, bold := range cases {
		w, err := ParseWeight(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if IsBold(w) != bold {
			t.Errorf("%s: bold is %t", name, IsBold(w))
		}
	}
}

func TestInvalidValues(t *testing.T) {
	cases := []Properties{
		{Family: "sans-serif", Style: "normal", Weight: "fat", Size: 10},
		{Family: "sans-serif", Style: "normal", Weight: "1000", Size: 10},
		{Family: "sans-serif", Style: "normal", Weight: "450", Size: 10},
		{Family: "sans-serif", Style: "slanted", Weight: "normal", Size: 10},
	}
	for _, p := range cases {
		_, err := Resolve(p)
		var ve *ValueError
		if !errors.As(err, &ve) {
			t.Errorf("%v: got %v, want *ValueError", p, err)
		}
	}
}

func TestSlants(t *testing.T) {
	for _, s := range []Slant{Upright, Italic, Oblique} {
		p := Default()
		p.Style = s.String()
		f, err := Resolve(p)
		if err != nil {
			t.Fatal(err)
		}
		if f.Slant != s {
			t.Errorf("%s: got slant %s", s, f.Slant)
		}
	}
}

// Measurement and painting must see the same face for the same descriptor.
func TestResolveIsDeterministic(t *testing.T) {
	p := Properties{Family: "Helvetica", Style: "oblique", Weight: "700", Size: 12}
	a, err := Resolve(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Resolve(p)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("identical descriptors resolved to different faces")
	}

	p.Family = "monospace"
	m, err := Resolve(p)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Mono || m == a {
		t.Error("monospace family not honoured")
	}
}

func TestExtents(t *testing.T) {
	f, err := Resolve(Default())
	if err != nil {
		t.Fatal(err)
	}

	e10, err := f.Extents("Hello", 10)
	if err != nil {
		t.Fatal(err)
	}
	e20, err := f.Extents("Hello", 20)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e20.Width-2*e10.Width) > 1e-9 {
		t.Errorf("width does not scale: %g vs %g", e10.Width, e20.Width)
	}
	if e10.Width <= 0 || e10.Ascent <= 0 || e10.Height() <= 0 {
		t.Errorf("bad extents %+v", e10)
	}
	if e10.Ascent > e10.LineAscent+1e-9 {
		t.Errorf("ink ascent %g above line ascent %g", e10.Ascent, e10.LineAscent)
	}

	narrow, _ := f.Extents("ii", 10)
	wide, _ := f.Extents("WW", 10)
	if narrow.Width >= wide.Width {
		t.Errorf("proportional font: %g >= %g", narrow.Width, wide.Width)
	}

	empty, _ := f.Extents("", 10)
	if empty.Width != 0 || empty.Height() != 0 {
		t.Errorf("empty string has extents %+v", empty)
	}
}

func TestAppendOutline(t *testing.T) {
	f, err := Resolve(Default())
	if err != nil {
		t.Fatal(err)
	}

	p := &path.Data{}
	if err := f.AppendOutline(p, " ", 10, matrix.Identity); err != nil {
		t.Fatal(err)
	}
	if len(p.Cmds) != 0 {
		t.Errorf("space has %d path commands", len(p.Cmds))
	}

	if err := f.AppendOutline(p, "A", 10, matrix.Identity); err != nil {
		t.Fatal(err)
	}
	if len(p.Cmds) == 0 || p.Cmds[0] != path.CmdMoveTo {
		t.Fatal("missing outline for A")
	}
	last := p.Cmds[len(p.Cmds)-1]
	if last != path.CmdClose {
		t.Errorf("outline ends with %v", last)
	}

	// glyph coordinates lie above the baseline, y up
	ext, _ := f.Extents("A", 10)
	for _, c := range p.Coords {
		if c.Y < -1e-9 || c.Y > ext.Ascent+1e-9 {
			t.Errorf("point %v outside [0, %g]", c, ext.Ascent)
			break
		}
	}
}
