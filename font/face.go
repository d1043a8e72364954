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
	"fmt"
	"math"
	"strings"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot/internal/logging"
)

// Face is a resolved font face.  Glyph outlines are loaded lazily and
// cached.  A Face is safe for concurrent use.
type Face struct {
	Name  string
	Mono  bool
	Bold  bool
	Slant Slant

	fnt     *sfnt.Font
	upem    float64
	ascent  float64 // font units
	descent float64 // font units, positive below the baseline

	mu     sync.Mutex
	buf    sfnt.Buffer
	glyphs map[rune]*glyph
}

type glyph struct {
	index   sfnt.GlyphIndex
	advance float64 // font units
	segs    sfnt.Segments
	empty   bool
	minX    float64 // ink bounds in font units, y up
	minY    float64
	maxX    float64
	maxY    float64
}

type faceKey struct {
	mono, bold bool
	slant      Slant
}

type ttfKey struct {
	mono, bold, italic bool
}

var faceData = map[ttfKey]struct {
	name string
	ttf  []byte
}{
	{false, false, false}: {"Go Regular", goregular.TTF},
	{false, true, false}:  {"Go Bold", gobold.TTF},
	{false, false, true}:  {"Go Italic", goitalic.TTF},
	{false, true, true}:   {"Go Bold Italic", gobolditalic.TTF},
	{true, false, false}:  {"Go Mono", gomono.TTF},
	{true, true, false}:   {"Go Mono Bold", gomonobold.TTF},
	{true, false, true}:   {"Go Mono Italic", gomonoitalic.TTF},
	{true, true, true}:    {"Go Mono Bold Italic", gomonobolditalic.TTF},
}

var (
	facesMu sync.Mutex
	faces   = map[faceKey]*Face{}
)

var monoFamilies = map[string]bool{
	"monospace": true, "mono": true, "go mono": true,
	"courier": true, "courier new": true, "dejavu sans mono": true,
}

var sansFamilies = map[string]bool{
	"sans-serif": true, "sans": true, "go": true, "helvetica": true,
	"arial": true, "dejavu sans": true, "bitstream vera sans": true,
}

// Resolve maps a font descriptor to a face.  Families without a matching
// face fall back to the proportional Go font.  An invalid weight or style
// gives a *ValueError.
func Resolve(p Properties) (*Face, error) {
	weight, err := ParseWeight(p.Weight)
	if err != nil {
		return nil, err
	}
	slant, err := ParseSlant(p.Style)
	if err != nil {
		return nil, err
	}

	family := strings.ToLower(strings.TrimSpace(p.Family))
	mono := monoFamilies[family]
	if !mono && !sansFamilies[family] && family != "" {
		logging.Get().Debug("font family not available, using Go",
			"family", p.Family)
	}

	return loadFace(faceKey{mono: mono, bold: IsBold(weight), slant: slant})
}

func loadFace(key faceKey) (*Face, error) {
	facesMu.Lock()
	defer facesMu.Unlock()

	if f, ok := faces[key]; ok {
		return f, nil
	}
	data := faceData[ttfKey{key.mono, key.bold, key.slant != Upright}]
	fnt, err := opentype.Parse(data.ttf)
	if err != nil {
		return nil, fmt.Errorf("font: parsing %s: %w", data.name, err)
	}

	f := &Face{
		Name:   data.name,
		Mono:   key.mono,
		Bold:   key.bold,
		Slant:  key.slant,
		fnt:    fnt,
		upem:   float64(fnt.UnitsPerEm()),
		glyphs: map[rune]*glyph{},
	}
	m, err := fnt.Metrics(&f.buf, f.ppem(), xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("font: metrics of %s: %w", data.name, err)
	}
	f.ascent = fromFixed(m.Ascent)
	f.descent = fromFixed(m.Descent)

	logging.Get().Debug("loaded font face", "name", f.Name, "slant", f.Slant)
	faces[key] = f
	return f, nil
}

// ppem requests glyph data in font units.
func (f *Face) ppem() fixed.Int26_6 {
	return fixed.I(int(f.upem))
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// glyphFor returns the cached glyph for r.  The caller must hold f.mu.
func (f *Face) glyphFor(r rune) (*glyph, error) {
	if g, ok := f.glyphs[r]; ok {
		return g, nil
	}
	idx, err := f.fnt.GlyphIndex(&f.buf, r)
	if err != nil {
		return nil, err
	}
	adv, err := f.fnt.GlyphAdvance(&f.buf, idx, f.ppem(), xfont.HintingNone)
	if err != nil {
		return nil, err
	}
	segs, err := f.fnt.LoadGlyph(&f.buf, idx, f.ppem(), nil)
	if err != nil {
		return nil, err
	}

	g := &glyph{
		index:   idx,
		advance: fromFixed(adv),
		segs:    append(sfnt.Segments(nil), segs...),
		empty:   true,
	}
	for _, s := range g.segs {
		n := 1
		switch s.Op {
		case sfnt.SegmentOpQuadTo:
			n = 2
		case sfnt.SegmentOpCubeTo:
			n = 3
		}
		for _, a := range s.Args[:n] {
			x, y := fromFixed(a.X), -fromFixed(a.Y)
			if g.empty {
				g.minX, g.maxX, g.minY, g.maxY = x, x, y, y
				g.empty = false
			}
			g.minX = min(g.minX, x)
			g.maxX = max(g.maxX, x)
			g.minY = min(g.minY, y)
			g.maxY = max(g.maxY, y)
		}
	}
	f.glyphs[r] = g
	return g, nil
}

// placed is a glyph with its pen position in font units.
type placed struct {
	g *glyph
	x float64
}

// layout positions the glyphs of s on the baseline, applying kerning.
// The caller must hold f.mu.
func (f *Face) layout(s string) ([]placed, float64, error) {
	var out []placed
	x := 0.0
	var prev *glyph
	for _, r := range s {
		g, err := f.glyphFor(r)
		if err != nil {
			return nil, 0, err
		}
		if prev != nil {
			k, err := f.fnt.Kern(&f.buf, prev.index, g.index, f.ppem(), xfont.HintingNone)
			if err == nil {
				x += fromFixed(k)
			}
		}
		out = append(out, placed{g: g, x: x})
		x += g.advance
		prev = g
	}
	return out, x, nil
}

// Extents describes the size of a text string in pixels.
type Extents struct {
	// Width is the advance width of the string.
	Width float64

	// Ascent and Descent give the ink extent above and below the
	// baseline.  Both are non-negative for text which crosses the
	// baseline.
	Ascent  float64
	Descent float64

	// LineAscent and LineDescent are the font-wide values.
	LineAscent  float64
	LineDescent float64
}

// Height returns the ink height of the string.
func (e Extents) Height() float64 {
	return e.Ascent + e.Descent
}

// Extents measures s at the given size in pixels per em.
func (f *Face) Extents(s string, size float64) (Extents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	glyphs, width, err := f.layout(s)
	if err != nil {
		return Extents{}, err
	}
	scale := size / f.upem
	ext := Extents{
		Width:       width * scale,
		LineAscent:  f.ascent * scale,
		LineDescent: f.descent * scale,
	}
	top, bottom := math.Inf(-1), math.Inf(1)
	for _, p := range glyphs {
		if p.g.empty {
			continue
		}
		top = max(top, p.g.maxY)
		bottom = min(bottom, p.g.minY)
	}
	if !math.IsInf(top, 0) {
		ext.Ascent = max(top*scale, 0)
		ext.Descent = max(-bottom*scale, 0)
	}
	return ext, nil
}

// AppendOutline appends the outlines of the glyphs of s to p.  Text space
// has its origin at the start of the baseline and the y axis pointing up,
// with one unit per pixel at the given size.  The matrix m maps text space
// to the coordinates of p.
func (f *Face) AppendOutline(p *path.Data, s string, size float64, m matrix.Matrix) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	glyphs, _, err := f.layout(s)
	if err != nil {
		return err
	}
	scale := size / f.upem
	pt := func(a fixed.Point26_6, penX float64) vec.Vec2 {
		x := (fromFixed(a.X) + penX) * scale
		y := -fromFixed(a.Y) * scale
		return vec.Vec2{
			X: m[0]*x + m[2]*y + m[4],
			Y: m[1]*x + m[3]*y + m[5],
		}
	}
	for _, pl := range glyphs {
		open := false
		for _, seg := range pl.g.segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					p.Close()
				}
				p.MoveTo(pt(seg.Args[0], pl.x))
				open = true
			case sfnt.SegmentOpLineTo:
				p.LineTo(pt(seg.Args[0], pl.x))
			case sfnt.SegmentOpQuadTo:
				p.QuadTo(pt(seg.Args[0], pl.x), pt(seg.Args[1], pl.x))
			case sfnt.SegmentOpCubeTo:
				p.CubeTo(pt(seg.Args[0], pl.x), pt(seg.Args[1], pl.x), pt(seg.Args[2], pl.x))
			}
		}
		if open {
			p.Close()
		}
	}
	return nil
}
