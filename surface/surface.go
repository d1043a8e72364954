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

// Package surface implements output devices which write drawings to
// files.
//
// A surface accepts filled and stroked paths and images in device space,
// with the origin in the top left corner of the canvas and the y axis
// pointing down.  The built-in formats are "png", "pdf" and "ps".  Further
// formats can be added with [Register].
package surface

import (
	"image"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
)

// Surface is an open output file.  Close must be called exactly once,
// after which the file is complete.
type Surface interface {
	// Fill fills the interior of p.
	Fill(p *path.Data, evenOdd bool, st State) error

	// Stroke strokes the outline of p.
	Stroke(p *path.Data, style StrokeStyle, st State) error

	// DrawImage paints img.  The matrix m maps image pixel coordinates,
	// with the origin in the top left corner of the image, to device
	// space.
	DrawImage(img image.Image, m matrix.Matrix, st State) error

	// Close finishes the output and closes the file.
	Close() error
}

// State holds the parameters shared by all painting operations.
type State struct {
	// Color is the paint color.  Fully transparent paint is not drawn.
	Color plot.Color

	// Clip, if non-nil, limits painting to this rectangle, in device
	// space.
	Clip *rect.Rect
}

// StrokeStyle describes how paths are stroked.  All lengths are in device
// units.
type StrokeStyle struct {
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64
}

// Options describes the canvas of a new surface.
type Options struct {
	// Width and Height give the size of the canvas in device units.
	Width, Height float64

	// PageWidth and PageHeight give the page size in points, for page
	// formats.  Zero values select the canvas size.
	PageWidth, PageHeight float64

	// Offset is the position of the top left canvas corner, relative to
	// the top left corner of the page.
	Offset vec.Vec2

	// Background is used by formats without transparency: translucent
	// colors are blended with it before painting.
	Background plot.Color
}

func (o *Options) pageSize() (w, h float64) {
	w, h = o.PageWidth, o.PageHeight
	if w <= 0 || h <= 0 {
		w, h = o.Width, o.Height
	}
	return w, h
}

// pageMatrix maps device space to the default page space of PDF and
// PostScript, which has the origin in the lower left corner.
func (o *Options) pageMatrix() matrix.Matrix {
	_, h := o.pageSize()
	return matrix.Matrix{1, 0, 0, -1, o.Offset.X, h - o.Offset.Y}
}

// flatten blends c with the background and returns an opaque color.
func flatten(c, bg plot.Color) plot.Color {
	a := c.A
	return plot.RGB(
		c.R*a+bg.R*(1-a),
		c.G*a+bg.G*(1-a),
		c.B*a+bg.B*(1-a),
	)
}

// toColor converts an image color to a non-premultiplied plot.Color.
func toColor(r, g, b, a uint32) plot.Color {
	if a == 0 {
		return plot.Transparent
	}
	fa := float64(a)
	return plot.Color{R: float64(r) / fa, G: float64(g) / fa, B: float64(b) / fa, A: fa / 0xffff}
}

// Paper is a paper size for page formats.
type Paper struct {
	Name          string
	Width, Height float64 // inches
}

var papers = map[string]Paper{
	"letter": {"letter", 8.5, 11},
	"legal":  {"legal", 8.5, 14},
	"a4":     {"a4", 8.27, 11.69},
	"a3":     {"a3", 11.69, 16.54},
}

// LookupPaper returns the paper size with the given name.  Unknown names
// give a *plot.StyleValueError.
func LookupPaper(name string) (Paper, error) {
	p, ok := papers[strings.ToLower(name)]
	if !ok {
		return Paper{}, &plot.StyleValueError{Property: "paper size", Value: name,
			Allowed: []string{"letter", "legal", "a4", "a3"}}
	}
	return p, nil
}
