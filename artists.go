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

package plot

import (
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot/font"
)

// Artist is a drawable node of a figure.
type Artist interface {
	Draw(r Renderer) error
}

// Style describes how an artist outlines and fills its shapes.
type Style struct {
	Edge       Color
	Face       *Color    // nil means not filled
	LineWidth  float64   // points, zero disables the outline
	Dashes     []float64 // points, nil means solid
	DashOffset float64

	// Cap and Join are style names as accepted by
	// GraphicsContext.SetCapStyle and GraphicsContext.SetJoinStyle.  The
	// empty string keeps the default.
	Cap  string
	Join string

	Clip *rect.Rect // device pixels
}

// DefaultStyle returns a solid black outline, 1pt wide, without fill.
func DefaultStyle() Style {
	return Style{
		Edge:      Black,
		LineWidth: 1,
	}
}

// apply copies the style into gc.  Invalid cap and join names are logged
// by the graphics context and otherwise ignored.
func (s *Style) apply(gc *GraphicsContext) {
	gc.SetForeground(s.Edge)
	gc.SetLineWidth(s.LineWidth)
	_ = gc.SetDashes(s.DashOffset, s.Dashes)
	if s.Cap != "" {
		_ = gc.SetCapStyle(s.Cap)
	}
	if s.Join != "" {
		_ = gc.SetJoinStyle(s.Join)
	}
	gc.SetClipRectangle(s.Clip)
}

// affine returns m, with the zero matrix standing in for the identity.
func affine(m matrix.Matrix) matrix.Matrix {
	if m == (matrix.Matrix{}) {
		return matrix.Identity
	}
	return m
}

func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

func applyAll(m matrix.Matrix, pts []vec.Vec2) []vec.Vec2 {
	m = affine(m)
	out := make([]vec.Vec2, len(pts))
	for i, p := range pts {
		out[i] = apply(m, p)
	}
	return out
}

func cycle(c []Color, i int) Color {
	return c[i%len(c)]
}

// Line2D is a polyline.
type Line2D struct {
	X, Y  []float64
	Style Style

	// Transform maps data coordinates to device pixels.  The zero matrix
	// is treated as the identity.
	Transform matrix.Matrix
}

// NewLine2D returns a line through the given vertices, drawn with the
// default style.
func NewLine2D(xs, ys []float64) (*Line2D, error) {
	if err := CheckLengths(len(xs), len(ys)); err != nil {
		return nil, err
	}
	return &Line2D{X: xs, Y: ys, Style: DefaultStyle()}, nil
}

// Draw implements the Artist interface.
func (l *Line2D) Draw(r Renderer) error {
	if err := CheckLengths(len(l.X), len(l.Y)); err != nil {
		return err
	}
	if len(l.X) == 0 {
		return nil
	}
	m := affine(l.Transform)
	xs := make([]float64, len(l.X))
	ys := make([]float64, len(l.Y))
	for i := range l.X {
		p := apply(m, vec.Vec2{X: l.X[i], Y: l.Y[i]})
		xs[i], ys[i] = p.X, p.Y
	}
	gc := r.NewGC()
	l.Style.apply(gc)
	return r.DrawLines(gc, xs, ys)
}

// LineCollection is a set of polylines sharing one style.
type LineCollection struct {
	Segments [][]vec.Vec2

	// Colors, if non-empty, gives the edge colors of the segments.  The
	// list is cycled if it is shorter than Segments.
	Colors []Color

	Style     Style
	Transform matrix.Matrix
}

// Draw implements the Artist interface.
func (c *LineCollection) Draw(r Renderer) error {
	m := affine(c.Transform)
	for i, seg := range c.Segments {
		if len(seg) == 0 {
			continue
		}
		xs := make([]float64, len(seg))
		ys := make([]float64, len(seg))
		for j, p := range seg {
			q := apply(m, p)
			xs[j], ys[j] = q.X, q.Y
		}
		gc := r.NewGC()
		c.Style.apply(gc)
		if len(c.Colors) > 0 {
			gc.SetForeground(cycle(c.Colors, i))
		}
		if err := r.DrawLines(gc, xs, ys); err != nil {
			return err
		}
	}
	return nil
}

// Patch is a closed polygon with an optional fill.
type Patch struct {
	Verts     []vec.Vec2
	Style     Style
	Transform matrix.Matrix
}

// NewRectangle returns a rectangle patch with lower left corner (x, y).
func NewRectangle(x, y, width, height float64) *Patch {
	return &Patch{
		Verts: []vec.Vec2{
			{X: x, Y: y},
			{X: x + width, Y: y},
			{X: x + width, Y: y + height},
			{X: x, Y: y + height},
		},
		Style: DefaultStyle(),
	}
}

// NewCircle returns a regular polygon with n vertices approximating the
// circle with the given centre and radius.  For n < 3, 32 vertices are
// used.
func NewCircle(x, y, radius float64, n int) *Patch {
	if n < 3 {
		n = 32
	}
	verts := make([]vec.Vec2, n)
	for i := range verts {
		phi := 2 * math.Pi * float64(i) / float64(n)
		verts[i] = vec.Vec2{X: x + radius*math.Cos(phi), Y: y + radius*math.Sin(phi)}
	}
	return &Patch{Verts: verts, Style: DefaultStyle()}
}

// Draw implements the Artist interface.
func (p *Patch) Draw(r Renderer) error {
	if len(p.Verts) == 0 {
		return nil
	}
	gc := r.NewGC()
	p.Style.apply(gc)
	r.DrawPolygon(gc, p.Style.Face, applyAll(p.Transform, p.Verts))
	return nil
}

// PatchCollection draws one marker at each offset.
type PatchCollection struct {
	// Offsets are the marker positions in data coordinates.
	Offsets []vec.Vec2

	// Shape is the marker outline in points, relative to the offset.  If
	// Shape is empty, a circle with diameter Size is drawn.
	Shape []vec.Vec2
	Size  float64

	// FaceColors and EdgeColors, if non-empty, override the style colors.
	// They are cycled if shorter than Offsets.
	FaceColors []Color
	EdgeColors []Color

	Style     Style
	Transform matrix.Matrix
}

// Draw implements the Artist interface.
func (c *PatchCollection) Draw(r Renderer) error {
	m := affine(c.Transform)
	scale := r.PointsToPixels(1)
	for i, off := range c.Offsets {
		centre := apply(m, off)
		gc := r.NewGC()
		c.Style.apply(gc)
		if len(c.EdgeColors) > 0 {
			gc.SetForeground(cycle(c.EdgeColors, i))
		}
		face := c.Style.Face
		if len(c.FaceColors) > 0 {
			f := cycle(c.FaceColors, i)
			face = &f
		}

		if len(c.Shape) == 0 {
			d := c.Size * scale
			r.DrawArc(gc, face, centre.X, centre.Y, d, d, 0, 360)
			continue
		}
		pts := make([]vec.Vec2, len(c.Shape))
		for j, s := range c.Shape {
			pts[j] = centre.Add(s.Mul(scale))
		}
		r.DrawPolygon(gc, face, pts)
	}
	return nil
}

// PolyCollection is a set of polygons sharing one style.
type PolyCollection struct {
	Verts [][]vec.Vec2

	// FaceColors and EdgeColors, if non-empty, override the style colors.
	// They are cycled if shorter than Verts.
	FaceColors []Color
	EdgeColors []Color

	Style     Style
	Transform matrix.Matrix
}

// Draw implements the Artist interface.
func (c *PolyCollection) Draw(r Renderer) error {
	for i, poly := range c.Verts {
		if len(poly) == 0 {
			continue
		}
		gc := r.NewGC()
		c.Style.apply(gc)
		if len(c.EdgeColors) > 0 {
			gc.SetForeground(cycle(c.EdgeColors, i))
		}
		face := c.Style.Face
		if len(c.FaceColors) > 0 {
			f := cycle(c.FaceColors, i)
			face = &f
		}
		r.DrawPolygon(gc, face, applyAll(c.Transform, poly))
	}
	return nil
}

// HAlign is the horizontal alignment of a text relative to its anchor.
type HAlign int

// These are the supported horizontal alignments.
const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical alignment of a text relative to its anchor.
type VAlign int

// These are the supported vertical alignments.
const (
	AlignBaseline VAlign = iota
	AlignMiddle
	AlignTop
)

// Text is a single line of text.
type Text struct {
	X, Y     float64
	S        string
	Font     font.Properties
	Color    Color
	Rotation float64 // degrees
	HAlign   HAlign
	VAlign   VAlign
	IsMath   bool

	Transform matrix.Matrix
}

// NewText returns black text in the default font.
func NewText(x, y float64, s string) *Text {
	return &Text{X: x, Y: y, S: s, Font: font.Default(), Color: Black}
}

// Draw implements the Artist interface.
func (t *Text) Draw(r Renderer) error {
	if t.S == "" {
		return nil
	}
	anchor := apply(affine(t.Transform), vec.Vec2{X: t.X, Y: t.Y})

	var dx, dy float64
	if t.HAlign != AlignLeft || t.VAlign != AlignBaseline {
		w, h, err := r.TextExtent(t.S, t.Font, t.IsMath)
		if err != nil {
			return err
		}
		switch t.HAlign {
		case AlignCenter:
			dx = -w / 2
		case AlignRight:
			dx = -w
		}
		switch t.VAlign {
		case AlignMiddle:
			dy = -h / 2
		case AlignTop:
			dy = -h
		}
	}
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)
	x := anchor.X + dx*cos - dy*sin
	y := anchor.Y + dx*sin + dy*cos

	gc := r.NewGC()
	gc.SetForeground(t.Color)
	return r.DrawText(gc, x, y, t.S, t.Font, t.Rotation, t.IsMath)
}

// Image is a raster image placed in device space.
type Image struct {
	X, Y   float64
	Img    image.Image
	Origin Origin
	Clip   *rect.Rect
}

// Draw implements the Artist interface.
func (im *Image) Draw(r Renderer) error {
	if im.Img == nil {
		return nil
	}
	return r.DrawImage(im.X, im.Y, im.Img, im.Origin, im.Clip)
}
