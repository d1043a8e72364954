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

package backend

import (
	"errors"
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/font"
	"seehuhn.de/go/plot/surface"
)

// ErrNoFont is returned by text operations before a font was selected.
var ErrNoFont = errors.New("backend: no font selected")

// ErrRestore is recorded by Restore without a matching Save.
var ErrRestore = errors.New("backend: Restore without Save")

// Context is a vector graphics context in the style of Cairo.
//
// Path coordinates are given in user space and transformed by the current
// transformation matrix (CTM) at the time they are added, so that changing
// the CTM later does not move path segments which already exist.  Line
// widths, dash lengths and the clip rectangle are measured in device
// units.
//
// Drawing operations do not return errors.  The first error is kept and
// returned by [Context.Err]; after an error all drawing is skipped.
type Context struct {
	surf surface.Surface

	path    path.Data
	hasCur  bool
	cur     vec.Vec2 // device space
	start   vec.Vec2 // device space
	closeOK bool

	st    gstate
	stack []gstate

	err error
}

type gstate struct {
	ctm        matrix.Matrix
	source     plot.Color
	width      float64
	cap        graphics.LineCapStyle
	join       graphics.LineJoinStyle
	miterLimit float64
	dash       []float64
	dashOffset float64
	evenOdd    bool
	clip       *rect.Rect

	face     *font.Face
	fontSize float64
}

// NewContext returns a context which paints onto s.  If s is nil, the
// context can only be used for path construction and text measurement.
func NewContext(s surface.Surface) *Context {
	return &Context{
		surf: s,
		st: gstate{
			ctm:        matrix.Identity,
			source:     plot.Black,
			width:      2,
			cap:        graphics.LineCapButt,
			join:       graphics.LineJoinMiter,
			miterLimit: 10,
			fontSize:   10,
		},
	}
}

// Err returns the first error encountered by the context.
func (c *Context) Err() error {
	return c.err
}

func (c *Context) setErr(err error) {
	if c.err == nil && err != nil {
		c.err = err
	}
}

// Save pushes a copy of the graphics state, including the CTM and the
// clip, onto a stack.  The current path is not part of the graphics state.
func (c *Context) Save() {
	s := c.st
	s.dash = slices.Clone(s.dash)
	c.stack = append(c.stack, s)
}

// Restore pops the graphics state saved by the matching call to Save.
func (c *Context) Restore() {
	n := len(c.stack)
	if n == 0 {
		c.setErr(ErrRestore)
		return
	}
	c.st = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

// Matrix returns the current transformation matrix.
func (c *Context) Matrix() matrix.Matrix {
	return c.st.ctm
}

// SetMatrix replaces the current transformation matrix.
func (c *Context) SetMatrix(m matrix.Matrix) {
	c.st.ctm = m
}

// Transform modifies the CTM so that user space is first mapped by m.
func (c *Context) Transform(m matrix.Matrix) {
	c.st.ctm = m.Mul(c.st.ctm)
}

// Translate moves the origin of user space to (tx, ty).
func (c *Context) Translate(tx, ty float64) {
	c.Transform(matrix.Translate(tx, ty))
}

// Scale scales user space by sx horizontally and by sy vertically.
func (c *Context) Scale(sx, sy float64) {
	c.Transform(matrix.Scale(sx, sy))
}

// Rotate rotates user space by theta radians.  Positive angles turn the
// x axis towards the y axis.
func (c *Context) Rotate(theta float64) {
	c.Transform(matrix.Rotate(theta))
}

func (c *Context) device(x, y float64) vec.Vec2 {
	px, py := c.st.ctm.Apply(x, y)
	return vec.Vec2{X: px, Y: py}
}

// SetSource sets the paint color.
func (c *Context) SetSource(col plot.Color) {
	c.st.source = col
}

// SetLineWidth sets the stroke width in device units.
func (c *Context) SetLineWidth(w float64) {
	c.st.width = max(w, 0)
}

// SetLineCap sets the line cap style.
func (c *Context) SetLineCap(style graphics.LineCapStyle) {
	c.st.cap = style
}

// SetLineJoin sets the line join style.
func (c *Context) SetLineJoin(style graphics.LineJoinStyle) {
	c.st.join = style
}

// SetMiterLimit sets the miter limit.  Values below 1 are ignored.
func (c *Context) SetMiterLimit(limit float64) {
	if limit >= 1 {
		c.st.miterLimit = limit
	}
}

// SetDash sets the dash pattern, in device units.  An empty pattern selects
// solid lines.
func (c *Context) SetDash(dashes []float64, offset float64) {
	if len(dashes) == 0 {
		c.st.dash = nil
		c.st.dashOffset = 0
		return
	}
	c.st.dash = slices.Clone(dashes)
	c.st.dashOffset = offset
}

// SetFillRule selects the even-odd rule (true) or the nonzero winding rule
// (false) for Fill.
func (c *Context) SetFillRule(evenOdd bool) {
	c.st.evenOdd = evenOdd
}

// NewPath clears the current path and the current point.
func (c *Context) NewPath() {
	c.path.Cmds = c.path.Cmds[:0]
	c.path.Coords = c.path.Coords[:0]
	c.hasCur = false
	c.closeOK = false
}

// HasCurrentPoint reports whether the path has a current point.
func (c *Context) HasCurrentPoint() bool {
	return c.hasCur
}

// MoveTo starts a new subpath at (x, y).
func (c *Context) MoveTo(x, y float64) {
	p := c.device(x, y)
	c.path.MoveTo(p)
	c.cur, c.start = p, p
	c.hasCur = true
	c.closeOK = true
}

// LineTo adds a straight segment to (x, y).  Without a current point it
// behaves like MoveTo.
func (c *Context) LineTo(x, y float64) {
	if !c.hasCur {
		c.MoveTo(x, y)
		return
	}
	c.reopen()
	p := c.device(x, y)
	c.path.LineTo(p)
	c.cur = p
}

// reopen starts a new subpath at the current point after ClosePath.
func (c *Context) reopen() {
	if !c.closeOK {
		c.path.MoveTo(c.cur)
		c.start = c.cur
		c.closeOK = true
	}
}

// CurveTo adds a cubic Bézier segment with control points (x1, y1) and
// (x2, y2), ending at (x3, y3).
func (c *Context) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !c.hasCur {
		c.MoveTo(x1, y1)
	}
	c.reopen()
	p3 := c.device(x3, y3)
	c.path.CubeTo(c.device(x1, y1), c.device(x2, y2), p3)
	c.cur = p3
}

// ClosePath closes the current subpath.  The current point moves to the
// start of the subpath.
func (c *Context) ClosePath() {
	if !c.closeOK {
		return
	}
	c.path.Close()
	c.cur = c.start
	c.closeOK = false
}

// Rectangle adds a closed rectangle with corner (x, y).
func (c *Context) Rectangle(x, y, width, height float64) {
	c.MoveTo(x, y)
	c.LineTo(x+width, y)
	c.LineTo(x+width, y+height)
	c.LineTo(x, y+height)
	c.ClosePath()
}

// Arc adds a circular arc with centre (xc, yc) and the given radius.  The
// arc starts at angle a1 and runs in the direction of increasing angles
// to a2, angles being given in radians.  If a2 is smaller than a1, it is
// increased by multiples of 2π.  If there is a current point, a line
// segment connects it to the start of the arc.
//
// Elliptical arcs can be drawn by scaling user space before calling Arc.
func (c *Context) Arc(xc, yc, radius, a1, a2 float64) {
	if a2 < a1 {
		turns := math.Ceil((a1 - a2) / (2 * math.Pi))
		a2 += turns * 2 * math.Pi
	}
	c.arc(xc, yc, radius, a1, a2)
}

// ArcNegative is like Arc, but the arc runs in the direction of decreasing
// angles.
func (c *Context) ArcNegative(xc, yc, radius, a1, a2 float64) {
	if a2 > a1 {
		turns := math.Ceil((a2 - a1) / (2 * math.Pi))
		a2 -= turns * 2 * math.Pi
	}
	c.arc(xc, yc, radius, a1, a2)
}

func (c *Context) arc(xc, yc, r, a1, a2 float64) {
	pt := func(a float64) (float64, float64) {
		s, co := math.Sincos(a)
		return xc + r*co, yc + r*s
	}

	x0, y0 := pt(a1)
	if c.hasCur {
		c.LineTo(x0, y0)
	} else {
		c.MoveTo(x0, y0)
	}

	n := int(math.Ceil(math.Abs(a2-a1) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := (a2 - a1) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4) * r
	for i := 0; i < n; i++ {
		b0 := a1 + float64(i)*step
		b1 := b0 + step
		s0, c0 := math.Sincos(b0)
		s1, c1 := math.Sincos(b1)
		x3, y3 := pt(b1)
		c.CurveTo(
			xc+r*c0-k*s0, yc+r*s0+k*c0,
			xc+r*c1+k*s1, yc+r*s1-k*c1,
			x3, y3)
	}
}

// ClipRectangle intersects the clip region with a rectangle, given in user
// space.  The clip is always an axis-aligned rectangle in device space: if
// the CTM rotates the rectangle, its bounding box is used.
func (c *Context) ClipRectangle(x, y, width, height float64) {
	corners := [4]vec.Vec2{
		c.device(x, y), c.device(x+width, y),
		c.device(x+width, y+height), c.device(x, y+height),
	}
	r := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, p := range corners {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	if old := c.st.clip; old != nil {
		r.LLx = max(r.LLx, old.LLx)
		r.LLy = max(r.LLy, old.LLy)
		r.URx = min(r.URx, old.URx)
		r.URy = min(r.URy, old.URy)
		if r.URx < r.LLx {
			r.URx = r.LLx
		}
		if r.URy < r.LLy {
			r.URy = r.LLy
		}
	}
	c.st.clip = &r
}

// ResetClip removes the clip rectangle.
func (c *Context) ResetClip() {
	c.st.clip = nil
}

// ClipExtents returns the clip rectangle in device space, or nil if
// drawing is not clipped.
func (c *Context) ClipExtents() *rect.Rect {
	if c.st.clip == nil {
		return nil
	}
	r := *c.st.clip
	return &r
}

func (c *Context) state() surface.State {
	return surface.State{Color: c.st.source, Clip: c.st.clip}
}

// Fill fills the current path and clears it.
func (c *Context) Fill() {
	c.FillPreserve()
	c.NewPath()
}

// FillPreserve fills the current path and keeps it.
func (c *Context) FillPreserve() {
	if c.surf == nil || c.err != nil || len(c.path.Cmds) == 0 {
		return
	}
	c.setErr(c.surf.Fill(&c.path, c.st.evenOdd, c.state()))
}

// Stroke strokes the current path and clears it.
func (c *Context) Stroke() {
	c.StrokePreserve()
	c.NewPath()
}

// StrokePreserve strokes the current path and keeps it.
func (c *Context) StrokePreserve() {
	if c.surf == nil || c.err != nil || len(c.path.Cmds) == 0 {
		return
	}
	style := surface.StrokeStyle{
		Width:      c.st.width,
		Cap:        c.st.cap,
		Join:       c.st.join,
		MiterLimit: c.st.miterLimit,
		Dash:       c.st.dash,
		DashPhase:  c.st.dashOffset,
	}
	c.setErr(c.surf.Stroke(&c.path, style, c.state()))
}

// Paint fills the whole clip region, or the whole surface if there is no
// clip, with the source color.
func (c *Context) Paint(width, height float64) {
	if c.surf == nil || c.err != nil {
		return
	}
	r := rect.Rect{URx: width, URy: height}
	if c.st.clip != nil {
		r = *c.st.clip
	}
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: r.LLx, Y: r.LLy}).
		LineTo(vec.Vec2{X: r.URx, Y: r.LLy}).
		LineTo(vec.Vec2{X: r.URx, Y: r.URy}).
		LineTo(vec.Vec2{X: r.LLx, Y: r.URy}).
		Close()
	c.setErr(c.surf.Fill(p, false, c.state()))
}

// SelectFont sets the font face.  On error the previous face is kept.
func (c *Context) SelectFont(prop font.Properties) error {
	f, err := selectFont(prop)
	if err != nil {
		return err
	}
	c.st.face = f
	return nil
}

// SetFontSize sets the font size, in user space units per em.
func (c *Context) SetFontSize(size float64) {
	c.st.fontSize = size
}

// FontFace returns the selected face, or nil.
func (c *Context) FontFace() *font.Face {
	return c.st.face
}

// TextExtents measures s with the current font, in user space units.
func (c *Context) TextExtents(s string) (font.Extents, error) {
	if c.st.face == nil {
		return font.Extents{}, ErrNoFont
	}
	return c.st.face.Extents(s, c.st.fontSize)
}

// ShowText fills the glyph outlines of s, with the start of the baseline
// at the current point.  Glyphs are set upright in user space, extending
// in the direction of positive y.  The current point advances to the end
// of the text.
func (c *Context) ShowText(s string) {
	if c.err != nil {
		return
	}
	if c.st.face == nil {
		c.setErr(ErrNoFont)
		return
	}
	if !c.hasCur {
		c.MoveTo(0, 0)
	}

	m := c.st.ctm
	m[4], m[5] = c.cur.X, c.cur.Y

	var glyphs path.Data
	if err := c.st.face.AppendOutline(&glyphs, s, c.st.fontSize, m); err != nil {
		c.setErr(err)
		return
	}
	ext, err := c.st.face.Extents(s, c.st.fontSize)
	if err != nil {
		c.setErr(err)
		return
	}

	if c.surf != nil && len(glyphs.Cmds) > 0 {
		c.setErr(c.surf.Fill(&glyphs, false, c.state()))
	}

	end := vec.Vec2{X: m[0]*ext.Width + m[4], Y: m[1]*ext.Width + m[5]}
	c.path.MoveTo(end)
	c.cur, c.start = end, end
	c.hasCur = true
	c.closeOK = true
}

// DrawImage paints img.  The matrix m maps image pixel coordinates, with
// the origin in the top left corner of the image, to user space.
func (c *Context) DrawImage(img image.Image, m matrix.Matrix) {
	if c.surf == nil || c.err != nil {
		return
	}
	c.setErr(c.surf.DrawImage(img, m.Mul(c.st.ctm), c.state()))
}
