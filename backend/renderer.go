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

// Package backend draws figures onto the output surfaces of package
// surface.
//
// The [Renderer] implements [plot.Renderer] on top of a Cairo style
// [Context].  The plot package uses coordinates with the y axis pointing
// up, surfaces use coordinates with the y axis pointing down; the
// renderer installs a single transformation which flips the y axis, and
// every primitive, including text, images and clip rectangles, goes
// through it.
//
// [Canvas] writes whole figures to files.
package backend

import (
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/font"
	"seehuhn.de/go/plot/surface"
)

// DefaultPixelsPerInch is the screen resolution assumed for converting
// points to pixels.
const DefaultPixelsPerInch = 96

// Renderer implements plot.Renderer for a surface.
type Renderer struct {
	// PixelsPerInch is the screen resolution used by PointsToPixels.
	PixelsPerInch float64

	ctx           *Context
	measure       *Context
	width, height float64
	dpi           float64
}

var _ plot.Renderer = (*Renderer)(nil)

// NewRenderer returns a renderer for a canvas of width × height device
// pixels.  The figure resolution dpi is used to scale lengths given in
// points.
func NewRenderer(s surface.Surface, width, height, dpi float64) *Renderer {
	ctx := NewContext(s)
	ctx.SetMatrix(matrix.Matrix{1, 0, 0, -1, 0, height})
	return &Renderer{
		PixelsPerInch: DefaultPixelsPerInch,
		ctx:           ctx,
		width:         width,
		height:        height,
		dpi:           dpi,
	}
}

// Context returns the drawing context of the renderer.  User space of the
// context is the device space of the plot package.
func (r *Renderer) Context() *Context {
	return r.ctx
}

// Err returns the first error encountered while painting.
func (r *Renderer) Err() error {
	return r.ctx.Err()
}

// NewGC implements plot.Renderer.
func (r *Renderer) NewGC() *plot.GraphicsContext {
	return plot.NewGraphicsContext()
}

// PointsToPixels implements plot.Renderer.
func (r *Renderer) PointsToPixels(points float64) float64 {
	return points * (r.PixelsPerInch / 72) * (r.dpi / 72)
}

// Size implements plot.Renderer.
func (r *Renderer) Size() (w, h float64) {
	return r.width, r.height
}

// begin saves the context state and installs the clip rectangle of gc.
// Every call must be matched by a call to end.
func (r *Renderer) begin(clip *rect.Rect) {
	r.ctx.Save()
	r.ctx.NewPath()
	if clip != nil {
		r.ctx.ClipRectangle(clip.LLx, clip.LLy, clip.URx-clip.LLx, clip.URy-clip.LLy)
	}
}

func (r *Renderer) end() {
	r.ctx.NewPath()
	r.ctx.Restore()
}

// setStroke transfers the stroke style of gc to the context.
func (r *Renderer) setStroke(gc *plot.GraphicsContext) {
	r.ctx.SetSource(gc.Foreground())
	r.ctx.SetLineWidth(r.PointsToPixels(gc.LineWidth))
	r.ctx.SetLineCap(gc.Cap)
	r.ctx.SetLineJoin(gc.Join)
	if len(gc.Dashes) > 0 {
		dashes := make([]float64, len(gc.Dashes))
		for i, d := range gc.Dashes {
			dashes[i] = r.PointsToPixels(d)
		}
		r.ctx.SetDash(dashes, r.PointsToPixels(gc.DashOffset))
	} else {
		r.ctx.SetDash(nil, 0)
	}
}

// fillAndStroke fills the current path with face, if non-nil, and then
// strokes it.
func (r *Renderer) fillAndStroke(gc *plot.GraphicsContext, face *plot.Color) {
	if face != nil {
		c := *face
		if gc.AlphaForced() {
			c = c.WithAlpha(gc.Alpha())
		}
		r.ctx.SetSource(c)
		r.ctx.FillPreserve()
	}
	if gc.Stroked() {
		r.setStroke(gc)
		r.ctx.StrokePreserve()
	}
}

// DrawPoint implements plot.Renderer.
func (r *Renderer) DrawPoint(gc *plot.GraphicsContext, x, y float64) {
	r.begin(gc.Clip)
	defer r.end()
	r.ctx.Arc(x, y, 0.5, 0, 2*math.Pi)
	r.ctx.ClosePath()
	r.ctx.SetSource(gc.Foreground())
	r.ctx.Fill()
}

// DrawLine implements plot.Renderer.
func (r *Renderer) DrawLine(gc *plot.GraphicsContext, x1, y1, x2, y2 float64) {
	if !gc.Stroked() {
		return
	}
	r.begin(gc.Clip)
	defer r.end()
	r.ctx.MoveTo(x1, y1)
	r.ctx.LineTo(x2, y2)
	r.setStroke(gc)
	r.ctx.Stroke()
}

// DrawLines implements plot.Renderer.
func (r *Renderer) DrawLines(gc *plot.GraphicsContext, xs, ys []float64) error {
	if err := plot.CheckLengths(len(xs), len(ys)); err != nil {
		return err
	}
	if len(xs) == 0 || !gc.Stroked() {
		return nil
	}
	r.begin(gc.Clip)
	defer r.end()
	r.ctx.MoveTo(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		r.ctx.LineTo(xs[i], ys[i])
	}
	r.setStroke(gc)
	r.ctx.Stroke()
	return nil
}

// DrawArc implements plot.Renderer.  A full turn gives a closed ellipse.
func (r *Renderer) DrawArc(gc *plot.GraphicsContext, face *plot.Color, x, y, width, height, angle1, angle2 float64) {
	if width == 0 || height == 0 {
		return
	}
	r.begin(gc.Clip)
	defer r.end()

	r.ctx.Save()
	r.ctx.Translate(x, y)
	r.ctx.Scale(width/2, height/2)
	r.ctx.Arc(0, 0, 1, angle1*math.Pi/180, angle2*math.Pi/180)
	if angle2-angle1 >= 360 {
		r.ctx.ClosePath()
	}
	r.ctx.Restore()

	r.fillAndStroke(gc, face)
}

// DrawRectangle implements plot.Renderer.
func (r *Renderer) DrawRectangle(gc *plot.GraphicsContext, face *plot.Color, x, y, width, height float64) {
	r.begin(gc.Clip)
	defer r.end()
	r.ctx.Rectangle(x, y, width, height)
	r.fillAndStroke(gc, face)
}

// DrawPolygon implements plot.Renderer.
func (r *Renderer) DrawPolygon(gc *plot.GraphicsContext, face *plot.Color, pts []vec.Vec2) {
	if len(pts) == 0 {
		return
	}
	r.begin(gc.Clip)
	defer r.end()
	r.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.ctx.LineTo(p.X, p.Y)
	}
	r.ctx.ClosePath()
	r.fillAndStroke(gc, face)
}

// DrawText implements plot.Renderer.  The text is drawn in the foreground
// color of gc.
func (r *Renderer) DrawText(gc *plot.GraphicsContext, x, y float64, s string, prop font.Properties, angle float64, isMath bool) error {
	s = plainText(s, isMath)
	if s == "" {
		return nil
	}
	r.begin(gc.Clip)
	defer r.end()

	if err := r.ctx.SelectFont(prop); err != nil {
		return err
	}
	r.ctx.SetFontSize(r.PointsToPixels(prop.Size))
	r.ctx.SetSource(gc.Foreground())
	r.ctx.Translate(x, y)
	r.ctx.Rotate(angle * math.Pi / 180)
	r.ctx.MoveTo(0, 0)
	r.ctx.ShowText(s)
	return r.ctx.Err()
}

// TextExtent implements plot.Renderer.  The width is the advance width
// and the height is the ink height of the text.
func (r *Renderer) TextExtent(s string, prop font.Properties, isMath bool) (w, h float64, err error) {
	if r.measure == nil {
		r.measure = NewContext(nil)
	}
	if err := r.measure.SelectFont(prop); err != nil {
		return 0, 0, err
	}
	r.measure.SetFontSize(r.PointsToPixels(prop.Size))
	ext, err := r.measure.TextExtents(plainText(s, isMath))
	if err != nil {
		return 0, 0, err
	}
	return ext.Width, ext.Height(), nil
}

// DrawImage implements plot.Renderer.
func (r *Renderer) DrawImage(x, y float64, img image.Image, origin plot.Origin, clip *rect.Rect) error {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	r.begin(clip)
	defer r.end()

	var m matrix.Matrix
	if origin == plot.OriginLower {
		m = matrix.Matrix{1, 0, 0, 1, x, y}
	} else {
		m = matrix.Matrix{1, 0, 0, -1, x, r.height - y}
	}
	r.ctx.DrawImage(img, m)
	return r.ctx.Err()
}
