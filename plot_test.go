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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot/font"
)

// call is one recorded drawing operation.
type call struct {
	op    string
	gc    GraphicsContext
	face  *Color
	pts   []vec.Vec2
	text  string
	angle float64
}

// recorder is a Renderer which records all calls.  Text is 6 pixels wide
// per byte and 10 pixels high.
type recorder struct {
	calls []call
	scale float64
}

func (r *recorder) NewGC() *GraphicsContext { return NewGraphicsContext() }

func (r *recorder) add(op string, gc *GraphicsContext, face *Color, pts ...vec.Vec2) {
	c := call{op: op, face: face, pts: pts}
	if gc != nil {
		c.gc = *gc
	}
	r.calls = append(r.calls, c)
}

func (r *recorder) DrawPoint(gc *GraphicsContext, x, y float64) {
	r.add("point", gc, nil, vec.Vec2{X: x, Y: y})
}

func (r *recorder) DrawLine(gc *GraphicsContext, x1, y1, x2, y2 float64) {
	r.add("line", gc, nil, vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x2, Y: y2})
}

func (r *recorder) DrawLines(gc *GraphicsContext, xs, ys []float64) error {
	if err := CheckLengths(len(xs), len(ys)); err != nil {
		return err
	}
	pts := make([]vec.Vec2, len(xs))
	for i := range xs {
		pts[i] = vec.Vec2{X: xs[i], Y: ys[i]}
	}
	r.add("lines", gc, nil, pts...)
	return nil
}

func (r *recorder) DrawArc(gc *GraphicsContext, face *Color, x, y, width, height, angle1, angle2 float64) {
	r.add("arc", gc, face, vec.Vec2{X: x, Y: y}, vec.Vec2{X: width, Y: height})
}

func (r *recorder) DrawRectangle(gc *GraphicsContext, face *Color, x, y, width, height float64) {
	r.add("rect", gc, face, vec.Vec2{X: x, Y: y}, vec.Vec2{X: width, Y: height})
}

func (r *recorder) DrawPolygon(gc *GraphicsContext, face *Color, pts []vec.Vec2) {
	r.add("polygon", gc, face, pts...)
}

func (r *recorder) DrawText(gc *GraphicsContext, x, y float64, s string, prop font.Properties, angle float64, isMath bool) error {
	r.add("text", gc, nil, vec.Vec2{X: x, Y: y})
	last := &r.calls[len(r.calls)-1]
	last.text = s
	last.angle = angle
	return nil
}

func (r *recorder) DrawImage(x, y float64, img image.Image, origin Origin, clip *rect.Rect) error {
	r.add("image", nil, nil, vec.Vec2{X: x, Y: y})
	return nil
}

func (r *recorder) TextExtent(s string, prop font.Properties, isMath bool) (w, h float64, err error) {
	return 6 * float64(len(s)), 10, nil
}

func (r *recorder) PointsToPixels(points float64) float64 {
	if r.scale == 0 {
		return points
	}
	return points * r.scale
}

func (r *recorder) Size() (w, h float64) { return 200, 100 }
