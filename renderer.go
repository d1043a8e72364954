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

// Origin gives the row order of an image passed to Renderer.DrawImage.
type Origin int

const (
	// OriginUpper places the first image row at the top.  The y coordinate
	// passed to DrawImage is the distance of the top edge from the top of
	// the canvas.
	OriginUpper Origin = iota

	// OriginLower places the first image row at the bottom.  The y
	// coordinate passed to DrawImage is the distance of the bottom edge
	// from the bottom of the canvas.
	OriginLower
)

func (o Origin) String() string {
	if o == OriginLower {
		return "lower"
	}
	return "upper"
}

// Renderer is the set of drawing primitives a backend must provide.
//
// All coordinates are device pixels with the origin in the lower left
// corner of the canvas and the y axis pointing up.  Angles are in degrees,
// counter-clockwise.  Where a face color is accepted, a nil face means that
// the shape is only outlined.  Shapes with a face are filled first and
// stroked afterwards.
type Renderer interface {
	// NewGC returns a graphics context with the default style.
	NewGC() *GraphicsContext

	// DrawPoint draws a dot with a diameter of one pixel.
	DrawPoint(gc *GraphicsContext, x, y float64)

	// DrawLine draws a single segment.
	DrawLine(gc *GraphicsContext, x1, y1, x2, y2 float64)

	// DrawLines draws an open polyline through the given vertices.  If the
	// slices have different lengths, nothing is drawn and an error
	// wrapping ErrContractViolation is returned.
	DrawLines(gc *GraphicsContext, xs, ys []float64) error

	// DrawArc draws an elliptical arc centred at (x, y), with horizontal
	// diameter width and vertical diameter height, from angle1 to angle2.
	DrawArc(gc *GraphicsContext, face *Color, x, y, width, height, angle1, angle2 float64)

	// DrawRectangle draws an axis-aligned rectangle with lower left corner
	// (x, y).
	DrawRectangle(gc *GraphicsContext, face *Color, x, y, width, height float64)

	// DrawPolygon draws the closed polygon through pts.
	DrawPolygon(gc *GraphicsContext, face *Color, pts []vec.Vec2)

	// DrawText draws s with its baseline starting at (x, y), rotated by
	// angle around that point.  If isMath is set, s is a mathematical
	// expression delimited by dollar signs.
	DrawText(gc *GraphicsContext, x, y float64, s string, prop font.Properties, angle float64, isMath bool) error

	// DrawImage paints img with one image pixel per device pixel.  The
	// meaning of y depends on origin.  If clip is non-nil, painting is
	// restricted to this rectangle.
	DrawImage(x, y float64, img image.Image, origin Origin, clip *rect.Rect) error

	// TextExtent returns the width and the height of s, in pixels, as it
	// would be drawn by DrawText with the same arguments.
	TextExtent(s string, prop font.Properties, isMath bool) (w, h float64, err error)

	// PointsToPixels converts a length in points to device pixels.
	PointsToPixels(points float64) float64

	// Size returns the width and height of the canvas in pixels.
	Size() (w, h float64)
}
