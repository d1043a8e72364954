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

// Package raster turns paths into anti-aliased pixel coverage.
//
// The scan converter accumulates the signed area of every edge per pixel
// and integrates each scanline from left to right.  Only scanlines that
// intersect at least one edge are visited, using an active edge list.
// Strokes are converted into a union of consistently oriented polygons
// (segment bodies, joins, and caps) which are then filled with the
// nonzero winding rule.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Emitter receives the coverage of one pixel row.  Coverage values lie in
// [0, 1] and cover the pixels xMin, xMin+1, ...  The slice is only valid
// for the duration of the call.
type Emitter func(y, xMin int, coverage []float32)

// Rasterizer converts paths into pixel coverage.  A Rasterizer keeps its
// work buffers between calls and should be reused.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps path coordinates to device pixels.
	CTM matrix.Matrix

	// Clip limits the output to this rectangle in device pixels.
	// The coordinates are truncated to integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the polyline which replaces it.
	Flatness float64

	// Stroke parameters, in path coordinates.
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64

	edges  []edge
	active []int
	cover  []float32
	area   []float32

	bbox      rect.Rect
	bboxEmpty bool

	lines   polylines
	dashed  polylines
	pieces  []vec.Vec2
	bounds  []int
	scratch []vec.Vec2
}

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0, x1, y1 float64
	dxdy           float64
}

func (e *edge) top() float64    { return min(e.y0, e.y1) }
func (e *edge) bottom() float64 { return max(e.y0, e.y1) }

const (
	defaultFlatness   = 0.25
	defaultMiterLimit = 10.0

	// edges with a smaller vertical extent do not contribute coverage
	flatEdge = 1e-10

	// segments shorter than this are dropped by the stroker
	tinySegment = 1e-10
)

// NewRasterizer returns a Rasterizer for the given clip rectangle.  The
// other fields are set to the PDF defaults.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Work buffers are kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.Dash = nil
	r.DashPhase = 0
}

// Fill fills the interior of p.  With evenOdd set, the even-odd rule is
// used, otherwise the nonzero winding rule.  Every subpath is implicitly
// closed.
func (r *Rasterizer) Fill(p path.Path, evenOdd bool, emit Emitter) {
	r.startEdges()

	var start, cur vec.Vec2
	open := false
	closeSub := func() {
		if open && cur != start {
			r.addEdge(cur, start)
		}
		cur = start
	}
	line := func(a, b vec.Vec2) { r.addEdge(a, b) }
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			closeSub()
			start, cur = pts[0], pts[0]
			open = true
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			r.flattenQuad(cur, pts[0], pts[1], line)
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2], line)
			cur = pts[2]
		case path.CmdClose:
			closeSub()
			open = false
		}
	}
	closeSub()

	r.scan(evenOdd, emit)
}

// FillPolygon fills a single closed polygon given in path coordinates.
func (r *Rasterizer) FillPolygon(pts []vec.Vec2, evenOdd bool, emit Emitter) {
	r.startEdges()
	for i := range pts {
		r.addEdge(pts[i], pts[(i+1)%len(pts)])
	}
	r.scan(evenOdd, emit)
}

func (r *Rasterizer) startEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// apply maps a point to device space.
func (r *Rasterizer) apply(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// applyLinear maps a displacement to device space.
func (r *Rasterizer) applyLinear(v vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	p := r.apply(a)
	q := r.apply(b)

	if r.bboxEmpty {
		r.bbox = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
		r.bboxEmpty = false
	}
	r.bbox.LLx = min(r.bbox.LLx, p.X, q.X)
	r.bbox.URx = max(r.bbox.URx, p.X, q.X)
	r.bbox.LLy = min(r.bbox.LLy, p.Y, q.Y)
	r.bbox.URy = max(r.bbox.URy, p.Y, q.Y)

	dy := q.Y - p.Y
	if math.Abs(dy) < flatEdge {
		return
	}
	r.edges = append(r.edges, edge{
		x0: p.X, y0: p.Y, x1: q.X, y1: q.Y,
		dxdy: (q.X - p.X) / dy,
	})
}

// scan converts the collected edges into coverage, one scanline at a time.
func (r *Rasterizer) scan(evenOdd bool, emit Emitter) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bbox.LLx)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bbox.URx))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bbox.LLy)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bbox.URy))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top(), b.top())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		lo, hi := float64(y), float64(y+1)

		for next < len(r.edges) && r.edges[next].top() < hi {
			if r.edges[next].bottom() > lo {
				r.active = append(r.active, next)
			}
			next++
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.bottom() <= lo {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			if accumulate(e, lo, hi, r.cover, r.area, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		if evenOdd {
			integrateEvenOdd(r.cover, r.area)
		} else {
			integrateNonZero(r.cover, r.area)
		}
		if row, off := trim(r.cover); row != nil {
			emit(y, xMin+off, row)
		}
	}
}

// accumulate adds the contribution of e within the scanline [lo, hi) to
// the cover and area buffers, which are indexed by x-xMin.  Edge parts
// left of xMin are folded into the first column.  The return value
// reports whether anything was added.
func accumulate(e *edge, lo, hi float64, cover, area []float32, xMin, xMax int) bool {
	top := max(lo, e.top())
	bot := min(hi, e.bottom())
	if bot <= top {
		return false
	}
	sign := 1.0
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBot := e.x0 + e.dxdy*(bot-e.y0)
	left, right := min(xTop, xBot), max(xTop, xBot)
	colLeft := int(math.Floor(left))
	colRight := int(math.Floor(right))

	if colLeft >= xMax {
		return false
	}

	add := func(col int, y0, y1 float64) {
		h := y1 - y0
		if h <= 0 {
			return
		}
		c := sign * h
		if col < xMin {
			cover[0] += float32(c)
			area[0] += float32(c)
			return
		}
		if col >= xMax {
			return
		}
		xm := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		frac := xm - float64(col)
		cover[col-xMin] += float32(c)
		area[col-xMin] += float32(c * (1 - frac))
	}

	if colLeft == colRight {
		add(colLeft, top, bot)
		return true
	}

	// The edge crosses several columns.  Find the part of [top, bot)
	// inside each column.
	dydx := 1 / e.dxdy
	for col := colLeft; col <= colRight; col++ {
		ya := e.y0 + dydx*(float64(col)-e.x0)
		yb := e.y0 + dydx*(float64(col+1)-e.x0)
		add(col, max(min(ya, yb), top), min(max(ya, yb), bot))
	}
	return true
}

// integrateNonZero turns accumulated cover/area values into nonzero
// coverage, in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// integrateEvenOdd turns accumulated cover/area values into even-odd
// coverage, in place.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		v -= 2 * float32(int(v/2))
		if v > 1 {
			v = 2 - v
		}
		cover[i] = v
	}
}

// trim strips zero coverage from both ends of a row.
func trim(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return row[lo:hi], lo
}
