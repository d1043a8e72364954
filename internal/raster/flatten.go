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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// flattenQuad replaces a quadratic Bézier curve by line segments.  The
// number of segments is chosen so that the device space error stays below
// r.Flatness.
func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2, line func(a, b vec.Vec2)) {
	dev := r.applyLinear(p0.Sub(p1.Mul(2)).Add(p2)).Length() / 4
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		line(prev, q)
		prev = q
	}
}

// flattenCubic replaces a cubic Bézier curve by line segments, using
// Wang's bound for the number of segments.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, line func(a, b vec.Vec2)) {
	d1 := r.applyLinear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.applyLinear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(3*m/(4*r.Flatness)))))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		line(prev, q)
		prev = q
	}
}

// polylines stores flattened subpaths in one contiguous vertex buffer.
type polylines struct {
	pts  []vec.Vec2
	subs []subpath
}

type subpath struct {
	start, end int // range in pts
	closed     bool
	dir        vec.Vec2 // orientation of single-point subpaths created by dashing
}

func (pl *polylines) reset() {
	pl.pts = pl.pts[:0]
	pl.subs = pl.subs[:0]
}

func (pl *polylines) begin(p, dir vec.Vec2) {
	pl.subs = append(pl.subs, subpath{start: len(pl.pts), end: len(pl.pts), dir: dir})
	pl.push(p)
}

// push appends a vertex to the current subpath, dropping repeated points.
func (pl *polylines) push(p vec.Vec2) {
	sp := &pl.subs[len(pl.subs)-1]
	if sp.end > sp.start && pl.pts[sp.end-1].Sub(p).Length() < tinySegment {
		return
	}
	pl.pts = append(pl.pts, p)
	sp.end = len(pl.pts)
}

func (pl *polylines) closeSub() {
	sp := &pl.subs[len(pl.subs)-1]
	if sp.end-sp.start > 2 && pl.pts[sp.start].Sub(pl.pts[sp.end-1]).Length() < tinySegment {
		pl.pts = pl.pts[:sp.end-1]
		sp.end--
	}
	sp.closed = true
}

func (pl *polylines) vertices(i int) []vec.Vec2 {
	sp := pl.subs[i]
	return pl.pts[sp.start:sp.end]
}

// flatten walks p and stores its subpaths as polylines in r.lines.
// A subpath consisting of a lone MoveTo is dropped, but a MoveTo followed
// by drawing operators which do not move is kept as a single point.
func (r *Rasterizer) flatten(p path.Path) {
	pl := &r.lines
	pl.reset()

	var cur vec.Vec2
	var start vec.Vec2
	pending := false // MoveTo seen but no drawing operator yet
	inSub := false
	ensure := func() {
		if pending {
			pl.begin(start, vec.Vec2{})
			pending = false
			inSub = true
		}
	}
	line := func(_, b vec.Vec2) { pl.push(b) }

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			start, cur = pts[0], pts[0]
			pending, inSub = true, false
		case path.CmdLineTo:
			ensure()
			if inSub {
				pl.push(pts[0])
			}
			cur = pts[0]
		case path.CmdQuadTo:
			ensure()
			if inSub {
				r.flattenQuad(cur, pts[0], pts[1], line)
			}
			cur = pts[1]
		case path.CmdCubeTo:
			ensure()
			if inSub {
				r.flattenCubic(cur, pts[0], pts[1], pts[2], line)
			}
			cur = pts[2]
		case path.CmdClose:
			ensure()
			if inSub {
				pl.closeSub()
			}
			cur = start
			pending, inSub = true, false
		}
	}
}
