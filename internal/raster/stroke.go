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
	"seehuhn.de/go/pdf/graphics"
)

// Stroke paints the outline of p using Width, Cap, Join, MiterLimit, Dash
// and DashPhase.
//
// Every segment body, join and cap becomes its own counter-clockwise
// polygon.  Filling all of them together with the nonzero rule gives
// their union, so overlapping parts are painted only once.
func (r *Rasterizer) Stroke(p path.Path, emit Emitter) {
	r.flatten(p)
	lines := &r.lines
	if len(r.Dash) > 0 && r.applyDash() {
		lines = &r.dashed
	}

	r.pieces = r.pieces[:0]
	r.bounds = r.bounds[:0]
	d := r.Width / 2
	for i, sp := range lines.subs {
		r.strokePolyline(lines.vertices(i), sp.closed, sp.dir, d)
	}

	r.startEdges()
	for i, start := range r.bounds {
		end := len(r.pieces)
		if i+1 < len(r.bounds) {
			end = r.bounds[i+1]
		}
		poly := r.pieces[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.scan(false, emit)
}

func (r *Rasterizer) strokePolyline(pts []vec.Vec2, closed bool, dir vec.Vec2, d float64) {
	n := len(pts)
	if n == 0 {
		return
	}
	if n == 1 {
		switch r.Cap {
		case graphics.LineCapRound:
			r.disc(pts[0], d)
		case graphics.LineCapSquare:
			if dir != (vec.Vec2{}) {
				r.squareCap(pts[0].Sub(dir.Mul(d)), dir, d)
			}
		}
		return
	}

	segs := n - 1
	if closed {
		segs = n
	}
	for i := range segs {
		a, b := pts[i], pts[(i+1)%n]
		nrm := b.Sub(a).Normalize().Rot90().Mul(d)
		r.piece(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
	}

	for i := range n {
		if !closed && (i == 0 || i == n-1) {
			continue
		}
		prev := pts[(i+n-1)%n]
		next := pts[(i+1)%n]
		r.join(pts[i], pts[i].Sub(prev).Normalize(), next.Sub(pts[i]).Normalize(), d)
	}

	if !closed {
		r.cap(pts[0], pts[0].Sub(pts[1]).Normalize(), d)
		r.cap(pts[n-1], pts[n-1].Sub(pts[n-2]).Normalize(), d)
	}
}

// join adds the corner piece at p, where the direction changes from t1 to
// t2.  The piece lies on the outer side of the turn.
func (r *Rasterizer) join(p, t1, t2 vec.Vec2, d float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	cos := t1.Dot(t2)
	if math.Abs(cross) < 1e-9 && cos > 0 {
		return
	}
	if r.Join == graphics.LineJoinRound {
		r.disc(p, d)
		return
	}

	s := 1.0
	if cross > 0 {
		s = -1
	}
	a := p.Add(t1.Rot90().Mul(s * d))
	b := p.Add(t2.Rot90().Mul(s * d))

	if r.Join == graphics.LineJoinMiter {
		// the miter length relative to the line width is 1/sin(phi/2),
		// where phi is the angle between the two segments
		sinHalf := math.Sqrt((1 + cos) / 2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+1e-10 {
			bis := a.Sub(p).Add(b.Sub(p))
			if l := bis.Length(); l > tinySegment {
				tip := p.Add(bis.Mul(d / (sinHalf * l)))
				r.piece(p, a, tip, b)
				return
			}
		}
	}
	r.piece(p, a, b)
}

// cap adds the line cap at the end point p.  The vector t points away
// from the line.
func (r *Rasterizer) cap(p, t vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.disc(p, d)
	case graphics.LineCapSquare:
		r.squareCap(p, t, d)
	}
}

// squareCap adds the rectangle of depth d which extends the line beyond p
// in direction t.
func (r *Rasterizer) squareCap(p, t vec.Vec2, d float64) {
	nrm := t.Rot90().Mul(d)
	ext := t.Mul(d)
	r.piece(p.Add(nrm), p.Add(nrm).Add(ext), p.Sub(nrm).Add(ext), p.Sub(nrm))
}

// disc adds a circle polygon with enough vertices to keep the device space
// error below r.Flatness.
func (r *Rasterizer) disc(c vec.Vec2, radius float64) {
	devR := max(
		r.applyLinear(vec.Vec2{X: radius}).Length(),
		r.applyLinear(vec.Vec2{Y: radius}).Length())
	n := 8
	if devR > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devR)
		if step > 0 && !math.IsNaN(step) {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}

	start := len(r.pieces)
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.pieces = append(r.pieces, vec.Vec2{
			X: c.X + radius*math.Cos(phi),
			Y: c.Y + radius*math.Sin(phi),
		})
	}
	r.bounds = append(r.bounds, start)
}

// piece adds one polygon of the stroke outline, oriented counter-clockwise.
func (r *Rasterizer) piece(pts ...vec.Vec2) {
	start := len(r.pieces)
	r.pieces = append(r.pieces, pts...)
	poly := r.pieces[start:]
	if signedArea(poly) < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	r.bounds = append(r.bounds, start)
}

func signedArea(poly []vec.Vec2) float64 {
	var a float64
	for i := range poly {
		p, q := poly[i], poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}
