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
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// grid collects emitted coverage into a w×h buffer.
type grid struct {
	w, h int
	pix  []float32
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, pix: make([]float32, w*h)}
}

func (g *grid) emit(y, xMin int, cov []float32) {
	for i, c := range cov {
		g.pix[y*g.w+xMin+i] = c
	}
}

func (g *grid) at(x, y int) float32 { return g.pix[y*g.w+x] }

func (g *grid) sum() float64 {
	var s float64
	for _, c := range g.pix {
		s += float64(c)
	}
	return s
}

func box(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

// The triangle (0,0)→(10,0)→(10,1) has the diagonal edge y = x/10, so
// pixel x has coverage (2x+1)/20.
func TestTriangleCoverage(t *testing.T) {
	tri := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	g := newGrid(10, 1)
	r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
	r.Fill(tri.Iter(), false, g.emit)

	for x := range 10 {
		want := float32(2*x+1) / 20
		if got := g.at(x, 0); math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("pixel %d: got %.4f, want %.4f", x, got, want)
		}
	}
}

func TestFillRules(t *testing.T) {
	// two nested squares with the same orientation
	p := box(0, 0, 10, 10)
	p.MoveTo(vec.Vec2{X: 3, Y: 3}).
		LineTo(vec.Vec2{X: 7, Y: 3}).
		LineTo(vec.Vec2{X: 7, Y: 7}).
		LineTo(vec.Vec2{X: 3, Y: 7}).
		Close()

	cases := []struct {
		name    string
		evenOdd bool
		area    float64
		center  float32
	}{
		{"nonzero", false, 100, 1},
		{"evenodd", true, 84, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(10, 10)
			r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
			r.Fill(p.Iter(), tc.evenOdd, g.emit)
			if got := g.sum(); math.Abs(got-tc.area) > 1e-4 {
				t.Errorf("area: got %g, want %g", got, tc.area)
			}
			if got := g.at(5, 5); got != tc.center {
				t.Errorf("centre pixel: got %g, want %g", got, tc.center)
			}
		})
	}
}

func TestClip(t *testing.T) {
	g := newGrid(10, 10)
	r := NewRasterizer(rect.Rect{LLx: 2, LLy: 2, URx: 5, URy: 6})
	r.Fill(box(-5, -5, 20, 20).Iter(), false, g.emit)

	if got := g.sum(); got != 12 {
		t.Errorf("area: got %g, want 12", got)
	}
	if g.at(1, 3) != 0 || g.at(5, 3) != 0 || g.at(3, 6) != 0 {
		t.Error("coverage outside the clip rectangle")
	}
}

func TestFillCTM(t *testing.T) {
	g := newGrid(10, 10)
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.CTM = matrix.Scale(2, 2)
	r.Fill(box(1, 1, 3, 2).Iter(), false, g.emit)

	if got := g.sum(); math.Abs(got-8) > 1e-4 {
		t.Errorf("area: got %g, want 8", got)
	}
	if g.at(2, 2) != 1 || g.at(5, 3) != 1 || g.at(6, 3) != 0 {
		t.Error("wrong pixels covered")
	}
}

func TestStrokeCaps(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 5}).
		LineTo(vec.Vec2{X: 15, Y: 5})

	cases := []struct {
		cap  graphics.LineCapStyle
		area float64
		tol  float64
	}{
		{graphics.LineCapButt, 20, 1e-4},
		{graphics.LineCapSquare, 24, 1e-4},
		{graphics.LineCapRound, 20 + math.Pi, 0.02},
	}
	for _, tc := range cases {
		t.Run(tc.cap.String(), func(t *testing.T) {
			g := newGrid(20, 10)
			r := NewRasterizer(rect.Rect{URx: 20, URy: 10})
			r.Flatness = 0.001
			r.Width = 2
			r.Cap = tc.cap
			r.Stroke(line.Iter(), g.emit)

			if got := g.sum(); math.Abs(got-tc.area) > tc.tol {
				t.Errorf("area: got %g, want %g", got, tc.area)
			}
		})
	}
}

func TestStrokeJoins(t *testing.T) {
	corner := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 12, Y: 2}).
		LineTo(vec.Vec2{X: 12, Y: 12})

	cases := []struct {
		name  string
		join  graphics.LineJoinStyle
		limit float64
		area  float64
		tol   float64
	}{
		{"miter", graphics.LineJoinMiter, 10, 40, 1e-4},
		{"miter_limited", graphics.LineJoinMiter, 1.2, 39.5, 1e-4},
		{"bevel", graphics.LineJoinBevel, 10, 39.5, 1e-4},
		{"round", graphics.LineJoinRound, 10, 39 + math.Pi/4, 0.02},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(15, 15)
			r := NewRasterizer(rect.Rect{URx: 15, URy: 15})
			r.Flatness = 0.001
			r.Width = 2
			r.Join = tc.join
			r.MiterLimit = tc.limit
			r.Stroke(corner.Iter(), g.emit)

			if got := g.sum(); math.Abs(got-tc.area) > tc.tol {
				t.Errorf("area: got %g, want %g", got, tc.area)
			}
		})
	}
}

func TestStrokeClosed(t *testing.T) {
	g := newGrid(20, 20)
	r := NewRasterizer(rect.Rect{URx: 20, URy: 20})
	r.Width = 2
	r.Stroke(box(5, 5, 15, 15).Iter(), g.emit)

	// outer 12×12 square minus inner 8×8 square
	if got := g.sum(); math.Abs(got-80) > 1e-4 {
		t.Errorf("area: got %g, want 80", got)
	}
	if g.at(10, 10) != 0 {
		t.Error("interior of the outline is painted")
	}
}

func TestDash(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 5}).
		LineTo(vec.Vec2{X: 12, Y: 5})

	cases := []struct {
		name  string
		dash  []float64
		phase float64
		cap   graphics.LineCapStyle
		area  float64
		tol   float64
	}{
		{"even", []float64{2, 2}, 0, graphics.LineCapButt, 12, 1e-4},
		{"phase", []float64{2, 2}, 1, graphics.LineCapButt, 10, 1e-4},
		{"negative_phase", []float64{2, 2}, -3, graphics.LineCapButt, 10, 1e-4},
		{"odd", []float64{3}, 0, graphics.LineCapButt, 12, 1e-4},
		{"dots", []float64{0, 4}, 0, graphics.LineCapRound, 3 * math.Pi, 0.03},
		{"zero_total", []float64{0, 0}, 0, graphics.LineCapButt, 20, 1e-4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(15, 10)
			r := NewRasterizer(rect.Rect{URx: 15, URy: 10})
			r.Flatness = 0.001
			r.Width = 2
			r.Cap = tc.cap
			r.Dash = tc.dash
			r.DashPhase = tc.phase
			r.Stroke(line.Iter(), g.emit)

			if got := g.sum(); math.Abs(got-tc.area) > tc.tol {
				t.Errorf("area: got %g, want %g", got, tc.area)
			}
		})
	}
}

func TestDashClosedMerge(t *testing.T) {
	// The square has perimeter 40.  With pattern [6, 4] and phase 3 the
	// dash through the start point runs from 37 to 43.
	g := newGrid(20, 20)
	r := NewRasterizer(rect.Rect{URx: 20, URy: 20})
	r.Width = 2
	r.Dash = []float64{6, 4}
	r.DashPhase = 3
	r.Stroke(box(5, 5, 15, 15).Iter(), g.emit)

	// The merged dash turns the corner at (5, 5) with a miter join, so
	// the outer corner pixel is painted.
	if got := g.at(4, 4); got != 1 {
		t.Errorf("corner pixel: got %g, want 1", got)
	}
}

func TestFillPolygon(t *testing.T) {
	g := newGrid(10, 10)
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	pts := []vec.Vec2{{X: 1, Y: 1}, {X: 9, Y: 1}, {X: 9, Y: 9}, {X: 1, Y: 9}}
	r.FillPolygon(pts, false, g.emit)
	if got := g.sum(); math.Abs(got-64) > 1e-4 {
		t.Errorf("area: got %g, want 64", got)
	}
}

func TestEmptyPath(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	called := false
	emit := func(int, int, []float32) { called = true }

	r.Fill((&path.Data{}).Iter(), false, emit)
	r.Stroke((&path.Data{}).MoveTo(vec.Vec2{X: 1, Y: 1}).Iter(), emit)
	if called {
		t.Error("empty path produced coverage")
	}
}
