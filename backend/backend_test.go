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
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/font"
	"seehuhn.de/go/plot/surface"
)

// recorder is a surface which remembers all painting operations.
type recorder struct {
	ops    []paintOp
	closed int
}

type paintOp struct {
	kind   string // "fill", "stroke" or "image"
	pts    []vec.Vec2
	closed bool
	st     surface.State
	style  surface.StrokeStyle
	m      matrix.Matrix
}

func record(kind string, p *path.Data, st surface.State) paintOp {
	op := paintOp{kind: kind, pts: slices.Clone(p.Coords), st: st}
	op.closed = slices.Contains(p.Cmds, path.CmdClose)
	if st.Clip != nil {
		c := *st.Clip
		op.st.Clip = &c
	}
	return op
}

func (s *recorder) Fill(p *path.Data, evenOdd bool, st surface.State) error {
	s.ops = append(s.ops, record("fill", p, st))
	return nil
}

func (s *recorder) Stroke(p *path.Data, style surface.StrokeStyle, st surface.State) error {
	op := record("stroke", p, st)
	op.style = style
	op.style.Dash = slices.Clone(style.Dash)
	s.ops = append(s.ops, op)
	return nil
}

func (s *recorder) DrawImage(img image.Image, m matrix.Matrix, st surface.State) error {
	s.ops = append(s.ops, paintOp{kind: "image", m: m, st: st})
	return nil
}

func (s *recorder) Close() error {
	s.closed++
	return nil
}

func (s *recorder) kinds() []string {
	var res []string
	for _, op := range s.ops {
		res = append(res, op.kind)
	}
	return res
}

func bounds(pts []vec.Vec2) rect.Rect {
	r := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, p := range pts {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	return r
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPointsToPixels(t *testing.T) {
	tests := []struct {
		dpi, ppi, points, want float64
	}{
		{72, 96, 72, 96},
		{72, 72, 72, 72},
		{144, 72, 1, 2},
		{100, 96, 0, 0},
	}
	for _, tc := range tests {
		r := NewRenderer(nil, 10, 10, tc.dpi)
		r.PixelsPerInch = tc.ppi
		if got := r.PointsToPixels(tc.points); !near(got, tc.want) {
			t.Errorf("dpi %g, ppi %g: PointsToPixels(%g) = %g, want %g",
				tc.dpi, tc.ppi, tc.points, got, tc.want)
		}
	}
}

func TestYFlip(t *testing.T) {
	s := &recorder{}
	r := NewRenderer(s, 200, 100, 72)
	r.PixelsPerInch = 72
	gc := r.NewGC()
	gc.SetLineWidth(2)
	r.DrawLine(gc, 10, 10, 20, 30)

	if len(s.ops) != 1 || s.ops[0].kind != "stroke" {
		t.Fatalf("ops = %v", s.kinds())
	}
	want := []vec.Vec2{{X: 10, Y: 90}, {X: 20, Y: 70}}
	if !slices.Equal(s.ops[0].pts, want) {
		t.Errorf("points = %v, want %v", s.ops[0].pts, want)
	}
	if s.ops[0].style.Width != 2 {
		t.Errorf("width = %g, want 2", s.ops[0].style.Width)
	}
}

func TestDrawLines(t *testing.T) {
	s := &recorder{}
	r := NewRenderer(s, 100, 100, 72)
	gc := r.NewGC()

	err := r.DrawLines(gc, []float64{1, 2, 3}, []float64{1, 2})
	if !errors.Is(err, plot.ErrContractViolation) {
		t.Errorf("mismatched lengths: err = %v", err)
	}
	if len(s.ops) != 0 {
		t.Errorf("mismatched lengths painted %v", s.kinds())
	}

	if err := r.DrawLines(gc, nil, nil); err != nil || len(s.ops) != 0 {
		t.Errorf("empty polyline: err = %v, ops = %v", err, s.kinds())
	}

	if err := r.DrawLines(gc, []float64{0, 10, 20}, []float64{0, 10, 0}); err != nil {
		t.Fatal(err)
	}
	if len(s.ops) != 1 || len(s.ops[0].pts) != 3 || s.ops[0].closed {
		t.Errorf("polyline not stroked as an open path: %+v", s.ops)
	}
}

func TestFillAndStroke(t *testing.T) {
	s := &recorder{}
	r := NewRenderer(s, 100, 100, 72)
	gc := r.NewGC()
	face := plot.RGB(1, 0, 0)
	r.DrawRectangle(gc, &face, 10, 10, 30, 20)

	if got := s.kinds(); !slices.Equal(got, []string{"fill", "stroke"}) {
		t.Fatalf("ops = %v, want fill, stroke", got)
	}
	if s.ops[0].st.Color != face || s.ops[1].st.Color != plot.Black {
		t.Errorf("colors = %v, %v", s.ops[0].st.Color, s.ops[1].st.Color)
	}
	b := bounds(s.ops[0].pts)
	if b != (rect.Rect{LLx: 10, LLy: 70, URx: 40, URy: 90}) {
		t.Errorf("rectangle bounds = %v", b)
	}
	if !s.ops[0].closed {
		t.Error("rectangle path not closed")
	}

	// an explicit alpha applies to the face as well
	s.ops = nil
	gc.SetAlpha(0.5)
	r.DrawRectangle(gc, &face, 10, 10, 30, 20)
	if a := s.ops[0].st.Color.A; a != 0.5 {
		t.Errorf("face alpha = %g, want 0.5", a)
	}

	// no face, no stroke: nothing is painted
	s.ops = nil
	gc.SetLineWidth(0)
	r.DrawPolygon(gc, nil, []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})
	if len(s.ops) != 0 {
		t.Errorf("invisible polygon painted %v", s.kinds())
	}
}

func TestClip(t *testing.T) {
	s := &recorder{}
	r := NewRenderer(s, 100, 100, 72)
	gc := r.NewGC()
	gc.SetClipRectangle(&rect.Rect{LLx: 0, LLy: 0, URx: 50, URy: 20})
	r.DrawLine(gc, 0, 0, 100, 100)

	want := rect.Rect{LLx: 0, LLy: 80, URx: 50, URy: 100}
	if c := s.ops[0].st.Clip; c == nil || *c != want {
		t.Errorf("clip = %v, want %v", c, want)
	}

	// the clip does not leak into the next primitive
	r.DrawLine(r.NewGC(), 0, 0, 100, 100)
	if c := s.ops[1].st.Clip; c != nil {
		t.Errorf("clip after restore = %v", c)
	}
}

func TestDrawArc(t *testing.T) {
	s := &recorder{}
	r := NewRenderer(s, 100, 100, 72)
	gc := r.NewGC()
	face := plot.White
	r.DrawArc(gc, &face, 50, 50, 20, 10, 0, 360)

	if len(s.ops) != 2 {
		t.Fatalf("ops = %v", s.kinds())
	}
	if !s.ops[0].closed {
		t.Error("full ellipse not closed")
	}
	b := bounds(s.ops[0].pts)
	// control points of a circle approximation stay inside the box
	if b.LLx < 39.99 || b.URx > 60.01 || b.LLy < 44.99 || b.URy > 55.01 {
		t.Errorf("ellipse bounds = %v", b)
	}
	if !near(b.LLx, 40) || !near(b.URx, 60) {
		t.Errorf("ellipse does not reach its horizontal extremes: %v", b)
	}

	// the scaling must not affect the line width
	if w := s.ops[1].style.Width; !near(w, r.PointsToPixels(1)) {
		t.Errorf("line width = %g", w)
	}
}

func TestDrawPoint(t *testing.T) {
	s := &recorder{}
	r := NewRenderer(s, 100, 100, 72)
	r.DrawPoint(r.NewGC(), 10, 20)
	if len(s.ops) != 1 || s.ops[0].kind != "fill" {
		t.Fatalf("ops = %v", s.kinds())
	}
	b := bounds(s.ops[0].pts)
	if !near(b.LLx, 9.5) || !near(b.URx, 10.5) || !near(b.LLy, 79.5) || !near(b.URy, 80.5) {
		t.Errorf("point bounds = %v", b)
	}
}

func TestDrawText(t *testing.T) {
	s := &recorder{}
	r := NewRenderer(s, 200, 100, 72)
	r.PixelsPerInch = 72
	prop := font.Default()
	prop.Size = 20

	if err := r.DrawText(r.NewGC(), 10, 10, "Hello", prop, 0, false); err != nil {
		t.Fatal(err)
	}
	if len(s.ops) != 1 || s.ops[0].kind != "fill" {
		t.Fatalf("ops = %v", s.kinds())
	}
	b := bounds(s.ops[0].pts)
	if b.LLx < 10 || b.URy > 90.5 || b.LLy > 80 {
		t.Errorf("upright text bounds = %v", b)
	}
	w, _, err := r.TextExtent("Hello", prop, false)
	if err != nil {
		t.Fatal(err)
	}
	if b.URx > 10+w+0.5 {
		t.Errorf("text wider than its extent: %v, width %g", b, w)
	}

	// rotated by 90 degrees, the text runs upwards
	s.ops = nil
	if err := r.DrawText(r.NewGC(), 100, 10, "Hello", prop, 90, false); err != nil {
		t.Fatal(err)
	}
	b = bounds(s.ops[0].pts)
	if b.URx > 100.5 || b.URy > 90.5 || b.LLy > 90-w/2 || b.LLx > 90 {
		t.Errorf("rotated text bounds = %v", b)
	}
}

func TestDrawTextBadFont(t *testing.T) {
	s := &recorder{}
	r := NewRenderer(s, 100, 100, 72)
	prop := font.Default()
	prop.Weight = "fat"
	err := r.DrawText(r.NewGC(), 10, 10, "x", prop, 0, false)
	var fe *font.ValueError
	if !errors.As(err, &fe) {
		t.Errorf("err = %v, want *font.ValueError", err)
	}
	if len(s.ops) != 0 {
		t.Errorf("ops = %v", s.kinds())
	}
	if r.Err() != nil {
		t.Errorf("font errors must not be sticky: %v", r.Err())
	}
}

func TestTextExtent(t *testing.T) {
	r := NewRenderer(nil, 100, 100, 72)
	prop := font.Default()

	w1, h1, err := r.TextExtent("$x^2$", prop, true)
	if err != nil {
		t.Fatal(err)
	}
	w2, h2, err := r.TextExtent("x^2", prop, false)
	if err != nil {
		t.Fatal(err)
	}
	if w1 != w2 || h1 != h2 {
		t.Errorf("math text %gx%g, plain text %gx%g", w1, h1, w2, h2)
	}

	// the measurement agrees with the face used for painting
	face, err := selectFont(prop)
	if err != nil {
		t.Fatal(err)
	}
	ext, err := face.Extents("x^2", r.PointsToPixels(prop.Size))
	if err != nil {
		t.Fatal(err)
	}
	if ext.Width != w2 || ext.Height() != h2 {
		t.Errorf("extents %+v, TextExtent %g, %g", ext, w2, h2)
	}

	// larger fonts give larger extents
	prop.Size *= 2
	w3, _, _ := r.TextExtent("x^2", prop, false)
	if !near(w3, 2*w2) {
		t.Errorf("doubled size: width %g, want %g", w3, 2*w2)
	}
}

func TestDrawImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	tests := []struct {
		origin plot.Origin
		want   matrix.Matrix
	}{
		{plot.OriginUpper, matrix.Matrix{1, 0, 0, 1, 5, 10}},
		{plot.OriginLower, matrix.Matrix{1, 0, 0, -1, 5, 90}},
	}
	for _, tc := range tests {
		t.Run(tc.origin.String(), func(t *testing.T) {
			s := &recorder{}
			r := NewRenderer(s, 100, 100, 72)
			if err := r.DrawImage(5, 10, img, tc.origin, nil); err != nil {
				t.Fatal(err)
			}
			if len(s.ops) != 1 || s.ops[0].m != tc.want {
				t.Errorf("ops = %+v, want matrix %v", s.ops, tc.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in     string
		isMath bool
		want   string
	}{
		{"$x$", false, "$x$"},
		{"$x$", true, "x"},
		{`$\alpha$`, true, `\alpha`},
		{`costs \$5`, true, "costs $5"},
		{`a\`, true, `a\`},
	}
	for _, tc := range tests {
		if got := plainText(tc.in, tc.isMath); got != tc.want {
			t.Errorf("plainText(%q, %t) = %q, want %q", tc.in, tc.isMath, got, tc.want)
		}
	}
}
