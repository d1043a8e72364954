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

// Command plotdemo renders a 3D surface plot.
//
// The output format is chosen by the file name extension:
//
//	plotdemo -o surface.pdf -elev 20 -azim -45
//
// Defaults are read from the PLOT_* environment variables, see package
// config.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/art3d"
	"seehuhn.de/go/plot/backend"
	"seehuhn.de/go/plot/config"
	"seehuhn.de/go/plot/proj3d"
)

func main() {
	var (
		output  = flag.String("o", "plotdemo.png", "output file")
		elev    = flag.Float64("elev", 30, "camera elevation in degrees")
		azim    = flag.Float64("azim", -60, "camera azimuth in degrees")
		fov     = flag.Float64("fov", 25, "vertical field of view in degrees, 0 for a parallel projection")
		dpi     = flag.Float64("dpi", 0, "resolution of raster output, 0 for the configured default")
		verbose = flag.Bool("v", false, "log debug messages")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "plotdemo:", err)
		os.Exit(2)
	}
	level, _ := cfg.Level()
	if *verbose {
		level = slog.LevelDebug
	}
	plot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cam := proj3d.Camera{Elev: *elev, Azim: *azim, Dist: 10, FovY: *fov}
	fig, err := demoFigure(cam, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "plotdemo:", err)
		os.Exit(1)
	}
	canvas := backend.NewCanvas(fig, cfg)
	if err := canvas.PrintFigure(*output, &backend.PrintOptions{DPI: *dpi}); err != nil {
		fmt.Fprintln(os.Stderr, "plotdemo:", err)
		os.Exit(1)
	}
}

// surfaceZ is the function shown by the demo.
func surfaceZ(x, y float64) float64 {
	return 0.8 * math.Sin(2*x) * math.Cos(1.5*y)
}

var bounds = proj3d.Bounds{
	XMin: -1.5, XMax: 1.5,
	YMin: -1.5, YMax: 1.5,
	ZMin: -1, ZMax: 1,
}

// demoFigure builds a figure showing a surface, a bounding box, a scatter
// of points on a helix and axis labels.
func demoFigure(cam proj3d.Camera, cfg *config.Config) (*plot.Figure, error) {
	low, err := plot.ParseColor("steelblue")
	if err != nil {
		return nil, err
	}
	high, err := plot.ParseColor("gold")
	if err != nil {
		return nil, err
	}

	scene := art3d.NewScene(cam.Matrix(bounds), art3d.Viewport(0, 0, 1, 1))

	surf, err := surfacePatches(low, high)
	if err != nil {
		return nil, err
	}
	scene.Add(surf)
	scene.Add(boxEdges())

	points, err := helix(cfg.DepthShade)
	if err != nil {
		return nil, err
	}
	scene.Add(points)

	for _, l := range []struct {
		s       string
		x, y, z float64
		dir     art3d.Zdir
	}{
		{"x", bounds.XMax + 0.3, bounds.YMin, bounds.ZMin, art3d.ZdirX},
		{"y", bounds.XMax, bounds.YMax + 0.3, bounds.ZMin, art3d.ZdirY},
		{"z", bounds.XMin, bounds.YMin, bounds.ZMax + 0.2, art3d.ZdirNone},
	} {
		t := art3d.NewText3D(l.x, l.y, l.z, l.s, l.dir)
		t.HAlign = plot.AlignCenter
		t.VAlign = plot.AlignMiddle
		t.Font.Size = 12
		scene.Add(t)
	}

	title := plot.NewText(0, 0, "$z = 0.8 \\sin(2x) \\cos(1.5y)$")
	title.IsMath = true
	title.HAlign = plot.AlignCenter
	title.VAlign = plot.AlignTop
	title.Font.Size = 14

	fig := plot.NewFigure(6, 4.5, cfg.DPI)
	fig.Add(&layout{scene: scene, title: title})
	return fig, nil
}

// layout places the scene and the title relative to the canvas size, so
// that the figure can be drawn at any resolution.
type layout struct {
	scene *art3d.Scene
	title *plot.Text
}

func (l *layout) Draw(r plot.Renderer) error {
	w, h := r.Size()
	margin := r.PointsToPixels(30)
	side := max(min(w, h-margin)-margin, 1)
	l.scene.Viewport = art3d.Viewport((w-side)/2, (h-margin-side)/2, side, side)
	if err := l.scene.Draw(r); err != nil {
		return err
	}
	l.title.X, l.title.Y = w/2, h-r.PointsToPixels(8)
	return l.title.Draw(r)
}

// surfacePatches returns the surface as a grid of quadrilaterals, colored
// by height.
func surfacePatches(low, high plot.Color) (*art3d.Poly3DCollection, error) {
	const n = 16
	dx := (bounds.XMax - bounds.XMin) / n
	dy := (bounds.YMax - bounds.YMin) / n
	var polys [][]mgl64.Vec3
	var faces []plot.Color
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x0, y0 := bounds.XMin+float64(i)*dx, bounds.YMin+float64(j)*dy
			x1, y1 := x0+dx, y0+dy
			quad := []mgl64.Vec3{
				{x0, y0, surfaceZ(x0, y0)},
				{x1, y0, surfaceZ(x1, y0)},
				{x1, y1, surfaceZ(x1, y1)},
				{x0, y1, surfaceZ(x0, y1)},
			}
			polys = append(polys, quad)
			t := (surfaceZ(x0+dx/2, y0+dy/2) - bounds.ZMin) / (bounds.ZMax - bounds.ZMin)
			faces = append(faces, lerp(low, high, t))
		}
	}
	c, err := art3d.NewPoly3DCollection(polys, faces)
	if err != nil {
		return nil, err
	}
	c.Style.Edge = plot.RGB(0.2, 0.2, 0.2).WithAlpha(0.6)
	c.Style.LineWidth = 0.3
	return c, nil
}

func lerp(a, b plot.Color, t float64) plot.Color {
	t = min(max(t, 0), 1)
	return plot.Color{
		R: a.R + t*(b.R-a.R),
		G: a.G + t*(b.G-a.G),
		B: a.B + t*(b.B-a.B),
		A: a.A + t*(b.A-a.A),
	}
}

// boxEdges returns the twelve edges of the bounding box.
func boxEdges() *art3d.Line3DCollection {
	xs := [2]float64{bounds.XMin, bounds.XMax}
	ys := [2]float64{bounds.YMin, bounds.YMax}
	zs := [2]float64{bounds.ZMin, bounds.ZMax}
	var segs [][]mgl64.Vec3
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			segs = append(segs,
				[]mgl64.Vec3{{xs[0], ys[a], zs[b]}, {xs[1], ys[a], zs[b]}},
				[]mgl64.Vec3{{xs[a], ys[0], zs[b]}, {xs[a], ys[1], zs[b]}},
				[]mgl64.Vec3{{xs[a], ys[b], zs[0]}, {xs[a], ys[b], zs[1]}},
			)
		}
	}
	c := art3d.NewLine3DCollection(segs)
	c.Style.Edge = plot.RGB(0.5, 0.5, 0.5)
	c.Style.LineWidth = 0.8
	c.Style.Dashes = []float64{4, 2}
	return c
}

// helix returns a depth shaded scatter of points on a helix.
func helix(depthShade float64) (*art3d.Patch3DCollection, error) {
	const n = 40
	pc := &plot.PatchCollection{Size: 5, Style: plot.DefaultStyle()}
	zs := make([]float64, n)
	for i := range n {
		t := float64(i) / (n - 1)
		phi := 4 * math.Pi * t
		pc.Offsets = append(pc.Offsets, vec.Vec2{X: 1.2 * math.Cos(phi), Y: 1.2 * math.Sin(phi)})
		zs[i] = -0.9 + 1.8*t
	}
	red := plot.RGB(0.8, 0.1, 0.1)
	pc.Style.Face = &red
	pc.Style.Edge = plot.RGB(0.4, 0, 0)
	pc.Style.LineWidth = 0.5

	c, err := art3d.PatchCollectionTo3D(pc, zs, art3d.ZdirZ)
	if err != nil {
		return nil, err
	}
	c.DepthShade = depthShade
	return c, nil
}
