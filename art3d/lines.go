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

package art3d

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/proj3d"
)

// Line3D is a polyline in 3D space.  The embedded Line2D holds the style
// and, after projection, the projected vertices.
type Line3D struct {
	plot.Line2D

	XS, YS, ZS []float64

	buf proj3d.Buffer
}

// NewLine3D returns a 3D line with the default style.
func NewLine3D(xs, ys, zs []float64) (*Line3D, error) {
	if err := plot.CheckLengths(len(xs), len(ys), len(zs)); err != nil {
		return nil, err
	}
	return &Line3D{
		Line2D: plot.Line2D{Style: plot.DefaultStyle()},
		XS:     slices.Clone(xs),
		YS:     slices.Clone(ys),
		ZS:     slices.Clone(zs),
	}, nil
}

// LineTo3D embeds a 2D line into 3D space.  The slice zs holds either one
// value for all vertices or one value per vertex.  The style of l is
// copied, l itself is not modified.
func LineTo3D(l *plot.Line2D, zs []float64, zdir Zdir) (*Line3D, error) {
	if err := plot.CheckLengths(len(l.X), len(l.Y)); err != nil {
		return nil, err
	}
	z, err := expand(zs, len(l.X))
	if err != nil {
		return nil, err
	}
	xs, ys, z := JuggleAxes(slices.Clone(l.X), slices.Clone(l.Y), z, zdir)
	return &Line3D{
		Line2D: plot.Line2D{Style: l.Style},
		XS:     xs,
		YS:     ys,
		ZS:     z,
	}, nil
}

// Do3DProjection projects the vertices with M and returns the minimum
// depth.
func (l *Line3D) Do3DProjection(M proj3d.Matrix) (float64, error) {
	if err := l.buf.TransformInto(l.XS, l.YS, l.ZS, M); err != nil {
		return 0, err
	}
	l.X = l.buf.X
	l.Y = l.buf.Y
	return minDepth(l.buf.Z), nil
}

func (l *Line3D) setViewport(m matrix.Matrix) { l.Transform = m }

// Line3DCollection is a set of 3D polylines sharing one style.
type Line3DCollection struct {
	plot.LineCollection

	verts mesh
}

// NewLine3DCollection returns a collection of 3D polylines with the
// default style.
func NewLine3DCollection(segments [][]mgl64.Vec3) *Line3DCollection {
	c := &Line3DCollection{
		LineCollection: plot.LineCollection{Style: plot.DefaultStyle()},
	}
	for _, seg := range segments {
		c.verts.addPoints(seg)
	}
	return c
}

// LineCollectionTo3D embeds a 2D line collection into 3D space.  The
// slice zs holds either one value for all segments or one value per
// segment.
func LineCollectionTo3D(lc *plot.LineCollection, zs []float64, zdir Zdir) (*Line3DCollection, error) {
	z, err := expand(zs, len(lc.Segments))
	if err != nil {
		return nil, err
	}
	var colors []plot.Color
	if len(lc.Colors) > 0 {
		colors, err = Colors(lc.Colors, len(lc.Segments))
		if err != nil {
			return nil, err
		}
	}
	c := &Line3DCollection{
		LineCollection: plot.LineCollection{
			Colors: colors,
			Style:  lc.Style,
		},
	}
	for i, seg := range lc.Segments {
		xs, ys, zs := segmentTo3D(seg, z[i], zdir)
		c.verts.add(xs, ys, zs)
	}
	return c, nil
}

// segmentTo3D places a flat segment at height z along zdir.
func segmentTo3D(seg []vec.Vec2, z float64, zdir Zdir) (xs, ys, zs []float64) {
	xs = make([]float64, len(seg))
	ys = make([]float64, len(seg))
	zs = make([]float64, len(seg))
	for i, p := range seg {
		xs[i], ys[i], zs[i] = p.X, p.Y, z
	}
	return JuggleAxes(xs, ys, zs, zdir)
}

// Do3DProjection projects all segments with M and returns the minimum
// depth over all vertices.
func (c *Line3DCollection) Do3DProjection(M proj3d.Matrix) (float64, error) {
	segs, err := c.verts.project(M)
	if err != nil {
		return 0, err
	}
	c.Segments = segs
	return minDepth(c.verts.buf.Z), nil
}

func (c *Line3DCollection) setViewport(m matrix.Matrix) { c.Transform = m }
