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
	"github.com/go-gl/mathgl/mgl64"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/proj3d"
)

// Patch3D is a flat polygon embedded in 3D space.
type Patch3D struct {
	plot.Patch

	XS, YS, ZS []float64

	// Visible reports, after projection, which vertices lie inside the
	// visible volume.  All vertices are drawn regardless.
	Visible []bool

	buf proj3d.Buffer
}

// PatchTo3D embeds a 2D patch into 3D space.  The slice zs holds either
// one value for all vertices or one value per vertex.
func PatchTo3D(p *plot.Patch, zs []float64, zdir Zdir) (*Patch3D, error) {
	z, err := expand(zs, len(p.Verts))
	if err != nil {
		return nil, err
	}
	xs := make([]float64, len(p.Verts))
	ys := make([]float64, len(p.Verts))
	for i, v := range p.Verts {
		xs[i], ys[i] = v.X, v.Y
	}
	xs, ys, z = JuggleAxes(xs, ys, z, zdir)
	return &Patch3D{
		Patch: plot.Patch{Style: p.Style},
		XS:    xs,
		YS:    ys,
		ZS:    z,
	}, nil
}

// Do3DProjection projects the outline with M and returns the minimum
// depth.
func (p *Patch3D) Do3DProjection(M proj3d.Matrix) (float64, error) {
	if err := p.buf.TransformClipInto(p.XS, p.YS, p.ZS, M); err != nil {
		return 0, err
	}
	p.Verts = p.Verts[:0]
	for i := range p.buf.X {
		p.Verts = append(p.Verts, vec.Vec2{X: p.buf.X[i], Y: p.buf.Y[i]})
	}
	p.Visible = p.buf.Visible
	return minDepth(p.buf.Z), nil
}

func (p *Patch3D) setViewport(m matrix.Matrix) { p.Transform = m }

// Patch3DCollection draws markers at 3D positions.  Markers keep their
// size on screen.  Their face and edge colors fade with depth.
type Patch3DCollection struct {
	plot.PatchCollection

	XS, YS, ZS []float64

	// DepthShade is the strength of depth shading, see ZAlpha.
	DepthShade float64

	faces, edges []plot.Color
	buf          proj3d.Buffer
}

// PatchCollectionTo3D embeds a 2D marker collection into 3D space.  The
// slice zs holds either one value for all offsets or one value per offset.
// Colors given on the collection must have length 1 or one entry per
// offset.
func PatchCollectionTo3D(pc *plot.PatchCollection, zs []float64, zdir Zdir) (*Patch3DCollection, error) {
	n := len(pc.Offsets)
	z, err := expand(zs, n)
	if err != nil {
		return nil, err
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, v := range pc.Offsets {
		xs[i], ys[i] = v.X, v.Y
	}
	xs, ys, z = JuggleAxes(xs, ys, z, zdir)

	c := &Patch3DCollection{
		PatchCollection: plot.PatchCollection{
			Shape: pc.Shape,
			Size:  pc.Size,
			Style: pc.Style,
		},
		XS:         xs,
		YS:         ys,
		ZS:         z,
		DepthShade: DefaultDepthShade,
	}
	c.faces, c.edges, err = baseColors(pc.FaceColors, pc.EdgeColors, pc.Style, n)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// baseColors determines the per-primitive face and edge colors before
// depth shading.  Without a face color, faces is nil.
func baseColors(faceColors, edgeColors []plot.Color, style plot.Style, n int) (faces, edges []plot.Color, err error) {
	switch {
	case len(faceColors) > 0:
		faces, err = Colors(faceColors, n)
	case style.Face != nil:
		faces, err = Colors([]plot.Color{*style.Face}, n)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(edgeColors) > 0 {
		edges, err = Colors(edgeColors, n)
	} else {
		edges, err = Colors([]plot.Color{style.Edge}, n)
	}
	if err != nil {
		return nil, nil, err
	}
	return faces, edges, nil
}

// Do3DProjection projects the offsets with M, shades the colors by depth
// and returns the minimum depth.
func (c *Patch3DCollection) Do3DProjection(M proj3d.Matrix) (float64, error) {
	if err := c.buf.TransformClipInto(c.XS, c.YS, c.ZS, M); err != nil {
		return 0, err
	}
	c.Offsets = c.Offsets[:0]
	for i := range c.buf.X {
		c.Offsets = append(c.Offsets, vec.Vec2{X: c.buf.X[i], Y: c.buf.Y[i]})
	}

	var err error
	c.FaceColors = nil
	if c.faces != nil {
		c.FaceColors, err = ZAlpha(c.faces, c.buf.Z, c.DepthShade)
		if err != nil {
			return 0, err
		}
	}
	c.EdgeColors, err = ZAlpha(c.edges, c.buf.Z, c.DepthShade)
	if err != nil {
		return 0, err
	}
	return minDepth(c.buf.Z), nil
}

func (c *Patch3DCollection) setViewport(m matrix.Matrix) { c.Transform = m }

// Poly3DCollection is a set of flat polygons in 3D space.  On every
// projection the polygons are sorted by depth, so that the collection can
// be drawn with the painter's algorithm.
type Poly3DCollection struct {
	plot.PolyCollection

	// Sort determines the drawing order within the collection.
	Sort Compositor

	verts        mesh
	faces, edges []plot.Color

	depths []float64
}

// NewPoly3DCollection returns a collection of polygons.  The face colors
// must have length 1 or one entry per polygon.  An empty list gives
// unfilled polygons.
func NewPoly3DCollection(polys [][]mgl64.Vec3, faces []plot.Color) (*Poly3DCollection, error) {
	c := &Poly3DCollection{
		PolyCollection: plot.PolyCollection{Style: plot.DefaultStyle()},
		Sort:           DefaultCompositor,
	}
	for _, p := range polys {
		c.verts.addPoints(p)
	}
	var err error
	c.faces, c.edges, err = baseColors(faces, nil, c.Style, len(polys))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// PolyCollectionTo3D embeds a 2D polygon collection into 3D space.  The
// slice zs holds either one value for all polygons or one value per
// polygon.
func PolyCollectionTo3D(pc *plot.PolyCollection, zs []float64, zdir Zdir) (*Poly3DCollection, error) {
	n := len(pc.Verts)
	z, err := expand(zs, n)
	if err != nil {
		return nil, err
	}
	c := &Poly3DCollection{
		PolyCollection: plot.PolyCollection{Style: pc.Style},
		Sort:           DefaultCompositor,
	}
	for i, poly := range pc.Verts {
		xs, ys, zs := segmentTo3D(poly, z[i], zdir)
		c.verts.add(xs, ys, zs)
	}
	c.faces, c.edges, err = baseColors(pc.FaceColors, pc.EdgeColors, pc.Style, n)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Do3DProjection projects all polygons with M, sorts them by their
// minimum depth and returns the minimum depth over all vertices.
func (c *Poly3DCollection) Do3DProjection(M proj3d.Matrix) (float64, error) {
	segs, err := c.verts.project(M)
	if err != nil {
		return 0, err
	}

	n := c.verts.Len()
	c.depths = c.depths[:0]
	for i := range n {
		c.depths = append(c.depths, c.verts.depth(i))
	}
	order, err := c.Sort.Order(c.depths)
	if err != nil {
		return 0, err
	}

	c.Verts = c.Verts[:0]
	c.FaceColors = c.FaceColors[:0]
	c.EdgeColors = c.EdgeColors[:0]
	for _, i := range order {
		c.Verts = append(c.Verts, segs[i])
		if c.faces != nil {
			c.FaceColors = append(c.FaceColors, c.faces[i])
		}
		c.EdgeColors = append(c.EdgeColors, c.edges[i])
	}
	return minDepth(c.verts.buf.Z), nil
}

func (c *Poly3DCollection) setViewport(m matrix.Matrix) { c.Transform = m }
