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

// Package art3d turns flat artists into 3D artists and draws them in depth
// order.
//
// A 3D artist embeds its flat counterpart from package plot and adds 3D
// vertex data.  Flat artists are promoted explicitly, using the functions
// LineTo3D, PatchTo3D and so on; there is no way back.  On every draw the
// vertices are projected again with the current projection matrix, the
// results are written into the embedded flat artist, and the flat artist
// draws itself.
//
// Projected coordinates are normalized device coordinates.  A [Scene]
// maps them to device pixels using its viewport.
package art3d

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/proj3d"
)

// Artist3D is an artist which must be projected before it is drawn.
type Artist3D interface {
	plot.Artist

	// Do3DProjection projects the artist with M and returns its depth,
	// used for ordering the artists of a scene.  Larger values are
	// further away.
	Do3DProjection(M proj3d.Matrix) (float64, error)
}

// viewporter is implemented by the artists of this package.  The scene
// hands its viewport to them before projection.
type viewporter interface {
	setViewport(m matrix.Matrix)
}

// Viewport returns the matrix which maps the square [-1, 1]^2 onto the
// rectangle with lower left corner (x, y) and the given size.
func Viewport(x, y, width, height float64) matrix.Matrix {
	return matrix.Matrix{width / 2, 0, 0, height / 2, x + width/2, y + height/2}
}

// Scene is a set of 3D artists seen with one projection.  Scene implements
// plot.Artist, so it can be added to a figure.
type Scene struct {
	Compositor Compositor
	Viewport   matrix.Matrix
	Artists    []Artist3D

	m proj3d.Matrix
}

// NewScene returns an empty scene sorted back to front.
func NewScene(m proj3d.Matrix, viewport matrix.Matrix) *Scene {
	return &Scene{
		Compositor: DefaultCompositor,
		Viewport:   viewport,
		m:          m,
	}
}

// SetProjection replaces the projection matrix.
func (s *Scene) SetProjection(m proj3d.Matrix) {
	s.m = m
}

// Projection returns the current projection matrix.
func (s *Scene) Projection() proj3d.Matrix {
	return s.m
}

// Add appends artists to the scene.
func (s *Scene) Add(a ...Artist3D) {
	s.Artists = append(s.Artists, a...)
}

// Draw projects all artists, sorts them by depth and draws them.
func (s *Scene) Draw(r plot.Renderer) error {
	depths := make([]float64, len(s.Artists))
	for i, a := range s.Artists {
		if v, ok := a.(viewporter); ok {
			v.setViewport(s.Viewport)
		}
		d, err := a.Do3DProjection(s.m)
		if err != nil {
			return fmt.Errorf("projecting artist %d (%T): %w", i, a, err)
		}
		depths[i] = d
	}

	order, err := s.Compositor.Order(depths)
	if err != nil {
		return err
	}
	plot.Logger().Debug("projected scene", "artists", len(s.Artists))

	for _, i := range order {
		if err := s.Artists[i].Draw(r); err != nil {
			return fmt.Errorf("drawing artist %d (%T): %w", i, s.Artists[i], err)
		}
	}
	return nil
}
