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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot/proj3d"
)

// mesh stores the vertices of many primitives in one set of coordinate
// slices.  Primitive i uses the vertices ranges[i][0] up to, but not
// including, ranges[i][1].
type mesh struct {
	X, Y, Z []float64
	ranges  [][2]int

	buf  proj3d.Buffer
	flat []vec.Vec2   // projected vertices, same layout as X, Y, Z
	segs [][]vec.Vec2 // one sub-slice of flat per primitive
}

func (m *mesh) add(xs, ys, zs []float64) {
	start := len(m.X)
	m.X = append(m.X, xs...)
	m.Y = append(m.Y, ys...)
	m.Z = append(m.Z, zs...)
	m.ranges = append(m.ranges, [2]int{start, len(m.X)})
}

func (m *mesh) addPoints(pts []mgl64.Vec3) {
	start := len(m.X)
	for _, p := range pts {
		m.X = append(m.X, p[0])
		m.Y = append(m.Y, p[1])
		m.Z = append(m.Z, p[2])
	}
	m.ranges = append(m.ranges, [2]int{start, len(m.X)})
}

// Len returns the number of primitives.
func (m *mesh) Len() int {
	return len(m.ranges)
}

// project transforms all vertices and updates the 2D segments.  The
// returned slices are valid until the next call.
func (m *mesh) project(M proj3d.Matrix) ([][]vec.Vec2, error) {
	if err := m.buf.TransformInto(m.X, m.Y, m.Z, M); err != nil {
		return nil, err
	}
	n := len(m.X)
	if cap(m.flat) < n {
		m.flat = make([]vec.Vec2, n)
	}
	m.flat = m.flat[:n]
	for i := range n {
		m.flat[i] = vec.Vec2{X: m.buf.X[i], Y: m.buf.Y[i]}
	}
	if cap(m.segs) < len(m.ranges) {
		m.segs = make([][]vec.Vec2, len(m.ranges))
	}
	m.segs = m.segs[:len(m.ranges)]
	for i, r := range m.ranges {
		m.segs[i] = m.flat[r[0]:r[1]:r[1]]
	}
	return m.segs, nil
}

// depth returns the minimum projected depth of primitive i.  This must be
// called after project.
func (m *mesh) depth(i int) float64 {
	r := m.ranges[i]
	return minDepth(m.buf.Z[r[0]:r[1]])
}
