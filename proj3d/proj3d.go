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

// Package proj3d projects 3D coordinates onto the 2D plane.
//
// A projection is given by a 4x4 matrix M acting on homogeneous
// coordinates (x, y, z, 1).  The result is divided by the homogeneous
// coordinate w, which gives normalized device coordinates: x and y are the
// position in the image plane and z is the depth, with larger values
// further away from the viewer.  The visible volume is the cube [-1, 1]^3.
//
// Points for which w is (almost) zero cannot be divided.  For these points
// the undivided coordinates are returned and the point is reported as
// invisible.  None of the functions in this package modify the matrix.
package proj3d

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"seehuhn.de/go/plot"
)

// Matrix is a projective transformation of 3D space.
type Matrix = mgl64.Mat4

// WEpsilon is the smallest absolute value of the homogeneous coordinate w
// for which the division by w is carried out.
const WEpsilon = 1e-12

// ErrSingularMatrix is returned by InvTransform if the matrix cannot be
// inverted.
var ErrSingularMatrix = errors.New("proj3d: singular matrix")

// project applies m to the point (x, y, z).  If w is too close to zero,
// the undivided coordinates are returned together with ok == false.
func project(m *Matrix, x, y, z float64) (px, py, pz, w float64, ok bool) {
	v := m.Mul4x1(mgl64.Vec4{x, y, z, 1})
	w = v[3]
	if math.Abs(w) < WEpsilon {
		return v[0], v[1], v[2], w, false
	}
	return v[0] / w, v[1] / w, v[2] / w, w, true
}

// clipped reports whether a projected point lies inside the visible volume.
func clipped(px, py, pz, w float64, ok bool) bool {
	return ok && w > 0 &&
		math.Abs(px) <= 1 && math.Abs(py) <= 1 && math.Abs(pz) <= 1
}

// Transform applies M to the points (xs[i], ys[i], zs[i]) and returns the
// projected coordinates.  If the slices have different lengths, an error
// wrapping plot.ErrMismatchedVertices is returned.
func Transform(xs, ys, zs []float64, M Matrix) (txs, tys, tzs []float64, err error) {
	var b Buffer
	if err := b.TransformInto(xs, ys, zs, M); err != nil {
		return nil, nil, nil, err
	}
	return b.X, b.Y, b.Z, nil
}

// TransformClip is like Transform, but additionally reports for every
// point whether it lies inside the visible volume.
func TransformClip(xs, ys, zs []float64, M Matrix) (txs, tys, tzs []float64, vis []bool, err error) {
	var b Buffer
	if err := b.TransformClipInto(xs, ys, zs, M); err != nil {
		return nil, nil, nil, nil, err
	}
	return b.X, b.Y, b.Z, b.Visible, nil
}

// TransformPoints applies M to a list of points.
func TransformPoints(pts []mgl64.Vec3, M Matrix) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(pts))
	for i, p := range pts {
		x, y, z, _, _ := project(&M, p[0], p[1], p[2])
		out[i] = mgl64.Vec3{x, y, z}
	}
	return out
}

// InvTransform applies the inverse of M.  This maps projected coordinates
// back to the original space.
func InvTransform(xs, ys, zs []float64, M Matrix) (txs, tys, tzs []float64, err error) {
	det := M.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return nil, nil, nil, ErrSingularMatrix
	}
	return Transform(xs, ys, zs, M.Inv())
}

// Buffer holds the output of a projection.  The slices are reused by
// subsequent calls, so that repeated projections of the same number of
// points do not allocate.
type Buffer struct {
	X, Y, Z []float64

	// Visible is only set by TransformClipInto.
	Visible []bool
}

func (b *Buffer) resize(n int) {
	b.X = grow(b.X, n)
	b.Y = grow(b.Y, n)
	b.Z = grow(b.Z, n)
}

func grow[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}

// TransformInto projects the points into b.
func (b *Buffer) TransformInto(xs, ys, zs []float64, M Matrix) error {
	if err := plot.CheckLengths(len(xs), len(ys), len(zs)); err != nil {
		return err
	}
	b.resize(len(xs))
	b.Visible = b.Visible[:0]
	for i := range xs {
		b.X[i], b.Y[i], b.Z[i], _, _ = project(&M, xs[i], ys[i], zs[i])
	}
	return nil
}

// TransformClipInto projects the points into b and sets b.Visible.
func (b *Buffer) TransformClipInto(xs, ys, zs []float64, M Matrix) error {
	if err := plot.CheckLengths(len(xs), len(ys), len(zs)); err != nil {
		return err
	}
	b.resize(len(xs))
	b.Visible = grow(b.Visible, len(xs))
	for i := range xs {
		x, y, z, w, ok := project(&M, xs[i], ys[i], zs[i])
		b.X[i], b.Y[i], b.Z[i] = x, y, z
		b.Visible[i] = clipped(x, y, z, w, ok)
	}
	return nil
}
