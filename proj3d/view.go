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

package proj3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldTransformation maps the given box onto the cube [-1, 1]^3.  An
// empty range along one axis is mapped to the centre of the cube.
func WorldTransformation(xmin, xmax, ymin, ymax, zmin, zmax float64) Matrix {
	scale := func(lo, hi float64) float64 {
		if hi == lo {
			return 0
		}
		return 2 / (hi - lo)
	}
	centre := func(lo, hi float64) float64 {
		return -(lo + hi) / 2
	}
	s := mgl64.Scale3D(scale(xmin, xmax), scale(ymin, ymax), scale(zmin, zmax))
	t := mgl64.Translate3D(centre(xmin, xmax), centre(ymin, ymax), centre(zmin, zmax))
	return s.Mul4(t)
}

// ViewTransformation places the eye at eye, looking at center, with the
// direction up pointing upwards in the image.
func ViewTransformation(eye, center, up mgl64.Vec3) Matrix {
	return mgl64.LookAtV(eye, center, up)
}

// PerspTransformation returns a perspective projection with vertical field
// of view fovy (in radians) and unit aspect ratio.  Depth values between
// the near and far plane are mapped to [-1, 1].
func PerspTransformation(fovy, near, far float64) Matrix {
	return mgl64.Perspective(fovy, 1, near, far)
}

// OrthoTransformation returns a parallel projection of the box with the
// given half width centred on the viewing axis.
func OrthoTransformation(halfWidth, near, far float64) Matrix {
	return mgl64.Ortho(-halfWidth, halfWidth, -halfWidth, halfWidth, near, far)
}

// Bounds is an axis-aligned box in data coordinates.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// Camera describes a view of the unit cube [-1, 1]^3 from outside.
type Camera struct {
	Elev float64 // elevation above the x-y plane, in degrees
	Azim float64 // azimuth around the z axis, in degrees
	Dist float64 // distance of the eye from the origin

	// FovY is the vertical field of view in degrees.  Zero selects a
	// parallel projection.
	FovY float64
}

// DefaultCamera returns the default view.
func DefaultCamera() Camera {
	return Camera{Elev: 30, Azim: -60, Dist: 10, FovY: 25}
}

// halfDiagonal is the distance from the centre to a corner of the cube.
var halfDiagonal = math.Sqrt(3)

// Eye returns the position of the eye.
func (c Camera) Eye() mgl64.Vec3 {
	se, ce := math.Sincos(mgl64.DegToRad(c.Elev))
	sa, ca := math.Sincos(mgl64.DegToRad(c.Azim))
	return mgl64.Vec3{ce * ca, ce * sa, se}.Mul(c.Dist)
}

// Matrix returns the projection of the box b seen by the camera.  The
// whole box lies inside the visible volume.
func (c Camera) Matrix(b Bounds) Matrix {
	world := WorldTransformation(b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax)

	dist := max(c.Dist, 2*halfDiagonal)
	c.Dist = dist
	eye := c.Eye()

	// The derivative of the eye position with respect to the elevation is
	// orthogonal to the viewing direction, also when looking straight down.
	se, ce := math.Sincos(mgl64.DegToRad(c.Elev))
	sa, ca := math.Sincos(mgl64.DegToRad(c.Azim))
	up := mgl64.Vec3{-se * ca, -se * sa, ce}
	view := ViewTransformation(eye, mgl64.Vec3{}, up)

	margin := 0.01 * halfDiagonal
	near := dist - halfDiagonal - margin
	far := dist + halfDiagonal + margin

	var proj Matrix
	if c.FovY > 0 {
		fovy := mgl64.DegToRad(c.FovY)
		// widen the field of view if the box would not fit
		need := 2 * math.Atan(halfDiagonal/(dist-halfDiagonal))
		proj = PerspTransformation(max(fovy, need*1.01), near, far)
	} else {
		proj = OrthoTransformation(halfDiagonal+margin, near, far)
	}
	return proj.Mul4(view).Mul4(world)
}
