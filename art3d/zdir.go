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
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"seehuhn.de/go/plot"
)

// Zdir selects the axis which the z values of a flat artist are placed
// along, when the artist is embedded into 3D space.
type Zdir int

// These are the possible values of Zdir.  The zero value is ZdirZ.
const (
	ZdirZ Zdir = iota
	ZdirX
	ZdirY
	ZdirNone
)

func (d Zdir) String() string {
	switch d {
	case ZdirX:
		return "x"
	case ZdirY:
		return "y"
	case ZdirNone:
		return "none"
	default:
		return "z"
	}
}

// ParseZdir converts "x", "y", "z" or "none" into a Zdir.
func ParseZdir(s string) (Zdir, error) {
	switch s {
	case "x":
		return ZdirX, nil
	case "y":
		return ZdirY, nil
	case "z":
		return ZdirZ, nil
	case "none", "":
		return ZdirNone, nil
	}
	return 0, &plot.StyleValueError{Property: "zdir", Value: s,
		Allowed: []string{"x", "y", "z", "none"}}
}

// JuggleAxes reorders coordinates so that the third argument, zs, ends up
// on the axis given by zdir.  For ZdirX the result is (zs, xs, ys), for
// ZdirY it is (xs, zs, ys).  Otherwise the coordinates are returned
// unchanged.
func JuggleAxes(xs, ys, zs []float64, zdir Zdir) ([]float64, []float64, []float64) {
	switch zdir {
	case ZdirX:
		return zs, xs, ys
	case ZdirY:
		return xs, zs, ys
	default:
		return xs, ys, zs
	}
}

// DirVector returns the unit vector along zdir, or the zero vector for
// ZdirNone.
func DirVector(zdir Zdir) mgl64.Vec3 {
	switch zdir {
	case ZdirX:
		return mgl64.Vec3{1, 0, 0}
	case ZdirY:
		return mgl64.Vec3{0, 1, 0}
	case ZdirZ:
		return mgl64.Vec3{0, 0, 1}
	default:
		return mgl64.Vec3{}
	}
}

// NormAngle maps an angle in degrees into the range (-180, 180].
func NormAngle(a float64) float64 {
	a = math.Mod(math.Mod(a, 360)+360, 360)
	if a > 180 {
		a -= 360
	}
	return a
}

// NormTextAngle maps an angle in degrees into the range (-90, 90], so that
// text is never drawn upside down.
func NormTextAngle(a float64) float64 {
	a = math.Mod(math.Mod(a, 180)+180, 180)
	if a > 90 {
		a -= 180
	}
	return a
}

// expand stretches the z values to n entries.  A single value is used for
// all vertices.
func expand(zs []float64, n int) ([]float64, error) {
	switch len(zs) {
	case n:
		return slices.Clone(zs), nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = zs[0]
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %d z values for %d vertices",
		plot.ErrMismatchedVertices, len(zs), n)
}

// minDepth returns the smallest of the given depths, ignoring NaN values.
// If there are no depths, +Inf is returned.
func minDepth(zs []float64) float64 {
	m := math.Inf(1)
	for _, z := range zs {
		if z < m {
			m = z
		}
	}
	return m
}
