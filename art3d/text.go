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
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/proj3d"
)

// Text3D is a text anchored at a point in 3D space.  The text runs along
// the projection of the direction Dir.  A zero direction gives horizontal
// text.
type Text3D struct {
	plot.Text

	Pos mgl64.Vec3
	Dir mgl64.Vec3
}

// NewText3D returns black text in the default font, running along zdir.
func NewText3D(x, y, z float64, s string, zdir Zdir) *Text3D {
	return &Text3D{
		Text: *plot.NewText(0, 0, s),
		Pos:  mgl64.Vec3{x, y, z},
		Dir:  DirVector(zdir),
	}
}

// TextTo3D places a 2D text at height z.  The position of t is used
// unchanged for the first two coordinates, and zdir only selects the
// direction of the text.
func TextTo3D(t *plot.Text, z float64, zdir Zdir) *Text3D {
	return &Text3D{
		Text: *t,
		Pos:  mgl64.Vec3{t.X, t.Y, z},
		Dir:  DirVector(zdir),
	}
}

// Do3DProjection projects the anchor with M, updates the text rotation and
// returns the depth of the anchor.
func (t *Text3D) Do3DProjection(M proj3d.Matrix) (float64, error) {
	proj := proj3d.TransformPoints([]mgl64.Vec3{t.Pos, t.Pos.Add(t.Dir)}, M)

	// Measure the angle in device space, where the axes may be scaled
	// differently.
	m := t.Transform
	if m == (matrix.Matrix{}) {
		m = matrix.Identity
	}
	ex, ey := proj[1][0]-proj[0][0], proj[1][1]-proj[0][1]
	dx := m[0]*ex + m[2]*ey
	dy := m[1]*ex + m[3]*ey

	angle := 0.0
	if dx != 0 || dy != 0 {
		angle = math.Atan2(dy, dx) * 180 / math.Pi
	}
	if math.IsNaN(angle) {
		angle = 0
	}
	t.X, t.Y = proj[0][0], proj[0][1]
	t.Rotation = NormTextAngle(angle)
	return proj[0][2], nil
}

func (t *Text3D) setViewport(m matrix.Matrix) { t.Transform = m }
