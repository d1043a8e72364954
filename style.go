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

package plot

import (
	"seehuhn.de/go/pdf/graphics"
)

var capNames = []string{"butt", "projecting", "round"}

var joinNames = []string{"miter", "round", "bevel"}

// ParseCapStyle maps a cap style name to the corresponding line cap.
// A "projecting" cap extends the line by half the line width.
func ParseCapStyle(name string) (graphics.LineCapStyle, error) {
	switch name {
	case "butt":
		return graphics.LineCapButt, nil
	case "projecting":
		return graphics.LineCapSquare, nil
	case "round":
		return graphics.LineCapRound, nil
	}
	return 0, &StyleValueError{Property: "capstyle", Value: name, Allowed: capNames}
}

// ParseJoinStyle maps a join style name to the corresponding line join.
func ParseJoinStyle(name string) (graphics.LineJoinStyle, error) {
	switch name {
	case "miter":
		return graphics.LineJoinMiter, nil
	case "round":
		return graphics.LineJoinRound, nil
	case "bevel":
		return graphics.LineJoinBevel, nil
	}
	return 0, &StyleValueError{Property: "joinstyle", Value: name, Allowed: joinNames}
}

// CapStyleName is the inverse of ParseCapStyle.
func CapStyleName(c graphics.LineCapStyle) string {
	switch c {
	case graphics.LineCapSquare:
		return "projecting"
	case graphics.LineCapRound:
		return "round"
	default:
		return "butt"
	}
}

// JoinStyleName is the inverse of ParseJoinStyle.
func JoinStyleName(j graphics.LineJoinStyle) string {
	switch j {
	case graphics.LineJoinRound:
		return "round"
	case graphics.LineJoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}
