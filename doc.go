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

// Package plot is the device independent core of a small plotting
// library.
//
// A [Figure] holds a list of artists, such as [Line2D], [Patch] or
// [Text].  Artists draw themselves through the [Renderer] interface, which
// takes device pixel coordinates with the y axis pointing up, together
// with a [GraphicsContext] describing the stroke style.  A concrete
// renderer writing PNG, PDF and PostScript files is provided by the
// backend package, and 3D versions of the artists are in package art3d.
//
// Errors caused by inconsistent input, such as coordinate slices of
// different lengths, wrap [ErrContractViolation].  Unknown style names give
// a [*StyleValueError] and leave the previous style in place.
package plot
