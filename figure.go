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
	"fmt"
)

// Figure is the top level container of a plot.
type Figure struct {
	WidthInches  float64
	HeightInches float64
	DPI          float64

	// FaceColor fills the background.  If EdgeWidth is positive, the
	// border of the figure is stroked in EdgeColor.
	FaceColor Color
	EdgeColor Color
	EdgeWidth float64 // points

	// Artists are drawn in order, on top of the background.
	Artists []Artist
}

// NewFigure returns an empty figure with a white background.
func NewFigure(widthInches, heightInches, dpi float64) *Figure {
	return &Figure{
		WidthInches:  widthInches,
		HeightInches: heightInches,
		DPI:          dpi,
		FaceColor:    White,
		EdgeColor:    White,
	}
}

// Add appends artists to the figure.
func (f *Figure) Add(a ...Artist) {
	f.Artists = append(f.Artists, a...)
}

// PixelSize returns the size of the figure in device pixels at the
// current resolution.
func (f *Figure) PixelSize() (w, h float64) {
	return f.WidthInches * f.DPI, f.HeightInches * f.DPI
}

// Draw paints the background and then all artists.  Drawing stops at the
// first artist which fails.
func (f *Figure) Draw(r Renderer) error {
	w, h := r.Size()
	gc := r.NewGC()
	gc.SetForeground(f.EdgeColor)
	gc.SetLineWidth(f.EdgeWidth)
	face := f.FaceColor
	r.DrawRectangle(gc, &face, 0, 0, w, h)

	for i, a := range f.Artists {
		if err := a.Draw(r); err != nil {
			return fmt.Errorf("artist %d (%T): %w", i, a, err)
		}
	}
	return nil
}

// Snapshot records the resolution and the colors of the figure and returns
// a function which restores them.  Hardcopy output uses this to override
// these settings temporarily:
//
//	restore := fig.Snapshot()
//	defer restore()
func (f *Figure) Snapshot() (restore func()) {
	dpi, face, edge := f.DPI, f.FaceColor, f.EdgeColor
	return func() {
		f.DPI = dpi
		f.FaceColor = face
		f.EdgeColor = edge
	}
}
