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
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"
)

// GraphicsContext holds the stroke style for one drawing call.  A fresh
// context is obtained from Renderer.NewGC for every drawable and thrown
// away afterwards.
//
// Line widths and dash lengths are given in points.  The renderer converts
// them to pixels.
type GraphicsContext struct {
	foreground Color
	alpha      float64
	forced     bool // alpha was set explicitly

	LineWidth  float64
	DashOffset float64
	Dashes     []float64 // nil means solid
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle

	// Clip, if non-nil, limits drawing to a rectangle in device pixels,
	// with the y axis pointing up.
	Clip *rect.Rect
}

// NewGraphicsContext returns a context with the default style: a solid
// black line of width 1pt with butt caps and miter joins.
func NewGraphicsContext() *GraphicsContext {
	return &GraphicsContext{
		foreground: Black,
		alpha:      1,
		LineWidth:  1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
	}
}

// SetForeground sets the stroke color.  Unless SetAlpha was called before,
// the alpha value of c is used.
func (gc *GraphicsContext) SetForeground(c Color) {
	gc.foreground = c
	if !gc.forced {
		gc.alpha = clamp01(c.A)
	}
}

// SetForegroundString parses s with ParseColor and sets the stroke color.
// On error the color is left unchanged.
func (gc *GraphicsContext) SetForegroundString(s string) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	gc.SetForeground(c)
	return nil
}

// SetAlpha sets the opacity used for all painting with this context.  The
// value is clamped to [0, 1] and overrides the alpha of the foreground.
func (gc *GraphicsContext) SetAlpha(a float64) {
	gc.alpha = clamp01(a)
	gc.forced = true
}

// Alpha returns the effective opacity.
func (gc *GraphicsContext) Alpha() float64 {
	return gc.alpha
}

// AlphaForced reports whether SetAlpha was called.  In this case the alpha
// value also replaces the alpha of face colors.
func (gc *GraphicsContext) AlphaForced() bool {
	return gc.forced
}

// Foreground returns the stroke color, with the effective alpha applied.
func (gc *GraphicsContext) Foreground() Color {
	return gc.foreground.WithAlpha(gc.alpha)
}

// SetLineWidth sets the line width in points.  Negative values are
// treated as zero, and a zero width disables stroking.
func (gc *GraphicsContext) SetLineWidth(w float64) {
	gc.LineWidth = max(w, 0)
}

// SetDashes sets the dash pattern, in points.  A nil or empty pattern
// selects solid lines.  A pattern with a negative or NaN length leaves the
// dashes unchanged and returns a *StyleValueError.
func (gc *GraphicsContext) SetDashes(offset float64, pattern []float64) error {
	if len(pattern) == 0 {
		gc.DashOffset = 0
		gc.Dashes = nil
		return nil
	}
	for _, l := range pattern {
		if !(l >= 0) {
			Logger().Warn("ignoring dash pattern", "value", pattern, "keep", gc.Dashes)
			return &StyleValueError{
				Property: "dash pattern",
				Value:    fmt.Sprint(pattern),
				Allowed:  []string{"non-negative lengths"},
			}
		}
	}
	gc.DashOffset = offset
	gc.Dashes = slices.Clone(pattern)
	return nil
}

// SetCapStyle sets the line cap from one of the names "butt",
// "projecting" or "round".  An unknown name leaves the cap unchanged and
// returns a *StyleValueError.
func (gc *GraphicsContext) SetCapStyle(name string) error {
	c, err := ParseCapStyle(name)
	if err != nil {
		Logger().Warn("ignoring line cap", "value", name, "keep", CapStyleName(gc.Cap))
		return err
	}
	gc.Cap = c
	return nil
}

// SetJoinStyle sets the line join from one of the names "miter", "round"
// or "bevel".  An unknown name leaves the join unchanged and returns a
// *StyleValueError.
func (gc *GraphicsContext) SetJoinStyle(name string) error {
	j, err := ParseJoinStyle(name)
	if err != nil {
		Logger().Warn("ignoring line join", "value", name, "keep", JoinStyleName(gc.Join))
		return err
	}
	gc.Join = j
	return nil
}

// SetClipRectangle restricts drawing to r.  Passing nil removes the clip.
func (gc *GraphicsContext) SetClipRectangle(r *rect.Rect) {
	if r == nil {
		gc.Clip = nil
		return
	}
	c := *r
	gc.Clip = &c
}

// Stroked reports whether drawing with this context produces visible
// strokes.
func (gc *GraphicsContext) Stroked() bool {
	return gc.LineWidth > 0 && gc.alpha > 0
}
