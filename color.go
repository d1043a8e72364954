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
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a non-premultiplied RGBA color with components in [0, 1].
//
// Color implements image/color.Color.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns c with the alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// RGBA implements image/color.Color, returning alpha-premultiplied
// 16-bit components.
func (c Color) RGBA() (r, g, b, a uint32) {
	a16 := clamp01(c.A) * 0xffff
	r = uint32(clamp01(c.R)*a16 + 0.5)
	g = uint32(clamp01(c.G)*a16 + 0.5)
	b = uint32(clamp01(c.B)*a16 + 0.5)
	a = uint32(a16 + 0.5)
	return
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x",
		to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

func to8(x float64) uint8 {
	return uint8(math.Round(clamp01(x) * 255))
}

func clamp01(x float64) float64 {
	if !(x > 0) { // also catches NaN
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// single letter color codes
var letterColors = map[string]Color{
	"b": RGB(0, 0, 1),
	"g": RGB(0, 0.5, 0),
	"r": RGB(1, 0, 0),
	"c": RGB(0, 0.75, 0.75),
	"m": RGB(0.75, 0, 0.75),
	"y": RGB(0.75, 0.75, 0),
	"k": RGB(0, 0, 0),
	"w": RGB(1, 1, 1),
}

// ParseColor converts a color specification into a Color.  Accepted forms
// are
//   - the single letters b, g, r, c, m, y, k and w,
//   - a gray level between 0 and 1 written as a number, e.g. "0.75",
//   - hexadecimal "#rrggbb" or "#rrggbbaa",
//   - the SVG 1.1 color keywords, e.g. "steelblue",
//   - "none", which gives a fully transparent color.
//
// Errors wrap ErrInvalidColorSpec.
func ParseColor(s string) (Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := letterColors[key]; ok {
		return c, nil
	}
	if key == "none" {
		return Transparent, nil
	}
	if strings.HasPrefix(key, "#") {
		return parseHex(s, key[1:])
	}
	if c, ok := colornames.Map[key]; ok {
		return Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, nil
	}
	if v, err := strconv.ParseFloat(key, 64); err == nil {
		if !(v >= 0 && v <= 1) {
			return Color{}, fmt.Errorf("%w: gray level %q outside [0, 1]", ErrInvalidColorSpec, s)
		}
		return RGB(v, v, v), nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorSpec, s)
}

func parseHex(orig, hex string) (Color, error) {
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorSpec, orig)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorSpec, orig)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// MustParseColor is like ParseColor but panics on invalid input.  It is
// intended for initializing package-level variables.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
