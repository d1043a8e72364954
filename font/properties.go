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

// Package font describes fonts and maps font descriptors to the bundled
// Go font faces.
//
// Only two weights and two slants are available for every family, so
// descriptors are bucketed: weights 100 to 500 select the regular face and
// weights 600 to 900 the bold face.  Italic and oblique both select the
// italic face.  [Resolve] is the only place where this mapping happens, so
// text measurement and text painting always agree on the face.
package font

import (
	"fmt"
	"strconv"
	"strings"
)

// Properties is a font descriptor.
type Properties struct {
	// Family is a font family name or one of the generic names
	// "sans-serif", "serif" and "monospace".
	Family string

	// Style is "normal", "italic" or "oblique".
	Style string

	// Weight is a number between 100 and 900, written in decimal, or one
	// of the names listed in [Weights].
	Weight string

	// Size is the font size in points.
	Size float64
}

// Default returns the default font descriptor: 10pt regular sans-serif.
func Default() Properties {
	return Properties{
		Family: "sans-serif",
		Style:  "normal",
		Weight: "normal",
		Size:   10,
	}
}

// Weights maps the named font weights to their numeric values.
var Weights = map[string]int{
	"ultralight": 100,
	"light":      200,
	"normal":     400,
	"regular":    400,
	"book":       400,
	"medium":     500,
	"roman":      500,
	"semibold":   600,
	"demibold":   600,
	"demi":       600,
	"bold":       700,
	"heavy":      800,
	"extra bold": 800,
	"ultrabold":  800,
	"black":      900,
}

// ParseWeight converts a weight name or number into a numeric weight.
func ParseWeight(s string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return 400, nil
	}
	if w, ok := Weights[key]; ok {
		return w, nil
	}
	w, err := strconv.Atoi(key)
	if err != nil || w < 100 || w > 900 || w%100 != 0 {
		return 0, &ValueError{Property: "font weight", Value: s,
			Allowed: []string{"100", "200", "...", "900", "ultralight", "...", "black"}}
	}
	return w, nil
}

// IsBold reports whether a numeric weight selects the bold face.
func IsBold(weight int) bool {
	return weight >= 600
}

// Slant is the resolved slant of a face.
type Slant int

// These are the supported slants.
const (
	Upright Slant = iota
	Italic
	Oblique
)

func (s Slant) String() string {
	switch s {
	case Italic:
		return "italic"
	case Oblique:
		return "oblique"
	default:
		return "normal"
	}
}

// ParseSlant converts a style name into a Slant.
func ParseSlant(s string) (Slant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return Upright, nil
	case "italic":
		return Italic, nil
	case "oblique":
		return Oblique, nil
	}
	return 0, &ValueError{Property: "font style", Value: s,
		Allowed: []string{"normal", "italic", "oblique"}}
}

// ValueError reports an unknown font style or weight.
type ValueError struct {
	Property string
	Value    string
	Allowed  []string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("unrecognized %s %q, expected one of %s",
		e.Property, e.Value, strings.Join(e.Allowed, ", "))
}
