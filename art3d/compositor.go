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
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/plot"
)

// DefaultDepthShade is the default strength of depth shading.  The
// furthest primitive of a batch keeps 1 - DefaultDepthShade of its
// opacity.
const DefaultDepthShade = 0.7

// ErrDepthSortDisabled is returned by Compositor.Order if depth sorting is
// switched off.
var ErrDepthSortDisabled = errors.New("art3d: depth sorting is disabled")

// Compositor orders 3D primitives for drawing with the painter's
// algorithm.  There is no occlusion test: intersecting primitives are
// drawn one after the other.
type Compositor struct {
	// DepthSort must be set for Order to succeed.  Drawing 3D primitives
	// in input order gives wrong results, so there is no unsorted mode.
	DepthSort bool

	// FrontToBack reverses the order, so that the nearest primitive comes
	// first.
	FrontToBack bool
}

// DefaultCompositor sorts back to front.
var DefaultCompositor = Compositor{DepthSort: true}

// Order returns the permutation of indices into depths in which the
// primitives should be drawn.  By default the primitive with the largest
// depth, the one furthest from the viewer, comes first.  Primitives with
// equal depth keep their relative order.
func (c Compositor) Order(depths []float64) ([]int, error) {
	if !c.DepthSort {
		return nil, ErrDepthSortDisabled
	}
	idx := make([]int, len(depths))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		if c.FrontToBack {
			return cmp.Compare(depths[a], depths[b])
		}
		return cmp.Compare(depths[b], depths[a])
	})
	return idx, nil
}

// Colors stretches a color list to n entries.  A single color is repeated
// n times and a list of n colors is copied.  For any other length an
// error wrapping plot.ErrInvalidColorSpec is returned.
func Colors(c []plot.Color, n int) ([]plot.Color, error) {
	switch len(c) {
	case n:
		return slices.Clone(c), nil
	case 1:
		out := make([]plot.Color, n)
		for i := range out {
			out[i] = c[0]
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %d colors for %d primitives",
		plot.ErrInvalidColorSpec, len(c), n)
}

// ColorsFromSpec parses a color string and repeats the color n times.
func ColorsFromSpec(spec string, n int) ([]plot.Color, error) {
	c, err := plot.ParseColor(spec)
	if err != nil {
		return nil, err
	}
	return Colors([]plot.Color{c}, n)
}

// ZAlpha fades colors with increasing depth.  The depths are normalized to
// [0, 1] using the smallest and largest finite value in zs, and every
// alpha value is multiplied by 1 - strength*depth.  The strength is
// clamped to [0, 1].  The colors are stretched to len(zs) entries as by
// Colors.
func ZAlpha(colors []plot.Color, zs []float64, strength float64) ([]plot.Color, error) {
	out, err := Colors(colors, len(zs))
	if err != nil {
		return nil, err
	}
	strength = clamp01(strength)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, z := range zs {
		if math.IsInf(z, 0) || math.IsNaN(z) {
			continue
		}
		lo = min(lo, z)
		hi = max(hi, z)
	}

	for i, z := range zs {
		norm := 0.0
		if hi > lo {
			norm = clamp01((z - lo) / (hi - lo))
		}
		c := out[i]
		out[i] = c.WithAlpha(clamp01(c.A) * (1 - strength*norm))
	}
	return out, nil
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	return min(x, 1)
}
