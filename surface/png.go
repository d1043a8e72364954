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

package surface

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/internal/logging"
	"seehuhn.de/go/plot/internal/raster"
)

func init() {
	Register(&Format{Name: "png", Open: OpenPNG})
}

// Raster is a surface which paints into an in-memory RGBA image.
type Raster struct {
	Image *image.RGBA

	r *raster.Rasterizer
}

// NewRaster returns a transparent raster surface of the given size in
// pixels.
func NewRaster(width, height int) *Raster {
	bounds := image.Rect(0, 0, width, height)
	return &Raster{
		Image: image.NewRGBA(bounds),
		r:     raster.NewRasterizer(toRect(bounds)),
	}
}

func toRect(b image.Rectangle) rect.Rect {
	return rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	}
}

// clip returns the pixel rectangle painting is restricted to.
func (s *Raster) clip(st State) (image.Rectangle, bool) {
	b := s.Image.Bounds()
	if st.Clip != nil {
		c := image.Rect(
			int(math.Floor(st.Clip.LLx)), int(math.Floor(st.Clip.LLy)),
			int(math.Ceil(st.Clip.URx)), int(math.Ceil(st.Clip.URy)))
		b = b.Intersect(c)
	}
	return b, !b.Empty()
}

// Fill implements the Surface interface.
func (s *Raster) Fill(p *path.Data, evenOdd bool, st State) error {
	box, ok := s.clip(st)
	if !ok || st.Color.A <= 0 {
		return nil
	}
	s.r.Reset(toRect(box))
	s.r.Fill(p.Iter(), evenOdd, s.emitter(st.Color))
	return nil
}

// Stroke implements the Surface interface.
func (s *Raster) Stroke(p *path.Data, style StrokeStyle, st State) error {
	box, ok := s.clip(st)
	if !ok || st.Color.A <= 0 || style.Width <= 0 {
		return nil
	}
	s.r.Reset(toRect(box))
	s.r.Width = style.Width
	s.r.Cap = style.Cap
	s.r.Join = style.Join
	if style.MiterLimit >= 1 {
		s.r.MiterLimit = style.MiterLimit
	}
	s.r.Dash = style.Dash
	s.r.DashPhase = style.DashPhase
	s.r.Stroke(p.Iter(), s.emitter(st.Color))
	return nil
}

// emitter composites c over the image, weighted by the coverage.
func (s *Raster) emitter(c plot.Color) raster.Emitter {
	a := c.A
	sr, sg, sb := c.R*a*255, c.G*a*255, c.B*a*255
	img := s.Image
	return func(y, xMin int, coverage []float32) {
		off := img.PixOffset(xMin, y)
		for _, k := range coverage {
			if k > 0 {
				f := float64(k)
				keep := 1 - a*f
				px := img.Pix[off : off+4 : off+4]
				px[0] = uint8(sr*f + float64(px[0])*keep + 0.5)
				px[1] = uint8(sg*f + float64(px[1])*keep + 0.5)
				px[2] = uint8(sb*f + float64(px[2])*keep + 0.5)
				px[3] = uint8(255*a*f + float64(px[3])*keep + 0.5)
			}
			off += 4
		}
	}
}

// DrawImage implements the Surface interface.
func (s *Raster) DrawImage(img image.Image, m matrix.Matrix, st State) error {
	box, ok := s.clip(st)
	if !ok {
		return nil
	}
	dst := s.Image.SubImage(box).(*image.RGBA)

	// m maps image-relative pixels, but draw works in the coordinates of
	// the source image.
	b := img.Bounds()
	m = matrix.Translate(float64(-b.Min.X), float64(-b.Min.Y)).Mul(m)
	s2d := f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
	draw.BiLinear.Transform(dst, s2d, img, b, draw.Over, nil)
	return nil
}

// Close implements the Surface interface.  In-memory surfaces need no
// cleanup.
func (s *Raster) Close() error {
	return nil
}

// pngFile is a raster surface which is written to a file on Close.
type pngFile struct {
	*Raster
	f *os.File
}

// OpenPNG creates a PNG file.  The canvas size is rounded to whole
// pixels.
func OpenPNG(filename string, opts Options) (Surface, error) {
	w := int(math.Round(opts.Width))
	h := int(math.Round(opts.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("surface: invalid canvas size %gx%g", opts.Width, opts.Height)
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	logging.Get().Debug("opened png surface", "file", filename, "width", w, "height", h)
	return &pngFile{Raster: NewRaster(w, h), f: f}, nil
}

func (s *pngFile) Close() error {
	if s.f == nil {
		return errors.New("surface: png file already closed")
	}
	err := png.Encode(s.f, s.Image)
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	s.f = nil
	return err
}
