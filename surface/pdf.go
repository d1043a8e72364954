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
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/extgstate"
	pdfimage "seehuhn.de/go/pdf/graphics/image"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/internal/logging"
)

func init() {
	Register(&Format{Name: "pdf", Page: true, Open: OpenPDF})
}

// pdfPage is a surface writing a single page PDF file.  Translucent
// colors use the constant alpha of an extended graphics state, images are
// embedded as image XObjects with a soft mask where needed.
type pdfPage struct {
	page *document.Page

	// alpha holds one extended graphics state per opacity value, so that
	// repeated use of a value shares one resource.
	alpha map[alphaKey]*extgstate.ExtGState
}

type alphaKey struct {
	a      float64
	stroke bool
}

// OpenPDF creates a single page PDF file.
func OpenPDF(filename string, opts Options) (Surface, error) {
	w, h := opts.pageSize()
	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(filename, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	// PDF has the origin in the bottom left corner, device space in the
	// top left corner of the canvas.
	page.Transform(opts.pageMatrix())

	logging.Get().Debug("opened pdf surface", "file", filename, "width", w, "height", h)
	return &pdfPage{page: page, alpha: make(map[alphaKey]*extgstate.ExtGState)}, nil
}

func rgb(c plot.Color) color.Color {
	return color.DeviceRGB{c.R, c.G, c.B}
}

// setAlpha installs the constant opacity a for filling or stroking.
// Opaque drawing needs no graphics state.
func (s *pdfPage) setAlpha(a float64, stroke bool) {
	if a >= 1 {
		return
	}
	key := alphaKey{a: a, stroke: stroke}
	gs, ok := s.alpha[key]
	if !ok {
		gs = &extgstate.ExtGState{}
		if stroke {
			gs.Set = graphics.StateStrokeAlpha
			gs.StrokeAlpha = a
		} else {
			gs.Set = graphics.StateFillAlpha
			gs.FillAlpha = a
		}
		s.alpha[key] = gs
	}
	s.page.SetExtGState(gs)
}

// begin saves the graphics state and installs the clip rectangle.
func (s *pdfPage) begin(st State) {
	s.page.PushGraphicsState()
	if st.Clip != nil {
		c := st.Clip
		s.page.Rectangle(c.LLx, c.LLy, c.URx-c.LLx, c.URy-c.LLy)
		s.page.ClipNonZero()
		s.page.EndPath()
	}
}

func (s *pdfPage) writePath(p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			s.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			s.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			s.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			s.page.ClosePath()
		}
	}
}

// Fill implements the Surface interface.
func (s *pdfPage) Fill(p *path.Data, evenOdd bool, st State) error {
	if st.Color.A <= 0 || len(p.Cmds) == 0 {
		return nil
	}
	s.begin(st)
	s.setAlpha(st.Color.A, false)
	s.page.SetFillColor(rgb(st.Color))
	s.writePath(p)
	if evenOdd {
		s.page.FillEvenOdd()
	} else {
		s.page.Fill()
	}
	s.page.PopGraphicsState()
	return s.page.Err
}

// Stroke implements the Surface interface.
func (s *pdfPage) Stroke(p *path.Data, style StrokeStyle, st State) error {
	if st.Color.A <= 0 || style.Width <= 0 || len(p.Cmds) == 0 {
		return nil
	}
	s.begin(st)
	s.setAlpha(st.Color.A, true)
	s.page.SetStrokeColor(rgb(st.Color))
	s.page.SetLineWidth(style.Width)
	s.page.SetLineCap(style.Cap)
	s.page.SetLineJoin(style.Join)
	if style.MiterLimit >= 1 {
		s.page.SetMiterLimit(style.MiterLimit)
	}
	if len(style.Dash) > 0 {
		s.page.SetLineDash(style.Dash, style.DashPhase)
	}
	s.writePath(p)
	s.page.Stroke()
	s.page.PopGraphicsState()
	return s.page.Err
}

// DrawImage implements the Surface interface.  The image is embedded
// losslessly, with a soft mask if any pixel is translucent.
func (s *pdfPage) DrawImage(img image.Image, m matrix.Matrix, st State) error {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	dict, err := pdfimage.PNG(img, nil)
	if err != nil {
		return err
	}

	// PDF paints images into the unit square, with the first row at the
	// top.
	w, h := float64(b.Dx()), float64(b.Dy())
	unit := matrix.Matrix{w, 0, 0, -h, 0, h}

	s.begin(st)
	s.page.Transform(unit.Mul(m))
	s.page.DrawXObject(dict)
	s.page.PopGraphicsState()
	return s.page.Err
}

// Close implements the Surface interface.
func (s *pdfPage) Close() error {
	if s.page == nil {
		return errors.New("surface: pdf page already closed")
	}
	err := s.page.Close()
	s.page = nil
	return err
}
