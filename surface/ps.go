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
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/internal/logging"
)

func init() {
	Register(&Format{Name: "ps", Page: true, Open: OpenPS})
}

// PostScript writes a single page PostScript document.  Like for PDF,
// translucent colors are blended with the background.
type PostScript struct {
	w   *bufio.Writer
	c   io.Closer
	bg  plot.Color
	err error
}

// OpenPS creates a PostScript file.
func OpenPS(filename string, opts Options) (Surface, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	s := NewPostScript(f, opts)
	s.c = f
	logging.Get().Debug("opened ps surface", "file", filename)
	return s, nil
}

// NewPostScript starts a PostScript document on w.  Closing the surface
// finishes the document but does not close w.
func NewPostScript(w io.Writer, opts Options) *PostScript {
	s := &PostScript{w: bufio.NewWriter(w), bg: opts.Background}
	pw, ph := opts.pageSize()
	s.printf("%%!PS-Adobe-3.0\n")
	s.printf("%%%%Creator: seehuhn.de/go/plot\n")
	s.printf("%%%%BoundingBox: 0 0 %d %d\n", int(math.Ceil(pw)), int(math.Ceil(ph)))
	s.printf("%%%%Pages: 1\n")
	s.printf("%%%%EndComments\n")
	s.printf("%%%%Page: 1 1\n")
	s.printf("gsave\n")
	s.printf("%s concat\n", psMatrix(opts.pageMatrix()))
	return s
}

func (s *PostScript) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

// num formats x with at most four decimal places.
func num(x float64) string {
	if math.Abs(x) < 5e-5 {
		return "0"
	}
	return strconv.FormatFloat(math.Round(x*1e4)/1e4, 'f', -1, 64)
}

func psMatrix(m matrix.Matrix) string {
	return "[" + num(m[0]) + " " + num(m[1]) + " " + num(m[2]) + " " +
		num(m[3]) + " " + num(m[4]) + " " + num(m[5]) + "]"
}

func (s *PostScript) begin(st State) {
	s.printf("gsave\n")
	if c := st.Clip; c != nil {
		s.printf("%s %s %s %s rectclip\n",
			num(c.LLx), num(c.LLy), num(c.URx-c.LLx), num(c.URy-c.LLy))
	}
}

func (s *PostScript) setColor(c plot.Color) {
	f := flatten(c, s.bg)
	s.printf("%s %s %s setrgbcolor\n", num(f.R), num(f.G), num(f.B))
}

func (s *PostScript) writePath(p *path.Data) {
	s.printf("newpath\n")
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			s.printf("%s %s moveto\n", num(pts[0].X), num(pts[0].Y))
		case path.CmdLineTo:
			s.printf("%s %s lineto\n", num(pts[0].X), num(pts[0].Y))
		case path.CmdCubeTo:
			s.printf("%s %s %s %s %s %s curveto\n",
				num(pts[0].X), num(pts[0].Y), num(pts[1].X), num(pts[1].Y),
				num(pts[2].X), num(pts[2].Y))
		case path.CmdClose:
			s.printf("closepath\n")
		}
	}
}

// Fill implements the Surface interface.
func (s *PostScript) Fill(p *path.Data, evenOdd bool, st State) error {
	if st.Color.A <= 0 || len(p.Cmds) == 0 {
		return s.err
	}
	s.begin(st)
	s.setColor(st.Color)
	s.writePath(p)
	if evenOdd {
		s.printf("eofill\n")
	} else {
		s.printf("fill\n")
	}
	s.printf("grestore\n")
	return s.err
}

// Stroke implements the Surface interface.
func (s *PostScript) Stroke(p *path.Data, style StrokeStyle, st State) error {
	if st.Color.A <= 0 || style.Width <= 0 || len(p.Cmds) == 0 {
		return s.err
	}
	s.begin(st)
	s.setColor(st.Color)
	s.printf("%s setlinewidth\n", num(style.Width))
	s.printf("%d setlinecap\n", psCap(style.Cap))
	s.printf("%d setlinejoin\n", psJoin(style.Join))
	if style.MiterLimit >= 1 {
		s.printf("%s setmiterlimit\n", num(style.MiterLimit))
	}
	if len(style.Dash) > 0 {
		s.printf("[")
		for i, d := range style.Dash {
			if i > 0 {
				s.printf(" ")
			}
			s.printf("%s", num(d))
		}
		s.printf("] %s setdash\n", num(style.DashPhase))
	}
	s.writePath(p)
	s.printf("stroke\n")
	s.printf("grestore\n")
	return s.err
}

func psCap(c graphics.LineCapStyle) int {
	switch c {
	case graphics.LineCapRound:
		return 1
	case graphics.LineCapSquare:
		return 2
	default:
		return 0
	}
}

func psJoin(j graphics.LineJoinStyle) int {
	switch j {
	case graphics.LineJoinRound:
		return 1
	case graphics.LineJoinBevel:
		return 2
	default:
		return 0
	}
}

// DrawImage implements the Surface interface.  Image data is written as
// hexadecimal RGB samples.
func (s *PostScript) DrawImage(img image.Image, m matrix.Matrix, st State) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return s.err
	}
	s.begin(st)
	s.printf("%s concat\n", psMatrix(m))
	s.printf("%d %d 8 [1 0 0 1 0 0]\n", w, h)
	s.printf("currentfile /ASCIIHexDecode filter false 3 colorimage\n")
	const hexDigits = "0123456789abcdef"
	col := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			f := flatten(toColor(img.At(x, y).RGBA()), s.bg)
			for _, v := range []float64{f.R, f.G, f.B} {
				k := uint8(math.Round(clamp01(v) * 255))
				if s.err == nil {
					s.err = s.w.WriteByte(hexDigits[k>>4])
				}
				if s.err == nil {
					s.err = s.w.WriteByte(hexDigits[k&15])
				}
			}
			col += 6
			if col >= 72 {
				s.printf("\n")
				col = 0
			}
		}
	}
	s.printf(">\n")
	s.printf("grestore\n")
	return s.err
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	return min(x, 1)
}

// Close implements the Surface interface.
func (s *PostScript) Close() error {
	if s.w == nil {
		return errors.New("surface: ps document already closed")
	}
	s.printf("grestore\n")
	s.printf("showpage\n")
	s.printf("%%%%Trailer\n")
	s.printf("%%%%EOF\n")
	if s.err == nil {
		s.err = s.w.Flush()
	}
	err := s.err
	if s.c != nil {
		if cerr := s.c.Close(); err == nil {
			err = cerr
		}
	}
	s.w = nil
	return err
}
