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

package backend

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/config"
	"seehuhn.de/go/plot/surface"
)

// failing is an artist which always fails.
type failing struct{}

var errArtist = errors.New("artist failed")

func (failing) Draw(plot.Renderer) error { return errArtist }

func testFigure() *plot.Figure {
	fig := plot.NewFigure(2, 1, 50)
	line, err := plot.NewLine2D([]float64{10, 90}, []float64{25, 25})
	if err != nil {
		panic(err)
	}
	fig.Add(line)
	return fig
}

func TestPrintPNG(t *testing.T) {
	fig := testFigure()
	red := plot.RGB(1, 0, 0)
	fname := filepath.Join(t.TempDir(), "fig.png")
	c := NewCanvas(fig, nil)
	if err := c.PrintFigure(fname, &PrintOptions{FaceColor: &red}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("image size = %v, want 100x50", b)
	}
	r, g, _, a := img.At(5, 5).RGBA()
	if r != 0xffff || g != 0 || a != 0xffff {
		t.Errorf("background = %v, want opaque red", img.At(5, 5))
	}
	// the line at y=25 runs through the middle row
	if r, _, _, _ := img.At(50, 24).RGBA(); r == 0xffff {
		t.Error("line not drawn")
	}

	if fig.FaceColor != plot.White {
		t.Errorf("face color not restored: %v", fig.FaceColor)
	}
}

func TestPrintDPI(t *testing.T) {
	fig := testFigure()
	fname := filepath.Join(t.TempDir(), "fig.png")
	if err := NewCanvas(fig, nil).PrintFigure(fname, &PrintOptions{DPI: 100}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Errorf("size at 100 dpi = %dx%d, want 200x100", cfg.Width, cfg.Height)
	}
	if fig.DPI != 50 {
		t.Errorf("DPI not restored: %g", fig.DPI)
	}
}

func TestPrintDefaultFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.SavefigFormat = "ps"
	if err := NewCanvas(testFigure(), cfg).PrintFigure(filepath.Join(dir, "fig"), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fig.ps")); err != nil {
		t.Errorf("default format not used: %v", err)
	}
}

func TestPrintUnsupported(t *testing.T) {
	fig := testFigure()
	fname := filepath.Join(t.TempDir(), "fig.xyz")
	red := plot.RGB(1, 0, 0)
	err := NewCanvas(fig, nil).PrintFigure(fname, &PrintOptions{DPI: 300, FaceColor: &red})

	var fe *plot.UnsupportedFormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *UnsupportedFormatError", err)
	}
	if fe.Format != "xyz" || len(fe.Supported) == 0 {
		t.Errorf("error = %+v", fe)
	}
	if _, err := os.Stat(fname); err == nil {
		t.Error("file created for unsupported format")
	}
	if fig.DPI != 50 || fig.FaceColor != plot.White || fig.EdgeColor != plot.White {
		t.Errorf("figure changed: dpi %g, face %v, edge %v", fig.DPI, fig.FaceColor, fig.EdgeColor)
	}
}

func TestPrintRestoresOnError(t *testing.T) {
	fig := testFigure()
	fig.Add(failing{})
	fname := filepath.Join(t.TempDir(), "fig.pdf")
	err := NewCanvas(fig, nil).PrintFigure(fname, nil)
	if !errors.Is(err, errArtist) {
		t.Errorf("err = %v, want the artist error", err)
	}
	if fig.DPI != 50 {
		t.Errorf("DPI not restored after error: %g", fig.DPI)
	}
}

func TestPrintPage(t *testing.T) {
	fig := testFigure()
	fname := filepath.Join(t.TempDir(), "fig.ps")
	if err := NewCanvas(fig, nil).PrintFigure(fname, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	// 2x1 inches at 72 dpi, centred on letter paper
	for _, want := range []string{
		"%%BoundingBox: 0 0 612 792\n",
		"[1 0 0 -1 234 432] concat\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if fig.DPI != 50 {
		t.Errorf("DPI not restored: %g", fig.DPI)
	}
}

func TestSetPage(t *testing.T) {
	tests := []struct {
		name       string
		w, h       float64
		paper      string
		pw, ph     float64
		offX, offY float64
		wantErr    bool
	}{
		{"letter", 144, 72, "", 612, 792, 234, 360, false},
		{"a4", 100, 100, "A4", 8.27 * 72, 11.69 * 72, (8.27*72 - 100) / 2, (11.69*72 - 100) / 2, false},
		{"too large", 1000, 100, "letter", 1000, 100, 0, 0, false},
		{"unknown", 10, 10, "napkin", 0, 0, 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := surface.Options{Width: tc.w, Height: tc.h}
			err := setPage(&opts, tc.paper, "letter")
			if tc.wantErr {
				if err == nil {
					t.Error("missing error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !near(opts.PageWidth, tc.pw) || !near(opts.PageHeight, tc.ph) ||
				!near(opts.Offset.X, tc.offX) || !near(opts.Offset.Y, tc.offY) {
				t.Errorf("page %gx%g offset %v", opts.PageWidth, opts.PageHeight, opts.Offset)
			}
		})
	}
}
