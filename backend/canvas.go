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
	"fmt"
	"path/filepath"
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/config"
	"seehuhn.de/go/plot/internal/logging"
	"seehuhn.de/go/plot/surface"
)

// Canvas writes a figure to files.
type Canvas struct {
	Figure *plot.Figure
	Config *config.Config
}

// NewCanvas returns a canvas for fig.  If cfg is nil, the built-in
// defaults are used.
func NewCanvas(fig *plot.Figure, cfg *config.Config) *Canvas {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Canvas{Figure: fig, Config: cfg}
}

// PrintOptions override the figure settings for one output file.
type PrintOptions struct {
	// Format selects the output format.  If empty, the format is taken
	// from the file name extension, and if this is missing too, the
	// configured default format is used.
	Format string

	// DPI, if positive, replaces the figure resolution for raster
	// formats.  Page formats always use 72 dots per inch.
	DPI float64

	// FaceColor and EdgeColor, if non-nil, replace the figure colors.
	// Otherwise the configured hardcopy colors are used.
	FaceColor *plot.Color
	EdgeColor *plot.Color

	// Paper selects the paper size for page formats.  If empty, the
	// configured paper size is used.
	Paper string
}

// PrintFigure writes the figure to a file.  The surface is opened before
// any drawing takes place and is always closed.  The resolution and the
// colors of the figure are restored before PrintFigure returns, also when
// an error occurs.
func (c *Canvas) PrintFigure(filename string, opts *PrintOptions) (err error) {
	if opts == nil {
		opts = &PrintOptions{}
	}
	cfg := c.Config
	if cfg == nil {
		cfg = config.Default()
	}

	ext := opts.Format
	if ext == "" {
		ext = strings.TrimPrefix(filepath.Ext(filename), ".")
	}
	if ext == "" {
		ext = cfg.SavefigFormat
		filename += "." + ext
	}
	format, err := surface.Lookup(ext)
	if err != nil {
		return err
	}

	fig := c.Figure
	restore := fig.Snapshot()
	defer restore()

	if err := c.applyColors(opts, cfg); err != nil {
		return err
	}
	if format.Page {
		fig.DPI = 72
	} else if opts.DPI > 0 {
		fig.DPI = opts.DPI
	}

	w, h := fig.PixelSize()
	sopts := surface.Options{
		Width:      w,
		Height:     h,
		Background: plot.White,
	}
	if format.Page {
		if err := setPage(&sopts, opts.Paper, cfg.PaperSize); err != nil {
			return err
		}
	}

	log := logging.Get()
	log.Debug("printing figure", "file", filename, "format", format.Name,
		"width", w, "height", h, "dpi", fig.DPI)

	surf, err := format.Open(filename, sopts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := surf.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", filename, cerr)
		}
	}()

	r := NewRenderer(surf, w, h, fig.DPI)
	r.PixelsPerInch = cfg.PixelsPerInch
	if err := fig.Draw(r); err != nil {
		return err
	}
	if err := r.Err(); err != nil {
		return err
	}

	log.Info("wrote figure", "file", filename, "format", format.Name)
	return nil
}

func (c *Canvas) applyColors(opts *PrintOptions, cfg *config.Config) error {
	fig := c.Figure
	if opts.FaceColor != nil {
		fig.FaceColor = *opts.FaceColor
	} else {
		face, err := cfg.FaceColorValue()
		if err != nil {
			return err
		}
		fig.FaceColor = face
	}
	if opts.EdgeColor != nil {
		fig.EdgeColor = *opts.EdgeColor
	} else {
		edge, err := cfg.EdgeColorValue()
		if err != nil {
			return err
		}
		fig.EdgeColor = edge
	}
	return nil
}

// setPage centers the canvas on the selected paper.  Figures which do not
// fit on the paper get a page of their own size.
func setPage(sopts *surface.Options, name, fallback string) error {
	if name == "" {
		name = fallback
	}
	paper, err := surface.LookupPaper(name)
	if err != nil {
		return err
	}
	pw, ph := paper.Width*72, paper.Height*72
	w, h := sopts.Width, sopts.Height
	if w > pw || h > ph {
		logging.Get().Debug("figure larger than paper, using figure size",
			"paper", paper.Name)
		pw, ph = w, h
	}
	sopts.PageWidth, sopts.PageHeight = pw, ph
	sopts.Offset = vec.Vec2{X: (pw - w) / 2, Y: (ph - h) / 2}
	return nil
}
