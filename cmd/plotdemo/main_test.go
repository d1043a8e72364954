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

package main

import (
	"testing"

	"seehuhn.de/go/plot/backend"
	"seehuhn.de/go/plot/config"
	"seehuhn.de/go/plot/proj3d"
	"seehuhn.de/go/plot/surface"
)

func TestDemoFigure(t *testing.T) {
	cfg := config.Default()
	cfg.DPI = 20
	for _, cam := range []proj3d.Camera{
		proj3d.DefaultCamera(),
		{Elev: 90, Azim: 0, Dist: 10},
		{Elev: -20, Azim: 135, Dist: 4, FovY: 40},
	} {
		fig, err := demoFigure(cam, cfg)
		if err != nil {
			t.Fatal(err)
		}
		w, h := fig.PixelSize()
		s := surface.NewRaster(int(w), int(h))
		r := backend.NewRenderer(s, w, h, fig.DPI)
		if err := fig.Draw(r); err != nil {
			t.Fatalf("camera %+v: %v", cam, err)
		}
		if err := r.Err(); err != nil {
			t.Fatalf("camera %+v: %v", cam, err)
		}

		// a good part of the canvas shows the plot, not the background
		painted := 0
		pix := s.Image.Pix
		for i := 0; i < len(pix); i += 4 {
			if pix[i] != 255 || pix[i+1] != 255 || pix[i+2] != 255 {
				painted++
			}
		}
		if total := len(pix) / 4; painted < total/20 {
			t.Errorf("camera %+v: only %d of %d pixels painted", cam, painted, total)
		}
	}
}
