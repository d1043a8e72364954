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

package config

import (
	"log/slog"
	"testing"

	"seehuhn.de/go/plot"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want %+v", cfg, Default())
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults are invalid: %v", err)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PLOT_DPI", "72")
	t.Setenv("PLOT_SAVEFIG_FORMAT", "pdf")
	t.Setenv("PLOT_SAVEFIG_FACECOLOR", "#ff000080")
	t.Setenv("PLOT_PAPERSIZE", "a4")
	t.Setenv("PLOT_DEPTHSHADE", "0.25")
	t.Setenv("PLOT_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DPI != 72 || cfg.SavefigFormat != "pdf" || cfg.PaperSize != "a4" || cfg.DepthShade != 0.25 {
		t.Errorf("unexpected config %+v", cfg)
	}
	face, err := cfg.FaceColorValue()
	if err != nil {
		t.Fatal(err)
	}
	if face.R != 1 || face.G != 0 || face.A < 0.5 || face.A > 0.51 {
		t.Errorf("face color = %v", face)
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("level = %v", l)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PLOT_DPI", "-1"},
		{"PLOT_DPI", "lots"},
		{"PLOT_PIXELS_PER_INCH", "0"},
		{"PLOT_DEPTHSHADE", "1.5"},
		{"PLOT_SAVEFIG_EDGECOLOR", "notacolor"},
		{"PLOT_PAPERSIZE", "napkin"},
		{"PLOT_LOG_LEVEL", "loud"},
	}
	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("%s=%s accepted", tc.key, tc.value)
			}
		})
	}
}

func TestDefaultColors(t *testing.T) {
	cfg := Default()
	face, err := cfg.FaceColorValue()
	if err != nil {
		t.Fatal(err)
	}
	if face != plot.White {
		t.Errorf("face = %v, want white", face)
	}
}
