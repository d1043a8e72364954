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

// Package config reads the plot defaults from environment variables.
//
// Every setting has a variable with the prefix PLOT_, for example
// PLOT_DPI=150 or PLOT_SAVEFIG_FORMAT=pdf.
package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/surface"
)

// Prefix is the prefix of all environment variables.
const Prefix = "plot"

// Config holds the plot defaults.
type Config struct {
	DPI           float64 `envconfig:"DPI" default:"100"`
	PixelsPerInch float64 `envconfig:"PIXELS_PER_INCH" default:"96"`
	SavefigFormat string  `envconfig:"SAVEFIG_FORMAT" default:"png"`
	FaceColor     string  `envconfig:"SAVEFIG_FACECOLOR" default:"white"`
	EdgeColor     string  `envconfig:"SAVEFIG_EDGECOLOR" default:"white"`
	PaperSize     string  `envconfig:"PAPERSIZE" default:"letter"`
	DepthShade    float64 `envconfig:"DEPTHSHADE" default:"0.7"`
	LogLevel      string  `envconfig:"LOG_LEVEL" default:"warn"`
}

// Default returns the built-in defaults, ignoring the environment.
func Default() *Config {
	return &Config{
		DPI:           100,
		PixelsPerInch: 96,
		SavefigFormat: "png",
		FaceColor:     "white",
		EdgeColor:     "white",
		PaperSize:     "letter",
		DepthShade:    0.7,
		LogLevel:      "warn",
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that all settings have usable values.
func (c *Config) Validate() error {
	if !(c.DPI > 0) {
		return fmt.Errorf("config: DPI must be positive, not %g", c.DPI)
	}
	if !(c.PixelsPerInch > 0) {
		return fmt.Errorf("config: PIXELS_PER_INCH must be positive, not %g", c.PixelsPerInch)
	}
	if !(c.DepthShade >= 0 && c.DepthShade <= 1) {
		return fmt.Errorf("config: DEPTHSHADE must be in [0, 1], not %g", c.DepthShade)
	}
	if _, err := c.FaceColorValue(); err != nil {
		return fmt.Errorf("config: SAVEFIG_FACECOLOR: %w", err)
	}
	if _, err := c.EdgeColorValue(); err != nil {
		return fmt.Errorf("config: SAVEFIG_EDGECOLOR: %w", err)
	}
	if _, err := surface.LookupPaper(c.PaperSize); err != nil {
		return fmt.Errorf("config: PAPERSIZE: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	return nil
}

// FaceColorValue returns the parsed figure face color for hardcopy output.
func (c *Config) FaceColorValue() (plot.Color, error) {
	return plot.ParseColor(c.FaceColor)
}

// EdgeColorValue returns the parsed figure edge color for hardcopy output.
func (c *Config) EdgeColorValue() (plot.Color, error) {
	return plot.ParseColor(c.EdgeColor)
}

// Level returns the log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}
