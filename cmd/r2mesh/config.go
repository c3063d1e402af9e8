// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Point sources.
const (
	sourceRandom  = "random"
	sourcePoisson = "poisson"
	sourceCorners = "corners"
)

// Config describes one run of r2mesh.
type Config struct {
	Points PointsConfig `yaml:"points"`
	// Eps is the duplicate tolerance. Zero keeps the library default.
	Eps    float64      `yaml:"eps"`
	Relax  int          `yaml:"relax"`
	// Verify compares each mesh against a slow reference triangulation.
	Verify bool         `yaml:"verify"`
	Output OutputConfig `yaml:"output"`
	// Image is the picture sampled by the shade command.
	Image string `yaml:"image"`
}

type PointsConfig struct {
	Source string  `yaml:"source"`
	Count  int     `yaml:"count"`
	Seed   int64   `yaml:"seed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Radius is the minimum distance between Poisson points.
	Radius float64 `yaml:"radius"`
}

type OutputConfig struct {
	Path        string `yaml:"path"`
	DrawVoronoi bool   `yaml:"draw_voronoi"`
}

func DefaultConfig() Config {
	return Config{
		Points: PointsConfig{
			Source: sourceRandom,
			Count:  1000,
			Width:  1024,
			Height: 768,
			Radius: 12,
		},
		Output: OutputConfig{
			Path: "mesh.svg",
		},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig. Unknown keys
// are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields every command relies on.
func (c Config) Validate() error {
	var errs []error

	switch c.Points.Source {
	case sourceRandom, sourcePoisson:
	case sourceCorners:
		if c.Points.Count < 4 {
			errs = append(errs, fmt.Errorf("points.count must be at least 4 for source %q", sourceCorners))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown points.source %q", c.Points.Source))
	}
	if c.Points.Source != sourcePoisson && c.Points.Count < 3 {
		errs = append(errs, fmt.Errorf("points.count must be at least 3, got %d", c.Points.Count))
	}
	if c.Points.Source == sourcePoisson && !(c.Points.Radius > 0) {
		errs = append(errs, fmt.Errorf("points.radius must be positive, got %v", c.Points.Radius))
	}
	if !(c.Points.Width > 0) || !(c.Points.Height > 0) ||
		math.IsInf(c.Points.Width, 0) || math.IsInf(c.Points.Height, 0) {
		errs = append(errs, fmt.Errorf("points.width and points.height must be positive, got %vx%v",
			c.Points.Width, c.Points.Height))
	}
	if c.Eps < 0 || math.IsNaN(c.Eps) {
		errs = append(errs, fmt.Errorf("eps must not be negative, got %v", c.Eps))
	}
	if c.Relax < 0 {
		errs = append(errs, fmt.Errorf("relax must not be negative, got %d", c.Relax))
	}
	if c.Output.Path == "" {
		errs = append(errs, errors.New("output.path must be set"))
	}

	return errors.Join(errs...)
}
