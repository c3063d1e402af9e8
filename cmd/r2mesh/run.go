// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/internal/lifted"
	"github.com/2dChan/r2voronoi/internal/render"
	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/2dChan/r2voronoi/shade"
	"github.com/2dChan/r2voronoi/utils"
	"github.com/disintegration/imaging"
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

func generatePoints(cfg PointsConfig) ([]r2.Point, error) {
	bounds := r2.RectFromPoints(r2.Point{}, r2.Point{X: cfg.Width, Y: cfg.Height})

	switch cfg.Source {
	case sourceRandom:
		return utils.GenerateRandomPoints(cfg.Count, cfg.Seed, bounds), nil
	case sourceCorners:
		return utils.GenerateRandomPointsWithCorners(cfg.Count, cfg.Seed, bounds)
	case sourcePoisson:
		return utils.GeneratePoissonPoints(bounds, cfg.Radius, 0, cfg.Seed)
	}
	return nil, fmt.Errorf("unknown point source %q", cfg.Source)
}

func triangulationOptions(cfg Config, logger *zap.Logger) []r2delaunay.TriangulationOption {
	opts := []r2delaunay.TriangulationOption{r2delaunay.WithObserver(buildLogger(logger))}
	if cfg.Eps > 0 {
		opts = append(opts, r2delaunay.WithEps(cfg.Eps))
	}
	return opts
}

func diagramOptions(cfg Config, logger *zap.Logger) []r2voronoi.DiagramOption {
	opts := []r2voronoi.DiagramOption{r2voronoi.WithObserver(buildLogger(logger))}
	if cfg.Eps > 0 {
		opts = append(opts, r2voronoi.WithEps(cfg.Eps))
	}
	return opts
}

func runTriangulate(cfg Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	points, err := generatePoints(cfg.Points)
	if err != nil {
		return fmt.Errorf("generating points: %w", err)
	}
	logger.Debug("generated points", zap.String("source", cfg.Points.Source), zap.Int("count", len(points)))

	dt, err := r2delaunay.NewTriangulation(points, triangulationOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("triangulating: %w", err)
	}
	if cfg.Verify {
		if err := verifyTriangulation(dt, logger); err != nil {
			return err
		}
	}

	scene := render.Scene{
		Width:         int(cfg.Points.Width),
		Height:        int(cfg.Points.Height),
		Triangulation: dt,
		DrawHull:      true,
		DrawSites:     true,
	}
	if cfg.Output.DrawVoronoi {
		scene.Diagram = r2voronoi.FromTriangulation(dt)
	}

	return writeScene(cfg.Output.Path, scene, logger)
}

func runVoronoi(cfg Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	points, err := generatePoints(cfg.Points)
	if err != nil {
		return fmt.Errorf("generating points: %w", err)
	}

	d, err := r2voronoi.NewDiagram(points, diagramOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("building diagram: %w", err)
	}
	if err := d.Relax(cfg.Relax); err != nil {
		return fmt.Errorf("relaxing diagram: %w", err)
	}
	logger.Debug("relaxed diagram", zap.Int("steps", cfg.Relax))
	if cfg.Verify {
		if err := verifyTriangulation(d.Triangulation(), logger); err != nil {
			return err
		}
	}

	return writeScene(cfg.Output.Path, render.Scene{
		Width:     int(cfg.Points.Width),
		Height:    int(cfg.Points.Height),
		Diagram:   d,
		DrawSites: true,
	}, logger)
}

// runShade samples cfg.Image over a mesh spanning the whole image. The point
// bounds follow the image size.
func runShade(cfg Config, logger *zap.Logger) error {
	if cfg.Image == "" {
		return errors.New("invalid config: image must be set")
	}
	img, err := imaging.Open(cfg.Image)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	size := img.Bounds().Size()
	cfg.Points.Width = float64(size.X)
	cfg.Points.Height = float64(size.Y)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	points, err := generatePoints(cfg.Points)
	if err != nil {
		return fmt.Errorf("generating points: %w", err)
	}

	scene := render.Scene{Width: size.X, Height: size.Y}
	if cfg.Output.DrawVoronoi {
		d, err := r2voronoi.NewDiagram(points, diagramOptions(cfg, logger)...)
		if err != nil {
			return fmt.Errorf("building diagram: %w", err)
		}
		if err := d.Relax(cfg.Relax); err != nil {
			return fmt.Errorf("relaxing diagram: %w", err)
		}
		scene.Diagram = d
		scene.CellFill = shade.CellColors(img, d)
	} else {
		dt, err := r2delaunay.NewTriangulation(points, triangulationOptions(cfg, logger)...)
		if err != nil {
			return fmt.Errorf("triangulating: %w", err)
		}
		scene.Triangulation = dt
		scene.TriangleFill = shade.TriangleColors(img, dt, shade.Options{})
	}

	return writeScene(cfg.Output.Path, scene, logger)
}

// verifyTriangulation compares dt with the lower convex hull of its lifted
// points and logs the triangles missing from dt. Cocircular points admit
// several valid meshes, so a difference is reported rather than returned.
func verifyTriangulation(dt *r2delaunay.Triangulation, logger *zap.Logger) error {
	if dt.NumPlaced() != len(dt.Points) {
		logger.Warn("skipping verification of a mesh with dropped points",
			zap.Int("dropped", len(dt.Points)-dt.NumPlaced()))
		return nil
	}

	ref, err := lifted.Triangulate(dt.Points, 0)
	if err != nil {
		return fmt.Errorf("building reference triangulation: %w", err)
	}

	got := make([][3]int, dt.NumTriangles())
	for i := range got {
		got[i] = dt.PointsOfTriangle(i)
	}
	missing := countMissing(lifted.Canonical(ref.Triangles), lifted.Canonical(got))
	if missing > 0 {
		logger.Warn("mesh differs from reference triangulation",
			zap.Int("missing", missing),
			zap.Int("reference", len(ref.Triangles)),
			zap.Int("triangles", len(got)))
		return nil
	}
	logger.Info("verified triangulation", zap.Int("triangles", len(got)))
	return nil
}

// countMissing returns how many entries of want are absent from got. Both must
// be sorted.
func countMissing(want, got [][3]int) int {
	missing := 0
	i, j := 0, 0
	for i < len(want) {
		switch {
		case j >= len(got) || lessTriple(want[i], got[j]):
			missing++
			i++
		case want[i] == got[j]:
			i++
			j++
		default:
			j++
		}
	}
	return missing
}

func lessTriple(a, b [3]int) bool {
	return slices.Compare(a[:], b[:]) < 0
}

func writeScene(path string, scene render.Scene, logger *zap.Logger) error {
	if err := render.WriteFile(path, scene); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("wrote output", zap.String("path", path))
	return nil
}
