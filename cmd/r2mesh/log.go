// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package main

import (
	"os"

	"github.com/2dChan/r2voronoi/r2delaunay"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// newLogger returns a human readable logger when stderr is a terminal and a
// JSON one otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if term.IsTerminal(int(os.Stderr.Fd())) {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

// buildLogger returns an observer that logs triangulation statistics.
func buildLogger(logger *zap.Logger) func(r2delaunay.BuildStats) {
	return func(s r2delaunay.BuildStats) {
		logger.Info("triangulated",
			zap.Int("points", s.Points),
			zap.Int("placed", s.Placed),
			zap.Int("triangles", s.Triangles),
			zap.Int("hull", s.HullSize),
			zap.Int("flips", s.Flips),
			zap.Duration("elapsed", s.Elapsed),
		)
		if dropped := s.Points - s.Placed; dropped > 0 {
			logger.Debug("dropped duplicate points", zap.Int("count", dropped))
		}
		if s.DroppedFlips > 0 {
			logger.Warn("flip stack overflowed, mesh may not be fully Delaunay",
				zap.Int("dropped_flips", s.DroppedFlips))
		}
	}
}
