// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Command r2mesh builds Delaunay triangulations and Voronoi diagrams of
// generated point sets and renders them as SVG or PNG.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	verbose    bool
	cfg        Config
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:          "r2mesh",
		Short:        "Planar Delaunay triangulation and Voronoi diagram renderer",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(pipelineCmd(opts, "triangulate", "Triangulate a generated point set", runTriangulate))
	rootCmd.AddCommand(pipelineCmd(opts, "voronoi", "Build and relax a Voronoi diagram", runVoronoi))
	rootCmd.AddCommand(shadeCmd(opts))

	return rootCmd
}

func pipelineCmd(opts *options, use, short string, run func(Config, *zap.Logger) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, opts, run)
		},
	}
	bindFlags(cmd, &opts.cfg)
	return cmd
}

func shadeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shade [image]",
		Short: "Paint a mesh built over an image with its colors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				// Marks the value as set so a config file does not override it.
				if err := cmd.Flags().Set("image", args[0]); err != nil {
					return err
				}
			}
			return execute(cmd, opts, runShade)
		},
	}
	bindFlags(cmd, &opts.cfg)
	cmd.Flags().StringVar(&opts.cfg.Image, "image", opts.cfg.Image, "image to sample colors from")
	return cmd
}

func bindFlags(cmd *cobra.Command, cfg *Config) {
	f := cmd.Flags()
	f.StringVar(&cfg.Points.Source, "source", cfg.Points.Source, "point source: random, poisson or corners")
	f.IntVarP(&cfg.Points.Count, "count", "n", cfg.Points.Count, "number of points")
	f.Int64Var(&cfg.Points.Seed, "seed", cfg.Points.Seed, "random seed")
	f.Float64Var(&cfg.Points.Width, "width", cfg.Points.Width, "width of the point area")
	f.Float64Var(&cfg.Points.Height, "height", cfg.Points.Height, "height of the point area")
	f.Float64Var(&cfg.Points.Radius, "radius", cfg.Points.Radius, "minimum distance between poisson points")
	f.Float64Var(&cfg.Eps, "eps", cfg.Eps, "duplicate point tolerance, 0 for the default")
	f.IntVar(&cfg.Relax, "relax", cfg.Relax, "Lloyd relaxation steps")
	f.BoolVar(&cfg.Verify, "verify", cfg.Verify, "check the mesh against a lifted convex hull")
	f.StringVarP(&cfg.Output.Path, "output", "o", cfg.Output.Path, "output file, .svg or .png")
	f.BoolVar(&cfg.Output.DrawVoronoi, "voronoi", cfg.Output.DrawVoronoi, "draw the Voronoi diagram")
}

// execute resolves the effective config, where explicitly set flags take
// precedence over the config file, and runs the command.
func execute(cmd *cobra.Command, opts *options, run func(Config, *zap.Logger) error) error {
	cfg := opts.cfg
	if opts.configPath != "" {
		fileCfg, err := LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = mergeFlags(cmd, fileCfg, opts.cfg)
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return run(cfg, logger)
}

// mergeFlags copies the values of the flags set on cmd from flagCfg into base.
func mergeFlags(cmd *cobra.Command, base, flagCfg Config) Config {
	set := cmd.Flags().Changed
	if set("source") {
		base.Points.Source = flagCfg.Points.Source
	}
	if set("count") {
		base.Points.Count = flagCfg.Points.Count
	}
	if set("seed") {
		base.Points.Seed = flagCfg.Points.Seed
	}
	if set("width") {
		base.Points.Width = flagCfg.Points.Width
	}
	if set("height") {
		base.Points.Height = flagCfg.Points.Height
	}
	if set("radius") {
		base.Points.Radius = flagCfg.Points.Radius
	}
	if set("eps") {
		base.Eps = flagCfg.Eps
	}
	if set("relax") {
		base.Relax = flagCfg.Relax
	}
	if set("verify") {
		base.Verify = flagCfg.Verify
	}
	if set("output") {
		base.Output.Path = flagCfg.Output.Path
	}
	if set("voronoi") {
		base.Output.DrawVoronoi = flagCfg.Output.DrawVoronoi
	}
	if set("image") {
		base.Image = flagCfg.Image
	}
	return base
}
