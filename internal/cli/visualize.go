package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astroviz/starplot/pkg/chart"
	"github.com/astroviz/starplot/pkg/config"
	"github.com/astroviz/starplot/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a figure.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		configPath string
		noCache    bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "visualize [figure.json]",
		Short: "Render a plot from a normalized figure",
		Long: `Render a plot from a normalized figure.

The visualize command takes a figure.json file (produced by 'convert') and
renders it to SVG, PNG, PDF, or JSON. The figure contains the normalized
points, styling, and axis range, so this step is purely about rendering.

Results are cached locally for faster subsequent runs.

Use 'plot' as a shortcut to go directly from datasets to a rendered image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateColormap(opts.Colormap); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, configPath, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&configPath, "config", "", "configuration file (TOML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "canvas width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "canvas height in pixels")
	cmd.Flags().StringVar(&opts.Colormap, "colormap", "", "epoch colormap: plasma, plasma_r, viridis, viridis_r")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (default 2.0)")
	cmd.Flags().BoolVar(&opts.NoLegend, "no-legend", false, "suppress the legend")

	return cmd
}

// runVisualize loads the figure and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output, configPath string, noCache bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	fig, err := chart.ReadFigureFile(input)
	if err != nil {
		return fmt.Errorf("load figure %s: %w", input, err)
	}
	cfg.ApplyMarkers(fig)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	applyFigureConfig(&opts, cfg)

	spinner := newSpinnerWithContext(ctx, "Rendering figure...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, fig, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	points := 0
	for _, s := range fig.Series {
		points += len(s.Points)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
		series:    len(fig.Series),
		points:    points,
	})
}
