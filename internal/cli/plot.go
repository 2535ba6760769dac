package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astroviz/starplot/pkg/chart"
	"github.com/astroviz/starplot/pkg/config"
	"github.com/astroviz/starplot/pkg/pipeline"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	output      string
	configPath  string
	noCache     bool
	refresh     bool
	interactive bool
	formatsStr  string
	margin      float64
	width       int
	height      int
	colormap    string
	scale       float64
	noLegend    bool
	title       string
}

// plotCommand creates the plot command for the full normalize → render run.
func (c *CLI) plotCommand() *cobra.Command {
	var opts plotOpts

	cmd := &cobra.Command{
		Use:   "plot [datasets.json]",
		Short: "Render measurement datasets as a scatter plot",
		Long: `Render measurement datasets as a scatter plot.

The plot command reads a JSON file of labeled datasets (polar position
angle/separation or Cartesian offsets), normalizes them onto a shared square
axis range, and renders the result to SVG, PNG, PDF, or JSON.

Input files hold either a single figure request or a list under "figures".
With several figures, each renders to its own file; --interactive opens a
picker to plot just one.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlot(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "configuration file (TOML)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick one figure interactively from a multi-figure file")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.margin, "margin", 0, "axis margin fraction (default from config, 0.1)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "canvas width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "canvas height in pixels")
	cmd.Flags().StringVar(&opts.colormap, "colormap", "", "epoch colormap: plasma, plasma_r, viridis, viridis_r")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default 2.0)")
	cmd.Flags().BoolVar(&opts.noLegend, "no-legend", false, "suppress the legend")
	cmd.Flags().StringVar(&opts.title, "title", "", "figure title override")

	return cmd
}

// runPlot loads the document and renders each selected figure.
func (c *CLI) runPlot(ctx context.Context, input string, opts plotOpts) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	doc, err := chart.ReadDocumentFile(input)
	if err != nil {
		return err
	}

	requests := doc.Figures
	if opts.interactive && len(requests) > 1 {
		selected, err := pickFigure(requests)
		if err != nil {
			return err
		}
		if selected < 0 {
			printInfo("No figure selected")
			return nil
		}
		requests = requests[selected : selected+1]
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	formats := parseFormats(opts.formatsStr)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	for i, req := range requests {
		pipeOpts := c.buildPipelineOptions(req, opts, formats, cfg)

		suffix := ""
		if len(requests) > 1 {
			suffix = fmt.Sprintf("_%d", i+1)
		}
		if err := c.plotOne(ctx, runner, pipeOpts, cfg, input, opts.output, suffix); err != nil {
			return err
		}
	}
	return nil
}

// buildPipelineOptions merges flags, the request, and the configuration.
func (c *CLI) buildPipelineOptions(req chart.Request, opts plotOpts, formats []string, cfg config.Config) pipeline.Options {
	if opts.margin > 0 {
		req.Margin = opts.margin
	}
	if opts.title != "" {
		req.Title = opts.title
	}

	pipeOpts := pipeline.Options{
		Request:  req,
		Refresh:  opts.refresh,
		Formats:  formats,
		Width:    opts.width,
		Height:   opts.height,
		Colormap: opts.colormap,
		Scale:    opts.scale,
		NoLegend: opts.noLegend,
		Logger:   c.Logger,
	}
	applyFigureConfig(&pipeOpts, cfg)
	return pipeOpts
}

// plotOne runs the pipeline for a single figure and writes its artifacts.
func (c *CLI) plotOne(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, cfg config.Config, input, output, suffix string) error {
	spinner := newSpinnerWithContext(ctx, "Plotting measurements...")
	spinner.Start()

	fig, normalizeHit, err := runner.NormalizeWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Normalization failed")
		return fmt.Errorf("normalize: %w", err)
	}
	cfg.ApplyMarkers(fig)

	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, fig, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	points := 0
	for _, s := range fig.Series {
		points += len(s.Points)
	}

	printSuccess("Plot complete")
	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		suffix:    suffix,
		cacheHit:  normalizeHit && renderHit,
		series:    len(fig.Series),
		points:    points,
	})
}
