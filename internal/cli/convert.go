package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astroviz/starplot/pkg/chart"
	"github.com/astroviz/starplot/pkg/config"
	"github.com/astroviz/starplot/pkg/pipeline"
)

// convertCommand creates the convert command for normalization without
// rendering.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
		margin     float64
	)

	cmd := &cobra.Command{
		Use:   "convert [datasets.json]",
		Short: "Normalize measurement datasets to a figure",
		Long: `Normalize measurement datasets to a figure.

The convert command transforms polar measurements (position angle and
separation) into relative Cartesian positions, applies dataset aggregation,
and computes the shared square axis range. The output is a figure.json file
that can be rendered with the 'visualize' command.

Use 'plot' as a shortcut to go directly from datasets to a rendered image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], output, configPath, noCache, margin)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.figure.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "configuration file (TOML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&margin, "margin", 0, "axis margin fraction (default from config, 0.1)")

	return cmd
}

// runConvert normalizes the first figure of the document and writes it out.
func (c *CLI) runConvert(ctx context.Context, input, output, configPath string, noCache bool, margin float64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	doc, err := chart.ReadDocumentFile(input)
	if err != nil {
		return err
	}
	if len(doc.Figures) > 1 {
		printWarning("File holds %d figures; converting the first", len(doc.Figures))
	}
	req := doc.Figures[0]
	if margin > 0 {
		req.Margin = margin
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Request: req, Logger: c.Logger}
	applyFigureConfig(&opts, cfg)

	spinner := newSpinnerWithContext(ctx, "Normalizing measurements...")
	spinner.Start()

	fig, cacheHit, err := runner.NormalizeWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Normalization failed")
		return fmt.Errorf("convert: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	cfg.ApplyMarkers(fig)

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".figure.json"
	}

	if err := chart.WriteFigureFile(fig, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	points := 0
	for _, s := range fig.Series {
		points += len(s.Points)
	}

	printSuccess("Conversion complete")
	printFile(outputPath)
	printStats(len(fig.Series), points, cacheHit)
	printNewline()
	printNextStep("Render", "starplot visualize "+outputPath)

	return nil
}
