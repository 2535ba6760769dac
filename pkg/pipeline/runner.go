package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/astroviz/starplot/pkg/cache"
	"github.com/astroviz/starplot/pkg/chart"
	"github.com/astroviz/starplot/pkg/measure"
	"github.com/astroviz/starplot/pkg/observability"
	"github.com/astroviz/starplot/pkg/render/scatter/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete normalize → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	hooks := observability.Pipeline()

	// Stage 1: Normalize
	normalizeStart := time.Now()
	hooks.OnNormalizeStart(ctx, opts.Request.Title, len(opts.Request.Datasets))
	fig, normalizeHit, err := r.NormalizeWithCacheInfo(ctx, opts)
	result.Stats.NormalizeTime = time.Since(normalizeStart)
	hooks.OnNormalizeComplete(ctx, opts.Request.Title, countPoints(fig), result.Stats.NormalizeTime, err)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	result.Figure = fig
	result.Stats.DatasetCount = len(fig.Series)
	result.Stats.PointCount = countPoints(fig)
	result.CacheInfo.NormalizeHit = normalizeHit

	if figData, err := marshalFigure(fig); err == nil {
		result.FigureHash = cache.Hash(figData)
	}

	r.Logger.Info("normalized measurements",
		"series", len(fig.Series),
		"points", result.Stats.PointCount,
		"duration", result.Stats.NormalizeTime)

	// Stage 2: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, fig, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// NormalizeWithCacheInfo normalizes datasets with caching and returns cache
// hit info.
func (r *Runner) NormalizeWithCacheInfo(ctx context.Context, opts Options) (*chart.Figure, bool, error) {
	if err := opts.ValidateForNormalize(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	requestData, err := json.Marshal(opts.Request)
	if err != nil {
		return nil, false, fmt.Errorf("serialize request for cache key: %w", err)
	}
	cacheKey := r.Keyer.FigureKey(cache.Hash(requestData), opts.FigureKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if fig, err := chart.ReadFigure(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "figure")
				return fig, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "figure")
	}

	fig, err := normalizeRequest(opts.Request)
	if err != nil {
		return nil, false, err
	}

	if data, err := marshalFigure(fig); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLFigure) == nil {
			observability.Cache().OnCacheSet(ctx, "figure", len(data))
		}
	}

	return fig, false, nil
}

// Normalize is a convenience wrapper that calls NormalizeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Normalize(ctx context.Context, opts Options) (*chart.Figure, error) {
	fig, _, err := r.NormalizeWithCacheInfo(ctx, opts)
	return fig, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, fig *chart.Figure, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	figData, err := marshalFigure(fig)
	if err != nil {
		return nil, false, fmt.Errorf("serialize figure for cache key: %w", err)
	}
	figHash := cache.Hash(figData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(figHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := renderFormats(fig, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(figHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, fig *chart.Figure, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, fig, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// normalizeRequest runs the measurement transform and attaches figure-level
// overrides from the request.
func normalizeRequest(req chart.Request) (*chart.Figure, error) {
	frame, err := measure.Normalize(req.Datasets, req.Margin)
	if err != nil {
		return nil, err
	}

	fig := chart.FromFrame(frame)
	if req.Title != "" {
		fig.Title = req.Title
	}
	if req.XLabel != "" {
		fig.XLabel = req.XLabel
	}
	if req.YLabel != "" {
		fig.YLabel = req.YLabel
	}
	return fig, nil
}

// renderFormats renders the figure in every requested format.
func renderFormats(fig *chart.Figure, opts Options) (map[string][]byte, error) {
	svgOpts := []sink.SVGOption{
		sink.WithSize(opts.Width, opts.Height),
		sink.WithColormap(opts.Colormap),
	}
	if opts.NoLegend {
		svgOpts = append(svgOpts, sink.WithoutLegend())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderSVG(fig, svgOpts...)
		case FormatPNG:
			data, err := sink.RenderPNG(fig, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := sink.RenderPDF(fig, sink.WithPDFSVGOptions(svgOpts...))
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			artifacts[format] = data
		case FormatJSON:
			data, err := sink.RenderJSON(fig,
				sink.WithJSONSize(opts.Width, opts.Height),
				sink.WithJSONColormap(opts.Colormap))
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[format] = data
		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}
	return artifacts, nil
}

func marshalFigure(fig *chart.Figure) ([]byte, error) {
	var buf bytes.Buffer
	if err := chart.WriteFigure(fig, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func countPoints(fig *chart.Figure) int {
	if fig == nil {
		return 0
	}
	n := 0
	for _, s := range fig.Series {
		n += len(s.Points)
	}
	return n
}
