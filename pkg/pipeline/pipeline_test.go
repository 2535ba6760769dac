package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/astroviz/starplot/pkg/cache"
	"github.com/astroviz/starplot/pkg/chart"
	"github.com/astroviz/starplot/pkg/measure"
)

func testRequest() chart.Request {
	return chart.Request{
		Datasets: []measure.Dataset{
			{
				Name: chart.DatasetHistorical,
				Form: measure.FormPolar,
				Polar: measure.PolarSeries{
					{PA: 0, Sep: 2.0},
					{PA: 90, Sep: 3.0},
					{PA: 180, Sep: 2.5},
				},
				Epochs: []float64{1991.25, 2000.5, 2016.0},
			},
			{
				Name:      chart.DatasetLCO,
				Form:      measure.FormCartesian,
				Cartesian: measure.CartesianSeries{{X: 6.0, Y: 0}, {X: 6.2, Y: 0}},
				Aggregate: measure.AverageToOne,
			},
			{
				Name:      chart.DatasetPrediction,
				Form:      measure.FormCartesian,
				Cartesian: measure.CartesianSeries{{X: 1.0, Y: -1.0}},
			},
		},
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("gif"); err == nil {
		t.Error("ValidateFormat(gif) should fail")
	}
	if err := ValidateFormats([]string{FormatSVG, "bmp"}); err == nil {
		t.Error("ValidateFormats with invalid entry should fail")
	}
}

func TestValidateColormap(t *testing.T) {
	if err := ValidateColormap(""); err != nil {
		t.Errorf("empty colormap should be valid: %v", err)
	}
	if err := ValidateColormap("plasma_r"); err != nil {
		t.Errorf("plasma_r should be valid: %v", err)
	}
	if err := ValidateColormap("jet"); err == nil {
		t.Error("unknown colormap should fail")
	}
}

func TestOptionsSetRenderDefaults(t *testing.T) {
	var opts Options
	opts.SetRenderDefaults()
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("default size = %dx%d", opts.Width, opts.Height)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("default scale = %v", opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("default logger should be set")
	}
}

func TestValidateForNormalizeRequiresDatasets(t *testing.T) {
	var opts Options
	if err := opts.ValidateForNormalize(); err == nil {
		t.Error("empty request should fail validation")
	}
}

func TestExecuteProducesSVG(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	opts := Options{Request: testRequest(), Formats: []string{FormatSVG, FormatJSON}}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<svg") {
		t.Error("svg artifact should contain an svg element")
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("json artifact should not be empty")
	}
	if result.FigureHash == "" {
		t.Error("figure hash should be computed")
	}
	// 3 historical + 1 averaged LCO + 1 prediction.
	if result.Stats.PointCount != 5 {
		t.Errorf("point count = %d, want 5", result.Stats.PointCount)
	}
	if result.CacheInfo.NormalizeHit || result.CacheInfo.RenderHit {
		t.Error("null cache should never report hits")
	}
}

func TestExecuteAppliesRequestOverrides(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	req := testRequest()
	req.Title = "WDS 01234+5678"
	req.XLabel = "dx"
	opts := Options{Request: req}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Figure.Title != "WDS 01234+5678" {
		t.Errorf("title = %q", result.Figure.Title)
	}
	if result.Figure.XLabel != "dx" {
		t.Errorf("x label = %q", result.Figure.XLabel)
	}
	// Unset labels keep their defaults.
	if result.Figure.YLabel != chart.DefaultYLabel {
		t.Errorf("y label = %q", result.Figure.YLabel)
	}
}

func TestNormalizeCaching(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fileCache, nil, nil)
	opts := Options{Request: testRequest()}

	ctx := context.Background()
	if _, hit, err := runner.NormalizeWithCacheInfo(ctx, opts); err != nil || hit {
		t.Fatalf("first run: hit=%v err=%v", hit, err)
	}
	fig, hit, err := runner.NormalizeWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !hit {
		t.Error("second run should hit the cache")
	}
	if len(fig.Series) != 3 {
		t.Errorf("cached figure series = %d, want 3", len(fig.Series))
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	if _, hit, err := runner.NormalizeWithCacheInfo(ctx, opts); err != nil || hit {
		t.Errorf("refresh run: hit=%v err=%v", hit, err)
	}
}

func TestRenderCaching(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fileCache, nil, nil)
	opts := Options{Request: testRequest()}

	ctx := context.Background()
	fig, err := runner.Normalize(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, err := runner.RenderWithCacheInfo(ctx, fig, opts); err != nil || hit {
		t.Fatalf("first render: hit=%v err=%v", hit, err)
	}
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, fig, opts)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !hit {
		t.Error("second render should hit the cache")
	}
	if len(artifacts[FormatSVG]) == 0 {
		t.Error("cached svg should not be empty")
	}

	// Different size misses the cache.
	opts.Width, opts.Height = 800, 800
	if _, hit, err := runner.RenderWithCacheInfo(ctx, fig, opts); err != nil || hit {
		t.Errorf("resized render: hit=%v err=%v", hit, err)
	}
}

func TestExecuteRejectsInvalidColormap(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := Options{Request: testRequest(), Colormap: "jet"}
	if _, err := runner.Execute(context.Background(), opts); err == nil {
		t.Error("unknown colormap should fail")
	}
}

func TestExecutePropagatesNormalizeErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	// All-identical points make the axis range degenerate.
	opts := Options{Request: chart.Request{
		Datasets: []measure.Dataset{{
			Name:      chart.DatasetHistorical,
			Form:      measure.FormCartesian,
			Cartesian: measure.CartesianSeries{{X: 1, Y: 1}, {X: 1, Y: 1}},
		}},
	}}
	if _, err := runner.Execute(context.Background(), opts); err == nil {
		t.Error("degenerate range should fail")
	}
}
