// Package sink provides output format renderers for scatter plots.
//
// # Overview
//
// A "sink" transforms a normalized [chart.Figure] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics
//   - JSON: Figure data export for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws a square plot area mapping the figure's shared axis range
// on both axes, so the rendered aspect ratio is exactly 1:1. It includes:
//
//   - Per-series markers (filled circles, stroked X shapes)
//   - Epoch color-coding with a vertical colorbar for date-coded series
//   - A legend for flat-colored series
//   - Axis ticks, grid lines, and labels
//
// Basic usage:
//
//	svg := sink.RenderSVG(figure,
//	    sink.WithSize(800, 800),
//	    sink.WithColormap("viridis_r"),
//	)
//
// # JSON Output
//
// [RenderJSON] exports the figure plus render options as JSON. An exported
// figure re-imports through [chart.ReadFigure] and renders identically.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the figure by first generating SVG, then
// converting via render.ToPDF and render.ToPNG:
//
//	pdf, err := sink.RenderPDF(figure, opts...)
//	png, err := sink.RenderPNG(figure, sink.WithScale(2), opts...)
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [chart.Figure]: github.com/astroviz/starplot/pkg/chart.Figure
// [chart.ReadFigure]: github.com/astroviz/starplot/pkg/chart.ReadFigure
package sink
