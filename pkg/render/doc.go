// Package render provides visualization rendering for double-star measurements.
//
// # Overview
//
// This package contains the rendering pipeline that transforms normalized
// measurement figures into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Scatter plot rendering (in the scatter subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(figure, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Scatter Plots
//
// The scatter subpackage renders measurement figures as square scatter plots
// on relative X/Y axes, with per-dataset marker styling, an epoch colorbar
// for date-coded series, and a legend.
//
// Key scatter subpackages:
//   - scatter/sink: Output formats (SVG, JSON, PNG, PDF)
//   - scatter/styles: Marker shapes and sequential colormaps
package render
