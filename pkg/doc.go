// Package pkg provides the core libraries for Starplot double-star plotting.
//
// # Overview
//
// Starplot turns double-star astrometry (position angle and separation
// measurements) into square scatter plots of the secondary's position
// relative to the primary. The pkg directory is organized into five areas:
//
//  1. [measure] - Coordinate transforms, aggregation, and axis framing
//  2. [chart] - Figure model and JSON input/output
//  3. [render] - SVG/PNG/PDF/JSON sinks and styling
//  4. [pipeline] - Orchestration (normalize → render) with caching
//  5. [cache] - File and Redis backed content caches
//
// # Architecture
//
// The typical data flow through Starplot:
//
//	Measurement Datasets (JSON)
//	         ↓
//	    [measure] package (polar → Cartesian, averaging, axis range)
//	         ↓
//	    [chart] package (figure model + series styling)
//	         ↓
//	    [render] package (scatter sinks)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// The pipeline package ties the stages together:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Request: chart.Request{Datasets: datasets},
//	    Formats: []string{"svg"},
//	})
//
// Supporting packages: [config] for TOML configuration, [errors] for coded
// errors, [observability] for pipeline and cache hooks, and [buildinfo] for
// version stamping.
package pkg
