// Package measure implements the coordinate and aggregation transform for
// double-star relative astrometry.
//
// # Overview
//
// Observations of a double star arrive as polar measurements: a position
// angle (degrees, 0° = North, increasing toward East) and a separation
// (arcseconds). This package converts such measurements to Cartesian
// offsets on the plane of the sky, reduces multi-visit series to a single
// representative point, and computes the square viewing window used to
// render the data without distortion.
//
// # Sign convention
//
// For a position angle θ and separation ρ:
//
//	x = ρ·sin(θ)
//	y = -ρ·cos(θ)
//
// so North (θ=0°) maps to (0, -ρ) and East (θ=90°) to (ρ, 0). A negative
// separation is not rejected; it produces a point reflected through the
// origin.
//
// # Datasets
//
// [Normalize] is the single entry point for whole-figure preparation. It
// takes a list of [Dataset] values, each tagged with its coordinate form
// (polar or Cartesian) and its aggregation policy (keep all points, or
// average to one), and produces Cartesian series plus a shared [AxisRange].
// The first dataset is the required primary series; later datasets that
// are absent or empty are silently omitted, never replaced by a point at
// the origin.
//
// All functions are pure and safe for concurrent use.
package measure
