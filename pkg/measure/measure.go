package measure

import (
	"math"

	apperrors "github.com/astroviz/starplot/pkg/errors"
)

// PolarPoint is a single polar measurement.
type PolarPoint struct {
	PA  float64 `json:"pa"`  // position angle in degrees, 0° = North, toward East
	Sep float64 `json:"sep"` // separation in arcseconds
}

// CartesianPoint is a point on the plane of the sky, in arcseconds.
type CartesianPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PolarSeries is an ordered sequence of polar measurements.
type PolarSeries []PolarPoint

// CartesianSeries is an ordered sequence of Cartesian points.
type CartesianSeries []CartesianPoint

// Cartesian converts a polar measurement to Cartesian form.
// North (PA=0°) maps to (0, -Sep); East (PA=90°) to (Sep, 0).
func (p PolarPoint) Cartesian() CartesianPoint {
	rad := p.PA * math.Pi / 180
	return CartesianPoint{
		X: p.Sep * math.Sin(rad),
		Y: -p.Sep * math.Cos(rad),
	}
}

// ToCartesian converts a polar series to Cartesian form, preserving length
// and order. An empty or nil series yields an empty result, not an error.
func ToCartesian(s PolarSeries) CartesianSeries {
	out := make(CartesianSeries, len(s))
	for i, p := range s {
		out[i] = p.Cartesian()
	}
	return out
}

// NewPolarSeries builds a series from parallel angle and separation slices.
// Mismatched lengths are a caller contract violation and return an
// INVALID_INPUT error rather than silently truncating.
func NewPolarSeries(pa, sep []float64) (PolarSeries, error) {
	if len(pa) != len(sep) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"position angle and separation must have the same length: %d vs %d", len(pa), len(sep))
	}
	out := make(PolarSeries, len(pa))
	for i := range pa {
		out[i] = PolarPoint{PA: pa[i], Sep: sep[i]}
	}
	return out, nil
}

// NewCartesianSeries builds a series from parallel x and y slices.
// Mismatched lengths return an INVALID_INPUT error.
func NewCartesianSeries(x, y []float64) (CartesianSeries, error) {
	if len(x) != len(y) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"x and y must have the same length: %d vs %d", len(x), len(y))
	}
	out := make(CartesianSeries, len(x))
	for i := range x {
		out[i] = CartesianPoint{X: x[i], Y: y[i]}
	}
	return out, nil
}

// Average reduces a series to its component-wise arithmetic mean.
// The second return value is false for an empty or nil series: callers must
// treat that as "nothing to plot for this dataset", never as a point at the
// origin.
func Average(s CartesianSeries) (CartesianPoint, bool) {
	if len(s) == 0 {
		return CartesianPoint{}, false
	}
	var sumX, sumY float64
	for _, p := range s {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(s))
	return CartesianPoint{X: sumX / n, Y: sumY / n}, true
}
