package measure

import (
	"math"

	apperrors "github.com/astroviz/starplot/pkg/errors"
)

// DefaultMargin is the fraction added around the data's bounding box when
// computing the viewing window.
const DefaultMargin = 0.1

// AxisRange is a square viewing window centered on the data's bounding-box
// midpoint. Both axes cover the identical numeric span [Center±HalfExtent],
// which keeps a rendered plot undistorted under a 1:1 aspect setting.
type AxisRange struct {
	Center     CartesianPoint `json:"center"`
	HalfExtent float64        `json:"half_extent"`
}

// MinX returns the lower X bound of the window.
func (r AxisRange) MinX() float64 { return r.Center.X - r.HalfExtent }

// MaxX returns the upper X bound of the window.
func (r AxisRange) MaxX() float64 { return r.Center.X + r.HalfExtent }

// MinY returns the lower Y bound of the window.
func (r AxisRange) MinY() float64 { return r.Center.Y - r.HalfExtent }

// MaxY returns the upper Y bound of the window.
func (r AxisRange) MaxY() float64 { return r.Center.Y + r.HalfExtent }

// Span returns the full axis span (identical for X and Y).
func (r AxisRange) Span() float64 { return 2 * r.HalfExtent }

// Contains reports whether the point lies inside the window.
func (r AxisRange) Contains(p CartesianPoint) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// SquareRange computes the shared viewing window for the union of the given
// series. Series with no points are excluded from the union, not treated as
// an error.
//
// The window covers max(width, height) of the union's bounding box, inflated
// by the margin fraction and centered on the bounding-box midpoint.
//
// Errors:
//   - EMPTY_UNION if no series contributes any point
//   - DEGENERATE_RANGE if every contributing point is identical, since that
//     would produce a zero-size window
func SquareRange(sets []CartesianSeries, margin float64) (AxisRange, error) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	n := 0

	for _, s := range sets {
		for _, p := range s {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
			n++
		}
	}

	if n == 0 {
		return AxisRange{}, apperrors.New(apperrors.ErrCodeEmptyUnion,
			"no points supplied: at least one non-empty series is required")
	}

	width := maxX - minX
	height := maxY - minY
	extent := math.Max(width, height)
	if extent == 0 {
		return AxisRange{}, apperrors.New(apperrors.ErrCodeDegenerateRange,
			"all %d points are identical: cannot derive a non-zero viewing window", n)
	}

	extent *= 1 + margin

	return AxisRange{
		Center: CartesianPoint{
			X: 0.5 * (minX + maxX),
			Y: 0.5 * (minY + maxY),
		},
		HalfExtent: extent / 2,
	}, nil
}
