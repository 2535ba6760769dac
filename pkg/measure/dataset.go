package measure

import (
	apperrors "github.com/astroviz/starplot/pkg/errors"
)

// Form identifies the coordinate form of a dataset's points.
type Form string

// Coordinate forms. A dataset is either fully polar or fully Cartesian,
// never mixed.
const (
	FormPolar     Form = "polar"
	FormCartesian Form = "cartesian"
)

// Aggregation identifies the reduction policy applied to a dataset.
type Aggregation string

// Aggregation policies.
const (
	// KeepAll plots every point of the series.
	KeepAll Aggregation = "keep-all"

	// AverageToOne collapses the series to its component-wise mean,
	// as done for repeated LCO visits.
	AverageToOne Aggregation = "average"
)

// Dataset is one labeled point series supplied to [Normalize]. Exactly one
// of Polar or Cartesian is populated, matching Form. Epochs, when present,
// carry one observation year per point; they are used only for downstream
// color-coding and never by the transform itself.
type Dataset struct {
	Name      string          `json:"name"`
	Label     string          `json:"label,omitempty"`
	Form      Form            `json:"form"`
	Polar     PolarSeries     `json:"polar,omitempty"`
	Cartesian CartesianSeries `json:"cartesian,omitempty"`
	Epochs    []float64       `json:"epochs,omitempty"`
	Aggregate Aggregation     `json:"aggregate,omitempty"`
}

// Len returns the number of points in the dataset's populated series.
func (d Dataset) Len() int {
	if d.Form == FormPolar {
		return len(d.Polar)
	}
	return len(d.Cartesian)
}

/// validate checks the dataset invariants: a known form, no mixed forms,
// a known aggregation policy, and epoch count matching point count.
func (d Dataset) validate() error {
	if err := apperrors.ValidateDatasetName(d.Name); err != nil {
		return err
	}

	switch d.Form {
	case FormPolar:
		if len(d.Cartesian) > 0 {
			return apperrors.New(apperrors.ErrCodeInvalidDataset,
				"dataset %q is polar but carries Cartesian points", d.Name)
		}
	case FormCartesian:
		if len(d.Polar) > 0 {
			return apperrors.New(apperrors.ErrCodeInvalidDataset,
				"dataset %q is Cartesian but carries polar points", d.Name)
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidDataset,
			"dataset %q has unknown coordinate form %q", d.Name, d.Form)
	}

	switch d.Aggregate {
	case "", KeepAll, AverageToOne:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidDataset,
			"dataset %q has unknown aggregation policy %q", d.Name, d.Aggregate)
	}

	if len(d.Epochs) > 0 && len(d.Epochs) != d.Len() {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"dataset %q: epochs and points must have the same length: %d vs %d",
			d.Name, len(d.Epochs), d.Len())
	}

	return nil
}

// NormalizedSeries is one dataset after conversion and aggregation: always
// Cartesian, possibly reduced to a single averaged point.
type NormalizedSeries struct {
	Name     string          `json:"name"`
	Label    string          `json:"label,omitempty"`
	Points   CartesianSeries `json:"points"`
	Epochs   []float64       `json:"epochs,omitempty"`
	Averaged bool            `json:"averaged,omitempty"`
}

// Frame is the result of normalizing a set of datasets: the surviving series
// plus the square viewing window covering all of their points.
type Frame struct {
	Series []NormalizedSeries `json:"series"`
	Range  AxisRange          `json:"range"`
}

// Normalize prepares a whole figure in one pass. It converts polar datasets
// to Cartesian, applies each dataset's aggregation policy, drops optional
// datasets that are absent or empty, and computes the shared [AxisRange]
// over the union of everything that survives.
//
// The first dataset is the required primary series (historical data in the
// reference behavior) and must be non-empty; later datasets are optional.
// A margin ≤ 0 uses [DefaultMargin].
//
// Normalize is a pure single-pass computation with no retained state; it is
// safe to call concurrently.
func Normalize(datasets []Dataset, margin float64) (*Frame, error) {
	if len(datasets) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "no datasets supplied")
	}
	if margin <= 0 {
		margin = DefaultMargin
	}

	frame := &Frame{}
	var union []CartesianSeries

	for i, d := range datasets {
		if err := d.validate(); err != nil {
			return nil, err
		}

		points := d.Cartesian
		if d.Form == FormPolar {
			points = ToCartesian(d.Polar)
		}

		if len(points) == 0 {
			if i == 0 {
				return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
					"required primary dataset %q has no points", d.Name)
			}
			// Empty-but-present behaves exactly like absent: omitted from
			// both the range union and the output.
			continue
		}

		s := NormalizedSeries{
			Name:   d.Name,
			Label:  d.Label,
			Points: points,
			Epochs: d.Epochs,
		}

		if d.Aggregate == AverageToOne {
			mean, ok := Average(points)
			if !ok {
				continue
			}
			s.Points = CartesianSeries{mean}
			s.Epochs = nil
			s.Averaged = true
		}

		frame.Series = append(frame.Series, s)
		union = append(union, s.Points)
	}

	r, err := SquareRange(union, margin)
	if err != nil {
		return nil, err
	}
	frame.Range = r

	return frame, nil
}
