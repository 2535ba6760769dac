package measure

import (
	"testing"

	apperrors "github.com/astroviz/starplot/pkg/errors"
)

func historicalDataset() Dataset {
	return Dataset{
		Name: "historical",
		Form: FormPolar,
		Polar: PolarSeries{
			{PA: 90, Sep: 6.0},
			{PA: 85, Sep: 6.3},
			{PA: 95, Sep: 5.8},
		},
		Epochs: []float64{1910.2, 1963.5, 2016.0},
	}
}

func TestNormalizeAllPolar(t *testing.T) {
	datasets := []Dataset{
		historicalDataset(),
		{
			Name:      "gaia",
			Label:     "Gaia DR3 measurement",
			Form:      FormPolar,
			Polar:     PolarSeries{{PA: 91, Sep: 6.05}},
			Aggregate: KeepAll,
		},
		{
			Name:      "lco",
			Label:     "LCO measurement (average)",
			Form:      FormPolar,
			Polar:     PolarSeries{{PA: 90, Sep: 6.0}, {PA: 90, Sep: 6.2}},
			Aggregate: AverageToOne,
		},
	}

	frame, err := Normalize(datasets, DefaultMargin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(frame.Series) != 3 {
		t.Fatalf("series count = %d, want 3", len(frame.Series))
	}

	lco := frame.Series[2]
	if !lco.Averaged {
		t.Error("LCO series should be marked averaged")
	}
	if len(lco.Points) != 1 {
		t.Fatalf("averaged series has %d points, want 1", len(lco.Points))
	}
	if !approxEqual(lco.Points[0].X, 6.1) || !approxEqual(lco.Points[0].Y, 0) {
		t.Errorf("LCO average = %v, want (6.1, 0)", lco.Points[0])
	}

	// The window must contain everything, including the averaged point.
	for _, s := range frame.Series {
		for _, p := range s.Points {
			if !frame.Range.Contains(p) {
				t.Errorf("range does not contain %v from %s", p, s.Name)
			}
		}
	}
}

func TestNormalizeCartesianWithPrediction(t *testing.T) {
	datasets := []Dataset{
		{
			Name:      "historical",
			Form:      FormCartesian,
			Cartesian: CartesianSeries{{X: 2.88, Y: -5.17}, {X: 2.91, Y: -5.13}},
			Epochs:    []float64{2018.2, 2019.2},
		},
		{
			Name:      "lco",
			Form:      FormCartesian,
			Cartesian: CartesianSeries{{X: 2.914, Y: -5.132}},
			Aggregate: AverageToOne,
		},
		{
			Name:      "prediction",
			Label:     "Prediction",
			Form:      FormCartesian,
			Cartesian: CartesianSeries{{X: 2.9336, Y: -5.1224}},
		},
	}

	frame, err := Normalize(datasets, DefaultMargin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(frame.Series) != 3 {
		t.Fatalf("series count = %d, want 3", len(frame.Series))
	}

	// A prediction point is already a single point; it is never averaged,
	// but it participates in the range union.
	pred := frame.Series[2]
	if pred.Averaged {
		t.Error("prediction series should not be averaged")
	}
	if !frame.Range.Contains(pred.Points[0]) {
		t.Errorf("range does not contain prediction point %v", pred.Points[0])
	}
}

func TestNormalizeOmitsEmptyOptionalDatasets(t *testing.T) {
	datasets := []Dataset{
		historicalDataset(),
		{Name: "gaia", Form: FormCartesian},                      // absent
		{Name: "lco", Form: FormPolar, Aggregate: AverageToOne},  // empty, averaged
	}

	frame, err := Normalize(datasets, DefaultMargin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(frame.Series) != 1 {
		t.Fatalf("series count = %d, want 1 (empty datasets must be omitted)", len(frame.Series))
	}
	if frame.Series[0].Name != "historical" {
		t.Errorf("surviving series = %q, want historical", frame.Series[0].Name)
	}
}

func TestNormalizeRequiresPrimaryDataset(t *testing.T) {
	_, err := Normalize(nil, DefaultMargin)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("no datasets: error = %v, want INVALID_INPUT", err)
	}

	_, err = Normalize([]Dataset{{Name: "historical", Form: FormPolar}}, DefaultMargin)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("empty primary: error = %v, want INVALID_INPUT", err)
	}
}

func TestNormalizeValidation(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
		code apperrors.Code
	}{
		{
			name: "mixed forms",
			ds: Dataset{
				Name:      "historical",
				Form:      FormPolar,
				Polar:     PolarSeries{{PA: 0, Sep: 1}},
				Cartesian: CartesianSeries{{X: 1, Y: 1}},
			},
			code: apperrors.ErrCodeInvalidDataset,
		},
		{
			name: "unknown form",
			ds:   Dataset{Name: "historical", Form: "equatorial"},
			code: apperrors.ErrCodeInvalidDataset,
		},
		{
			name: "unknown aggregation",
			ds: Dataset{
				Name:      "historical",
				Form:      FormPolar,
				Polar:     PolarSeries{{PA: 0, Sep: 1}},
				Aggregate: "median",
			},
			code: apperrors.ErrCodeInvalidDataset,
		},
		{
			name: "epoch length mismatch",
			ds: Dataset{
				Name:   "historical",
				Form:   FormPolar,
				Polar:  PolarSeries{{PA: 0, Sep: 1}, {PA: 90, Sep: 2}},
				Epochs: []float64{2001.5},
			},
			code: apperrors.ErrCodeInvalidInput,
		},
		{
			name: "bad name",
			ds:   Dataset{Name: "", Form: FormPolar, Polar: PolarSeries{{PA: 0, Sep: 1}}},
			code: apperrors.ErrCodeInvalidDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]Dataset{tt.ds}, DefaultMargin)
			if !apperrors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestNormalizeDefaultsMargin(t *testing.T) {
	frame, err := Normalize([]Dataset{historicalDataset()}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// margin 0 falls back to DefaultMargin; recompute with the explicit
	// default and compare.
	explicit, err := Normalize([]Dataset{historicalDataset()}, DefaultMargin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(frame.Range.HalfExtent, explicit.Range.HalfExtent) {
		t.Errorf("HalfExtent = %v, want %v", frame.Range.HalfExtent, explicit.Range.HalfExtent)
	}
}
