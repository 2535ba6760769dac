package measure

import (
	"math"
	"math/rand"
	"testing"

	apperrors "github.com/astroviz/starplot/pkg/errors"
)

const tol = 1e-12

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPolarPointCartesian(t *testing.T) {
	tests := []struct {
		name     string
		pa, sep  float64
		wantX    float64
		wantY    float64
	}{
		{"north", 0, 6.0, 0, -6.0},
		{"east", 90, 6.0, 6.0, 0},
		{"south", 180, 2.5, 0, 2.5},
		{"west", 270, 4.0, -4.0, 0},
		{"zero separation", 45, 0, 0, 0},
		// A negative separation reflects the point through the origin.
		{"negative separation", 90, -3.0, -3.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PolarPoint{PA: tt.pa, Sep: tt.sep}.Cartesian()
			if !approxEqual(got.X, tt.wantX) || !approxEqual(got.Y, tt.wantY) {
				t.Errorf("Cartesian() = (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestToCartesianPreservesLengthAndOrder(t *testing.T) {
	s := PolarSeries{
		{PA: 90, Sep: 6.0},
		{PA: 90, Sep: 6.2},
		{PA: 0, Sep: 1.0},
	}

	got := ToCartesian(s)
	if len(got) != len(s) {
		t.Fatalf("length = %d, want %d", len(got), len(s))
	}
	if !approxEqual(got[0].X, 6.0) || !approxEqual(got[1].X, 6.2) {
		t.Errorf("order not preserved: %v", got)
	}
}

func TestToCartesianEmpty(t *testing.T) {
	if got := ToCartesian(nil); len(got) != 0 {
		t.Errorf("ToCartesian(nil) = %v, want empty", got)
	}
	if got := ToCartesian(PolarSeries{}); len(got) != 0 {
		t.Errorf("ToCartesian(empty) = %v, want empty", got)
	}
}

func TestNewPolarSeries(t *testing.T) {
	s, err := NewPolarSeries([]float64{0, 90}, []float64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 2 || s[1].PA != 90 || s[1].Sep != 2 {
		t.Errorf("unexpected series: %v", s)
	}

	_, err = NewPolarSeries([]float64{0, 90}, []float64{1})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("mismatched lengths: error = %v, want INVALID_INPUT", err)
	}
}

func TestNewCartesianSeries(t *testing.T) {
	_, err := NewCartesianSeries([]float64{1}, []float64{1, 2})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("mismatched lengths: error = %v, want INVALID_INPUT", err)
	}
}

func TestAverageSinglePoint(t *testing.T) {
	p, ok := Average(CartesianSeries{{X: 1.5, Y: -2.25}})
	if !ok {
		t.Fatal("Average of one point should be defined")
	}
	if !approxEqual(p.X, 1.5) || !approxEqual(p.Y, -2.25) {
		t.Errorf("Average = %v, want the point unchanged", p)
	}
}

func TestAverageEmpty(t *testing.T) {
	if _, ok := Average(nil); ok {
		t.Error("Average(nil) should be undefined")
	}
	if _, ok := Average(CartesianSeries{}); ok {
		t.Error("Average(empty) should be undefined")
	}
}

func TestAverageLCOVisits(t *testing.T) {
	// Two LCO visits at PA=90°: separations 6.0 and 6.2 average to (6.1, 0).
	s := ToCartesian(PolarSeries{{PA: 90, Sep: 6.0}, {PA: 90, Sep: 6.2}})
	p, ok := Average(s)
	if !ok {
		t.Fatal("Average should be defined")
	}
	if !approxEqual(p.X, 6.1) || !approxEqual(p.Y, 0) {
		t.Errorf("Average = (%v, %v), want (6.1, 0)", p.X, p.Y)
	}
}

func TestAverageOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := make(CartesianSeries, 50)
	for i := range s {
		s[i] = CartesianPoint{X: rng.NormFloat64() * 10, Y: rng.NormFloat64() * 10}
	}

	want, _ := Average(s)

	shuffled := make(CartesianSeries, len(s))
	copy(shuffled, s)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	got, _ := Average(shuffled)
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("Average changed under permutation: %v vs %v", got, want)
	}
}
