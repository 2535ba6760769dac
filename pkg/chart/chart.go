// Package chart defines the figure model handed to the rendering collaborator.
//
// A [Figure] is the canonical serialization of a normalized plot: Cartesian
// series with styling metadata plus the shared square axis range. The format
// is human-readable JSON designed for round-trip fidelity: normalize →
// export → re-import → render produces identical results.
//
// A [Request] is the input side: labeled datasets in polar or Cartesian form,
// before normalization. A [Document] groups one or more requests in a single
// file.
package chart

import (
	"github.com/astroviz/starplot/pkg/measure"
)

// Canonical dataset names. Marker defaults and colors key off these; any
// other name falls back to the historical styling.
const (
	DatasetHistorical = "historical"
	DatasetGaia       = "gaia"
	DatasetLCO        = "lco"
	DatasetPrediction = "prediction"
)

// Marker shapes.
const (
	MarkerCircle = "circle"
	MarkerCross  = "x"
)

// Default textual labels.
const (
	DefaultTitle         = "Double Star Measurements"
	DefaultXLabel        = "Relative X (arcseconds)"
	DefaultYLabel        = "Relative Y (arcseconds)"
	DefaultColorbarLabel = "Historical Observation Year"

	DefaultGaiaLabel       = "Gaia DR3 measurement"
	DefaultLCOLabel        = "LCO measurement (average)"
	DefaultPredictionLabel = "Prediction"
)

// Series is one styled point set within a figure.
type Series struct {
	Name     string                  `json:"name"`
	Label    string                  `json:"label,omitempty"`
	Marker   string                  `json:"marker,omitempty"` // "circle" or "x"
	Color    string                  `json:"color,omitempty"`  // CSS color; empty = colormap by epoch
	Size     float64                 `json:"size,omitempty"`   // marker size in pixels
	Points   measure.CartesianSeries `json:"points"`
	Epochs   []float64               `json:"epochs,omitempty"`
	Averaged bool                    `json:"averaged,omitempty"`
}

// Figure is a fully normalized plot ready for rendering.
type Figure struct {
	Title    string            `json:"title,omitempty"`
	XLabel   string            `json:"x_label,omitempty"`
	YLabel   string            `json:"y_label,omitempty"`
	Colormap string            `json:"colormap,omitempty"`
	Range    measure.AxisRange `json:"range"`
	Series   []Series          `json:"series"`
}

// Request is one figure's worth of input datasets, before normalization.
type Request struct {
	Title    string            `json:"title,omitempty"`
	XLabel   string            `json:"x_label,omitempty"`
	YLabel   string            `json:"y_label,omitempty"`
	Margin   float64           `json:"margin,omitempty"`
	Datasets []measure.Dataset `json:"datasets"`
}

// Document groups one or more figure requests in a single input file.
type Document struct {
	Figures []Request `json:"figures"`
}

// seriesDefault holds the built-in styling for a canonical dataset name.
type seriesDefault struct {
	label  string
	marker string
	color  string
	size   float64
}

// Built-in styling reproducing the reference appearance: historical points
// colormapped by epoch, Gaia as red circles, the LCO average as a green X,
// the prediction as a light-blue X. Overridable via pkg/config.
var seriesDefaults = map[string]seriesDefault{
	DatasetHistorical: {label: "", marker: MarkerCircle, color: "", size: 7},
	DatasetGaia:       {label: DefaultGaiaLabel, marker: MarkerCircle, color: "red", size: 9},
	DatasetLCO:        {label: DefaultLCOLabel, marker: MarkerCross, color: "green", size: 10},
	DatasetPrediction: {label: DefaultPredictionLabel, marker: MarkerCross, color: "lightblue", size: 11},
}

// FromFrame converts a normalized frame to a figure, attaching default
// styling by dataset name. Labels supplied on the datasets win over the
// built-in defaults.
func FromFrame(frame *measure.Frame) *Figure {
	fig := &Figure{
		Title:  DefaultTitle,
		XLabel: DefaultXLabel,
		YLabel: DefaultYLabel,
		Range:  frame.Range,
		Series: make([]Series, len(frame.Series)),
	}

	for i, ns := range frame.Series {
		def, ok := seriesDefaults[ns.Name]
		if !ok {
			def = seriesDefaults[DatasetHistorical]
		}

		s := Series{
			Name:     ns.Name,
			Label:    ns.Label,
			Marker:   def.marker,
			Color:    def.color,
			Size:     def.size,
			Points:   ns.Points,
			Epochs:   ns.Epochs,
			Averaged: ns.Averaged,
		}
		if s.Label == "" {
			s.Label = def.label
		}
		fig.Series[i] = s
	}

	return fig
}

// PointSets returns the figure's series as bare point sets, in order.
func (f *Figure) PointSets() []measure.CartesianSeries {
	out := make([]measure.CartesianSeries, len(f.Series))
	for i, s := range f.Series {
		out[i] = s.Points
	}
	return out
}
