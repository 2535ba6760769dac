package sink

import (
	"encoding/json"

	"github.com/astroviz/starplot/pkg/chart"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	width    int
	height   int
	colormap string
}

// WithJSONSize records the intended canvas size in the JSON output, enabling
// reproducible re-rendering at the same dimensions.
func WithJSONSize(w, h int) JSONOption {
	return func(r *jsonRenderer) { r.width, r.height = w, h }
}

// WithJSONColormap records a colormap override in the JSON output.
func WithJSONColormap(name string) JSONOption {
	return func(r *jsonRenderer) { r.colormap = name }
}

type jsonOutput struct {
	Width    int           `json:"width,omitempty"`
	Height   int           `json:"height,omitempty"`
	Colormap string        `json:"colormap,omitempty"`
	Figure   *chart.Figure `json:"figure"`
}

// RenderJSON exports the normalized figure and render options as a
// pretty-printed JSON document. This is the primary data interchange format,
// enabling round-trip rendering: a figure exported here re-imports through
// [chart.ReadFigure] and renders identically.
func RenderJSON(fig *chart.Figure, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:    r.width,
		Height:   r.height,
		Colormap: r.colormap,
		Figure:   fig,
	}
	return json.MarshalIndent(out, "", "  ")
}
