package styles

import (
	"bytes"
	"fmt"
)

// Marker shapes understood by the renderer.
const (
	ShapeCircle = "circle"
	ShapeCross  = "x"
)

// Shared text and axis styling.
const (
	FontFamily = "Helvetica, Arial, sans-serif"
	TextColor  = "#1a1a1a"
	AxisColor  = "#333333"
	GridColor  = "#e4e4e4"
)

// WriteMarker writes the SVG for a single data marker centered at (x, y).
// size is the marker radius in pixels. Circles are filled; crosses are
// stroked. Unknown shapes draw as circles.
func WriteMarker(buf *bytes.Buffer, shape string, x, y, size float64, color string) {
	switch shape {
	case ShapeCross:
		writeCross(buf, x, y, size, color)
	default:
		writeCircle(buf, x, y, size, color)
	}
}

func writeCircle(buf *bytes.Buffer, x, y, r float64, color string) {
	fmt.Fprintf(buf,
		`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-opacity="0.35" stroke-width="1"/>`+"\n",
		x, y, r, color, AxisColor)
}

func writeCross(buf *bytes.Buffer, x, y, r float64, color string) {
	fmt.Fprintf(buf,
		`<path d="M %.2f %.2f L %.2f %.2f M %.2f %.2f L %.2f %.2f" stroke="%s" stroke-width="2.5" stroke-linecap="round"/>`+"\n",
		x-r, y-r, x+r, y+r, x-r, y+r, x+r, y-r, color)
}
