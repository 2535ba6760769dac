package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/astroviz/starplot/pkg/chart"
	"github.com/astroviz/starplot/pkg/measure"
	"github.com/astroviz/starplot/pkg/render/scatter/styles"
)

// Fixed chrome dimensions around the square plot area.
const (
	marginTop    = 52.0 // title strip
	marginBottom = 56.0 // x tick labels + axis label
	marginLeft   = 72.0 // y tick labels + axis label
	marginRight  = 88.0 // colorbar + its label
	colorbarW    = 16.0
	colorbarGap  = 18.0
	tickLen      = 5.0
	legendPad    = 10.0
	legendRowH   = 20.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width    float64
	height   float64
	colormap string
	noLegend bool
}

// WithSize sets the overall canvas size in pixels (default 640x640).
func WithSize(w, h int) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.width = float64(w)
		}
		if h > 0 {
			r.height = float64(h)
		}
	}
}

// WithColormap overrides the figure's colormap for epoch-coded series.
func WithColormap(name string) SVGOption {
	return func(r *svgRenderer) {
		if name != "" {
			r.colormap = name
		}
	}
}

// WithoutLegend suppresses the legend box.
func WithoutLegend() SVGOption {
	return func(r *svgRenderer) { r.noLegend = true }
}

// RenderSVG renders a figure as a square scatter plot. The plot area is
// square and both axes map the figure's shared range, so the aspect ratio
// of the data is exactly 1:1 regardless of canvas size.
func RenderSVG(fig *chart.Figure, opts ...SVGOption) []byte {
	r := svgRenderer{width: 640, height: 640}
	for _, opt := range opts {
		opt(&r)
	}

	name := r.colormap
	if name == "" {
		name = fig.Colormap
	}
	cmap, _ := styles.Lookup(name)

	// Square plot area: the side is whatever fits inside the chrome margins.
	side := math.Min(r.width-marginLeft-marginRight, r.height-marginTop-marginBottom)
	if side < 40 {
		side = 40
	}
	plot := plotRect{
		x:    marginLeft,
		y:    marginTop,
		side: side,
		rng:  fig.Range,
	}

	totalW := marginLeft + side + marginRight
	totalH := marginTop + side + marginBottom

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalW, totalH, totalW, totalH)
	fmt.Fprintf(&buf, `<rect width="%.1f" height="%.1f" fill="white"/>`+"\n", totalW, totalH)

	renderAxes(&buf, plot, fig)
	renderTitle(&buf, fig.Title, totalW)

	scale := historicalEpochScale(fig)
	for _, s := range fig.Series {
		renderSeries(&buf, plot, s, cmap, scale)
	}

	if hasEpochSeries(fig) {
		renderColorbar(&buf, plot, cmap, scale)
	}
	if !r.noLegend {
		renderLegend(&buf, plot, fig)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// plotRect maps data coordinates onto the square plot area. SVG y grows
// downward, so the data y axis is flipped.
type plotRect struct {
	x, y, side float64
	rng        measure.AxisRange
}

func (p plotRect) px(x float64) float64 {
	return p.x + (x-p.rng.MinX())/p.rng.Span()*p.side
}

func (p plotRect) py(y float64) float64 {
	return p.y + p.side - (y-p.rng.MinY())/p.rng.Span()*p.side
}

func renderTitle(buf *bytes.Buffer, title string, totalW float64) {
	if title == "" {
		return
	}
	fmt.Fprintf(buf,
		`<text x="%.1f" y="30" text-anchor="middle" font-family="%s" font-size="17" font-weight="bold" fill="%s">%s</text>`+"\n",
		totalW/2, styles.FontFamily, styles.TextColor, escape(title))
}

func renderAxes(buf *bytes.Buffer, p plotRect, fig *chart.Figure) {
	ticks := tickValues(p.rng.MinX(), p.rng.MaxX())

	// Grid lines first so markers draw on top. Both axes share the same
	// range, so one tick set serves both.
	for _, t := range ticks {
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
			p.px(t), p.y, p.px(t), p.y+p.side, styles.GridColor)
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
			p.x, p.py(t), p.x+p.side, p.py(t), styles.GridColor)
	}

	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
		p.x, p.y, p.side, p.side, styles.AxisColor)

	for _, t := range ticks {
		label := formatTick(t)
		// X ticks along the bottom edge.
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			p.px(t), p.y+p.side, p.px(t), p.y+p.side+tickLen, styles.AxisColor)
		fmt.Fprintf(buf,
			`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="11" fill="%s">%s</text>`+"\n",
			p.px(t), p.y+p.side+tickLen+13, styles.FontFamily, styles.TextColor, label)
		// Y ticks along the left edge.
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			p.x-tickLen, p.py(t), p.x, p.py(t), styles.AxisColor)
		fmt.Fprintf(buf,
			`<text x="%.1f" y="%.1f" text-anchor="end" font-family="%s" font-size="11" fill="%s">%s</text>`+"\n",
			p.x-tickLen-4, p.py(t)+4, styles.FontFamily, styles.TextColor, label)
	}

	if fig.XLabel != "" {
		fmt.Fprintf(buf,
			`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="13" fill="%s">%s</text>`+"\n",
			p.x+p.side/2, p.y+p.side+44, styles.FontFamily, styles.TextColor, escape(fig.XLabel))
	}
	if fig.YLabel != "" {
		fmt.Fprintf(buf,
			`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="13" fill="%s" transform="rotate(-90 %.1f %.1f)">%s</text>`+"\n",
			p.x-48, p.y+p.side/2, styles.FontFamily, styles.TextColor, p.x-48, p.y+p.side/2, escape(fig.YLabel))
	}
}

func renderSeries(buf *bytes.Buffer, p plotRect, s chart.Series, cmap styles.Colormap, scale styles.EpochScale) {
	size := s.Size
	if size <= 0 {
		size = 7
	}
	for i, pt := range s.Points {
		color := s.Color
		if color == "" {
			// Epoch-coded point. Without epoch data fall back to the
			// colormap midpoint.
			t := 0.5
			if i < len(s.Epochs) {
				t = scale.Pos(s.Epochs[i])
			}
			color = cmap.Sample(t)
		}
		styles.WriteMarker(buf, s.Marker, p.px(pt.X), p.py(pt.Y), size, color)
	}
}

// historicalEpochScale covers the epochs of every epoch-coded series, so the
// colorbar and point colors agree.
func historicalEpochScale(fig *chart.Figure) styles.EpochScale {
	var epochs []float64
	for _, s := range fig.Series {
		if s.Color == "" {
			epochs = append(epochs, s.Epochs...)
		}
	}
	return styles.NewEpochScale(epochs)
}

func hasEpochSeries(fig *chart.Figure) bool {
	for _, s := range fig.Series {
		if s.Color == "" && len(s.Epochs) > 0 {
			return true
		}
	}
	return false
}

func renderColorbar(buf *bytes.Buffer, p plotRect, cmap styles.Colormap, scale styles.EpochScale) {
	x := p.x + p.side + colorbarGap
	gradID := "epoch-ramp"

	// SVG gradients run top to bottom; the bar shows latest epochs on top.
	buf.WriteString("<defs>\n")
	fmt.Fprintf(buf, `<linearGradient id="%s" x1="0" y1="0" x2="0" y2="1">`+"\n", gradID)
	const stops = 8
	for i := 0; i <= stops; i++ {
		f := float64(i) / stops
		fmt.Fprintf(buf, `<stop offset="%.3f" stop-color="%s"/>`+"\n", f, cmap.Sample(1-f))
	}
	buf.WriteString("</linearGradient>\n</defs>\n")

	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#%s)" stroke="%s" stroke-width="1"/>`+"\n",
		x, p.y, colorbarW, p.side, gradID, styles.AxisColor)

	for _, e := range tickValues(scale.Min(), scale.Max()) {
		y := p.y + p.side - scale.Pos(e)*p.side
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			x+colorbarW, y, x+colorbarW+3, y, styles.AxisColor)
		fmt.Fprintf(buf,
			`<text x="%.1f" y="%.1f" font-family="%s" font-size="10" fill="%s">%s</text>`+"\n",
			x+colorbarW+6, y+3.5, styles.FontFamily, styles.TextColor, formatTick(e))
	}

	label := chart.DefaultColorbarLabel
	cx := x + colorbarW + 52
	cy := p.y + p.side/2
	fmt.Fprintf(buf,
		`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="12" fill="%s" transform="rotate(90 %.1f %.1f)">%s</text>`+"\n",
		cx, cy, styles.FontFamily, styles.TextColor, cx, cy, escape(label))
}

func renderLegend(buf *bytes.Buffer, p plotRect, fig *chart.Figure) {
	type entry struct {
		label, marker, color string
	}
	var entries []entry
	maxLabel := 0
	for _, s := range fig.Series {
		if s.Label == "" || s.Color == "" {
			// Epoch-coded series are explained by the colorbar instead.
			continue
		}
		entries = append(entries, entry{s.Label, s.Marker, s.Color})
		if len(s.Label) > maxLabel {
			maxLabel = len(s.Label)
		}
	}
	if len(entries) == 0 {
		return
	}

	boxW := 30 + float64(maxLabel)*6.4
	boxH := float64(len(entries))*legendRowH + 2*legendPad
	x := p.x + p.side - boxW - 8
	y := p.y + 8

	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white" fill-opacity="0.85" stroke="%s" stroke-width="1"/>`+"\n",
		x, y, boxW, boxH, styles.AxisColor)

	for i, e := range entries {
		rowY := y + legendPad + float64(i)*legendRowH + legendRowH/2
		styles.WriteMarker(buf, e.marker, x+14, rowY, 5, e.color)
		fmt.Fprintf(buf,
			`<text x="%.1f" y="%.1f" font-family="%s" font-size="11" fill="%s">%s</text>`+"\n",
			x+26, rowY+3.5, styles.FontFamily, styles.TextColor, escape(e.label))
	}
}

// tickValues picks round tick positions covering [min, max] with a 1/2/5
// step progression.
func tickValues(min, max float64) []float64 {
	span := max - min
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return []float64{min}
	}

	step := tickStep(span)
	first := math.Ceil(min/step) * step
	var ticks []float64
	for t := first; t <= max+step*1e-9; t += step {
		// Snap values like -0.0000000001 back to 0.
		if math.Abs(t) < step*1e-6 {
			t = 0
		}
		ticks = append(ticks, t)
	}
	return ticks
}

func tickStep(span float64) float64 {
	raw := span / 6
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm < 1.5:
		return mag
	case norm < 3.5:
		return 2 * mag
	case norm < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

// escape sanitizes text content for embedding in SVG.
func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
