package styles

import (
	"fmt"
	"math"
)

// rgb is a single colormap anchor color.
type rgb struct {
	r, g, b uint8
}

// Colormap is a sequential colormap sampled by linear interpolation
// between anchor colors.
type Colormap struct {
	Name    string
	anchors []rgb
}

// Matplotlib anchor colors at t = 0, 0.25, 0.5, 0.75, 1.
var (
	plasmaAnchors = []rgb{
		{0x0d, 0x08, 0x87},
		{0x7e, 0x03, 0xa8},
		{0xcc, 0x47, 0x78},
		{0xf8, 0x95, 0x40},
		{0xf0, 0xf9, 0x21},
	}
	viridisAnchors = []rgb{
		{0x44, 0x01, 0x54},
		{0x3b, 0x52, 0x8b},
		{0x21, 0x91, 0x8c},
		{0x5e, 0xc9, 0x62},
		{0xfd, 0xe7, 0x25},
	}
)

var colormaps = map[string]Colormap{
	"plasma":    {Name: "plasma", anchors: plasmaAnchors},
	"plasma_r":  {Name: "plasma_r", anchors: reversed(plasmaAnchors)},
	"viridis":   {Name: "viridis", anchors: viridisAnchors},
	"viridis_r": {Name: "viridis_r", anchors: reversed(viridisAnchors)},
}

// DefaultColormap is used when a figure names no colormap, or an unknown one.
const DefaultColormap = "plasma_r"

// Lookup returns the colormap with the given name. Unknown names fall back
// to [DefaultColormap] with ok=false so callers can warn without failing.
func Lookup(name string) (Colormap, bool) {
	if cm, ok := colormaps[name]; ok {
		return cm, true
	}
	return colormaps[DefaultColormap], false
}

// Names returns the supported colormap names.
func Names() []string {
	return []string{"plasma", "plasma_r", "viridis", "viridis_r"}
}

func reversed(anchors []rgb) []rgb {
	out := make([]rgb, len(anchors))
	for i, a := range anchors {
		out[len(anchors)-1-i] = a
	}
	return out
}

// Sample returns the hex color at position t in [0, 1]. Values outside the
// range are clamped.
func (c Colormap) Sample(t float64) string {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	segments := float64(len(c.anchors) - 1)
	pos := t * segments
	i := int(pos)
	if i >= len(c.anchors)-1 {
		i = len(c.anchors) - 2
	}
	frac := pos - float64(i)

	lo, hi := c.anchors[i], c.anchors[i+1]
	return fmt.Sprintf("#%02x%02x%02x",
		lerp(lo.r, hi.r, frac),
		lerp(lo.g, hi.g, frac),
		lerp(lo.b, hi.b, frac))
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// EpochScale maps observation epochs onto colormap positions. A single
// distinct epoch maps everything to the midpoint.
type EpochScale struct {
	min, max float64
}

// NewEpochScale builds a scale covering the given epochs.
func NewEpochScale(epochs []float64) EpochScale {
	if len(epochs) == 0 {
		return EpochScale{}
	}
	s := EpochScale{min: epochs[0], max: epochs[0]}
	for _, e := range epochs[1:] {
		s.min = math.Min(s.min, e)
		s.max = math.Max(s.max, e)
	}
	return s
}

// Min returns the earliest epoch on the scale.
func (s EpochScale) Min() float64 { return s.min }

// Max returns the latest epoch on the scale.
func (s EpochScale) Max() float64 { return s.max }

// Pos returns the normalized position of epoch in [0, 1].
func (s EpochScale) Pos(epoch float64) float64 {
	if s.max == s.min {
		return 0.5
	}
	return (epoch - s.min) / (s.max - s.min)
}
