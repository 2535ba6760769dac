package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
	}{
		{"plasma", true},
		{"plasma_r", true},
		{"viridis", true},
		{"viridis_r", true},
		{"magma", false},
		{"", false},
	}
	for _, tt := range tests {
		cm, ok := Lookup(tt.name)
		if ok != tt.wantOK {
			t.Errorf("Lookup(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
		}
		if ok && cm.Name != tt.name {
			t.Errorf("Lookup(%q).Name = %q", tt.name, cm.Name)
		}
		if !ok && cm.Name != DefaultColormap {
			t.Errorf("Lookup(%q) fallback = %q, want %q", tt.name, cm.Name, DefaultColormap)
		}
	}
}

func TestSampleEndpoints(t *testing.T) {
	plasma, _ := Lookup("plasma")
	if got := plasma.Sample(0); got != "#0d0887" {
		t.Errorf("plasma.Sample(0) = %s, want #0d0887", got)
	}
	if got := plasma.Sample(1); got != "#f0f921" {
		t.Errorf("plasma.Sample(1) = %s, want #f0f921", got)
	}

	reversedMap, _ := Lookup("plasma_r")
	if got := reversedMap.Sample(0); got != "#f0f921" {
		t.Errorf("plasma_r.Sample(0) = %s, want #f0f921", got)
	}
	if got := reversedMap.Sample(1); got != "#0d0887" {
		t.Errorf("plasma_r.Sample(1) = %s, want #0d0887", got)
	}
}

func TestSampleClamps(t *testing.T) {
	cm, _ := Lookup("viridis")
	if cm.Sample(-0.5) != cm.Sample(0) {
		t.Error("Sample should clamp below 0")
	}
	if cm.Sample(1.5) != cm.Sample(1) {
		t.Error("Sample should clamp above 1")
	}
}

func TestEpochScale(t *testing.T) {
	s := NewEpochScale([]float64{1991.25, 2016.0, 2025.04})
	if s.Min() != 1991.25 || s.Max() != 2025.04 {
		t.Errorf("scale = [%v, %v], want [1991.25, 2025.04]", s.Min(), s.Max())
	}
	if got := s.Pos(1991.25); got != 0 {
		t.Errorf("Pos(min) = %v, want 0", got)
	}
	if got := s.Pos(2025.04); got != 1 {
		t.Errorf("Pos(max) = %v, want 1", got)
	}

	// Single distinct epoch maps to the midpoint.
	flat := NewEpochScale([]float64{2016.0, 2016.0})
	if got := flat.Pos(2016.0); got != 0.5 {
		t.Errorf("flat Pos = %v, want 0.5", got)
	}
}

func TestWriteMarker(t *testing.T) {
	var buf bytes.Buffer
	WriteMarker(&buf, ShapeCircle, 10, 20, 5, "#ff0000")
	if !strings.Contains(buf.String(), "<circle") {
		t.Error("circle marker should emit a <circle> element")
	}

	buf.Reset()
	WriteMarker(&buf, ShapeCross, 10, 20, 5, "#00ff00")
	out := buf.String()
	if !strings.Contains(out, "<path") || !strings.Contains(out, "#00ff00") {
		t.Errorf("cross marker output missing path or color: %s", out)
	}

	// Unknown shapes fall back to circles.
	buf.Reset()
	WriteMarker(&buf, "diamond", 0, 0, 3, "#0000ff")
	if !strings.Contains(buf.String(), "<circle") {
		t.Error("unknown shape should fall back to circle")
	}
}
