package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/astroviz/starplot/pkg/chart"
)

const testDocument = `{
  "title": "WDS 12345+6789",
  "datasets": [
    {
      "name": "historical",
      "form": "polar",
      "polar": [
        {"pa": 0, "sep": 2.0},
        {"pa": 90, "sep": 2.5},
        {"pa": 180, "sep": 3.0}
      ],
      "epochs": [1991.25, 2000.0, 2016.0]
    },
    {
      "name": "lco",
      "form": "cartesian",
      "cartesian": [
        {"x": 3.0, "y": 0.2},
        {"x": 3.2, "y": -0.2}
      ],
      "aggregate": "average"
    }
  ]
}`

func writeTestDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stars.json")
	if err := os.WriteFile(path, []byte(testDocument), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunConvert(t *testing.T) {
	t.Setenv("STARPLOT_CONFIG", "")

	input := writeTestDocument(t)
	c := New(io.Discard, log.FatalLevel)

	if err := c.runConvert(context.Background(), input, "", "", true, 0); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}

	outputPath := filepath.Join(filepath.Dir(input), "stars.figure.json")
	fig, err := chart.ReadFigureFile(outputPath)
	if err != nil {
		t.Fatalf("read converted figure: %v", err)
	}

	if len(fig.Series) != 2 {
		t.Fatalf("series count = %d, want 2", len(fig.Series))
	}

	// The averaged dataset collapses to a single point.
	for _, s := range fig.Series {
		if s.Name == "lco" && len(s.Points) != 1 {
			t.Errorf("lco points = %d, want 1", len(s.Points))
		}
	}

	if fig.Title != "WDS 12345+6789" {
		t.Errorf("title = %q, want request title", fig.Title)
	}
	if fig.Range.HalfExtent <= 0 {
		t.Error("figure range should have a positive half extent")
	}
}

func TestRunConvertExplicitOutput(t *testing.T) {
	t.Setenv("STARPLOT_CONFIG", "")

	input := writeTestDocument(t)
	output := filepath.Join(t.TempDir(), "out.json")
	c := New(io.Discard, log.FatalLevel)

	if err := c.runConvert(context.Background(), input, output, "", true, 0.25); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output at %s: %v", output, err)
	}
}

func TestRunConvertMissingInput(t *testing.T) {
	c := New(io.Discard, log.FatalLevel)
	err := c.runConvert(context.Background(), filepath.Join(t.TempDir(), "absent.json"), "", "", true, 0)
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}
