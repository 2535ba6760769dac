// Package config loads Starplot's styling and runtime configuration.
//
// Plot styling (figure size, colormap, per-dataset markers) is deliberately
// externalized here rather than hardcoded next to the transform, so the
// measurement code stays free of presentation concerns. Configuration is a
// TOML file:
//
//	[figure]
//	width = 640
//	height = 640
//	margin = 0.1
//	colormap = "plasma_r"
//
//	[markers.gaia]
//	shape = "circle"
//	color = "red"
//	size = 9
//
//	[server]
//	addr = ":8080"
//	cache = "file"
//
// Missing sections and fields fall back to [Default] values.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/astroviz/starplot/pkg/chart"
	apperrors "github.com/astroviz/starplot/pkg/errors"
)

// EnvConfigPath is the environment variable overriding the config file path.
const EnvConfigPath = "STARPLOT_CONFIG"

// Cache backend names for the server configuration.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the root configuration.
type Config struct {
	Figure  Figure            `toml:"figure"`
	Markers map[string]Marker `toml:"markers"`
	Server  Server            `toml:"server"`
}

// Figure controls frame geometry and historical-point coloring.
type Figure struct {
	Width    float64 `toml:"width"`    // frame width in pixels
	Height   float64 `toml:"height"`   // frame height in pixels
	Margin   float64 `toml:"margin"`   // bounding-box margin fraction
	Colormap string  `toml:"colormap"` // epoch colormap name
}

// Marker overrides the styling of one dataset by name.
type Marker struct {
	Shape string  `toml:"shape"` // "circle" or "x"
	Color string  `toml:"color"` // CSS color
	Size  float64 `toml:"size"`  // marker size in pixels
}

// Server configures the HTTP API.
type Server struct {
	Addr      string `toml:"addr"`
	Cache     string `toml:"cache"`      // "file", "redis", or "none"
	RedisAddr string `toml:"redis_addr"` // required when cache = "redis"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Figure: Figure{
			Width:    640,
			Height:   640,
			Margin:   0.1,
			Colormap: "plasma_r",
		},
		Server: Server{
			Addr:  ":8080",
			Cache: CacheFile,
		},
	}
}

// Load reads configuration from path, layered over [Default]. An empty path
// checks STARPLOT_CONFIG; if that is also unset, the defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, apperrors.New(apperrors.ErrCodeFileNotFound, "config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validShapes is the set of supported marker shapes.
var validShapes = map[string]bool{
	chart.MarkerCircle: true,
	chart.MarkerCross:  true,
}

// validColormaps is the set of supported colormap names.
var validColormaps = map[string]bool{
	"plasma":    true,
	"plasma_r":  true,
	"viridis":   true,
	"viridis_r": true,
}

// Validate checks the configuration for out-of-range or unknown values.
func (c Config) Validate() error {
	if c.Figure.Width <= 0 || c.Figure.Height <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"figure dimensions must be positive: %gx%g", c.Figure.Width, c.Figure.Height)
	}
	if c.Figure.Margin < 0 || c.Figure.Margin > 1 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"figure margin must be in [0, 1]: %g", c.Figure.Margin)
	}
	if c.Figure.Colormap != "" && !validColormaps[c.Figure.Colormap] {
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"unknown colormap: %q", c.Figure.Colormap)
	}

	for name, m := range c.Markers {
		if err := apperrors.ValidateDatasetName(name); err != nil {
			return err
		}
		if m.Shape != "" && !validShapes[m.Shape] {
			return apperrors.New(apperrors.ErrCodeInvalidMarker,
				"dataset %q: unknown marker shape %q", name, m.Shape)
		}
		if m.Size < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidMarker,
				"dataset %q: marker size must be non-negative", name)
		}
	}

	switch c.Server.Cache {
	case "", CacheFile, CacheNone:
	case CacheRedis:
		if c.Server.RedisAddr == "" {
			return apperrors.New(apperrors.ErrCodeInvalidConfig,
				"server cache is %q but redis_addr is not set", CacheRedis)
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"unknown cache backend: %q", c.Server.Cache)
	}

	return nil
}

// ApplyMarkers overlays configured marker overrides onto a figure's series.
// Unset fields keep the figure's existing styling.
func (c Config) ApplyMarkers(fig *chart.Figure) {
	if len(c.Markers) == 0 {
		return
	}
	for i := range fig.Series {
		m, ok := c.Markers[fig.Series[i].Name]
		if !ok {
			continue
		}
		if m.Shape != "" {
			fig.Series[i].Marker = m.Shape
		}
		if m.Color != "" {
			fig.Series[i].Color = m.Color
		}
		if m.Size > 0 {
			fig.Series[i].Size = m.Size
		}
	}
}
