// Package config loads optional TOML configuration for gridviz.
//
// Configuration is layered: built-in defaults, then the config file,
// then command-line flags (applied by the caller). A missing file is
// not an error unless the path was given explicitly.
package config

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/pipeline"
	"github.com/matzehuels/gridviz/pkg/render/raster"
)

// FileName is the config file looked up in the XDG config directory.
const FileName = "gridviz.toml"

// Config holds all file-configurable settings.
type Config struct {
	Render RenderConfig `toml:"render"`
	Colors ColorsConfig `toml:"colors"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig overrides the pipeline defaults.
type RenderConfig struct {
	Scale   int      `toml:"scale"`
	DelayMS int      `toml:"delay_ms"`
	Formats []string `toml:"formats"`
}

// ColorsConfig overrides palette entries as "#RRGGBB" strings.
// Empty fields keep the default color.
type ColorsConfig struct {
	Wall  string `toml:"wall"`
	Goal  string `toml:"goal"`
	Start string `toml:"start"`
	Free  string `toml:"free"`
	Agent string `toml:"agent"`
	Box   string `toml:"box"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	// Dir is the file cache directory. Empty means the XDG default.
	Dir string `toml:"dir"`

	// Redis is a Redis address (host:port). When set, the Redis
	// backend is used instead of the file cache.
	Redis string `toml:"redis"`

	// Disabled turns artifact caching off entirely.
	Disabled bool `toml:"disabled"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Scale:   pipeline.DefaultScale,
			DelayMS: pipeline.DefaultDelayMS,
			Formats: []string{pipeline.FormatGIF, pipeline.FormatPNG},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads the config file at path, merged over the defaults.
// If path is empty, the XDG location is tried and a missing file
// yields the defaults; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		dir, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "gridviz", FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field ranges. Color strings are checked by Palette.
func (c *Config) Validate() error {
	if c.Render.Scale < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale %d, want >= 1", c.Render.Scale)
	}
	if c.Render.DelayMS < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.delay_ms %d, want >= 1", c.Render.DelayMS)
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// Palette builds the render palette with the configured overrides.
func (c *Config) Palette() (raster.Palette, error) {
	pal := raster.Default()
	overrides := []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"wall", c.Colors.Wall, &pal.Wall},
		{"goal", c.Colors.Goal, &pal.Goal},
		{"start", c.Colors.Start, &pal.Start},
		{"free", c.Colors.Free, &pal.Free},
		{"agent", c.Colors.Agent, &pal.Agent},
		{"box", c.Colors.Box, &pal.Box},
	}
	for _, o := range overrides {
		if o.hex == "" {
			continue
		}
		col, err := raster.ParseHex(o.hex)
		if err != nil {
			return pal, errors.Wrap(errors.ErrCodeInvalidConfig, err, "colors.%s", o.name)
		}
		*o.dst = col
	}
	return pal, nil
}

// PipelineOptions converts the render section into pipeline options.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	pal, err := c.Palette()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Scale:   c.Render.Scale,
		DelayMS: c.Render.DelayMS,
		Formats: c.Render.Formats,
		Palette: pal,
	}, nil
}
