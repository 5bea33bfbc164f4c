package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridviz.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingImplicit(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Render.Scale != pipeline.DefaultScale {
		t.Errorf("Scale = %d, want default %d", cfg.Render.Scale, pipeline.DefaultScale)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadMissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[render]
scale = 8
delay_ms = 150
formats = ["gif"]

[colors]
agent = "#ff00ff"

[cache]
disabled = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Render.Scale != 8 || cfg.Render.DelayMS != 150 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if len(cfg.Render.Formats) != 1 || cfg.Render.Formats[0] != "gif" {
		t.Errorf("Formats = %v", cfg.Render.Formats)
	}
	if !cfg.Cache.Disabled {
		t.Error("Cache.Disabled not set")
	}

	pal, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette error: %v", err)
	}
	want := color.NRGBA{R: 255, G: 0, B: 255, A: 255}
	if pal.Agent != want {
		t.Errorf("Agent = %v, want %v", pal.Agent, want)
	}
	// Untouched entries keep their defaults.
	if pal.Wall != (color.NRGBA{A: 255}) {
		t.Errorf("Wall = %v, want black", pal.Wall)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero scale", "[render]\nscale = 0\n"},
		{"negative delay", "[render]\ndelay_ms = -1\n"},
		{"bad color", "[colors]\nwall = \"red\"\n"},
		{"bad toml", "[render\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeConfig(t, "[render]\nformats = [\"webp\"]\n")
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %q, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Render.Scale = 3

	opts, err := cfg.PipelineOptions()
	if err != nil {
		t.Fatalf("PipelineOptions error: %v", err)
	}
	if opts.Scale != 3 || opts.DelayMS != pipeline.DefaultDelayMS {
		t.Errorf("opts = %+v", opts)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("options should validate: %v", err)
	}
}
