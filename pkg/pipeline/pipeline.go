// Package pipeline provides the core rendering pipeline for gridviz.
//
// This package implements the complete reconstruct → rasterize → export
// pipeline that can be used by CLI and API components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages, run once per output format:
//
//  1. Reconstruct: rebuild the grid state for each timestep
//  2. Rasterize: paint each state as an RGB frame
//  3. Export: assemble frames into the requested artifact
//
// Frame construction is strictly sequential, with one snapshot and one frame
// alive at a time; only the encoded artifacts accumulate.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Scale:   5,
//	    Formats: []string{"gif", "png"},
//	}
//	result, err := runner.Execute(ctx, g, p, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gif := result.Artifacts["gif"]
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/render/raster"
	"github.com/matzehuels/gridviz/pkg/render/sink"
)

// Default values - single source of truth for CLI and API.
const (
	// DefaultScale is the pixel block size per grid cell.
	DefaultScale = 5

	// DefaultDelayMS is the per-frame display duration of the animation.
	DefaultDelayMS = sink.DefaultDelayMS
)

// Format constants for output formats.
const (
	FormatGIF   = "gif"   // looping animation
	FormatPNG   = "png"   // final-state image
	FormatASCII = "ascii" // text path trace
	FormatDOT   = "dot"   // solution chain as Graphviz DOT
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatGIF:   true,
	FormatPNG:   true,
	FormatASCII: true,
	FormatDOT:   true,
}

// Options contains all configuration for the rendering pipeline.
// Options is a value type passed per invocation; there is no shared
// mutable default instance. The struct supports JSON serialization for
// API requests.
type Options struct {
	// Scale is the integer upscale factor (pixels per cell side).
	Scale int `json:"scale,omitempty"`

	// DelayMS is the per-frame display duration in milliseconds.
	DelayMS int `json:"delay_ms,omitempty"`

	// Formats selects the output artifacts.
	Formats []string `json:"formats,omitempty"`

	// Palette overrides the render colors. The zero value means the
	// default palette.
	Palette raster.Palette `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHits tracks which formats came from the cache.
	CacheHits map[string]bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Steps      int // timesteps in the plan
	FrameCount int // frames in the animation (steps + anchor)
	Boxes      int // box trajectories
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: gif, png, ascii, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if o.Scale < 1 {
		return errors.New(errors.ErrCodeInvalidScale, "scale %d, want >= 1", o.Scale)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields with their default values.
func (o *Options) SetDefaults() {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.DelayMS == 0 {
		o.DelayMS = DefaultDelayMS
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatGIF, FormatPNG}
	}
	if o.Palette == (raster.Palette{}) {
		o.Palette = raster.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
