package raster

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/grid"
)

// Palette is the total mapping from cell label to color.
// Every label outside the five mapped ones falls through to Free, so an
// unknown cell renders as free space instead of failing the frame.
type Palette struct {
	Wall  color.NRGBA // '#'
	Goal  color.NRGBA // 'G'
	Start color.NRGBA // 'S'
	Free  color.NRGBA // '.' and anything unmapped
	Agent color.NRGBA // 'R'
	Box   color.NRGBA // 'B'
}

// Default returns the reference palette: black walls, green goal, gray
// start, white free space, red agent, blue boxes.
func Default() Palette {
	return Palette{
		Wall:  color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		Goal:  color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		Start: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		Free:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Agent: color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		Box:   color.NRGBA{R: 0, G: 0, B: 255, A: 255},
	}
}

// Color maps a cell label to its palette entry.
func (p Palette) Color(label byte) color.NRGBA {
	switch label {
	case grid.Wall:
		return p.Wall
	case grid.Goal:
		return p.Goal
	case grid.Start:
		return p.Start
	case grid.Agent:
		return p.Agent
	case grid.Box:
		return p.Box
	default:
		return p.Free
	}
}

// Colors returns the palette entries as a color.Palette for GIF encoding.
// The order is stable so repeated renders produce byte-identical output.
func (p Palette) Colors() color.Palette {
	return color.Palette{p.Wall, p.Goal, p.Start, p.Free, p.Agent, p.Box}
}

// Key returns a canonical encoding of the palette, eight hex digits per
// entry in the [Colors] order. Renders with different palettes produce
// different keys, so the cache layer can discriminate them.
func (p Palette) Key() string {
	var b strings.Builder
	for _, c := range []color.NRGBA{p.Wall, p.Goal, p.Start, p.Free, p.Agent, p.Box} {
		fmt.Fprintf(&b, "%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return b.String()
}

// ParseHex converts a "#RRGGBB" string into a color.
// Used by the config layer for palette overrides.
func ParseHex(s string) (color.NRGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidConfig, "invalid color %q (want #RRGGBB)", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
