// Package sink assembles rendered frames into output artifacts.
//
// Three sinks are provided, each returning encoded bytes ready to write:
//
//   - [RenderGIF]: the looping animation, with the terminal frame as anchor
//     followed by one frame per timestep
//   - [RenderFinalPNG]: the terminal state as a standalone image
//   - [RenderASCII] and [Trace]: text renderings for terminal output
//
// Sequencing happens here: the sink drives the snapshot and raster stages
// once per timestep, consuming each frame immediately. Nothing is retried;
// an encode or write failure is surfaced to the caller as-is.
package sink

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"time"

	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/grid"
	"github.com/matzehuels/gridviz/pkg/observability"
	"github.com/matzehuels/gridviz/pkg/plan"
	"github.com/matzehuels/gridviz/pkg/render/raster"
	"github.com/matzehuels/gridviz/pkg/render/snapshot"
)

// DefaultDelayMS is the per-frame display duration of the animation.
const DefaultDelayMS = 300

// RenderGIF renders the full animation for a plan.
//
// The frame buffer starts with the terminal frame as the anchor, followed
// by one frame per timestep t in [0, steps). For an empty path the
// animation holds only the anchor frame. The animation loops forever and
// every frame is displayed for delayMS milliseconds.
func RenderGIF(ctx context.Context, g *grid.Grid, p *plan.Plan, pal raster.Palette, scale, delayMS int) ([]byte, error) {
	if delayMS <= 0 {
		delayMS = DefaultDelayMS
	}
	colors := pal.Colors()

	// The anchor frame is reported as timestep -1.
	observability.Render().OnFrameStart(ctx, -1)
	start := time.Now()
	anchor, err := terminalFrame(g, p, pal, scale)
	observability.Render().OnFrameComplete(ctx, -1, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	anim := &gif.GIF{LoopCount: 0} // 0 loops forever
	// GIF delays are in 1/100s units. Round up so a 1-9ms delay encodes
	// as 1 centisecond instead of 0, which most decoders clamp to ~100ms.
	delay := (delayMS + 9) / 10
	anim.Image = append(anim.Image, toPaletted(anchor, colors))
	anim.Delay = append(anim.Delay, delay)

	for t := 0; t < p.Steps(); t++ {
		observability.Render().OnFrameStart(ctx, t)
		start := time.Now()
		frame, err := frameAt(g, p, pal, scale, t)
		observability.Render().OnFrameComplete(ctx, t, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		anim.Image = append(anim.Image, toPaletted(frame, colors))
		anim.Delay = append(anim.Delay, delay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode GIF")
	}
	return buf.Bytes(), nil
}

// frameAt builds the frame for timestep t: the agent at path[t] and every
// box whose trajectory still has an entry at t.
func frameAt(g *grid.Grid, p *plan.Plan, pal raster.Palette, scale, t int) (*image.NRGBA, error) {
	agent := p.Path[t]
	s, err := snapshot.Build(g, &agent, p.BoxesAt(t))
	if err != nil {
		return nil, err
	}
	return raster.Rasterize(s, pal, scale)
}

// terminalFrame builds the final-state frame: the agent at its last
// position (or absent for an empty path) and every box at the last entry
// of its trajectory.
func terminalFrame(g *grid.Grid, p *plan.Plan, pal raster.Palette, scale int) (*image.NRGBA, error) {
	var agent *grid.Position
	if last, ok := p.Path.Last(); ok {
		agent = &last
	}
	s, err := snapshot.Build(g, agent, p.FinalBoxes())
	if err != nil {
		return nil, err
	}
	return raster.Rasterize(s, pal, scale)
}

// toPaletted converts an RGB frame to a paletted image using the render
// palette. Every frame pixel is an exact palette color, so the conversion
// is lossless.
func toPaletted(img *image.NRGBA, colors color.Palette) *image.Paletted {
	bounds := img.Bounds()
	out := image.NewPaletted(bounds, colors)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x, y, img.NRGBAAt(x, y))
		}
	}
	return out
}
