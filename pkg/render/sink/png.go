package sink

import (
	"bytes"
	"image/png"

	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/grid"
	"github.com/matzehuels/gridviz/pkg/plan"
	"github.com/matzehuels/gridviz/pkg/render/raster"
)

// RenderFinalPNG renders the terminal state of a plan as a PNG.
// This is the same frame that anchors the animation from [RenderGIF].
func RenderFinalPNG(g *grid.Grid, p *plan.Plan, pal raster.Palette, scale int) ([]byte, error) {
	frame, err := terminalFrame(g, p, pal, scale)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode PNG")
	}
	return buf.Bytes(), nil
}
