// Package tree renders a solution state chain as a Graphviz diagram.
//
// The planner's solution is a parent-linked chain of states (see
// [plan.BuildStates]). ToDOT lays the chain out top-to-bottom with one
// node per timestep; the node label carries the depth and the agent's
// cell, and optionally the box cells. RenderSVG and RenderPNG rasterize
// the DOT text with Graphviz.
//
// [plan.BuildStates]: github.com/matzehuels/gridviz/pkg/plan.BuildStates
package tree

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridviz/pkg/plan"
)

// Options configures solution-tree rendering.
type Options struct {
	// Detailed includes box positions in node labels.
	// When false, only the depth and agent position are shown.
	Detailed bool
}

// ToDOT converts a solution chain to Graphviz DOT format.
// The chain is read from last back to its root; a nil last state yields
// an empty digraph. Solution nodes are filled red to match the agent
// color in the raster output.
func ToDOT(last *plan.State, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if last == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	chain := last.Chain()
	for i, s := range chain {
		label := fmtLabel(s, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightcoral];\n", nodeID(i), label)
	}

	buf.WriteString("\n")
	for i := 1; i < len(chain); i++ {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(i-1), nodeID(i))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string {
	return fmt.Sprintf("node_%d", i)
}

func fmtLabel(s *plan.State, detailed bool) string {
	label := fmt.Sprintf("D:%d\nR:(%d, %d)", s.Depth, s.Agent.Row, s.Agent.Col)
	if !detailed || len(s.Boxes) == 0 {
		return label
	}

	parts := make([]string, len(s.Boxes))
	for i, b := range s.Boxes {
		parts[i] = fmt.Sprintf("(%d, %d)", b.Row, b.Col)
	}
	return label + "\nB:" + strings.Join(parts, " ")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
