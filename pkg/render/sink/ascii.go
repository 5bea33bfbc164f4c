package sink

import (
	"strings"

	"github.com/matzehuels/gridviz/pkg/grid"
	"github.com/matzehuels/gridviz/pkg/plan"
	"github.com/matzehuels/gridviz/pkg/render/snapshot"
)

// RenderASCII renders one snapshot as newline-joined text rows.
// Used by the play TUI and for verbose terminal output.
func RenderASCII(s *snapshot.Snapshot) string {
	return s.String()
}

// Trace stamps the agent marker along every path cell onto a copy of the
// grid and returns the rows. Wall cells keep their marker even when the
// path crosses them, so a bad plan is visible at a glance.
func Trace(g *grid.Grid, path plan.Path) []string {
	cells := g.Copy()
	for _, p := range path {
		if !g.Contains(p) {
			continue
		}
		if cells[p.Row][p.Col] != grid.Wall {
			cells[p.Row][p.Col] = grid.Agent
		}
	}

	out := make([]string, len(cells))
	for i, row := range cells {
		out[i] = string(row)
	}
	return out
}

// TraceString renders Trace as a single block of text.
func TraceString(g *grid.Grid, path plan.Path) string {
	return strings.Join(Trace(g, path), "\n")
}
