// Package snapshot reconstructs the world state for a single timestep.
//
// A snapshot is a mutable copy of the static grid with the agent's and
// boxes' current cells stamped in. The template grid is never touched;
// each timestep gets a fresh copy that is discarded after rasterization,
// so a box's marker from an earlier timestep can never leak into a later
// frame.
package snapshot

import (
	"strings"

	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/grid"
)

// Snapshot is one timestep's view of the grid.
// It owns its cells and may be mutated freely without affecting the
// template grid it was built from.
type Snapshot struct {
	cells [][]byte
}

// Build reconstructs the grid state for one timestep.
//
// The static map is copied, every start marker and box marker from the
// template is normalized to free space, the current box positions are
// stamped with the box marker, and finally the agent's cell is stamped
// with the occupancy marker. The agent stamp wins when the agent and a
// box share a cell.
//
// A nil agent means "no agent this frame" (an empty path): only the
// static normalization is applied. Out-of-bounds positions are rejected
// with an OUT_OF_BOUNDS error before any stamping happens.
func Build(g *grid.Grid, agent *grid.Position, boxes []grid.Position) (*Snapshot, error) {
	if agent != nil && !g.Contains(*agent) {
		return nil, errors.New(errors.ErrCodeOutOfBounds,
			"agent at (%d, %d) outside %dx%d grid", agent.Row, agent.Col, g.Rows(), g.Cols())
	}
	for i, b := range boxes {
		if !g.Contains(b) {
			return nil, errors.New(errors.ErrCodeOutOfBounds,
				"box %d at (%d, %d) outside %dx%d grid", i, b.Row, b.Col, g.Rows(), g.Cols())
		}
	}

	cells := g.Copy()
	for _, row := range cells {
		for c, cell := range row {
			if cell == grid.Start || cell == grid.Box {
				row[c] = grid.Free
			}
		}
	}

	for _, b := range boxes {
		cells[b.Row][b.Col] = grid.Box
	}
	if agent != nil {
		cells[agent.Row][agent.Col] = grid.Agent
	}

	return &Snapshot{cells: cells}, nil
}

// Rows returns the number of rows.
func (s *Snapshot) Rows() int { return len(s.cells) }

// Cols returns the number of columns.
func (s *Snapshot) Cols() int {
	if len(s.cells) == 0 {
		return 0
	}
	return len(s.cells[0])
}

// At returns the label of cell (r, c).
func (s *Snapshot) At(r, c int) byte { return s.cells[r][c] }

// Lines returns the snapshot as text rows.
func (s *Snapshot) Lines() []string {
	out := make([]string, len(s.cells))
	for i, row := range s.cells {
		out[i] = string(row)
	}
	return out
}

// String renders the snapshot as newline-joined rows.
func (s *Snapshot) String() string {
	return strings.Join(s.Lines(), "\n")
}
