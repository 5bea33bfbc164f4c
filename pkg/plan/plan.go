// Package plan provides the trajectory data produced by an external planner.
//
// A plan is the agent's path plus one independent trajectory per movable
// box. Trajectories are ordered position sequences, one entry per timestep.
// Box trajectories need not match the agent path in length; the renderer
// simply omits a box once its trajectory runs out.
//
// # JSON Format
//
// Plans are exchanged as JSON with two arrays:
//
//	{
//	  "path": [{"row": 1, "col": 1}, {"row": 1, "col": 2}],
//	  "boxes": [
//	    [{"row": 2, "col": 3}, {"row": 2, "col": 4}]
//	  ]
//	}
//
// "path" may be empty (the renderer then produces only the terminal frame);
// "boxes" may be omitted entirely. Use [ReadJSON]/[WriteJSON] for streams and
// [ImportFile]/[ExportFile] for files.
package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/grid"
)

// Path is an ordered sequence of positions over time for one mobile entity.
type Path []grid.Position

// Last returns the final position of the path and true, or false for an
// empty path.
func (p Path) Last() (grid.Position, bool) {
	if len(p) == 0 {
		return grid.Position{}, false
	}
	return p[len(p)-1], true
}

// Plan holds the agent path and the box trajectories for one solved map.
type Plan struct {
	Path  Path   `json:"path"`
	Boxes []Path `json:"boxes,omitempty"`
}

// Steps returns the number of timesteps, which is the agent path length.
func (p *Plan) Steps() int { return len(p.Path) }

// BoxesAt returns the box positions occupied at timestep t.
// Boxes whose trajectory is shorter than t+1 are omitted: a box vanishes
// from later frames rather than freezing at its last known cell.
func (p *Plan) BoxesAt(t int) []grid.Position {
	var out []grid.Position
	for _, b := range p.Boxes {
		if t < len(b) {
			out = append(out, b[t])
		}
	}
	return out
}

// FinalBoxes returns the last position of every box trajectory that has at
// least one entry.
func (p *Plan) FinalBoxes() []grid.Position {
	var out []grid.Position
	for _, b := range p.Boxes {
		if last, ok := b.Last(); ok {
			out = append(out, last)
		}
	}
	return out
}

// Validate checks every position in the plan against the grid bounds.
// It returns an OUT_OF_BOUNDS error naming the offending step; a nil error
// means every frame the renderer will build stays inside the grid.
func (p *Plan) Validate(g *grid.Grid) error {
	for t, pos := range p.Path {
		if !g.Contains(pos) {
			return errors.New(errors.ErrCodeOutOfBounds,
				"agent step %d at (%d, %d) outside %dx%d grid",
				t, pos.Row, pos.Col, g.Rows(), g.Cols())
		}
	}
	for i, b := range p.Boxes {
		for t, pos := range b {
			if !g.Contains(pos) {
				return errors.New(errors.ErrCodeOutOfBounds,
					"box %d step %d at (%d, %d) outside %dx%d grid",
					i, t, pos.Row, pos.Col, g.Rows(), g.Cols())
			}
		}
	}
	return nil
}

// ReadJSON decodes a plan from r.
// Returns an INVALID_PLAN error for malformed JSON. ReadJSON does not
// close r and performs no bounds checking; call [Plan.Validate] with the
// target grid before rendering.
func ReadJSON(r io.Reader) (*Plan, error) {
	var p Plan
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "decode plan")
	}
	return &p, nil
}

// WriteJSON encodes a plan as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(p *Plan, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return nil
}

// ImportFile reads a plan file at path and returns the decoded plan.
// Returns FILE_NOT_FOUND if the file does not exist and the same
// validation errors as [ReadJSON] for malformed content.
func ImportFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "plan file %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportFile writes a plan to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportFile(p *Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}
