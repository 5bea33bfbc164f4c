// Package grid provides the static map representation consumed by the
// rendering pipeline.
//
// A grid is a rectangular field of single-byte cell labels:
//
//	#  wall
//	S  start marker
//	G  goal
//	B  movable box
//	.  free space
//	R  agent occupancy (stamped by the renderer, never present in map files)
//
// Unknown labels are tolerated and render as free space.
//
// # Map Files
//
// Map files are plain text, one row per line:
//
//	#####
//	#S..#
//	#.B.#
//	#..G#
//	#####
//
// Use [Load] to read a file or [Parse] to build a grid from rows already in
// memory. Both validate that the grid is rectangular and non-empty; ragged
// input is rejected with an INVALID_GRID error.
package grid

import (
	"bufio"
	"os"
	"strings"

	"github.com/matzehuels/gridviz/pkg/errors"
)

// Cell labels understood by the renderer.
const (
	Wall  byte = '#'
	Start byte = 'S'
	Goal  byte = 'G'
	Box   byte = 'B'
	Free  byte = '.'
	Agent byte = 'R'
)

// Position is a (row, column) cell coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is an immutable rectangular map of cell labels.
// The zero value is an empty grid; build one with [Parse] or [Load].
type Grid struct {
	rows [][]byte
}

// Parse builds a grid from text rows.
// It returns an INVALID_GRID error if lines is empty, the first row is
// empty, or any row has a different length than the first.
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid has no rows")
	}
	width := len(lines[0])
	if width == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid rows are empty")
	}

	rows := make([][]byte, len(lines))
	for r, line := range lines {
		if len(line) != width {
			return nil, errors.New(errors.ErrCodeInvalidGrid,
				"row %d has %d cells, want %d", r, len(line), width)
		}
		rows[r] = []byte(line)
	}
	return &Grid{rows: rows}, nil
}

// Load reads a map file and parses it into a grid.
// Trailing newlines are stripped; interior blank lines are rejected as
// ragged rows. Returns FILE_NOT_FOUND if the file does not exist.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "map file %s", path)
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "read map file %s", path)
	}

	// Drop trailing empty lines left by a final newline.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return Parse(lines)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.rows) }

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	if len(g.rows) == 0 {
		return 0
	}
	return len(g.rows[0])
}

// At returns the label of cell p. The position must be in bounds.
func (g *Grid) At(p Position) byte {
	return g.rows[p.Row][p.Col]
}

// Contains reports whether p falls within the grid bounds.
func (g *Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.Rows() && p.Col >= 0 && p.Col < g.Cols()
}

// Copy returns a mutable copy of the grid's cells.
// The result is independent of the grid; mutating it never affects the
// template. One copy is made per rendered frame.
func (g *Grid) Copy() [][]byte {
	out := make([][]byte, len(g.rows))
	for i, row := range g.rows {
		out[i] = make([]byte, len(row))
		copy(out[i], row)
	}
	return out
}

// Lines returns the grid as text rows, one string per row.
func (g *Grid) Lines() []string {
	out := make([]string, len(g.rows))
	for i, row := range g.rows {
		out[i] = string(row)
	}
	return out
}

// String renders the grid as newline-joined rows.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Markers holds the notable cells found in a grid.
type Markers struct {
	Start *Position  // the S cell, if present
	Goal  *Position  // the G cell, if present
	Walls []Position // every # cell
	Boxes []Position // every B cell, in row-major order
}

// Scan walks the grid and collects its markers.
// When a grid holds several S or G cells the first in row-major order wins,
// matching the planner's convention.
func (g *Grid) Scan() Markers {
	var m Markers
	for r, row := range g.rows {
		for c, cell := range row {
			p := Position{Row: r, Col: c}
			switch cell {
			case Start:
				if m.Start == nil {
					m.Start = &p
				}
			case Goal:
				if m.Goal == nil {
					m.Goal = &p
				}
			case Wall:
				m.Walls = append(m.Walls, p)
			case Box:
				m.Boxes = append(m.Boxes, p)
			}
		}
	}
	return m
}
