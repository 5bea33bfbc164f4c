package plan

import "github.com/matzehuels/gridviz/pkg/grid"

// State is one instant of the solved world: the agent's cell, every box's
// cell, and a link to the previous instant. Chains of states back the
// solution-tree visualization in pkg/render/tree.
type State struct {
	Agent  grid.Position
	Boxes  []grid.Position
	Parent *State
	Depth  int
}

// BuildStates converts a plan into a parent-linked chain of states, one per
// timestep. It returns the first and last state of the chain, or (nil, nil)
// for an empty plan.
//
// Box trajectories shorter than the agent path contribute no position to
// later states, mirroring how the renderer omits exhausted boxes.
func BuildStates(p *Plan) (first, last *State) {
	var prev *State
	for t := range p.Path {
		s := &State{
			Agent:  p.Path[t],
			Boxes:  p.BoxesAt(t),
			Parent: prev,
			Depth:  t,
		}
		if first == nil {
			first = s
		}
		prev = s
	}
	return first, prev
}

// Chain walks the parent links from s back to the root and returns the
// states in chronological order (root first).
func (s *State) Chain() []*State {
	var out []*State
	for cur := s; cur != nil; cur = cur.Parent {
		out = append(out, cur)
	}
	// Reverse into chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
