package sink_test

import (
	"fmt"

	"github.com/matzehuels/gridviz/pkg/grid"
	"github.com/matzehuels/gridviz/pkg/plan"
	"github.com/matzehuels/gridviz/pkg/render/sink"
)

func ExampleTraceString() {
	g, _ := grid.Parse([]string{
		"#####",
		"#S..#",
		"#..G#",
		"#####",
	})
	path := plan.Path{
		{Row: 1, Col: 1},
		{Row: 1, Col: 2},
		{Row: 2, Col: 2},
		{Row: 2, Col: 3},
	}

	fmt.Println(sink.TraceString(g, path))
	// Output:
	// #####
	// #RR.#
	// #.RR#
	// #####
}
