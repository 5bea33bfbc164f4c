// Package pkg provides the core libraries for Gridviz plan visualization.
//
// # Overview
//
// Gridviz turns a solved grid-world plan (an agent path plus box
// trajectories on a static map) into visual artifacts. The pkg
// directory is organized into four main areas:
//
//  1. [grid] / [plan] - Domain types (maps, positions, trajectories)
//  2. [render] - State reconstruction, rasterization, and export sinks
//  3. [pipeline] - Orchestration (reconstruct → rasterize → export)
//  4. [cache] / [observability] - Infrastructure (artifact cache, hooks)
//
// # Architecture
//
// The typical data flow through Gridviz:
//
//	Map file + Plan JSON
//	         ↓
//	    [grid] / [plan] packages (parse and validate)
//	         ↓
//	    [render/snapshot] package (per-timestep state reconstruction)
//	         ↓
//	    [render/raster] package (palette + nearest-neighbor upscale)
//	         ↓
//	    [render/sink] package (GIF/PNG/ASCII assembly)
//	         ↓
//	    GIF/PNG/ASCII/DOT output
//
// # Quick Start
//
// Load inputs and render the default artifacts:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/gridviz/pkg/grid"
//	    "github.com/matzehuels/gridviz/pkg/pipeline"
//	    "github.com/matzehuels/gridviz/pkg/plan"
//	)
//
//	// 1. Load the map and plan
//	g, _ := grid.Load("maps/level1.txt")
//	p, _ := plan.ImportFile("plans/level1.json")
//
//	// 2. Run the pipeline
//	runner := pipeline.NewRunner(nil, nil)
//	defer runner.Close()
//	result, _ := runner.Execute(context.Background(), g, p, pipeline.Options{
//	    Formats: []string{pipeline.FormatGIF, pipeline.FormatPNG},
//	})
//
//	// 3. Use the artifacts
//	gifBytes := result.Artifacts[pipeline.FormatGIF]
package pkg
