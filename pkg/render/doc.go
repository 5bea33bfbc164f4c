// Package render hosts the frame-construction pipeline: snapshot
// reconstruction, rasterization, and export sinks.
//
// The subpackages mirror the stages of the pipeline:
//
//   - [snapshot]: rebuild the world state for one timestep by stamping
//     the agent and box positions onto a copy of the static grid
//   - [raster]: turn a snapshot into an RGB frame, one solid block of
//     pixels per cell
//   - [sink]: assemble frames into output artifacts (animated GIF,
//     final-state PNG, ASCII trace)
//   - [tree]: render a solution state chain as a Graphviz diagram
//
// The stages are orchestrated by [pipeline], which owns configuration,
// caching, and logging; the packages here are pure data transforms.
//
// [snapshot]: github.com/matzehuels/gridviz/pkg/render/snapshot
// [raster]: github.com/matzehuels/gridviz/pkg/render/raster
// [sink]: github.com/matzehuels/gridviz/pkg/render/sink
// [tree]: github.com/matzehuels/gridviz/pkg/render/tree
// [pipeline]: github.com/matzehuels/gridviz/pkg/pipeline
package render
