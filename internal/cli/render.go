package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridviz/pkg/grid"
	"github.com/matzehuels/gridviz/pkg/pipeline"
	"github.com/matzehuels/gridviz/pkg/plan"
	"github.com/matzehuels/gridviz/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output base path (default: plan file basename)
	formats []string // output formats: "gif", "png", "ascii", "dot"
	scale   int      // pixel block size per grid cell
	delayMS int      // per-frame display duration in milliseconds
	noCache bool     // bypass artifact cache
	trace   bool     // print the ASCII path trace to stdout
}

// renderCommand creates the render command.
//
// Default settings:
//   - scale: 5 pixels per cell
//   - delay: 300ms per frame
//   - formats: gif, png
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <map-file> <plan-file>",
		Short: "Render a plan as a GIF animation and final-state PNG",
		Long: `Render a solved plan on a grid map.

The map file is a plain-text grid ('#' wall, '.' free, 'S' start, 'G' goal,
'B' box). The plan file is JSON holding the agent path and per-box
trajectories as (row, col) positions per timestep.

Examples:
  gridviz render maps/level1.txt plans/level1.json
  gridviz render maps/level1.txt plans/level1.json -f gif --scale 10
  gridviz render maps/level1.txt plans/level1.json -o out/level1 -f gif,png,dot`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (extension added per format)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): gif, png, ascii, dot (comma-separated)")
	cmd.Flags().IntVar(&opts.scale, "scale", 0, "pixels per grid cell (default 5)")
	cmd.Flags().IntVar(&opts.delayMS, "delay", 0, "frame duration in milliseconds (default 300)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "print the ASCII path trace")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, mapPath, planPath string, opts *renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	g, err := grid.Load(mapPath)
	if err != nil {
		return err
	}
	markers := g.Scan()
	c.Logger.Debug("map loaded",
		"rows", g.Rows(), "cols", g.Cols(),
		"walls", len(markers.Walls), "boxes", len(markers.Boxes))

	p, err := plan.ImportFile(planPath)
	if err != nil {
		return err
	}

	pipeOpts, err := cfg.PipelineOptions()
	if err != nil {
		return err
	}
	pipeOpts.Formats = opts.formats
	pipeOpts.Logger = c.Logger
	if opts.scale != 0 {
		pipeOpts.Scale = opts.scale
	}
	if opts.delayMS != 0 {
		pipeOpts.DelayMS = opts.delayMS
	}

	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spin := newSpinner(cmd.Context(), "Rendering...")
	spin.Start()
	result, err := runner.Execute(cmd.Context(), g, p, pipeOpts)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d frames", result.Stats.FrameCount))

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(planPath, filepath.Ext(planPath))
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	cached := true
	for _, format := range opts.formats {
		path := base + "." + extensionFor(format)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
		cached = cached && result.CacheHits[format]
	}

	printStats(result.Stats.Steps, result.Stats.FrameCount, result.Stats.Boxes, cached)

	if opts.trace {
		fmt.Fprintln(cmd.OutOrStdout(), sink.TraceString(g, p.Path))
	}
	return nil
}

// extensionFor maps a format to its file extension.
func extensionFor(format string) string {
	if format == pipeline.FormatASCII {
		return "txt"
	}
	return format
}
