package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridviz/pkg/plan"
	"github.com/matzehuels/gridviz/pkg/render/tree"
)

// treeCommand creates the solution-tree visualization command.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree <plan-file>",
		Short: "Render the solution state chain as a Graphviz tree",
		Long: `Render the chain of plan states (one node per timestep) as a
Graphviz diagram. The dot format writes plain DOT source; svg and png
are rendered in-process.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.ImportFile(args[0])
			if err != nil {
				return err
			}

			_, last := plan.BuildStates(p)
			dot := tree.ToDOT(last, tree.Options{Detailed: detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = tree.RenderSVG(dot)
			case "png":
				data, err = tree.RenderPNG(dot)
			default:
				return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", format)
			}
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				path = base + "_tree." + format
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Solution tree written")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot, svg, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include box positions in node labels")

	return cmd
}
