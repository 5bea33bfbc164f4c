package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridviz/internal/api"
)

// serveCommand creates the HTTP API server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Start an HTTP server exposing the rendering pipeline.

Endpoints:
  GET  /healthz    liveness probe
  POST /v1/render  render a grid and plan, returns the artifact bytes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			opts, err := cfg.PipelineOptions()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			server := api.New(cfg.Server.Addr, runner, opts, c.Logger)
			return server.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}
