package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/server"
)

// serveCommand creates the serve command for the JSON HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		lf   layoutFlags
		rf   renderFlags
		cf   cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram pipeline as a JSON HTTP API",
		Long: `Serve the diagram pipeline as a JSON HTTP API.

Routes:
  POST /v1/tree           graph to reduced tree
  POST /v1/layout         graph to layout
  POST /v1/diagram        graph to svg, png, pdf, json or dot
  POST /v1/text           long text to paginated PNG pages
  POST /v1/viewport/fit   fit transform for a viewport
  POST /v1/viewport/zoom  anchor-preserving zoom
  GET  /healthz

Flags and the config file set the defaults for every request. The server
stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			lf.apply(cmd, &opts)
			rf.apply(cmd, &opts)
			cf.apply(&opts)
			return c.runServe(cmd.Context(), addr, opts, cf.noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	lf.register(cmd)
	rf.register(cmd, false)
	cf.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, opts pipeline.Options, noCache bool) error {
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	runner, err := c.newRunner(opts.Cache, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	return server.New(runner, opts, c.Logger).ListenAndServe(ctx, addr)
}
