package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cloudgraph/internal/server"
	"github.com/matzehuels/cloudgraph/pkg/pipeline"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP service",
		Long: `Serve the layout API over HTTP.

Endpoints:
  POST /v1/layout            compute a layout (JSON)
  POST /v1/render/{format}   render json, dot, svg, pdf or png
  POST /v1/validate          lint a diagram
  GET  /healthz              liveness probe
  GET  /metrics              Prometheus metrics

The cache backend defaults to memory; set [cache] backend in the config
file to use redis or the file cache instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config.Server
			cfgTimeout, err := cfg.timeout()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && cfg.Addr != "" {
				addr = cfg.Addr
			}
			if !cmd.Flags().Changed("max-body") && cfg.MaxBodyBytes != 0 {
				maxBody = cfg.MaxBodyBytes
			}
			if !cmd.Flags().Changed("timeout") && cfgTimeout != 0 {
				timeout = cfgTimeout
			}

			backend := c.config.Cache.Backend
			if backend == "" {
				backend = backendMemory
			}
			store, err := c.newCache(ctx, backend)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, c.newKeyer(), c.Logger)
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:         addr,
				MaxBodyBytes: maxBody,
				Timeout:      timeout,
			}, runner, server.NewMetrics(), c.Logger)

			printInfo("Serving on %s (cache: %s)", addr, backend)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	return cmd
}
