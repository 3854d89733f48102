package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/algotrace/internal/server"
	"github.com/matzehuels/algotrace/pkg/observability"
)

// serveCommand creates the serve command, which exposes the engine over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the trace API over HTTP",
		Long: `Serve the algorithm catalogue, pseudocode listings and trace execution as a
JSON API. Prometheus metrics are exposed on /metrics unless --no-metrics is set.`,
		Example: `  algotrace serve
  algotrace serve --addr 127.0.0.1:9000 --no-cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var opts []server.Option
			if !noMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				metrics := observability.NewPrometheus(reg)
				observability.SetRunHooks(metrics)
				observability.SetCacheHooks(metrics)
				observability.SetHTTPHooks(metrics)
				defer observability.Reset()

				opts = append(opts, server.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
			}

			return server.New(runner, c.Logger, opts...).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the execution cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")

	return cmd
}
