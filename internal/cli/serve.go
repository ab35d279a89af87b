package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestgraph/pkg/api"
	"github.com/matzehuels/nestgraph/pkg/history"
	"github.com/matzehuels/nestgraph/pkg/netio"
	"github.com/matzehuels/nestgraph/pkg/observability"
)

const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	history int    // revision history depth
	metrics bool   // expose /metrics
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", history: history.DefaultMaxRevisions, metrics: true}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Edit a network over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runServe(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().IntVar(&opts.history, "history", opts.history, "number of revisions kept for undo")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", opts.metrics, "expose Prometheus metrics at /metrics")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input string, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	reg, err := c.registry()
	if err != nil {
		return err
	}

	serverOpts := []api.Option{api.WithLogger(logger), api.WithHistoryDepth(opts.history)}
	if opts.metrics {
		h, err := registerMetrics()
		if err != nil {
			return err
		}
		defer observability.Reset()
		serverOpts = append(serverOpts, api.WithMetricsHandler(h))
	}
	srv := api.New(reg, serverOpts...)

	if input != "" {
		desc, err := netio.ImportDescription(input)
		if err != nil {
			return err
		}
		if err := srv.Load(desc); err != nil {
			return fmt.Errorf("load %s: %w", input, err)
		}
		net := srv.Network()
		logger.Info("Loaded network", "path", input, "nodes", net.NodeCount(), "connections", net.ConnectionCount())
	}

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", opts.addr)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// registerMetrics installs Prometheus-backed hooks and returns the scrape
// handler.
func registerMetrics() (http.Handler, error) {
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m, err := observability.NewMetrics(promReg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	observability.SetNetworkHooks(m)
	observability.SetHistoryHooks(m)
	observability.SetCacheHooks(m)
	observability.SetAPIHooks(m)
	return m.Handler(), nil
}
