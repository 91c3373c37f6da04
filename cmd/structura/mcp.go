package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/mudler/structura"
	"github.com/mudler/structura/callbacks"
	"github.com/mudler/xlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	var (
		method      string
		noStrict    bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the structured_output tool over MCP on stdio",
		Example: `  # Serve with metrics on :9090
  MODEL=gpt-4o-mini structura mcp --metrics-addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			llm, err := newLLM()
			if err != nil {
				return err
			}

			shutdown, err := setupTracing(cmd.Context())
			if err != nil {
				return err
			}
			defer shutdown()

			cbs := []structura.Callback{callbacks.NewTracing(nil)}
			if metricsAddr != "" {
				m, stop, err := serveMetrics(metricsAddr)
				if err != nil {
					return err
				}
				defer stop()
				cbs = append(cbs, m)
			}

			server := structura.NewMCPServer(llm, version, nodeOptions(method, !noStrict, cbs...)...)
			xlog.Info("serving MCP on stdio", "model", model)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	cmd.Flags().StringVar(&method, "method", string(structura.MethodJSONSchema), "Decoding method (json_schema, function_calling)")
	cmd.Flags().BoolVar(&noStrict, "no-strict", false, "Do not ask the model for strict schema adherence")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	return cmd
}

func serveMetrics(addr string) (*callbacks.Metrics, func(), error) {
	reg := prometheus.NewRegistry()
	m, err := callbacks.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		xlog.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			xlog.Error("metrics server failed", "error", err)
		}
	}()

	return m, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
