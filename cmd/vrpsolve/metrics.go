package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeMetricsCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Serve a /metrics endpoint for the engine's Prometheus registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The solve path registers its gauges/counters against the
			// default registerer, so the default handler sees them when both
			// commands share a process.
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			return http.ListenAndServe(addr, mux)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9090", "address to serve /metrics on")
	return cmd
}
