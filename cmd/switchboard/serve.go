package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/andy6609/switchboard/internal/config"
	"github.com/andy6609/switchboard/internal/relay"
)

var (
	flagAddr        string
	flagMetricsAddr string
	flagConfig      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relay server",
	Long: `Start the relay and a Prometheus metrics endpoint.

Settings resolve as defaults < config file < SWITCHBOARD_* environment
variables < flags.

Examples:
  switchboard serve
  switchboard serve --addr :5000
  switchboard serve --config ./switchboard.yaml`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":12345", "relay listen address")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", ":9090", "metrics listen address")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("addr") {
		cfg.ListenAddr = flagAddr
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = flagMetricsAddr
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	srv := relay.NewServer(cfg.ListenAddr, time.Duration(cfg.WriteTimeout)*time.Second, logger)
	if err := srv.Start(); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	go serveMetrics(cfg.MetricsAddr, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	srv.Stop()
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("metrics endpoint started", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics endpoint failed", "error", err)
	}
}
