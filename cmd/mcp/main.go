package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/worldofchami/shopify-mcp/pkg/app"
	"github.com/worldofchami/shopify-mcp/pkg/config"
	"github.com/worldofchami/shopify-mcp/pkg/server"
	"github.com/worldofchami/shopify-mcp/pkg/telemetry"
)

type serveOptions struct {
	envFile   string
	transport string
	addr      string
	logLevel  string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "shopify-mcp: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:          "shopify-mcp",
		Short:        "Serve Shopify product, cart and rating tools over MCP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.StringVar(&opts.transport, "transport", "", "MCP transport: stdio or http (overrides MCP_TRANSPORT)")
	flags.StringVar(&opts.addr, "addr", "", "listen address for the http transport (overrides MCP_HTTP_ADDR)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	return cmd
}

func serve(cmd *cobra.Command, opts serveOptions) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Transport = strings.ToLower(strings.TrimSpace(opts.transport))
	}
	if flags.Changed("addr") {
		cfg.HTTPAddr = strings.TrimSpace(opts.addr)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("failed to close ratings store", zap.Error(err))
		}
	}()

	ctx, cancel := signalAwareContext(cmd.Context())
	defer cancel()

	srv := server.New(application.Registry, logger)
	switch cfg.Transport {
	case config.TransportHTTP:
		return srv.ServeHTTP(ctx, cfg.HTTPAddr, application.Gatherer)
	default:
		return srv.RunStdio(ctx)
	}
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
