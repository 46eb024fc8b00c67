// Package app wires configuration, the Shopify client, the ratings store and
// the tool registry together for the commands.
package app

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/worldofchami/shopify-mcp/pkg/config"
	"github.com/worldofchami/shopify-mcp/pkg/platforms/shopify"
	"github.com/worldofchami/shopify-mcp/pkg/ratings"
	"github.com/worldofchami/shopify-mcp/pkg/telemetry"
	"github.com/worldofchami/shopify-mcp/pkg/tools"
)

type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Metrics  *telemetry.Metrics
	Gatherer prometheus.Gatherer
	Client   *shopify.Client
	Ratings  ratings.Store
	Shop     *tools.Shop
	Registry *tools.Registry
}

// New builds the application graph. Metrics are registered on a private
// registry so several App values can coexist in one process.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewMetrics(promRegistry)

	store, err := ratings.Open(cfg.RatingsBackend)
	if err != nil {
		return nil, fmt.Errorf("failed to open ratings store: %w", err)
	}

	client := shopify.NewClient(cfg.Credential, cfg.Timeout,
		shopify.WithAPIVersion(cfg.APIVersion),
		shopify.WithLogger(logger),
		shopify.WithObserver(metrics),
	)
	shop := tools.NewShop(client, store, logger, metrics)

	registry := tools.NewRegistry(logger, metrics)
	if err := registry.Register(tools.ShopTools(shop)...); err != nil {
		return nil, err
	}

	logger.Info("application configured",
		zap.Stringer("shop", cfg.Credential),
		zap.String("api_version", cfg.APIVersion),
		zap.Duration("timeout", cfg.Timeout),
		zap.String("ratings_backend", cfg.RatingsBackend))

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
		Gatherer: promRegistry,
		Client:   client,
		Ratings:  store,
		Shop:     shop,
		Registry: registry,
	}, nil
}

func (a *App) Close() error {
	if c, ok := a.Ratings.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
