// Package app wires the process-wide dependencies: one cart store, created
// and initialized once at start and shared by every screen controller.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/es"
	"github.com/Skotchmaster/storefront/internal/metrics"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/service"
)

type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Store   *cart.Store
	Catalog *service.CatalogService
	Cart    *service.CartService

	producer *mykafka.Producer
}

// New builds the dependency graph. Optional integrations (Elasticsearch,
// Kafka) that fail to come up are logged and left disabled.
func New(cfg *config.Config, logger *slog.Logger) *App {
	store := cart.NewStore(cfg.DBPath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg, func() float64 { return float64(store.State()) })

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		Metrics:  m,
		Store:    store,
		Catalog: &service.CatalogService{
			Fetcher: catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout),
			Metrics: m,
		},
		Cart: &service.CartService{
			Store:   store,
			Metrics: m,
		},
	}

	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			logger.Warn("product search disabled", "error", err)
		} else {
			a.Catalog.Index = es.NewProductIndex(client, cfg.ESIndex)
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		p, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Warn("cart events disabled", "error", err)
		} else {
			a.producer = p
			a.Cart.Publisher = p
		}
	}

	return a
}

// Start initializes the cart store. Nothing that reads or writes the cart
// may run before it returns nil.
func (a *App) Start(ctx context.Context) error {
	if err := a.Store.Initialize(ctx); err != nil {
		a.Logger.Error("cart_store_init_failed", "path", a.Store.Path(), "error", err)
		return err
	}
	a.Logger.Info("cart_store_ready", "path", a.Store.Path())
	return nil
}

func (a *App) Close() error {
	var errs []error
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close cart store: %w", err))
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close kafka producer: %w", err))
		}
	}
	return errors.Join(errs...)
}
