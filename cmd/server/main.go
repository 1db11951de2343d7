// Package main is the storefront-shops entry point. It wires dependencies
// with samber/do v2, serves HTTP and shuts down gracefully on SIGINT or
// SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jsamuelsen11/storefront-shops/internal/adapters/clients/acl"
	adapthttp "github.com/jsamuelsen11/storefront-shops/internal/adapters/http"
	"github.com/jsamuelsen11/storefront-shops/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/storefront-shops/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/storefront-shops/internal/adapters/http/view"
	"github.com/jsamuelsen11/storefront-shops/internal/app"
	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
	"github.com/jsamuelsen11/storefront-shops/internal/platform/config"
	"github.com/jsamuelsen11/storefront-shops/internal/platform/health"
	"github.com/jsamuelsen11/storefront-shops/internal/platform/httpclient"
	"github.com/jsamuelsen11/storefront-shops/internal/platform/logging"
	"github.com/jsamuelsen11/storefront-shops/internal/platform/telemetry"
	"github.com/jsamuelsen11/storefront-shops/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (local, dev or prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*acl.ShopClient](injector))

	logger.Info("serving shops",
		slog.String("backend", do.MustInvoke[*httpclient.Client](injector).BaseURL()+cfg.Shops.Path),
		slog.String("error_policy", cfg.Shops.ErrorPolicy),
		slog.Bool("refetch_on_filter_change", cfg.Shops.RefetchOnFilterChange),
		slog.Duration("view_ttl", cfg.Shops.ViewTTL),
	)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	<-serverErr

	// No request observes views any more; cancel fetches still in flight.
	do.MustInvoke[*app.ShopService](injector).Close()

	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders holds the provider lifecycle. Every field is nil when
// telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Exporter, cfg.Telemetry.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Exporter, cfg.Telemetry.Endpoint)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{tracer: tp, meter: mp, metrics: metrics}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(cfg.Client, acl.HealthName,
			httpclient.WithMetrics(metrics),
			httpclient.WithLogger(logger),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*acl.ShopClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewShopClient(client, cfg.Shops.Path, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.ShopService, error) {
		client := do.MustInvoke[*acl.ShopClient](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewShopService(client, app.ShopServiceConfig{
			RefetchOnFilterChange: cfg.Shops.RefetchOnFilterChange,
			ErrorPolicy:           shop.ErrorPolicy(cfg.Shops.ErrorPolicy),
			RenderWait:            cfg.Shops.RenderWait,
			ViewTTL:               cfg.Shops.ViewTTL,
			MaxViews:              cfg.Shops.MaxViews,
		}, metrics, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.DefaultCheckTimeout), nil
	})

	do.Provide(injector, func(_ do.Injector) (*view.Renderer, error) {
		return view.New(view.WithRefresh(time.Second))
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ShopsHandler, error) {
		svc := do.MustInvoke[*app.ShopService](i)
		renderer := do.MustInvoke[*view.Renderer](i)
		return handlers.NewShopsHandler(svc, renderer), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		shopsH := do.MustInvoke[*handlers.ShopsHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(shopsH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
