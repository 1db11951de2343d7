// Package app provides the application services that inbound adapters call.
// Services coordinate domain logic and outbound ports; they hold no
// transport concerns.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/storefront-shops/internal/app/fetcher"
	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
	"github.com/jsamuelsen11/storefront-shops/internal/platform/telemetry"
	"github.com/jsamuelsen11/storefront-shops/internal/ports"
)

var _ ports.ShopService = (*ShopService)(nil)

// Defaults used when the matching ShopServiceConfig field is not positive.
const (
	DefaultRenderWait = 2 * time.Second
	DefaultViewTTL    = 30 * time.Second
	DefaultMaxViews   = 1024
)

// ShopServiceConfig carries the shop listing behavior.
type ShopServiceConfig struct {
	RefetchOnFilterChange bool
	ErrorPolicy           shop.ErrorPolicy
	RenderWait            time.Duration
	ViewTTL               time.Duration
	MaxViews              int
}

// ShopService implements ports.ShopService. It keeps one mounted fetcher
// per view so that a page that polls while loading observes a single fetch
// from mount to settle.
type ShopService struct {
	client  ports.ShopClient
	cfg     ShopServiceConfig
	metrics *telemetry.Metrics
	logger  *slog.Logger
	views   *viewPool
}

// NewShopService creates a ShopService. A nil logger discards; nil metrics
// disable fetch metrics.
func NewShopService(client ports.ShopClient, cfg ShopServiceConfig, metrics *telemetry.Metrics, logger *slog.Logger) *ShopService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.RenderWait <= 0 {
		cfg.RenderWait = DefaultRenderWait
	}
	if cfg.ViewTTL <= 0 {
		cfg.ViewTTL = DefaultViewTTL
	}
	if cfg.MaxViews <= 0 {
		cfg.MaxViews = DefaultMaxViews
	}
	if !cfg.ErrorPolicy.IsValid() {
		cfg.ErrorPolicy = shop.ErrorPolicyInline
	}
	return &ShopService{
		client:  client,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
		views:   newViewPool(cfg.ViewTTL, cfg.MaxViews),
	}
}

// Browse observes view viewID, or a newly mounted one, for up to the render
// wait. When the wait elapses the loading snapshot is returned without
// error and the fetch keeps running for the view's next Browse.
func (s *ShopService) Browse(ctx context.Context, viewID string, filter shop.Filter) (shop.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return shop.Snapshot{ViewID: viewID, Filter: filter, State: shop.NewFetchState()}, err
	}

	v, err := s.acquire(ctx, viewID, filter)
	if err != nil {
		return shop.Snapshot{ViewID: viewID, Filter: filter, State: shop.NewFetchState()}, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.RenderWait)
	defer cancel()

	state, err := v.fetcher.Wait(waitCtx)
	snap := shop.Snapshot{ViewID: v.id, Filter: v.fetcher.Filter(), State: state}
	variant := shop.Classify(snap.Filter)

	switch {
	case err == nil:
	case ctx.Err() == nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, fetcher.ErrUnmounted)):
		// Still loading, or evicted while waiting; the next Browse of the
		// view picks it up or mounts afresh.
		s.logger.InfoContext(ctx, "render wait elapsed before shops settled",
			slog.String("operation", "Browse"),
			slog.String("view_id", v.id),
			slog.String("variant", variant.String()),
			slog.Duration("render_wait", s.cfg.RenderWait),
		)
		return snap, nil
	default:
		return snap, err
	}

	if state.Failed() {
		s.logger.ErrorContext(ctx, "failed to browse shops",
			slog.String("operation", "Browse"),
			slog.String("view_id", v.id),
			slog.String("variant", variant.String()),
			slog.Any("error", state.Err),
		)
		return snap, nil
	}

	s.logger.InfoContext(ctx, "browsed shops",
		slog.String("operation", "Browse"),
		slog.String("view_id", v.id),
		slog.String("variant", variant.String()),
		slog.Int("count", len(state.Results)),
	)
	return snap, nil
}

// acquire returns the mounted view viewID re-filtered to filter, or mounts a
// new view. Views outlive the request: their fetch runs on a context that
// keeps ctx's values but not its cancellation.
func (s *ShopService) acquire(ctx context.Context, viewID string, filter shop.Filter) (*mountedView, error) {
	if viewID != "" {
		if v := s.views.get(viewID); v != nil {
			v.fetcher.SetFilter(filter)
			return v, nil
		}
	}

	v := &mountedView{id: uuid.NewString()}
	v.fetcher = fetcher.New(s.client,
		fetcher.WithLogger(s.logger),
		fetcher.WithMetrics(s.metrics),
		fetcher.WithRefetchOnChange(s.cfg.RefetchOnFilterChange),
		// A late settle restarts the idle clock so the next poll finds it.
		fetcher.WithOnSettle(func(shop.FetchState) { s.views.touch(v.id) }),
	)
	if err := v.fetcher.Mount(context.WithoutCancel(ctx), filter); err != nil {
		return nil, err
	}
	s.views.add(v)

	s.logger.DebugContext(ctx, "mounted shop view",
		slog.String("operation", "Browse"),
		slog.String("view_id", v.id),
		slog.String("variant", shop.Classify(filter).String()),
	)
	return v, nil
}

// Close unmounts every view, canceling fetches still in flight.
func (s *ShopService) Close() {
	n := s.views.closeAll()
	s.logger.Info("closed shop views", slog.Int("views", n))
}

// ErrorPolicy implements ports.ShopService.
func (s *ShopService) ErrorPolicy() shop.ErrorPolicy {
	return s.cfg.ErrorPolicy
}
