// Package fetcher owns the lifecycle of one shop listing fetch: it is
// mounted with a filter, issues the request asynchronously, and settles a
// shop.FetchState exactly once per attempt.
//
//	f := fetcher.New(client, fetcher.WithLogger(logger))
//	if err := f.Mount(ctx, shop.Filter{City: "Seattle"}); err != nil { ... }
//	defer f.Unmount()
//	state, err := f.Wait(ctx)
//
// Completions are applied only while the fetcher is mounted and only for
// the latest attempt; anything arriving after Unmount or for a superseded
// filter is dropped.
package fetcher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/storefront-shops/internal/domain"
	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
	"github.com/jsamuelsen11/storefront-shops/internal/platform/telemetry"
	"github.com/jsamuelsen11/storefront-shops/internal/ports"
)

var (
	// ErrAlreadyMounted is returned by a second Mount.
	ErrAlreadyMounted = errors.New("fetcher: already mounted")
	// ErrUnmounted is returned by Mount and Wait once the fetcher is unmounted.
	ErrUnmounted = errors.New("fetcher: unmounted")
	// ErrNotMounted is returned by Wait before Mount.
	ErrNotMounted = errors.New("fetcher: not mounted")
)

type phase int

const (
	phaseIdle phase = iota
	phaseMounted
	phaseUnmounted
)

// Outcome values recorded on shops.fetch.* metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ShopsFetcher is safe for concurrent use.
type ShopsFetcher struct {
	client   ports.ShopClient
	logger   *slog.Logger
	metrics  *telemetry.Metrics
	refetch  bool
	onSettle func(shop.FetchState)

	mu      sync.Mutex
	phase   phase
	parent  context.Context
	filter  shop.Filter
	state   shop.FetchState
	gen     uint64
	cancel  context.CancelFunc
	settled chan struct{} // closed when attempt gen settles
	done    chan struct{} // closed by Unmount
	fetches int
}

// Option configures a ShopsFetcher.
type Option func(*ShopsFetcher)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(f *ShopsFetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithMetrics records shops.fetch.total and shops.fetch.duration.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(f *ShopsFetcher) { f.metrics = m }
}

// WithRefetchOnChange controls whether SetFilter issues a new request when
// the filter changes. Enabled by default; when disabled a mount fetches
// exactly once.
func WithRefetchOnChange(enabled bool) Option {
	return func(f *ShopsFetcher) { f.refetch = enabled }
}

// WithOnSettle registers fn to receive each applied settle. fn runs on the
// fetch goroutine and must not block for long.
func WithOnSettle(fn func(shop.FetchState)) Option {
	return func(f *ShopsFetcher) { f.onSettle = fn }
}

// New creates an unmounted fetcher in the initial loading state.
func New(client ports.ShopClient, opts ...Option) *ShopsFetcher {
	f := &ShopsFetcher{
		client:  client,
		logger:  slog.New(slog.DiscardHandler),
		refetch: true,
		state:   shop.NewFetchState(),
		settled: make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Mount starts the fetch for filter and returns without waiting for it.
// ctx bounds every request issued during the mount, including refetches.
func (f *ShopsFetcher) Mount(ctx context.Context, filter shop.Filter) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.phase {
	case phaseMounted:
		return ErrAlreadyMounted
	case phaseUnmounted:
		return ErrUnmounted
	case phaseIdle:
	}

	f.phase = phaseMounted
	f.parent = ctx
	f.filter = filter
	f.startLocked()
	return nil
}

// SetFilter replaces the filter of a mounted fetcher. With refetch enabled
// and a filter that differs from the current one, the in-flight request is
// canceled and a new one issued; otherwise the call has no effect.
func (f *ShopsFetcher) SetFilter(filter shop.Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != phaseMounted || !f.refetch || filter == f.filter {
		return
	}

	f.logger.DebugContext(f.parent, "shop filter changed",
		slog.String("operation", "ShopsFetcher.SetFilter"),
		slog.String("from", shop.Classify(f.filter).String()),
		slog.String("to", shop.Classify(filter).String()),
	)

	f.cancel()
	if !f.state.Settled() {
		// Wake waiters on the superseded attempt; Wait re-checks the new one.
		close(f.settled)
	}
	f.filter = filter
	f.state = f.state.Reload()
	f.settled = make(chan struct{})
	f.startLocked()
}

// Unmount cancels any in-flight request and stops all further state
// changes. Safe to call more than once.
func (f *ShopsFetcher) Unmount() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase == phaseUnmounted {
		return
	}
	if f.cancel != nil {
		f.cancel()
	}
	f.phase = phaseUnmounted
	close(f.done)
}

// State returns a snapshot of the fetch state.
func (f *ShopsFetcher) State() shop.FetchState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Filter returns the filter of the current attempt.
func (f *ShopsFetcher) Filter() shop.Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter
}

// Fetches returns the number of requests issued.
func (f *ShopsFetcher) Fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// Wait blocks until the latest attempt settles and returns its state. If
// ctx ends first the current (loading) snapshot is returned with ctx's
// error; if the fetcher is unmounted meanwhile, with ErrUnmounted.
func (f *ShopsFetcher) Wait(ctx context.Context) (shop.FetchState, error) {
	for {
		f.mu.Lock()
		switch f.phase {
		case phaseIdle:
			f.mu.Unlock()
			return f.State(), ErrNotMounted
		case phaseUnmounted:
			s := f.state
			f.mu.Unlock()
			return s, ErrUnmounted
		case phaseMounted:
		}
		if f.state.Settled() {
			s := f.state
			f.mu.Unlock()
			return s, nil
		}
		settled := f.settled
		f.mu.Unlock()

		select {
		case <-settled:
			// A refetch may already be under way; loop to check.
		case <-f.done:
		case <-ctx.Done():
			return f.State(), ctx.Err()
		}
	}
}

// startLocked issues the request for the current filter. f.mu must be held.
func (f *ShopsFetcher) startLocked() {
	f.gen++
	f.fetches++

	ctx, cancel := context.WithCancel(f.parent)
	f.cancel = cancel

	go f.run(ctx, cancel, f.gen, f.filter, f.settled)
}

func (f *ShopsFetcher) run(ctx context.Context, cancel context.CancelFunc, gen uint64, filter shop.Filter, settled chan struct{}) {
	defer cancel()

	start := time.Now()
	shops, err := f.client.ListShops(ctx, filter)
	f.complete(ctx, gen, filter, settled, start, shops, err)
}

// complete applies the result of attempt gen if it is still current.
func (f *ShopsFetcher) complete(ctx context.Context, gen uint64, filter shop.Filter, settled chan struct{}, start time.Time, shops []shop.Shop, err error) {
	variant := shop.Classify(filter)

	f.mu.Lock()
	if f.phase != phaseMounted || gen != f.gen {
		f.mu.Unlock()
		f.logger.DebugContext(ctx, "discarding stale shop fetch",
			slog.String("operation", "ShopsFetcher.complete"),
			slog.String("variant", variant.String()),
			slog.Uint64("generation", gen),
		)
		return
	}

	if err != nil {
		f.state = f.state.Fail(domain.FetchError(err))
	} else {
		f.state = f.state.Succeed(shops)
	}
	close(settled)
	snapshot := f.state
	onSettle := f.onSettle
	f.mu.Unlock()

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
		f.logger.WarnContext(ctx, "shop fetch failed",
			slog.String("operation", "ShopsFetcher.complete"),
			slog.String("variant", variant.String()),
			slog.Any("error", snapshot.Err),
		)
	} else {
		f.logger.DebugContext(ctx, "shop fetch settled",
			slog.String("operation", "ShopsFetcher.complete"),
			slog.String("variant", variant.String()),
			slog.Int("count", len(snapshot.Results)),
		)
	}
	f.recordMetrics(ctx, variant, outcome, time.Since(start))

	if onSettle != nil {
		onSettle(snapshot)
	}
}

func (f *ShopsFetcher) recordMetrics(ctx context.Context, variant shop.Variant, outcome string, d time.Duration) {
	if f.metrics == nil {
		return
	}
	// Recorded against a context that outlives the request cancellation.
	ctx = context.WithoutCancel(ctx)
	attrs := metric.WithAttributes(
		telemetry.AttrVariant.String(variant.String()),
		telemetry.AttrOutcome.String(outcome),
	)
	f.metrics.ShopFetchTotal.Add(ctx, 1, attrs)
	f.metrics.ShopFetchDuration.Record(ctx, d.Seconds(), attrs)
}
