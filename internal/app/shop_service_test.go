package app

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/storefront-shops/internal/domain"
	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
	"github.com/jsamuelsen11/storefront-shops/mocks"
)

var (
	seattle  = shop.Filter{City: "Seattle"}
	portland = shop.Filter{City: "Portland"}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testConfig() ShopServiceConfig {
	return ShopServiceConfig{
		RefetchOnFilterChange: true,
		ErrorPolicy:           shop.ErrorPolicyInline,
		RenderWait:            time.Second,
		ViewTTL:               time.Minute,
		MaxViews:              8,
	}
}

func newTestService(t *testing.T, client *mocks.MockShopClient, cfg ShopServiceConfig) *ShopService {
	t.Helper()

	svc := NewShopService(client, cfg, nil, discardLogger())
	t.Cleanup(svc.Close)
	return svc
}

// testClock is a settable clock safe to read from fetch goroutines.
type testClock struct{ nanos atomic.Int64 }

func newTestClock() *testClock {
	c := &testClock{}
	c.nanos.Store(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano())
	return c
}

func (c *testClock) now() time.Time          { return time.Unix(0, c.nanos.Load()) }
func (c *testClock) advance(d time.Duration) { c.nanos.Add(int64(d)) }

func TestNewShopService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewShopService(mocks.NewMockShopClient(t), ShopServiceConfig{ErrorPolicy: "loud"}, nil, nil)

	assert.NotNil(t, svc.logger)
	assert.Equal(t, DefaultRenderWait, svc.cfg.RenderWait)
	assert.Equal(t, DefaultViewTTL, svc.cfg.ViewTTL)
	assert.Equal(t, DefaultMaxViews, svc.cfg.MaxViews)
	assert.Equal(t, shop.ErrorPolicyInline, svc.ErrorPolicy())
}

func TestShopService_Browse(t *testing.T) {
	t.Parallel()

	payload := []shop.Shop{shop.Shop(`{"name":"Bean There"}`)}
	boom := errors.New("connection refused")
	filter := shop.Filter{City: "Seattle", Category: "espresso"}

	tests := []struct {
		name    string
		results []shop.Shop
		err     error
		check   func(t *testing.T, s shop.FetchState)
	}{
		{
			name:    "success",
			results: payload,
			check: func(t *testing.T, s shop.FetchState) {
				assert.True(t, s.Loaded)
				assert.False(t, s.IsLoading)
				assert.Equal(t, payload, s.Results)
			},
		},
		{
			name: "failure is a state, not an error",
			err:  boom,
			check: func(t *testing.T, s shop.FetchState) {
				assert.False(t, s.Loaded)
				assert.False(t, s.IsLoading)
				assert.ErrorIs(t, s.Err, domain.ErrFetchFailed)
				assert.ErrorIs(t, s.Err, boom)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := mocks.NewMockShopClient(t)
			client.EXPECT().ListShops(mock.Anything, filter).Return(tt.results, tt.err).Once()

			svc := newTestService(t, client, testConfig())

			snap, err := svc.Browse(context.Background(), "", filter)
			require.NoError(t, err)

			_, err = uuid.Parse(snap.ViewID)
			require.NoError(t, err, "a new view gets a generated ID")
			assert.Equal(t, filter, snap.Filter)
			tt.check(t, snap.State)
		})
	}
}

func TestShopService_Browse_SlowBackendSettlesOnLaterPoll(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var canceled atomic.Bool

	client := mocks.NewMockShopClient(t)
	client.EXPECT().ListShops(mock.Anything, seattle).RunAndReturn(func(ctx context.Context, _ shop.Filter) ([]shop.Shop, error) {
		select {
		case <-release:
			return []shop.Shop{shop.Shop(`{"name":"Slow Pour"}`)}, nil
		case <-ctx.Done():
			canceled.Store(true)
			return nil, ctx.Err()
		}
	}).Once()

	cfg := testConfig()
	cfg.RenderWait = 20 * time.Millisecond
	svc := newTestService(t, client, cfg)

	// The request that mounted the view ends before the backend answers.
	reqCtx, endRequest := context.WithCancel(context.Background())
	first, err := svc.Browse(reqCtx, "", seattle)
	endRequest()
	require.NoError(t, err)
	assert.True(t, first.State.IsLoading)

	// Several polls while the backend is still slower than the render wait.
	for range 3 {
		snap, err := svc.Browse(context.Background(), first.ViewID, seattle)
		require.NoError(t, err)
		assert.Equal(t, first.ViewID, snap.ViewID)
		assert.True(t, snap.State.IsLoading)
	}

	close(release)

	require.Eventually(t, func() bool {
		snap, err := svc.Browse(context.Background(), first.ViewID, seattle)
		return err == nil && snap.State.Loaded
	}, time.Second, 10*time.Millisecond)
	assert.False(t, canceled.Load(), "the abandoned fetch ran to completion")
}

func TestShopService_Browse_ViewRefilters(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockShopClient(t)
	client.EXPECT().ListShops(mock.Anything, seattle).Return([]shop.Shop{shop.Shop(`{"name":"A"}`)}, nil).Once()
	client.EXPECT().ListShops(mock.Anything, portland).Return([]shop.Shop{shop.Shop(`{"name":"B"}`)}, nil).Once()

	svc := newTestService(t, client, testConfig())

	first, err := svc.Browse(context.Background(), "", seattle)
	require.NoError(t, err)
	require.True(t, first.State.Loaded)

	// Same filter: the mounted view is observed again, no new request.
	again, err := svc.Browse(context.Background(), first.ViewID, seattle)
	require.NoError(t, err)
	assert.Equal(t, first.State, again.State)

	moved, err := svc.Browse(context.Background(), first.ViewID, portland)
	require.NoError(t, err)
	assert.Equal(t, first.ViewID, moved.ViewID)
	assert.Equal(t, portland, moved.Filter)
	assert.Equal(t, []shop.Shop{shop.Shop(`{"name":"B"}`)}, moved.State.Results)
	assert.Equal(t, 1, svc.views.size())
}

func TestShopService_Browse_RefetchDisabledKeepsMountedFilter(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockShopClient(t)
	client.EXPECT().ListShops(mock.Anything, seattle).Return([]shop.Shop{shop.Shop(`{"name":"A"}`)}, nil).Once()

	cfg := testConfig()
	cfg.RefetchOnFilterChange = false
	svc := newTestService(t, client, cfg)

	first, err := svc.Browse(context.Background(), "", seattle)
	require.NoError(t, err)

	snap, err := svc.Browse(context.Background(), first.ViewID, portland)
	require.NoError(t, err)
	assert.Equal(t, seattle, snap.Filter)
	assert.Equal(t, first.State, snap.State)
}

func TestShopService_Browse_UnknownViewMountsNew(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockShopClient(t)
	client.EXPECT().ListShops(mock.Anything, seattle).Return(nil, nil).Once()

	svc := newTestService(t, client, testConfig())

	stale := uuid.NewString()
	snap, err := svc.Browse(context.Background(), stale, seattle)
	require.NoError(t, err)
	assert.NotEqual(t, stale, snap.ViewID)
	assert.True(t, snap.State.Loaded)
}

func TestShopService_Browse_IdleViewExpires(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockShopClient(t)
	client.EXPECT().ListShops(mock.Anything, seattle).Return(nil, nil).Twice()

	clock := newTestClock()
	svc := newTestService(t, client, testConfig())
	svc.views.now = clock.now

	first, err := svc.Browse(context.Background(), "", seattle)
	require.NoError(t, err)

	clock.advance(testConfig().ViewTTL + time.Second)

	second, err := svc.Browse(context.Background(), first.ViewID, seattle)
	require.NoError(t, err)
	assert.NotEqual(t, first.ViewID, second.ViewID)
	assert.Equal(t, 1, svc.views.size())
}

func TestShopService_Browse_LateSettleRestartsIdleClock(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client := mocks.NewMockShopClient(t)
	client.EXPECT().ListShops(mock.Anything, seattle).RunAndReturn(func(context.Context, shop.Filter) ([]shop.Shop, error) {
		<-release
		return nil, nil
	}).Once()

	cfg := testConfig()
	cfg.RenderWait = 10 * time.Millisecond
	clock := newTestClock()
	svc := newTestService(t, client, cfg)
	svc.views.now = clock.now

	first, err := svc.Browse(context.Background(), "", seattle)
	require.NoError(t, err)
	require.True(t, first.State.IsLoading)

	clock.advance(cfg.ViewTTL - time.Second)
	close(release)

	settledAt := clock.now()
	require.Eventually(t, func() bool {
		svc.views.mu.Lock()
		defer svc.views.mu.Unlock()
		v, ok := svc.views.views[first.ViewID]
		return ok && v.lastUsed.Equal(settledAt)
	}, time.Second, 5*time.Millisecond)

	// Past the TTL counted from mount, within it counted from settle.
	clock.advance(2 * time.Second)
	snap, err := svc.Browse(context.Background(), first.ViewID, seattle)
	require.NoError(t, err)
	assert.Equal(t, first.ViewID, snap.ViewID)
	assert.True(t, snap.State.Loaded)
}

func TestShopService_Browse_FullPoolEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	client := mocks.NewMockShopClient(t)
	client.EXPECT().ListShops(mock.Anything, mock.Anything).Return(nil, nil).Times(3)

	cfg := testConfig()
	cfg.MaxViews = 2
	clock := newTestClock()
	svc := newTestService(t, client, cfg)
	svc.views.now = clock.now

	a, err := svc.Browse(context.Background(), "", seattle)
	require.NoError(t, err)
	clock.advance(time.Second)
	b, err := svc.Browse(context.Background(), "", portland)
	require.NoError(t, err)
	clock.advance(time.Second)
	_, err = svc.Browse(context.Background(), "", shop.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 2, svc.views.size())
	assert.Nil(t, svc.views.get(a.ViewID))
	assert.NotNil(t, svc.views.get(b.ViewID))
}

func TestShopService_Close_CancelsInFlight(t *testing.T) {
	t.Parallel()

	canceled := make(chan struct{})
	client := mocks.NewMockShopClient(t)
	client.EXPECT().ListShops(mock.Anything, seattle).RunAndReturn(func(ctx context.Context, _ shop.Filter) ([]shop.Shop, error) {
		<-ctx.Done()
		close(canceled)
		return nil, ctx.Err()
	}).Once()

	cfg := testConfig()
	cfg.RenderWait = 10 * time.Millisecond
	svc := NewShopService(client, cfg, nil, discardLogger())

	snap, err := svc.Browse(context.Background(), "", seattle)
	require.NoError(t, err)
	require.True(t, snap.State.IsLoading)

	svc.Close()

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("in-flight request was not canceled by Close")
	}
	assert.Equal(t, 0, svc.views.size())
}

func TestShopService_Browse_CallerGone(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, mocks.NewMockShopClient(t), testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Browse(ctx, "", shop.Filter{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, svc.views.size())
}
