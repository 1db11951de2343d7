package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapthttp "github.com/jsamuelsen11/storefront-shops/internal/adapters/http"
	"github.com/jsamuelsen11/storefront-shops/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/storefront-shops/internal/adapters/http/view"
	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
	"github.com/jsamuelsen11/storefront-shops/mocks"
)

func newTestRouter(t *testing.T, mws ...func(http.Handler) http.Handler) (http.Handler, *mocks.MockShopService) {
	t.Helper()

	svc := mocks.NewMockShopService(t)
	renderer, err := view.New()
	require.NoError(t, err)

	router := adapthttp.NewRouter(
		handlers.NewShopsHandler(svc, renderer),
		handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t)),
		mws...,
	)
	return router, svc
}

func TestRouter_RoutesRegistered(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	mux, ok := router.(*chi.Mux)
	require.True(t, ok, "router is not *chi.Mux")

	registered := map[string]bool{}
	require.NoError(t, chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	}))

	for _, route := range []string{
		"GET /health/live",
		"GET /health/ready",
		"GET /shops",
		"GET /api/v1/shops",
	} {
		assert.True(t, registered[route], "route %s not registered", route)
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	var hits int
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Header().Set("X-Test", "applied")
			next.ServeHTTP(w, r)
		})
	}
	router, _ := newTestRouter(t, mw)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "applied", rec.Header().Get("X-Test"))
	assert.Equal(t, 1, hits)
}

func TestRouter_ListShops(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)
	svc.EXPECT().
		Browse(mock.Anything, "", shop.Filter{City: "Oslo", Category: "bar"}).
		Return(shop.Snapshot{
			ViewID: "0b9f6c2e-5d1a-4c43-9a55-3f2a7c1e8d10",
			Filter: shop.Filter{City: "Oslo", Category: "bar"},
			State:  shop.NewFetchState().Succeed([]shop.Shop{shop.Shop(`{"name":"Kaffa"}`)}),
		}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shops?city=Oslo&type=bar", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Loaded bool              `json:"loaded"`
		Count  int               `json:"count"`
		Shops  []json.RawMessage `json:"shops"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Loaded)
	assert.Equal(t, 1, body.Count)
	assert.JSONEq(t, `{"name":"Kaffa"}`, string(body.Shops[0]))
}

func TestRouter_ShopsPage(t *testing.T) {
	t.Parallel()

	router, svc := newTestRouter(t)
	svc.EXPECT().Browse(mock.Anything, "", shop.Filter{}).Return(shop.Snapshot{State: shop.NewFetchState().Succeed(nil)}, nil)
	svc.EXPECT().ErrorPolicy().Return(shop.ErrorPolicyInline).Maybe()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shops", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/drinks", http.NoBody))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/shops", http.NoBody))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
