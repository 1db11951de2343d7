package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/storefront-shops/internal/adapters/http/dto"
	"github.com/jsamuelsen11/storefront-shops/internal/adapters/http/view"
	"github.com/jsamuelsen11/storefront-shops/internal/platform/logging"
	"github.com/jsamuelsen11/storefront-shops/internal/ports"
)

// ShopsHandler serves the shop listing as an HTML page and as JSON.
type ShopsHandler struct {
	svc      ports.ShopService
	renderer *view.Renderer
}

// NewShopsHandler creates a ShopsHandler.
func NewShopsHandler(svc ports.ShopService, renderer *view.Renderer) *ShopsHandler {
	return &ShopsHandler{svc: svc, renderer: renderer}
}

// Page handles GET /shops. A page whose fetch has not settled shows the
// loading placeholder and asks the browser to reload the same view.
func (h *ShopsHandler) Page(w http.ResponseWriter, r *http.Request) {
	q, err := dto.ParseShopsQuery(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	snap, err := h.svc.Browse(r.Context(), q.View, q.Filter())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, view.Page{
		ViewID: snap.ViewID,
		Filter: snap.Filter,
		State:  snap.State,
		Policy: h.svc.ErrorPolicy(),
		Color:  q.Color,
	}); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to render shops page",
			slog.String("operation", "ShopsHandler.Page"),
			slog.Any("error", err),
		)
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if snap.State.IsLoading {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// List handles GET /api/v1/shops. Fetch failures are part of the body and
// still answer 200.
func (h *ShopsHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := dto.ParseShopsQuery(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	snap, err := h.svc.Browse(r.Context(), q.View, q.Filter())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if snap.State.IsLoading {
		w.Header().Set("Cache-Control", "no-store")
	}
	writeJSON(w, r, http.StatusOK, dto.ToShopsResponse(snap))
}
