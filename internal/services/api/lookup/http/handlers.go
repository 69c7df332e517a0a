// Package http provides http transport for lookups
package http

import (
	stdhttp "net/http"
	"strconv"

	"foodscan/internal/modkit/httpkit"
	"foodscan/internal/services/api/lookup/domain"
	svc "foodscan/internal/services/api/lookup/service"
)

const defaultHistoryLimit = 20

// Register mounts lookup endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SubmitInput](r, "/", h.submit)
	httpkit.Get(r, "/state", h.state)
	httpkit.Get(r, "/history", h.history)
}

type handlers struct{ svc svc.Service }

// @Summary Submit a barcode for lookup
// @Tags Lookup
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Barcode"
// @Success 200 {object} domain.SnapshotView "resulting snapshot"
// @Router /lookup [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	return h.svc.Submit(r.Context(), in)
}

// @Summary Current lookup workflow state
// @Tags Lookup
// @Produce json
// @Success 200 {object} domain.SnapshotView "ok"
// @Router /lookup/state [get]
func (h *handlers) state(r *stdhttp.Request) (any, error) {
	return h.svc.State(r.Context()), nil
}

// @Summary Recently resolved lookups
// @Tags Lookup
// @Produce json
// @Param limit query int false "max rows" default(20)
// @Success 200 {array} domain.HistoryEntry "ok"
// @Router /lookup/history [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	return h.svc.History(r.Context(), limit)
}
