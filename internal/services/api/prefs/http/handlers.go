// Package http provides http transport for display preferences
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"foodscan/internal/modkit/httpkit"
	"foodscan/internal/services/api/prefs/domain"
	svc "foodscan/internal/services/api/prefs/service"
)

// Register mounts preference endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/{device}", h.get)
	httpkit.PutJSON[domain.PrefInput](r, "/{device}", h.put)
}

type handlers struct{ svc svc.Service }

// @Summary Display preference for a device
// @Tags Prefs
// @Produce json
// @Param device path string true "device id"
// @Success 200 {object} domain.Pref "ok"
// @Router /prefs/{device} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "device"))
}

// @Summary Store a display preference
// @Tags Prefs
// @Accept json
// @Produce json
// @Param device path string true "device id"
// @Param payload body domain.PrefInput true "Preference"
// @Success 200 {object} domain.Pref "stored row"
// @Router /prefs/{device} [put]
func (h *handlers) put(r *stdhttp.Request, in domain.PrefInput) (any, error) {
	return h.svc.Put(r.Context(), chi.URLParam(r, "device"), in)
}
