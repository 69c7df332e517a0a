// Package http provides http transport for capture sessions
package http

import (
	stdhttp "net/http"
	"time"

	"foodscan/internal/capture"
	"foodscan/internal/modkit/httpkit"
	"foodscan/internal/services/api/capture/domain"
)

// Register mounts capture endpoints on the given router.
// The WebSocket decode feed is mounted separately on the root router so the
// request timeout middleware cannot cut long-lived connections
func Register(r httpkit.Router, mgr *capture.Manager) {
	h := &handlers{mgr: mgr}
	httpkit.Post(r, "/start", h.start)
	httpkit.Post(r, "/stop", h.stop)
	httpkit.Get(r, "/state", h.state)
}

type handlers struct{ mgr *capture.Manager }

// @Summary Open a capture session
// @Tags Capture
// @Produce json
// @Success 200 {object} domain.StartResponse "ok"
// @Failure 409 {object} httpkit.Envelope "a session is already active"
// @Failure 503 {object} httpkit.Envelope "capture source unavailable"
// @Router /capture/start [post]
func (h *handlers) start(r *stdhttp.Request) (any, error) {
	sess, err := h.mgr.Start(r.Context())
	if err != nil {
		return nil, err
	}
	return domain.StartResponse{
		SessionID: sess.ID,
		StartedAt: sess.StartedAt.Format(time.RFC3339),
	}, nil
}

// @Summary Stop the active capture session
// @Tags Capture
// @Produce json
// @Success 200 {object} domain.StopResponse "ok even when nothing was active"
// @Router /capture/stop [post]
func (h *handlers) stop(*stdhttp.Request) (any, error) {
	sess, active := h.mgr.Active()
	if active {
		h.mgr.Stop(sess.ID)
	}
	return domain.StopResponse{Stopped: active}, nil
}

// @Summary Capture session state
// @Tags Capture
// @Produce json
// @Success 200 {object} domain.StateResponse "ok"
// @Router /capture/state [get]
func (h *handlers) state(*stdhttp.Request) (any, error) {
	sess, active := h.mgr.Active()
	out := domain.StateResponse{Active: active}
	if active {
		out.SessionID = sess.ID
	}
	return out, nil
}
