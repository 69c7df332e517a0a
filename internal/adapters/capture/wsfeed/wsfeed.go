// Package wsfeed accepts decoded barcodes over a WebSocket.
//
// Browser clients run the scanner loop themselves and push each decode as a
// small JSON frame; the feed forwards frames to the capture manager and
// closes once the session deactivates
package wsfeed

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"foodscan/internal/capture"
	perr "foodscan/internal/platform/errors"
	"foodscan/internal/platform/logger"
	phttp "foodscan/internal/platform/net/http"
)

const writeWait = 5 * time.Second

// decodeFrame is what clients send for each decoded barcode
type decodeFrame struct {
	Code string `json:"code"`
}

// eventFrame is what the feed pushes back
type eventFrame struct {
	Type      string `json:"type"`
	Delivered bool   `json:"delivered,omitempty"`
}

// Handler upgrades GET /capture/{id}/events and feeds decodes into mgr
type Handler struct {
	mgr *capture.Manager
	up  websocket.Upgrader
	log logger.Logger
}

// New builds a Handler for the given manager
func New(mgr *capture.Manager) *Handler {
	return &Handler{
		mgr: mgr,
		up: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// same-origin policy is enforced by the CORS layer on the REST
			// surface; the feed itself accepts any origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: *logger.Named("wsfeed"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	done, ok := h.mgr.Watch(id)
	if !ok {
		phttp.RespondError(w, r, perr.NotFoundf("no active capture session %s", id))
		return
	}

	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the handshake failure
		h.log.Debug().Err(err).Str("session_id", id).Msg("ws upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	var wmu sync.Mutex
	send := func(f eventFrame) {
		wmu.Lock()
		defer wmu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(f)
	}

	// shutdown announces the session end and closes the socket, once
	var closeOnce sync.Once
	shutdown := func() {
		closeOnce.Do(func() {
			send(eventFrame{Type: "stopped"})
			wmu.Lock()
			defer wmu.Unlock()
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session stopped"))
			_ = conn.Close()
		})
	}

	// The watcher handles stops arriving from outside this connection. When
	// the stop was caused by a decode on this very connection the read loop
	// shuts down itself after acking, so the watcher stands down
	var localStop atomic.Bool
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		select {
		case <-quit:
			return
		case <-done:
		}
		if localStop.Load() {
			return
		}
		shutdown()
	}()

	for {
		var f decodeFrame
		if err := conn.ReadJSON(&f); err != nil {
			h.log.Debug().Err(err).Str("session_id", id).Msg("ws feed closed")
			return
		}
		if f.Code == "" {
			send(eventFrame{Type: "decode_ack", Delivered: false})
			continue
		}
		localStop.Store(true)
		delivered := h.mgr.Decode(r.Context(), id, f.Code)
		send(eventFrame{Type: "decode_ack", Delivered: delivered})
		if delivered {
			shutdown()
			return
		}
		localStop.Store(false)
		if _, alive := h.mgr.Watch(id); !alive {
			shutdown()
			return
		}
	}
}
