package wsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"foodscan/internal/capture"
)

func newFeedServer(t *testing.T, mgr *capture.Manager) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/capture/{id}/events", New(mgr).ServeHTTP)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/capture/" + id + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", u, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestFeedDeliversDecodeAndStops(t *testing.T) {
	sunk := make(chan string, 1)
	mgr := capture.NewManager(func(_ context.Context, code string) { sunk <- code })
	sess, err := mgr.Start(context.Background())
	if err != nil {
		t.Fatalf("Start err = %v", err)
	}

	srv := newFeedServer(t, mgr)
	conn := dial(t, srv, sess.ID)

	if err := conn.WriteJSON(decodeFrame{Code: "3017620422003"}); err != nil {
		t.Fatalf("write frame: %v", err)
	}

	select {
	case code := <-sunk:
		if code != "3017620422003" {
			t.Fatalf("sink got %q", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("sink never invoked")
	}
	if _, ok := mgr.Active(); ok {
		t.Fatalf("session still active after decode")
	}

	// ack and stopped frames arrive in either order, then the close frame
	seen := map[string]bool{}
	for len(seen) < 2 {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var f eventFrame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read frame (seen %v): %v", seen, err)
		}
		if f.Type == "decode_ack" && !f.Delivered {
			t.Fatalf("decode not delivered")
		}
		seen[f.Type] = true
	}
	if !seen["decode_ack"] || !seen["stopped"] {
		t.Fatalf("frames = %v", seen)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal close, got %v", err)
	}
}

func TestFeedRejectsUnknownSession(t *testing.T) {
	mgr := capture.NewManager(func(context.Context, string) {})
	srv := newFeedServer(t, mgr)

	resp, err := http.Get(srv.URL + "/capture/ghost/events")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestFeedClosesWhenSessionStopped(t *testing.T) {
	mgr := capture.NewManager(func(context.Context, string) {})
	sess, err := mgr.Start(context.Background())
	if err != nil {
		t.Fatalf("Start err = %v", err)
	}

	srv := newFeedServer(t, mgr)
	conn := dial(t, srv, sess.ID)

	mgr.Stop(sess.ID)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f eventFrame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read stopped frame: %v", err)
	}
	if f.Type != "stopped" {
		t.Fatalf("frame type = %q", f.Type)
	}
}

func TestFeedAcksEmptyFrameWithoutDelivery(t *testing.T) {
	called := false
	mgr := capture.NewManager(func(context.Context, string) { called = true })
	sess, err := mgr.Start(context.Background())
	if err != nil {
		t.Fatalf("Start err = %v", err)
	}
	t.Cleanup(func() { mgr.Stop(sess.ID) })

	srv := newFeedServer(t, mgr)
	conn := dial(t, srv, sess.ID)

	if err := conn.WriteJSON(decodeFrame{}); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f eventFrame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read ack: %v", err)
	}
	if f.Type != "decode_ack" || f.Delivered {
		t.Fatalf("frame = %+v", f)
	}
	if called {
		t.Fatalf("sink invoked for empty frame")
	}
	if _, ok := mgr.Active(); !ok {
		t.Fatalf("empty frame ended the session")
	}
}
