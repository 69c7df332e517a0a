package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "foodscan/internal/platform/errors"
)

func doWrite(t *testing.T, resp Response) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(stdhttp.MethodGet, "/x", nil)
	Handle(func(*stdhttp.Request) Response { return resp })(w, r)

	var env Envelope
	if w.Code != stdhttp.StatusNoContent {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v\n%s", err, w.Body.String())
		}
	}
	return w, env
}

func TestOKEnvelope(t *testing.T) {
	w, env := doWrite(t, OK(map[string]string{"k": "v"}))
	if w.Code != stdhttp.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if env.StatusCode != stdhttp.StatusOK || env.Status != "OK" {
		t.Fatalf("envelope = %+v", env)
	}
	data, ok := env.Data.(map[string]any)
	if !ok || data["k"] != "v" {
		t.Fatalf("data = %#v", env.Data)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestCreatedAndNoContent(t *testing.T) {
	if w, _ := doWrite(t, Created("x")); w.Code != stdhttp.StatusCreated {
		t.Fatalf("created code = %d", w.Code)
	}
	w, _ := doWrite(t, NoContent())
	if w.Code != stdhttp.StatusNoContent {
		t.Fatalf("no content code = %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("no content body = %q", w.Body.String())
	}
}

func TestZeroStatusDefaultsToOK(t *testing.T) {
	w, _ := doWrite(t, Response{Body: "hi"})
	if w.Code != stdhttp.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
}

func TestErrorEnvelopeDerivesStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{perr.NotFoundf("missing"), stdhttp.StatusNotFound},
		{perr.Validationf("bad"), stdhttp.StatusBadRequest},
		{perr.Conflictf("busy"), stdhttp.StatusConflict},
		{perr.Upstreamf("down"), stdhttp.StatusBadGateway},
		{perr.DeviceUnavailablef("no camera"), stdhttp.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		w, env := doWrite(t, Error(tc.err))
		if w.Code != tc.want {
			t.Fatalf("%v: code = %d, want %d", tc.err, w.Code, tc.want)
		}
		if env.StatusCode != tc.want || env.Error == "" {
			t.Fatalf("%v: envelope = %+v", tc.err, env)
		}
		if env.Data != nil {
			t.Fatalf("%v: error envelope carries data", tc.err)
		}
	}
}

func TestResponseHeaderPassthrough(t *testing.T) {
	h := stdhttp.Header{}
	h.Set("X-Custom", "yes")
	w, _ := doWrite(t, Response{Status: stdhttp.StatusOK, Body: "x", Header: h})
	if got := w.Header().Get("X-Custom"); got != "yes" {
		t.Fatalf("header = %q", got)
	}
}
