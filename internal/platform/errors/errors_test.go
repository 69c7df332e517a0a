package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUpstream, http.StatusBadGateway},
		{ErrorCodeDeviceUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad input")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeUpstream, "fetch failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if got := e3.Error(); got != "fetch failed: root" {
		t.Fatalf("Wrap().Error = %q", got)
	}
	if CodeOf(e3) != ErrorCodeUpstream {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}

	if got, ok := As(e3); !ok || got.Code() != ErrorCodeUpstream {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	// Message excludes the wrapped cause
	if got, _ := As(e3); got.Message() != "fetch failed" {
		t.Fatalf("Message() = %q", got.Message())
	}
}

func TestWithFieldCopyOnWrite(t *testing.T) {
	e1 := Validationf("barcode required")
	e2 := WithField(e1, "barcode")

	orig, _ := As(e1)
	if orig.Field() != "" {
		t.Fatalf("WithField mutated the original")
	}
	got, _ := As(e2)
	if got.Field() != "barcode" {
		t.Fatalf("WithField field = %q", got.Field())
	}

	// foreign errors pass through untouched
	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign {
		t.Fatalf("WithField wrapped a foreign error")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w.Code != 0 || w.Message != "" {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}
	w := WireFrom(WithField(Validationf("required"), "barcode"))
	if w.Code != ErrorCodeValidation || w.Message != "required" || w.Field != "barcode" {
		t.Fatalf("WireFrom = %+v", w)
	}
	fw := WireFrom(stderrs.New("boom"))
	if fw.Code != ErrorCodeUnknown || fw.Message != "boom" {
		t.Fatalf("WireFrom(foreign) = %+v", fw)
	}
}

func TestIsCodeAndHTTPStatus(t *testing.T) {
	err := NotFoundf("no product")
	if !IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("IsCode(NotFound) = false")
	}
	if IsCode(err, ErrorCodeUpstream) {
		t.Fatalf("IsCode wrong positive")
	}
	if HTTPStatus(err) != http.StatusNotFound {
		t.Fatalf("HTTPStatus = %d", HTTPStatus(err))
	}
	if HTTPStatus(stderrs.New("x")) != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus(foreign) = %d", HTTPStatus(stderrs.New("x")))
	}
}
