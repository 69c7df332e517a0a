package capture

import (
	"context"
	"errors"
	"testing"

	perr "foodscan/internal/platform/errors"
	"foodscan/internal/platform/testkit"
)

type fakeStream struct{ closed int }

func (s *fakeStream) Close() error { s.closed++; return nil }

type fakeSource struct {
	stream *fakeStream
	err    error
	calls  int
}

func (s *fakeSource) Acquire(context.Context) (Stream, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.stream, nil
}

func nopSink(context.Context, string) {}

func TestNewManagerRequiresSink(t *testing.T) {
	testkit.MustPanic(t, func() { NewManager(nil) })
}

func TestStartAndState(t *testing.T) {
	m := NewManager(nopSink)

	if _, ok := m.Active(); ok {
		t.Fatalf("fresh manager reports an active session")
	}

	sess, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("Start err = %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("session id empty")
	}
	got, ok := m.Active()
	if !ok || got.ID != sess.ID {
		t.Fatalf("Active = %+v, %v", got, ok)
	}
}

func TestStartWhileActiveConflicts(t *testing.T) {
	m := NewManager(nopSink)
	if _, err := m.Start(context.Background()); err != nil {
		t.Fatalf("first Start err = %v", err)
	}
	_, err := m.Start(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("second Start code = %v", perr.CodeOf(err))
	}
}

func TestSourceAcquireFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("camera busy")}
	m := NewManager(nopSink, WithSource(src))

	_, err := m.Start(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeDeviceUnavailable) {
		t.Fatalf("Start code = %v", perr.CodeOf(err))
	}
	if _, ok := m.Active(); ok {
		t.Fatalf("failed Start left an active session")
	}
	// a later Start must be allowed again
	src.err = nil
	src.stream = &fakeStream{}
	if _, err := m.Start(context.Background()); err != nil {
		t.Fatalf("retry Start err = %v", err)
	}
}

func TestStopIsIdempotentAndClosesStream(t *testing.T) {
	stream := &fakeStream{}
	m := NewManager(nopSink, WithSource(&fakeSource{stream: stream}))

	m.Stop("nope") // inactive manager, unknown id

	sess, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("Start err = %v", err)
	}
	m.Stop("other") // wrong id keeps the session alive
	if _, ok := m.Active(); !ok {
		t.Fatalf("Stop with foreign id ended the session")
	}

	m.Stop(sess.ID)
	m.Stop(sess.ID)
	if _, ok := m.Active(); ok {
		t.Fatalf("session still active after Stop")
	}
	if stream.closed != 1 {
		t.Fatalf("stream closed %d times", stream.closed)
	}
}

func TestDecodeFirstWinsAndAutoStops(t *testing.T) {
	var sunk []string
	m := NewManager(func(_ context.Context, code string) { sunk = append(sunk, code) })

	sess, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("Start err = %v", err)
	}

	if !m.Decode(context.Background(), sess.ID, "3017620422003") {
		t.Fatalf("first decode not delivered")
	}
	if _, ok := m.Active(); ok {
		t.Fatalf("session still active after decode")
	}
	if m.Decode(context.Background(), sess.ID, "4008400202037") {
		t.Fatalf("second decode delivered")
	}
	if len(sunk) != 1 || sunk[0] != "3017620422003" {
		t.Fatalf("sink saw %v", sunk)
	}
}

func TestDecodeUnknownSessionDropped(t *testing.T) {
	called := false
	m := NewManager(func(context.Context, string) { called = true })
	if m.Decode(context.Background(), "ghost", "1") {
		t.Fatalf("decode for unknown session delivered")
	}
	if called {
		t.Fatalf("sink invoked for unknown session")
	}
}

func TestWatchClosesOnStop(t *testing.T) {
	m := NewManager(nopSink)
	sess, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("Start err = %v", err)
	}

	done, ok := m.Watch(sess.ID)
	if !ok {
		t.Fatalf("Watch did not find the active session")
	}
	select {
	case <-done:
		t.Fatalf("done closed before Stop")
	default:
	}

	m.Stop(sess.ID)
	select {
	case <-done:
	default:
		t.Fatalf("done not closed after Stop")
	}

	if _, ok := m.Watch(sess.ID); ok {
		t.Fatalf("Watch found a stopped session")
	}
}
