// Package capture manages barcode capture sessions.
//
// A session owns the right to deliver one decoded barcode. At most one
// session is active at a time; the first decode delivered to an active
// session is forwarded to the sink and the session stops itself
package capture

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	perr "foodscan/internal/platform/errors"
	"foodscan/internal/platform/logger"
)

// Stream is a live decode stream handed out by a Source
type Stream interface {
	Close() error
}

// Source acquires decode streams from a host-attached device. In the HTTP
// deployment decodes arrive over the wire instead and no Source is configured
type Source interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Sink receives the single decoded barcode of a session
type Sink func(ctx context.Context, code string)

// Session describes an active or past capture session
type Session struct {
	ID        string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

type active struct {
	Session
	stream Stream
	done   chan struct{}
}

// Manager enforces the at-most-one-active session rule and routes decode
// events to the sink
type Manager struct {
	mu   sync.Mutex
	sink Sink
	src  Source
	cur  *active
	log  *logger.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithSource attaches a device source that Start must acquire
func WithSource(s Source) Option { return func(m *Manager) { m.src = s } }

// WithLogger overrides the package logger
func WithLogger(l *logger.Logger) Option { return func(m *Manager) { m.log = l } }

// NewManager builds a Manager delivering decoded codes to sink
func NewManager(sink Sink, opts ...Option) *Manager {
	if sink == nil {
		panic("capture: nil sink")
	}
	m := &Manager{sink: sink, log: logger.Named("capture")}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start opens a new capture session. It fails with a conflict when a session
// is already active and with a device error when the configured source cannot
// be acquired
func (m *Manager) Start(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cur != nil {
		return Session{}, perr.Conflictf("capture session %s already active", m.cur.ID)
	}

	var stream Stream
	if m.src != nil {
		s, err := m.src.Acquire(ctx)
		if err != nil {
			return Session{}, perr.DeviceUnavailablef("acquire capture source: %v", err)
		}
		stream = s
	}

	m.cur = &active{
		Session: Session{ID: uuid.NewString(), StartedAt: time.Now().UTC()},
		stream:  stream,
		done:    make(chan struct{}),
	}
	m.log.Info().Str("session_id", m.cur.ID).Msg("capture session started")
	return m.cur.Session, nil
}

// Stop ends the session with the given id. Stopping an unknown or already
// stopped session is a no-op
func (m *Manager) Stop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked(id)
}

func (m *Manager) stopLocked(id string) {
	if m.cur == nil || m.cur.ID != id {
		return
	}
	if m.cur.stream != nil {
		if err := m.cur.stream.Close(); err != nil {
			m.log.Warn().Err(err).Str("session_id", id).Msg("close capture stream")
		}
	}
	close(m.cur.done)
	m.cur = nil
	m.log.Info().Str("session_id", id).Msg("capture session stopped")
}

// Decode delivers a decoded barcode for session id. The first decode on an
// active session wins: it is forwarded to the sink exactly once and the
// session stops. Later decodes and decodes for unknown sessions report false
func (m *Manager) Decode(ctx context.Context, id, code string) bool {
	m.mu.Lock()
	if m.cur == nil || m.cur.ID != id {
		m.mu.Unlock()
		m.log.Debug().Str("session_id", id).Msg("decode dropped")
		return false
	}
	m.stopLocked(id)
	sink := m.sink
	m.mu.Unlock()

	sink(ctx, code)
	return true
}

// Active reports the currently active session, if any
func (m *Manager) Active() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil {
		return Session{}, false
	}
	return m.cur.Session, true
}

// Watch returns a channel closed when session id deactivates. The second
// return is false when the session is not currently active
func (m *Manager) Watch(id string) (<-chan struct{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil || m.cur.ID != id {
		return nil, false
	}
	return m.cur.done, true
}
