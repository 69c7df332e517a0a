// Package module wires capture sessions into the API using modkit
package module

import (
	"net/http"

	"foodscan/internal/capture"
	modkit "foodscan/internal/modkit"
	"foodscan/internal/modkit/httpkit"
	str "foodscan/internal/platform/strings"
	capturehttp "foodscan/internal/services/api/capture/http"
)

// Ports exposes the session manager for cross module wiring
type Ports struct {
	Manager *capture.Manager
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	mgr      *capture.Manager
	register func(httpkit.Router)
}

// New constructs a capture module around an already built manager
func New(deps modkit.Deps, mgr *capture.Manager, opts ...modkit.Option) *Module {
	if mgr == nil {
		panic("capture module requires a non nil Manager")
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("capture"),
		modkit.WithPrefix("/capture"),
	}, opts...)...)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		mgr:    mgr,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		capturehttp.Register(r, m.mgr)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Manager: m.mgr} }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "capture") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
