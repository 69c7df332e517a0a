// Package module wires display preferences into the API using modkit
package module

import (
	"net/http"

	modkit "foodscan/internal/modkit"
	"foodscan/internal/modkit/httpkit"
	str "foodscan/internal/platform/strings"
	prefshttp "foodscan/internal/services/api/prefs/http"
	prefsrepo "foodscan/internal/services/api/prefs/repo"
	prefssvc "foodscan/internal/services/api/prefs/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)

	svc prefssvc.Service
}

// New constructs a prefs module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("prefs"),
		modkit.WithPrefix("/prefs"),
	}, opts...)...)

	svc := prefssvc.New(deps.PG, prefsrepo.NewPG())

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		prefshttp.Register(r, m.svc)
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
func (m *Module) Ports() any { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "prefs") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
