// Package module wires the lookup workflow into the API using modkit
package module

import (
	"net/http"

	core "foodscan/internal/core/lookup"
	modkit "foodscan/internal/modkit"
	"foodscan/internal/modkit/httpkit"
	str "foodscan/internal/platform/strings"
	lookuphttp "foodscan/internal/services/api/lookup/http"
	lookuprepo "foodscan/internal/services/api/lookup/repo"
	lookupsvc "foodscan/internal/services/api/lookup/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    any
	register func(httpkit.Router)

	svc lookupsvc.Service
}

// New constructs a lookup module around an already built coordinator
func New(deps modkit.Deps, coord *core.Coordinator, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("lookup"),
		modkit.WithPrefix("/lookup"),
	}, opts...)...)

	svc := lookupsvc.New(coord, deps.PG, lookuprepo.NewPG())

	// every terminal outcome lands in the audit trail, best effort
	coord.OnChange(svc.Record)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = adaptLookupPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		lookuphttp.Register(r, m.svc)
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

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "lookup") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
