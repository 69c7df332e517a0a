package module

import (
	"context"

	lookupdom "foodscan/internal/services/api/lookup/domain"
	lookupsvc "foodscan/internal/services/api/lookup/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptLookupPort adapts the lookup service to the domain port interface
type adaptLookupPort struct{ svc lookupsvc.Service }

// Submit implements the domain ServicePort interface
func (a adaptLookupPort) Submit(ctx context.Context, in lookupdom.SubmitInput) (lookupdom.SnapshotView, error) {
	return a.svc.Submit(ctx, in)
}

// State implements the domain ServicePort interface
func (a adaptLookupPort) State(ctx context.Context) lookupdom.SnapshotView {
	return a.svc.State(ctx)
}

// History implements the domain ServicePort interface
func (a adaptLookupPort) History(ctx context.Context, limit int) ([]lookupdom.HistoryEntry, error) {
	return a.svc.History(ctx, limit)
}
