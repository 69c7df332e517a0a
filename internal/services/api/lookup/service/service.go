// Package service contains the lookup workflows behind the API
package service

import (
	"context"
	"time"

	core "foodscan/internal/core/lookup"
	"foodscan/internal/modkit/repokit"
	"foodscan/internal/platform/logger"
	"foodscan/internal/services/api/lookup/domain"
	"foodscan/internal/services/api/lookup/repo"
)

// Service defines the service contract for lookups
type Service interface{ domain.ServicePort }

// Svc implements the Service interface around the core coordinator
type Svc struct {
	coord *core.Coordinator
	Repo  repo.Repo
	db    repokit.TxRunner
	log   logger.Logger
}

// New creates a new lookup service
func New(coord *core.Coordinator, db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if coord == nil {
		panic("lookup.Service requires a non nil Coordinator")
	}
	if db == nil {
		panic("lookup.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("lookup.Service requires a non nil Repo binder")
	}
	return &Svc{coord: coord, Repo: binder.Bind(db), db: db, log: *logger.Named("lookup.svc")}
}

// Submit runs a manual entry through the workflow
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput) (domain.SnapshotView, error) {
	snap, err := s.coord.SubmitManual(ctx, in.Barcode)
	return domain.ViewOf(snap), err
}

// State reports the current workflow snapshot
func (s *Svc) State(context.Context) domain.SnapshotView {
	return domain.ViewOf(s.coord.State())
}

// History lists recently resolved lookups
func (s *Svc) History(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	rows, err := s.Repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.HistoryEntry{
			Barcode:     r.Barcode,
			Outcome:     r.Outcome,
			ProductName: r.ProductName,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

// Record persists a terminal snapshot to the audit trail. Failures are
// logged and swallowed so a database hiccup never disturbs the workflow
func (s *Svc) Record(snap core.Snapshot) {
	switch snap.Phase {
	case core.PhaseFound, core.PhaseNotFound, core.PhaseError:
	default:
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	name := ""
	if snap.Product != nil {
		name = snap.Product.Name
	}
	if err := s.Repo.Insert(ctx, snap.Barcode, snap.Phase.String(), name); err != nil {
		s.log.Warn().Err(err).Str("barcode", snap.Barcode).Msg("record lookup outcome")
	}
}
