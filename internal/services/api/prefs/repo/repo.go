// Package repo provides postgres access for display preferences
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"foodscan/internal/modkit/repokit"
)

func isNoRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }

// Repo defines the repository contract for display preferences
type Repo interface {
	Get(ctx context.Context, deviceID string) (RowPref, bool, error)
	Upsert(ctx context.Context, deviceID, theme string) (RowPref, error)
}

// RowPref represents one display_prefs row
type RowPref struct {
	DeviceID  string
	Theme     string
	UpdatedAt string
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Get(ctx context.Context, deviceID string) (RowPref, bool, error) {
	const sql = `
select device_id, theme, updated_at::text
from display_prefs
where device_id = $1
`
	var rr RowPref
	err := r.q.QueryRow(ctx, sql, deviceID).Scan(&rr.DeviceID, &rr.Theme, &rr.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return RowPref{}, false, nil
		}
		return RowPref{}, false, err
	}
	return rr, true, nil
}

func (r *queries) Upsert(ctx context.Context, deviceID, theme string) (RowPref, error) {
	const sql = `
insert into display_prefs (device_id, theme)
values ($1, $2)
on conflict (device_id) do update
set theme = excluded.theme, updated_at = now()
returning device_id, theme, updated_at::text
`
	var rr RowPref
	err := r.q.QueryRow(ctx, sql, deviceID, theme).Scan(&rr.DeviceID, &rr.Theme, &rr.UpdatedAt)
	return rr, err
}
