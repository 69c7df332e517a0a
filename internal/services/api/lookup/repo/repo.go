// Package repo provides postgres access for the lookup audit trail
package repo

import (
	"context"

	"foodscan/internal/modkit/repokit"
)

// Repo defines the repository contract for resolved lookups
type Repo interface {
	Insert(ctx context.Context, barcode, outcome, productName string) error
	Recent(ctx context.Context, limit int) ([]RowLookup, error)
}

// RowLookup represents one scan_lookups row
type RowLookup struct {
	Barcode     string
	Outcome     string
	ProductName string
	CreatedAt   string
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

func (r *queries) Insert(ctx context.Context, barcode, outcome, productName string) error {
	const sql = `
insert into scan_lookups (barcode, outcome, product_name)
values ($1, $2, nullif($3, ''))
`
	_, err := r.q.Exec(ctx, sql, barcode, outcome, productName)
	return err
}

func (r *queries) Recent(ctx context.Context, limit int) ([]RowLookup, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	const sql = `
select barcode, outcome, coalesce(product_name, ''), created_at::text
from scan_lookups
order by created_at desc, id desc
limit $1
`
	rows, err := r.q.Query(ctx, sql, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowLookup
	for rows.Next() {
		var rr RowLookup
		if err := rows.Scan(&rr.Barcode, &rr.Outcome, &rr.ProductName, &rr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
