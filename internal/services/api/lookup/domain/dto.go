// Package domain holds DTOs for lookup http and service contracts
package domain

import (
	core "foodscan/internal/core/lookup"
)

// SubmitInput is the manual entry payload. Emptiness is judged after
// normalization by the workflow itself so the fixed user-facing message is
// the single source of truth
type SubmitInput struct {
	Barcode string `json:"barcode" validate:"max=64" example:"3017620422003"`
}

// SnapshotView is the wire shape of a workflow snapshot
type SnapshotView struct {
	Phase   string              `json:"phase" example:"found"`
	Barcode string              `json:"barcode,omitempty" example:"3017620422003"`
	Message string              `json:"message,omitempty" example:"Product not found"`
	Product *core.ProductRecord `json:"product,omitempty"`
	Token   uint64              `json:"token" example:"7"`
}

// ViewOf converts a snapshot to its wire shape
func ViewOf(s core.Snapshot) SnapshotView {
	return SnapshotView{
		Phase:   s.Phase.String(),
		Barcode: s.Barcode,
		Message: s.Message,
		Product: s.Product,
		Token:   s.Token,
	}
}

// HistoryEntry is one resolved lookup from the audit trail
type HistoryEntry struct {
	Barcode     string `json:"barcode"`
	Outcome     string `json:"outcome" example:"found"`
	ProductName string `json:"product_name,omitempty"`
	CreatedAt   string `json:"created_at"`
}
