package domain

import "context"

// ServicePort defines the service contract for lookups
type ServicePort interface {
	Submit(ctx context.Context, in SubmitInput) (SnapshotView, error)
	State(ctx context.Context) SnapshotView
	History(ctx context.Context, limit int) ([]HistoryEntry, error)
}
