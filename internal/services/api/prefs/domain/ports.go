package domain

import "context"

// ServicePort defines the service contract for display preferences
type ServicePort interface {
	Get(ctx context.Context, deviceID string) (Pref, error)
	Put(ctx context.Context, deviceID string, in PrefInput) (Pref, error)
}
