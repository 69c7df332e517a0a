// Package service contains display preference workflows
package service

import (
	"context"

	"foodscan/internal/modkit/repokit"
	perr "foodscan/internal/platform/errors"
	"foodscan/internal/services/api/prefs/domain"
	"foodscan/internal/services/api/prefs/repo"
)

// Service defines the service contract for display preferences
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new prefs service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("prefs.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("prefs.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Get returns the stored preference for a device, falling back to the
// system theme when the device has never stored one
func (s *Svc) Get(ctx context.Context, deviceID string) (domain.Pref, error) {
	if deviceID == "" {
		return domain.Pref{}, perr.InvalidArgf("device id required")
	}
	row, found, err := s.Repo.Get(ctx, deviceID)
	if err != nil {
		return domain.Pref{}, perr.Wrap(err, perr.ErrorCodeDB, "load display pref")
	}
	if !found {
		return domain.Pref{DeviceID: deviceID, Theme: domain.ThemeSystem}, nil
	}
	return domain.Pref{DeviceID: row.DeviceID, Theme: row.Theme, UpdatedAt: row.UpdatedAt}, nil
}

// Put stores the preference for a device and returns the stored row
func (s *Svc) Put(ctx context.Context, deviceID string, in domain.PrefInput) (domain.Pref, error) {
	if deviceID == "" {
		return domain.Pref{}, perr.InvalidArgf("device id required")
	}
	row, err := s.Repo.Upsert(ctx, deviceID, in.Theme)
	if err != nil {
		return domain.Pref{}, perr.Wrap(err, perr.ErrorCodeDB, "store display pref")
	}
	return domain.Pref{DeviceID: row.DeviceID, Theme: row.Theme, UpdatedAt: row.UpdatedAt}, nil
}
