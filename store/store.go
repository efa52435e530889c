// Package store persists accepted reports and the emergency-contact
// directory. The primary backend is MongoDB; when it is unreachable at call
// time every read and write falls over to a local file store with the same
// ordering and shape guarantees. The two backends are never reconciled.
package store

import (
	"context"

	"hivewatch/models"
)

// ReportStore persists verified reports. Save returns the stored report with
// a non-empty id and timestamp regardless of which backend served it;
// ListAll returns reports newest-first.
type ReportStore interface {
	Save(ctx context.Context, r models.Report) (models.Report, error)
	ListAll(ctx context.Context) ([]models.Report, error)
}

// Prober reports whether the primary backend is reachable right now.
type Prober interface {
	Alive(ctx context.Context) bool
}

// Fallback routes each call to the primary while it is alive, otherwise to
// the local store. A fallback of last resort, not replication.
type Fallback struct {
	primary ReportStore
	local   ReportStore
	probe   Prober
}

func NewFallback(primary, local ReportStore, probe Prober) *Fallback {
	return &Fallback{primary: primary, local: local, probe: probe}
}

func (f *Fallback) pick(ctx context.Context) ReportStore {
	if f.probe.Alive(ctx) {
		return f.primary
	}
	return f.local
}

func (f *Fallback) Save(ctx context.Context, r models.Report) (models.Report, error) {
	return f.pick(ctx).Save(ctx, r)
}

func (f *Fallback) ListAll(ctx context.Context) ([]models.Report, error) {
	return f.pick(ctx).ListAll(ctx)
}
