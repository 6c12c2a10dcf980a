package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/darkidle/internal/telemetry"
)

// DefaultAutosaveInterval is the period between dirty checks.
const DefaultAutosaveInterval = 5 * time.Second

// Snapshotter exposes an encoded snapshot and a revision that changes with
// every applied transition. *game.Game satisfies it.
type Snapshotter interface {
	Snapshot() ([]byte, uint64, error)
}

// Autosaver periodically writes the snapshot to a Store when the revision
// has moved since the last successful save. Failed saves are logged and
// retried on the next period.
type Autosaver struct {
	src      Snapshotter
	store    Store
	profile  string
	interval time.Duration
	name     string
	tracer   trace.Tracer
	now      func() time.Time

	mu         sync.Mutex
	saved      bool
	savedRev   uint64
	lastSyncAt time.Time
}

// NewAutosaver creates an autosaver. name labels log lines and spans
// ("local", "sync").
func NewAutosaver(name string, src Snapshotter, store Store, profile string, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosaver{
		src:      src,
		store:    store,
		profile:  profile,
		interval: interval,
		name:     name,
		tracer:   telemetry.Tracer("storage"),
		now:      time.Now,
	}
}

// MarkSaved records rev as already persisted, e.g. right after a reconcile
// wrote the same state.
func (a *Autosaver) MarkSaved(rev uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saved, a.savedRev = true, rev
}

// Run saves on every period until ctx is cancelled, then returns nil.
func (a *Autosaver) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := a.SaveIfDirty(ctx); err != nil {
				slog.WarnContext(ctx, "autosave failed", "store", a.name, "profile", a.profile, "err", err)
			}
		}
	}
}

// SaveIfDirty saves when the revision differs from the last saved one and
// reports whether it wrote.
func (a *Autosaver) SaveIfDirty(ctx context.Context) (bool, error) {
	data, rev, err := a.src.Snapshot()
	if err != nil {
		return false, err
	}

	a.mu.Lock()
	clean := a.saved && a.savedRev == rev
	a.mu.Unlock()
	if clean {
		return false, nil
	}

	ctx, span := a.tracer.Start(ctx, "storage.save")
	defer span.End()
	span.SetAttributes(
		attribute.String("store", a.name),
		attribute.String("profile", a.profile),
		attribute.Int64("revision", int64(rev)),
		attribute.Int("bytes", len(data)),
	)

	if err := a.store.Save(ctx, a.profile, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	a.mu.Lock()
	a.saved, a.savedRev = true, rev
	a.lastSyncAt = a.now()
	a.mu.Unlock()

	slog.DebugContext(ctx, "snapshot saved", "store", a.name, "revision", rev)
	return true, nil
}

// Flush saves any pending change. Call it on shutdown with a fresh context.
func (a *Autosaver) Flush(ctx context.Context) error {
	_, err := a.SaveIfDirty(ctx)
	return err
}

// LastSyncAt returns the time of the last successful save, or the zero time.
func (a *Autosaver) LastSyncAt() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSyncAt
}
