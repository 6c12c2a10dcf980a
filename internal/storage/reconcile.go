package storage

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/darkidle/internal/game"
	"github.com/samdwyer/darkidle/internal/telemetry"
)

// Source says where a reconciled session came from.
type Source int

const (
	SourceDefault Source = iota
	SourceLocal
	SourceRemote
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceLocal:
		return "local"
	case SourceRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Decoder builds sessions from stored snapshots. *game.Engine implements it.
type Decoder interface {
	NewSession() game.Session
	DecodeSnapshot(data []byte) (game.Session, error)
}

// CorruptSuffix is appended to the profile key when an unreadable snapshot is
// set aside before it can be overwritten.
const CorruptSuffix = ".corrupt"

// Reconcile picks the starting session for profile. A remote snapshot wins
// when one exists and decodes; it is then copied to local. When remote has
// nothing it is seeded from the local snapshot, or from defaults. remote may
// be nil. Storage failures are logged and never override the local state.
//
// A snapshot with ill-typed fields is still used, merged over defaults. Any
// snapshot that fails to decode cleanly is first copied to profile+CorruptSuffix
// in its store.
func Reconcile(ctx context.Context, local, remote Store, profile string, dec Decoder) (game.Session, Source) {
	ctx, span := telemetry.Tracer("storage").Start(ctx, "storage.reconcile")
	defer span.End()

	session, source := loadLocal(ctx, local, profile, dec)
	defer func() { span.SetAttributes(attribute.String("source", source.String())) }()

	if remote == nil {
		return session, source
	}

	data, err := remote.Load(ctx, profile)
	switch {
	case errors.Is(err, ErrNotFound):
		seed(ctx, remote, profile, session)
		return session, source
	case err != nil:
		slog.WarnContext(ctx, "remote load failed, continuing with local state", "profile", profile, "err", err)
		span.RecordError(err)
		return session, source
	}

	remoteSession, ok := decode(ctx, remote, profile, data, dec)
	if !ok {
		slog.WarnContext(ctx, "remote snapshot unreadable, continuing with local state", "profile", profile)
		return session, source
	}

	session, source = remoteSession, SourceRemote
	if local != nil {
		seed(ctx, local, profile, session)
	}
	return session, source
}

func loadLocal(ctx context.Context, local Store, profile string, dec Decoder) (game.Session, Source) {
	if local == nil {
		return dec.NewSession(), SourceDefault
	}

	data, err := local.Load(ctx, profile)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.WarnContext(ctx, "local load failed, starting fresh", "profile", profile, "err", err)
		}
		return dec.NewSession(), SourceDefault
	}

	s, ok := decode(ctx, local, profile, data, dec)
	if !ok {
		slog.WarnContext(ctx, "local snapshot unreadable, starting fresh", "profile", profile)
		return s, SourceDefault
	}
	return s, SourceLocal
}

// decode reports false only when nothing of data could be used. Partial
// snapshots are kept; both cases set the raw bytes aside first.
func decode(ctx context.Context, store Store, profile string, data []byte, dec Decoder) (game.Session, bool) {
	s, err := dec.DecodeSnapshot(data)
	if err == nil {
		return s, true
	}

	slog.WarnContext(ctx, "snapshot did not decode cleanly", "profile", profile, "err", err)
	if saveErr := store.Save(ctx, profile+CorruptSuffix, data); saveErr != nil {
		slog.WarnContext(ctx, "backing up snapshot failed", "profile", profile, "err", saveErr)
	}
	return s, errors.Is(err, game.ErrPartialSnapshot)
}

func seed(ctx context.Context, store Store, profile string, s game.Session) {
	data, err := game.EncodeSnapshot(s)
	if err == nil {
		err = store.Save(ctx, profile, data)
	}
	if err != nil {
		slog.WarnContext(ctx, "seeding store failed", "profile", profile, "err", err)
	}
}
