package game

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/darkidle/internal/combat"
	"github.com/samdwyer/darkidle/internal/telemetry"
)

// Game is the single owner of the current session. Every transition, from
// the scheduler or from player input, goes through Dispatch and is applied
// atomically under one mutex.
type Game struct {
	mu        sync.Mutex
	engine    *Engine
	session   Session
	revision  uint64
	tracer    trace.Tracer
	listeners []func(Result)
}

// Option configures a Game.
type Option func(*Game)

// WithTracer sets the tracer used for per-event spans.
func WithTracer(t trace.Tracer) Option {
	return func(g *Game) { g.tracer = t }
}

// New creates a game that starts from initial. initial is normalised against
// the engine's catalog before first use.
func New(engine *Engine, initial Session, opts ...Option) *Game {
	s := initial.Clone()
	Normalize(&s, engine.Catalog())

	g := &Game{
		engine:  engine,
		session: s,
		tracer:  telemetry.NoopTracer(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OnChange registers fn to be called after every applied transition. fn runs
// on the dispatching goroutine, outside the game lock.
func (g *Game) OnChange(fn func(Result)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// Dispatch applies ev to the current session and returns what happened.
// No-op events leave the session and revision untouched.
func (g *Game) Dispatch(ctx context.Context, ev Event) Result {
	ctx, span := g.tracer.Start(ctx, "game."+ev.Kind.String())
	defer span.End()

	g.mu.Lock()
	next, res := g.engine.Apply(g.session, ev)
	if res.Applied {
		g.session = next
		g.revision++
	}
	stage, total, rev := g.session.Stage, g.session.TotalKills, g.revision
	listeners := g.listeners
	g.mu.Unlock()

	span.SetAttributes(
		attribute.String("event.item", ev.ItemID),
		attribute.Bool("event.applied", res.Applied),
		attribute.String("outcome", res.Outcome.String()),
		attribute.Int("damage", res.Damage),
		attribute.Int("damage.taken", res.Taken),
		attribute.Int("stage", stage),
		attribute.Int("kills.total", total),
		attribute.Int64("revision", int64(rev)),
	)

	switch res.Outcome {
	case OutcomeBossDefeated:
		slog.InfoContext(ctx, "boss defeated", "stage", stage, "kills", total)
	case OutcomeHeroDefeated:
		slog.InfoContext(ctx, "hero defeated", "stage", stage,
			"souls_lost", res.Loss.Souls, "bones_lost", res.Loss.Bones, "gloom_lost", res.Loss.Gloom)
	case OutcomeReset:
		slog.InfoContext(ctx, "session reset")
	default:
		slog.DebugContext(ctx, "event", "kind", ev.Kind.String(), "applied", res.Applied, "outcome", res.Outcome.String())
	}

	if res.Applied {
		for _, fn := range listeners {
			fn(res)
		}
	}
	return res
}

// Session returns a deep copy of the current session.
func (g *Game) Session() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Clone()
}

// Revision returns a counter that increases with every applied transition.
func (g *Game) Revision() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.revision
}

// Snapshot encodes the current session and returns it with its revision.
func (g *Game) Snapshot() ([]byte, uint64, error) {
	g.mu.Lock()
	s, rev := g.session.Clone(), g.revision
	g.mu.Unlock()

	data, err := EncodeSnapshot(s)
	if err != nil {
		return nil, 0, err
	}
	return data, rev, nil
}

// Stats returns the derived stats of the current session.
func (g *Game) Stats() combat.Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Stats(g.engine.Catalog())
}

// Engine returns the game's transition engine.
func (g *Game) Engine() *Engine { return g.engine }
