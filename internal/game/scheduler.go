package game

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

var (
	// ErrSchedulerStarted is returned by a second call to Start.
	ErrSchedulerStarted = errors.New("scheduler: start called multiple times")
	// ErrSchedulerNotStarted is returned by Stop before Start.
	ErrSchedulerNotStarted = errors.New("scheduler: not started")
	// ErrSchedulerStopped is returned by a second call to Stop.
	ErrSchedulerStopped = errors.New("scheduler: stop called multiple times")
)

// Scheduler drives a Game with a Tick on a fixed period.
type Scheduler struct {
	game     *Game
	interval time.Duration

	started int32
	stopped int32

	quit chan struct{}
	done chan struct{}
}

// NewScheduler creates a scheduler for g using cfg's tick interval.
func NewScheduler(g *Game, cfg Config) *Scheduler {
	return &Scheduler{
		game:     g,
		interval: cfg.tickInterval(),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the tick loop. It must be called once. The loop ends when
// ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.started, 0, 1) {
		return ErrSchedulerStarted
	}
	go s.run(ctx)
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "scheduler started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "scheduler: context cancelled, shutting down", "err", ctx.Err())
			return
		case <-s.quit:
			return
		case <-ticker.C:
			s.game.Dispatch(ctx, Tick())
		}
	}
}

// Stop ends the tick loop and waits for it to exit.
func (s *Scheduler) Stop(ctx context.Context) error {
	if atomic.LoadInt32(&s.started) == 0 {
		return ErrSchedulerNotStarted
	}
	if !atomic.CompareAndSwapInt32(&s.stopped, 0, 1) {
		return ErrSchedulerStopped
	}
	close(s.quit)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the tick loop has exited.
func (s *Scheduler) Done() <-chan struct{} { return s.done }
