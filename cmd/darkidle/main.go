// Package main is the entry point for Dark Idle.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/darkidle/internal/config"
	"github.com/samdwyer/darkidle/internal/game"
	"github.com/samdwyer/darkidle/internal/gamedata"
	"github.com/samdwyer/darkidle/internal/storage"
	"github.com/samdwyer/darkidle/internal/telemetry"
	"github.com/samdwyer/darkidle/internal/ui"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code so deferred cleanup runs first.
func realMain() int {
	// Load .env file for local development
	// This makes HONEYCOMB_DARKIDLE_API_KEY and DARKIDLE_* available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Invalid configuration: %v", err)
		return 2
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile, err := setupLogging(cfg)
	if err != nil {
		log.Printf("Failed to open log file: %v", err)
		return 1
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			slog.WarnContext(ctx, "telemetry setup failed, running without observability", "err", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					slog.Warn("telemetry shutdown failed", "err", err)
				}
			}()
		}
	}

	if err := run(ctx, cfg); err != nil {
		slog.ErrorContext(ctx, "game exited with error", "err", err)
		log.Printf("Game error: %v", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config) error {
	catalog, err := gamedata.LoadItemRegistry()
	if err != nil {
		return fmt.Errorf("load item catalog: %w", err)
	}
	roster, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return fmt.Errorf("load enemy roster: %w", err)
	}

	local, err := storage.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer local.Close()

	var remote storage.Store
	if cfg.SyncDBPath != "" {
		syncDB, err := storage.OpenSQLite(ctx, cfg.SyncDBPath)
		if err != nil {
			// Sync is optional; play continues on the local save
			slog.WarnContext(ctx, "sync database unavailable", "path", cfg.SyncDBPath, "err", err)
		} else {
			defer syncDB.Close()
			remote = syncDB
		}
	}

	gcfg := cfg.Game()
	seed := gcfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := game.NewEngine(catalog, roster, rand.New(rand.NewSource(seed))).WithHealCost(gcfg.HealCostSouls)

	session, source := storage.Reconcile(ctx, local, remote, cfg.Profile, engine)
	slog.InfoContext(ctx, "session loaded",
		"profile", cfg.Profile, "source", source.String(), "stage", session.Stage, "kills", session.TotalKills)

	g := game.New(engine, session, game.WithTracer(telemetry.Tracer("game")))

	savers := []*storage.Autosaver{
		storage.NewAutosaver("local", g, local, cfg.Profile, cfg.AutosaveInterval),
	}
	if remote != nil {
		savers = append(savers, storage.NewAutosaver("sync", g, remote, cfg.Profile, cfg.SyncInterval))
	}
	// Nothing to write until the first transition
	for _, s := range savers {
		s.MarkSaved(g.Revision())
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	app := ui.NewApp(screen, g, func() string { return syncStatus(savers[len(savers)-1]) })
	sched := game.NewScheduler(g, gcfg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	if err := sched.Start(ctx); err != nil {
		screen.Close()
		return err
	}
	for _, s := range savers {
		eg.Go(func() error { return s.Run(ctx) })
	}
	eg.Go(func() error {
		defer cancel()
		return app.Run(ctx)
	})
	runErr := eg.Wait()

	stopCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := sched.Stop(stopCtx); err != nil {
		slog.WarnContext(stopCtx, "scheduler stop", "err", err)
	}
	var flushErr error
	for _, s := range savers {
		if err := s.Flush(stopCtx); err != nil {
			slog.WarnContext(stopCtx, "final save failed", "err", err)
			flushErr = errors.Join(flushErr, err)
		}
	}
	if runErr != nil {
		return runErr
	}
	return flushErr
}

func syncStatus(s *storage.Autosaver) string {
	at := s.LastSyncAt()
	if at.IsZero() {
		return "not saved yet"
	}
	return "saved " + at.Format("15:04:05")
}

func setupLogging(cfg config.Config) (*os.File, error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return f, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Build headers from the API key; an unexpanded reference in .env would not work
	apiKey := os.Getenv("HONEYCOMB_DARKIDLE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DARKIDLE_DATASET")
	if dataset == "" {
		dataset = "darkidle"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
