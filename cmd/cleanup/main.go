// Command cleanup deletes stored translations older than the configured
// history retention (database.history_retention). It is intended to be
// invoked by an external cron job, not as an in-process goroutine. It also
// removes temporary files left in the audio directory.
//
// Flags:
//
//	--dry-run  report the threshold without deleting anything
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/arabizi-backend/internal/adapter/audiostore"
	"github.com/heartmarshall/arabizi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/arabizi-backend/internal/adapter/postgres/history"
	"github.com/heartmarshall/arabizi-backend/internal/app"
	"github.com/heartmarshall/arabizi-backend/internal/config"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report the threshold without deleting anything")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if store, err := audiostore.New(cfg.Static.AudioDir(), cfg.Static.AudioURLPrefix()); err != nil {
		logger.Warn("open audio store", slog.String("error", err.Error()))
	} else if n, err := store.Prune(); err != nil {
		logger.Warn("prune audio store", slog.String("error", err.Error()))
	} else {
		logger.Info("audio store pruned", slog.Int("removed", n))
	}

	if !cfg.Database.Enabled() {
		logger.Info("history disabled, nothing to delete")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	threshold := time.Now().Add(-cfg.Database.HistoryRetention)
	if *dryRun {
		logger.Info("dry run", slog.Time("threshold", threshold))
		return
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	deleted, err := history.New(pool).DeleteOlderThan(ctx, threshold)
	if err != nil {
		logger.Error("history cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		pool.Close()
		os.Exit(1)
	}

	logger.Info("history cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
	)
}
