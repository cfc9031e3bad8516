package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/arabizi-backend/internal/adapter/audiostore"
	"github.com/heartmarshall/arabizi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/arabizi-backend/internal/adapter/postgres/history"
	"github.com/heartmarshall/arabizi-backend/internal/adapter/provider/speech"
	"github.com/heartmarshall/arabizi-backend/internal/adapter/provider/translate"
	"github.com/heartmarshall/arabizi-backend/internal/config"
	"github.com/heartmarshall/arabizi-backend/internal/phrasebook"
	"github.com/heartmarshall/arabizi-backend/internal/service/translation"
	"github.com/heartmarshall/arabizi-backend/internal/transport/middleware"
	"github.com/heartmarshall/arabizi-backend/internal/transport/rest"
	"github.com/heartmarshall/arabizi-backend/migrations"
)

// Run is the application entry point. It loads configuration, wires the
// dependencies and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("history", cfg.Database.Enabled()),
		slog.String("translate_provider", cfg.Translate.Provider),
		slog.String("speech_provider", cfg.Speech.Provider),
	)

	a, err := build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	return serve(ctx, cfg.Server, a.handler, logger)
}

// application holds everything the HTTP server needs plus what must be
// released on exit.
type application struct {
	handler http.Handler
	closers []func()
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *application, err error) {
	a := &application{}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	var pool *pgxpool.Pool
	if cfg.Database.Enabled() {
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)

		if cfg.Database.Migrate {
			if err = postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
				return nil, err
			}
		}
	}

	tr, err := newTranslator(cfg.Translate, logger)
	if err != nil {
		return nil, err
	}

	phrases := phrasebook.New()
	svc := translation.NewService(logger, tr, phrases, translation.Config{
		MaxInputRunes: cfg.Translate.MaxInputRunes,
		ArabicLang:    cfg.Speech.ArabicLang,
		EnglishLang:   cfg.Speech.EnglishLang,
	})

	synth, err := newSynthesizer(cfg.Speech, logger)
	if err != nil {
		return nil, err
	}
	if synth != nil {
		store, storeErr := audiostore.New(cfg.Static.AudioDir(), cfg.Static.AudioURLPrefix())
		if storeErr != nil {
			return nil, storeErr
		}
		if n, pruneErr := store.Prune(); pruneErr != nil {
			logger.Warn("prune audio store", slog.String("error", pruneErr.Error()))
		} else if n > 0 {
			logger.Info("pruned audio store", slog.Int("removed", n))
		}
		svc.SetSpeech(synth, store)
	}

	var health *rest.HealthHandler
	if pool != nil {
		svc.SetHistory(history.New(pool))
		health = rest.NewHealthHandler(pool, BuildVersion())
	} else {
		health = rest.NewHealthHandler(nil, BuildVersion())
	}

	logger.Info("translation service ready",
		slog.Int("phrases", phrases.Len()),
		slog.Bool("speech", synth != nil),
		slog.Bool("history", svc.HistoryEnabled()),
	)

	rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	a.closers = append(a.closers, rl.Stop)

	a.handler = newRouter(cfg, logger, rest.NewTranslationHandler(svc, logger, cfg.Server.MaxBodyBytes), health, rl)

	return a, nil
}

// translator is the provider used for English output.
type translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// synthesizer is the provider used for audio.
type synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

func newTranslator(cfg config.TranslateConfig, logger *slog.Logger) (translator, error) {
	switch cfg.Provider {
	case config.ProviderStub:
		return translate.NewStub(), nil
	case config.ProviderHTTP:
		return translate.NewProvider(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown translate provider %q", cfg.Provider)
	}
}

// newSynthesizer returns nil when speech is switched off.
func newSynthesizer(cfg config.SpeechConfig, logger *slog.Logger) (synthesizer, error) {
	switch cfg.Provider {
	case config.ProviderOff:
		return nil, nil
	case config.ProviderStub:
		return speech.NewStub(), nil
	case config.ProviderHTTP:
		return speech.NewProvider(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown speech provider %q", cfg.Provider)
	}
}

// serve runs the HTTP server and shuts it down gracefully once ctx is done.
func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
