package app

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/arabizi-backend/internal/config"
	"github.com/heartmarshall/arabizi-backend/internal/transport/middleware"
	"github.com/heartmarshall/arabizi-backend/internal/transport/rest"
)

func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	th *rest.TranslationHandler,
	hh *rest.HealthHandler,
	rl *middleware.RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", hh.Live)
	mux.HandleFunc("GET /ready", hh.Ready)
	mux.HandleFunc("GET /health", hh.Health)

	// Both pipelines share one quota.
	limit := rl.Limit(cfg.RateLimit.TranslatePerMinute)
	mux.Handle("POST /translate", limit(http.HandlerFunc(th.Translate)))
	mux.Handle("POST /transliterate", limit(http.HandlerFunc(th.Transliterate)))

	mux.HandleFunc("GET /history", th.ListHistory)
	mux.HandleFunc("GET /history/{id}", th.GetHistory)

	prefix := strings.TrimSuffix(cfg.Static.URLPrefix, "/")
	mux.Handle("GET "+prefix+"/", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Static.Dir))))

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.ClientIP(cfg.Server.TrustProxy),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
