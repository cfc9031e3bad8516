//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/arabizi-backend/internal/adapter/audiostore"
	"github.com/heartmarshall/arabizi-backend/internal/adapter/postgres/history"
	"github.com/heartmarshall/arabizi-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/arabizi-backend/internal/adapter/provider/speech"
	"github.com/heartmarshall/arabizi-backend/internal/adapter/provider/translate"
	"github.com/heartmarshall/arabizi-backend/internal/config"
	"github.com/heartmarshall/arabizi-backend/internal/phrasebook"
	"github.com/heartmarshall/arabizi-backend/internal/service/translation"
	"github.com/heartmarshall/arabizi-backend/internal/transport/middleware"
	"github.com/heartmarshall/arabizi-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack backed by a real
// PostgreSQL container (shared via testhelper) and stub providers.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	static := t.TempDir()
	store, err := audiostore.New(static+"/audio", "/static/audio")
	require.NoError(t, err)

	svc := translation.NewService(logger, translate.NewStub(), phrasebook.New(), translation.Config{
		MaxInputRunes: 500,
		ArabicLang:    "ar",
		EnglishLang:   "en",
	})
	svc.SetSpeech(speech.NewStub(), store)
	svc.SetHistory(history.New(pool))

	th := rest.NewTranslationHandler(svc, logger, 64<<10)
	hh := rest.NewHealthHandler(pool, "e2e")

	rl := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(rl.Stop)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", hh.Live)
	mux.HandleFunc("GET /ready", hh.Ready)
	mux.HandleFunc("GET /health", hh.Health)
	mux.Handle("POST /translate", rl.Limit(1000)(http.HandlerFunc(th.Translate)))
	mux.HandleFunc("POST /transliterate", th.Transliterate)
	mux.HandleFunc("GET /history", th.ListHistory)
	mux.HandleFunc("GET /history/{id}", th.GetHistory)
	mux.Handle("GET /static/", http.StripPrefix("/static", http.FileServer(http.Dir(static))))

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.ClientIP(false),
		middleware.Logger(logger),
		middleware.CORS(config.CORSConfig{AllowedOrigins: "*"}),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// postJSON sends body as JSON and decodes the JSON response.
func (ts *testServer) postJSON(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	resp, err := ts.Client.Post(ts.URL+path, "application/json", &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// getJSON issues a GET and decodes the JSON response.
func (ts *testServer) getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// translate posts text to /translate and requires a 200.
func (ts *testServer) translate(t *testing.T, text string) map[string]any {
	t.Helper()

	status, body := ts.postJSON(t, "/translate", map[string]string{"text": text})
	require.Equal(t, http.StatusOK, status, "translate %q: %v", text, body)
	return body
}

func historyIDs(t *testing.T, body map[string]any) []string {
	t.Helper()

	items, ok := body["items"].([]any)
	require.True(t, ok, "expected items array")

	ids := make([]string, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		require.True(t, ok)
		ids = append(ids, m["id"].(string))
	}
	return ids
}
