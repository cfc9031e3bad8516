package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2
  migrate: false

log:
  level: "debug"
  format: "text"

rate_limit:
  translate_per_minute: 12

translate:
  provider: "http"
  base_url: "http://translate.local:5000"
  api_key: "secret"
  max_input_runes: 200

speech:
  provider: "http"
  base_url: "http://tts.local/translate_tts"
  max_chunk_runes: 50

static:
  dir: "/srv/static"
  url_prefix: "/assets/"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}
	if cfg.Server.MaxBodyBytes != 65536 {
		t.Errorf("server.max_body_bytes = %d, want default 65536", cfg.Server.MaxBodyBytes)
	}

	// Database
	if !cfg.Database.Enabled() {
		t.Error("database should be enabled")
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Database.Migrate {
		t.Error("database.migrate should be false")
	}
	if cfg.Database.HistoryRetention != 90*24*time.Hour {
		t.Errorf("database.history_retention = %v, want default 2160h", cfg.Database.HistoryRetention)
	}
	if cfg.Server.TrustProxy {
		t.Error("server.trust_proxy should default to false")
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// Rate limit
	if cfg.RateLimit.TranslatePerMinute != 12 {
		t.Errorf("rate_limit.translate_per_minute = %d, want 12", cfg.RateLimit.TranslatePerMinute)
	}
	if cfg.RateLimit.CleanupInterval != 5*time.Minute {
		t.Errorf("rate_limit.cleanup_interval = %v, want default 5m", cfg.RateLimit.CleanupInterval)
	}

	// Translate
	if cfg.Translate.Provider != ProviderHTTP {
		t.Errorf("translate.provider = %q, want http", cfg.Translate.Provider)
	}
	if cfg.Translate.APIKey != "secret" {
		t.Errorf("translate.api_key = %q", cfg.Translate.APIKey)
	}
	if cfg.Translate.SourceLang != "ar" || cfg.Translate.TargetLang != "en" {
		t.Errorf("translate langs = %q/%q, want ar/en", cfg.Translate.SourceLang, cfg.Translate.TargetLang)
	}
	if cfg.Translate.MaxInputRunes != 200 {
		t.Errorf("translate.max_input_runes = %d, want 200", cfg.Translate.MaxInputRunes)
	}

	// Speech
	if cfg.Speech.Provider != ProviderHTTP {
		t.Errorf("speech.provider = %q, want http", cfg.Speech.Provider)
	}
	if cfg.Speech.MaxChunkRunes != 50 {
		t.Errorf("speech.max_chunk_runes = %d, want 50", cfg.Speech.MaxChunkRunes)
	}

	// Static
	if got := cfg.Static.AudioDir(); got != "/srv/static/audio" {
		t.Errorf("static.AudioDir() = %q", got)
	}
	if got := cfg.Static.AudioURLPrefix(); got != "/assets/audio" {
		t.Errorf("static.AudioURLPrefix() = %q", got)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SPEECH_PROVIDER", "off")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Speech.Provider != ProviderOff {
		t.Errorf("speech.provider = %q, want off (ENV override)", cfg.Speech.Provider)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Database.Enabled() {
		t.Error("database should be disabled without a DSN")
	}
	if cfg.Translate.Provider != ProviderStub {
		t.Errorf("translate.provider = %q, want stub (default)", cfg.Translate.Provider)
	}
	if cfg.Speech.Provider != ProviderOff {
		t.Errorf("speech.provider = %q, want off (default)", cfg.Speech.Provider)
	}
	if cfg.Static.AudioURLPrefix() != "/static/audio" {
		t.Errorf("static.AudioURLPrefix() = %q, want /static/audio", cfg.Static.AudioURLPrefix())
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_InvalidValueFailsValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "translate:\n  provider: \"deepl\"\n")
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "translate") {
		t.Errorf("error %q should mention translate", err)
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080, MaxBodyBytes: 1024},
		Log:    LogConfig{Level: "info", Format: "json"},
		RateLimit: RateLimitConfig{
			TranslatePerMinute: 30,
			CleanupInterval:    time.Minute,
		},
		Translate: TranslateConfig{
			Provider:      ProviderStub,
			SourceLang:    "ar",
			TargetLang:    "en",
			Timeout:       time.Second,
			MaxInputRunes: 500,
		},
		Speech: SpeechConfig{
			Provider:      ProviderStub,
			ArabicLang:    "ar",
			EnglishLang:   "en",
			Timeout:       time.Second,
			MaxChunkRunes: 100,
		},
		Static: StaticConfig{Dir: "./static", URLPrefix: "/static"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "body limit zero", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, wantErr: true},
		{name: "min conns above max", mutate: func(c *Config) {
			c.Database.DSN = "postgres://x"
			c.Database.MinConns, c.Database.MaxConns = 5, 2
		}, wantErr: true},
		{name: "retention zero with dsn", mutate: func(c *Config) {
			c.Database = DatabaseConfig{DSN: "postgres://x", MinConns: 1, MaxConns: 2}
		}, wantErr: true},
		{name: "retention set with dsn", mutate: func(c *Config) {
			c.Database = DatabaseConfig{DSN: "postgres://x", MinConns: 1, MaxConns: 2, HistoryRetention: time.Hour}
		}},
		{name: "pool sizes ignored without dsn", mutate: func(c *Config) {
			c.Database.MinConns, c.Database.MaxConns = 5, 2
		}},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "rate limit zero", mutate: func(c *Config) { c.RateLimit.TranslatePerMinute = 0 }, wantErr: true},
		{name: "cleanup interval zero", mutate: func(c *Config) { c.RateLimit.CleanupInterval = 0 }, wantErr: true},
		{name: "unknown translate provider", mutate: func(c *Config) { c.Translate.Provider = "deepl" }, wantErr: true},
		{name: "translate off is not allowed", mutate: func(c *Config) { c.Translate.Provider = ProviderOff }, wantErr: true},
		{name: "http translate needs url", mutate: func(c *Config) {
			c.Translate.Provider = ProviderHTTP
			c.Translate.BaseURL = "not a url"
		}, wantErr: true},
		{name: "http translate with url", mutate: func(c *Config) {
			c.Translate.Provider = ProviderHTTP
			c.Translate.BaseURL = "https://libretranslate.com"
		}},
		{name: "malformed source lang", mutate: func(c *Config) { c.Translate.SourceLang = "not a tag!" }, wantErr: true},
		{name: "empty target lang", mutate: func(c *Config) { c.Translate.TargetLang = "" }, wantErr: true},
		{name: "regional lang tag", mutate: func(c *Config) { c.Translate.SourceLang = "ar-EG" }},
		{name: "max input zero", mutate: func(c *Config) { c.Translate.MaxInputRunes = 0 }, wantErr: true},
		{name: "translate timeout zero", mutate: func(c *Config) { c.Translate.Timeout = 0 }, wantErr: true},
		{name: "unknown speech provider", mutate: func(c *Config) { c.Speech.Provider = "polly" }, wantErr: true},
		{name: "speech off skips checks", mutate: func(c *Config) {
			c.Speech.Provider = ProviderOff
			c.Speech.MaxChunkRunes = 0
			c.Speech.ArabicLang = ""
		}},
		{name: "speech chunk zero", mutate: func(c *Config) { c.Speech.MaxChunkRunes = 0 }, wantErr: true},
		{name: "http speech bad scheme", mutate: func(c *Config) {
			c.Speech.Provider = ProviderHTTP
			c.Speech.BaseURL = "ftp://tts.local"
		}, wantErr: true},
		{name: "empty static dir", mutate: func(c *Config) { c.Static.Dir = "" }, wantErr: true},
		{name: "relative url prefix", mutate: func(c *Config) { c.Static.URLPrefix = "static" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "server.port") || !strings.Contains(msg, "log.format") {
		t.Errorf("error should list both problems, got %q", msg)
	}
}
