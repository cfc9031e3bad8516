package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Translate TranslateConfig `yaml:"translate"`
	Speech    SpeechConfig    `yaml:"speech"`
	Static    StaticConfig    `yaml:"static"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// MaxBodyBytes caps request bodies on the JSON endpoints.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"SERVER_MAX_BODY_BYTES" env-default:"65536"`
	// TrustProxy takes the client address from X-Forwarded-For.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// An empty DSN disables translation history.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"true"`
	// HistoryRetention is how long the cleanup command keeps stored translations.
	HistoryRetention time.Duration `yaml:"history_retention" env:"DATABASE_HISTORY_RETENTION" env-default:"2160h"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(c.DSN) != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP limits for the expensive endpoints.
type RateLimitConfig struct {
	TranslatePerMinute int           `yaml:"translate_per_minute" env:"RATE_LIMIT_TRANSLATE_PER_MINUTE" env-default:"30"`
	CleanupInterval    time.Duration `yaml:"cleanup_interval"     env:"RATE_LIMIT_CLEANUP_INTERVAL"     env-default:"5m"`
}

// Provider names shared by the translate and speech sections.
const (
	ProviderStub = "stub"
	ProviderHTTP = "http"
	ProviderOff  = "off"
)

// TranslateConfig holds machine translation settings.
type TranslateConfig struct {
	Provider      string        `yaml:"provider"        env:"TRANSLATE_PROVIDER"        env-default:"stub"`
	BaseURL       string        `yaml:"base_url"        env:"TRANSLATE_BASE_URL"        env-default:"https://libretranslate.com"`
	APIKey        string        `yaml:"api_key"         env:"TRANSLATE_API_KEY"`
	SourceLang    string        `yaml:"source_lang"     env:"TRANSLATE_SOURCE_LANG"     env-default:"ar"`
	TargetLang    string        `yaml:"target_lang"     env:"TRANSLATE_TARGET_LANG"     env-default:"en"`
	Timeout       time.Duration `yaml:"timeout"         env:"TRANSLATE_TIMEOUT"         env-default:"10s"`
	MaxInputRunes int           `yaml:"max_input_runes" env:"TRANSLATE_MAX_INPUT_RUNES" env-default:"500"`
}

// SpeechConfig holds text-to-speech settings.
type SpeechConfig struct {
	Provider      string        `yaml:"provider"        env:"SPEECH_PROVIDER"        env-default:"off"`
	BaseURL       string        `yaml:"base_url"        env:"SPEECH_BASE_URL"        env-default:"https://translate.google.com/translate_tts"`
	Timeout       time.Duration `yaml:"timeout"         env:"SPEECH_TIMEOUT"         env-default:"15s"`
	MaxChunkRunes int           `yaml:"max_chunk_runes" env:"SPEECH_MAX_CHUNK_RUNES" env-default:"100"`
	ArabicLang    string        `yaml:"arabic_lang"     env:"SPEECH_ARABIC_LANG"     env-default:"ar"`
	EnglishLang   string        `yaml:"english_lang"    env:"SPEECH_ENGLISH_LANG"    env-default:"en"`
}

// StaticConfig holds static file serving settings.
// Generated audio is written to Dir/audio and served under URLPrefix/audio.
type StaticConfig struct {
	Dir       string `yaml:"dir"        env:"STATIC_DIR"        env-default:"./static"`
	URLPrefix string `yaml:"url_prefix" env:"STATIC_URL_PREFIX" env-default:"/static"`
}

// AudioDir returns the directory for generated and curated audio.
func (c StaticConfig) AudioDir() string {
	return strings.TrimSuffix(c.Dir, "/") + "/audio"
}

// AudioURLPrefix returns the URL prefix audio files are served under.
func (c StaticConfig) AudioURLPrefix() string {
	return strings.TrimSuffix(c.URLPrefix, "/") + "/audio"
}
