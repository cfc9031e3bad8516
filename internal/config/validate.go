package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes))
	}

	if c.Database.Enabled() && c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns))
	}
	if c.Database.Enabled() && c.Database.HistoryRetention <= 0 {
		errs = append(errs, fmt.Errorf("database.history_retention must be > 0 (got %s)", c.Database.HistoryRetention))
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format))
	}

	if c.RateLimit.TranslatePerMinute <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit.translate_per_minute must be > 0 (got %d)", c.RateLimit.TranslatePerMinute))
	}
	if c.RateLimit.CleanupInterval <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval))
	}

	if err := c.Translate.validate(); err != nil {
		errs = append(errs, fmt.Errorf("translate: %w", err))
	}
	if err := c.Speech.validate(); err != nil {
		errs = append(errs, fmt.Errorf("speech: %w", err))
	}

	if c.Static.Dir == "" {
		errs = append(errs, errors.New("static.dir must not be empty"))
	}
	if !strings.HasPrefix(c.Static.URLPrefix, "/") {
		errs = append(errs, fmt.Errorf("static.url_prefix must start with / (got %q)", c.Static.URLPrefix))
	}

	return errors.Join(errs...)
}

func (t *TranslateConfig) validate() error {
	if t.Provider != ProviderStub && t.Provider != ProviderHTTP {
		return fmt.Errorf("provider must be stub or http (got %q)", t.Provider)
	}
	if t.Provider == ProviderHTTP {
		if err := validateBaseURL(t.BaseURL); err != nil {
			return err
		}
	}
	if err := validateLang("source_lang", t.SourceLang); err != nil {
		return err
	}
	if err := validateLang("target_lang", t.TargetLang); err != nil {
		return err
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", t.Timeout)
	}
	if t.MaxInputRunes <= 0 {
		return fmt.Errorf("max_input_runes must be > 0 (got %d)", t.MaxInputRunes)
	}
	return nil
}

func (s *SpeechConfig) validate() error {
	switch s.Provider {
	case ProviderOff:
		return nil
	case ProviderStub:
	case ProviderHTTP:
		if err := validateBaseURL(s.BaseURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("provider must be stub, http or off (got %q)", s.Provider)
	}

	if err := validateLang("arabic_lang", s.ArabicLang); err != nil {
		return err
	}
	if err := validateLang("english_lang", s.EnglishLang); err != nil {
		return err
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", s.Timeout)
	}
	if s.MaxChunkRunes <= 0 {
		return fmt.Errorf("max_chunk_runes must be > 0 (got %d)", s.MaxChunkRunes)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be an http(s) URL (got %q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url has no host (got %q)", raw)
	}
	return nil
}

// validateLang checks that value is a well-formed BCP 47 tag.
func validateLang(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if _, err := language.Parse(value); err != nil {
		return fmt.Errorf("%s %q: %w", field, value, err)
	}
	return nil
}
