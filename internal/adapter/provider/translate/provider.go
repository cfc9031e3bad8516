// Package translate provides machine translation of Arabic text.
//
// Provider talks to a LibreTranslate-compatible HTTP API:
//
//	POST {base_url}/translate
//	{"q": "...", "source": "ar", "target": "en", "format": "text", "api_key": "..."}
//	→ {"translatedText": "..."}
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/arabizi-backend/internal/config"
)

// ErrEmptyResult is returned when the API answers 200 without a translation.
var ErrEmptyResult = errors.New("translate: empty translation")

const maxResponseBytes = 1 << 20

type apiRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type apiResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Provider translates text through a LibreTranslate-compatible API.
type Provider struct {
	baseURL    string
	apiKey     string
	source     string
	target     string
	httpClient *http.Client
	log        *slog.Logger
	retryDelay time.Duration
}

// NewProvider creates a Provider from TranslateConfig.
func NewProvider(cfg config.TranslateConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		source:     cfg.SourceLang,
		target:     cfg.TargetLang,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "translate"),
		retryDelay: 500 * time.Millisecond,
	}
}

// Translate translates text from the configured source to the target language.
func (p *Provider) Translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(apiRequest{
		Q:      text,
		Source: p.source,
		Target: p.target,
		Format: "text",
		APIKey: p.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("translate: encode request: %w", err)
	}

	p.log.DebugContext(ctx, "translate request",
		slog.Int("bytes", len(text)),
		slog.String("source", p.source),
		slog.String("target", p.target),
	)

	resp, err := p.doWithRetry(ctx, body)
	if err != nil {
		p.log.ErrorContext(ctx, "translate request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("translate: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("translate: read body: %w", err)
	}

	var out apiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("translate: decode json: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("translate: status %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}

	translated := strings.TrimSpace(out.TranslatedText)
	if translated == "" {
		return "", ErrEmptyResult
	}

	p.log.DebugContext(ctx, "translate response", slog.Int("status", resp.StatusCode))

	return translated, nil
}

// doWithRetry posts body with a single retry on 5xx or network errors.
// A fresh request is built for each attempt because the body is consumed.
func (p *Provider) doWithRetry(ctx context.Context, body []byte) (*http.Response, error) {
	resp, err := p.post(ctx, body)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "translate retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.post(ctx, body)
}

func (p *Provider) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return p.httpClient.Do(req)
}
