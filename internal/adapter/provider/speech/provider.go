// Package speech turns text into MP3 audio.
//
// Provider calls a translate_tts style endpoint that answers a GET with
// audio/mpeg for short text. Longer text is split into chunks and the MP3
// streams are concatenated, which players accept as one file.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/arabizi-backend/internal/config"
)

// ErrEmptyText is returned for text without any speakable content.
var ErrEmptyText = errors.New("speech: empty text")

const maxChunkBytes = 4 << 20

// Provider synthesises speech through an HTTP TTS endpoint.
type Provider struct {
	baseURL    string
	maxRunes   int
	httpClient *http.Client
	log        *slog.Logger
	retryDelay time.Duration
}

// NewProvider creates a Provider from SpeechConfig.
func NewProvider(cfg config.SpeechConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    cfg.BaseURL,
		maxRunes:   cfg.MaxChunkRunes,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "speech"),
		retryDelay: 500 * time.Millisecond,
	}
}

// Synthesize returns MP3 audio for text spoken in lang.
func (p *Provider) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := splitChunks(text, p.maxRunes)
	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}

	p.log.DebugContext(ctx, "speech request",
		slog.String("lang", lang),
		slog.Int("chunks", len(chunks)),
	)

	var audio bytes.Buffer
	for i, chunk := range chunks {
		data, err := p.fetchChunk(ctx, chunk, lang, i, len(chunks))
		if err != nil {
			p.log.ErrorContext(ctx, "speech request failed",
				slog.String("lang", lang),
				slog.Int("chunk", i),
				slog.String("error", err.Error()),
			)
			return nil, fmt.Errorf("speech: chunk %d/%d: %w", i+1, len(chunks), err)
		}
		audio.Write(data)
	}

	return audio.Bytes(), nil
}

func (p *Provider) fetchChunk(ctx context.Context, chunk, lang string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", chunk)
	q.Set("tl", lang)
	q.Set("idx", strconv.Itoa(idx))
	q.Set("total", strconv.Itoa(total))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	reqURL := p.baseURL
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + q.Encode()
	} else {
		reqURL += "?" + q.Encode()
	}

	resp, err := p.doWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "audio/") {
		return nil, fmt.Errorf("unexpected content type %q", ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxChunkBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty audio")
	}
	return data, nil
}

// doWithRetry executes a GET with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, reqURL string) (*http.Response, error) {
	resp, err := p.get(ctx, reqURL)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "speech retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.get(ctx, reqURL)
}

func (p *Provider) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	return p.httpClient.Do(req)
}
