package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/arabizi-backend/internal/domain"
	"github.com/heartmarshall/arabizi-backend/internal/service/translation"
	"github.com/heartmarshall/arabizi-backend/internal/translit"
)

// translationService defines the minimal interface needed by TranslationHandler.
type translationService interface {
	Translate(ctx context.Context, in translation.TranslateInput) (*domain.Translation, error)
	Transliterate(ctx context.Context, in translation.TranslateInput) (translit.Result, error)
	ListHistory(ctx context.Context, page domain.Page) (*translation.HistoryPage, error)
	GetHistory(ctx context.Context, id uuid.UUID) (*domain.Translation, error)
}

// TranslationHandler serves the translation REST endpoints.
type TranslationHandler struct {
	svc          translationService
	log          *slog.Logger
	maxBodyBytes int64
}

// NewTranslationHandler creates a TranslationHandler. Request bodies larger
// than maxBodyBytes are rejected.
func NewTranslationHandler(svc translationService, logger *slog.Logger, maxBodyBytes int64) *TranslationHandler {
	return &TranslationHandler{
		svc:          svc,
		log:          logger.With("handler", "translation"),
		maxBodyBytes: maxBodyBytes,
	}
}

type textRequest struct {
	Text string `json:"text"`
}

type translationResponse struct {
	ID              string    `json:"id"`
	Input           string    `json:"input"`
	ArabicRaw       string    `json:"arabic_raw"`
	ArabicCorrected string    `json:"arabic_corrected"`
	English         string    `json:"english"`
	ArabicAudioURL  *string   `json:"arabic_audio_url"`
	EnglishAudioURL *string   `json:"english_audio_url"`
	Reference       string    `json:"reference"`
	FromPhrasebook  bool      `json:"from_phrasebook"`
	CreatedAt       time.Time `json:"created_at"`
}

type historyResponse struct {
	Items  []translationResponse `json:"items"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// Translate handles POST /translate.
func (h *TranslationHandler) Translate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeText(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Translate(r.Context(), translation.TranslateInput{Text: req.Text})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTranslationResponse(result))
}

// Transliterate handles POST /transliterate.
func (h *TranslationHandler) Transliterate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeText(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Transliterate(r.Context(), translation.TranslateInput{Text: req.Text})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListHistory handles GET /history?limit=&offset=.
func (h *TranslationHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.svc.ListHistory(r.Context(), page)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := historyResponse{
		Items:  make([]translationResponse, len(result.Items)),
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	}
	for i := range result.Items {
		resp.Items[i] = toTranslationResponse(&result.Items[i])
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetHistory handles GET /history/{id}.
func (h *TranslationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	result, err := h.svc.GetHistory(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTranslationResponse(result))
}

// decodeText reads {"text": ...}. An empty body counts as empty text so the
// service reports the missing text.
func (h *TranslationHandler) decodeText(w http.ResponseWriter, r *http.Request) (textRequest, bool) {
	var req textRequest

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return req, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}

	return req, true
}

func parsePage(r *http.Request) (domain.Page, error) {
	var (
		page domain.Page
		ve   domain.ValidationError
		err  error
	)

	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		if page.Limit, err = strconv.Atoi(v); err != nil {
			ve.Add("limit", "must be an integer")
		}
	}
	if v := q.Get("offset"); v != "" {
		if page.Offset, err = strconv.Atoi(v); err != nil {
			ve.Add("offset", "must be an integer")
		}
	}

	return page, ve.Err()
}

func toTranslationResponse(t *domain.Translation) translationResponse {
	return translationResponse{
		ID:              t.ID.String(),
		Input:           t.Input,
		ArabicRaw:       t.ArabicRaw,
		ArabicCorrected: t.ArabicCorrected,
		English:         t.English,
		ArabicAudioURL:  t.ArabicAudioURL,
		EnglishAudioURL: t.EnglishAudioURL,
		Reference:       t.Reference,
		FromPhrasebook:  t.FromPhrasebook,
		CreatedAt:       t.CreatedAt,
	}
}

func (h *TranslationHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, validationMessage(ve))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDisabled):
		writeError(w, http.StatusNotFound, "history is disabled")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, context.Canceled):
		h.log.InfoContext(r.Context(), "request cancelled", slog.String("path", r.URL.Path))
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// validationMessage renders field errors for clients. Text errors carry a
// complete sentence and are sent as is.
func validationMessage(ve *domain.ValidationError) string {
	parts := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		if fe.Field == "text" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fe.String())
	}
	return strings.Join(parts, "; ")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
