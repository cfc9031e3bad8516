package translation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/arabizi-backend/internal/domain"
	"github.com/heartmarshall/arabizi-backend/internal/phrasebook"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

type synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

type audioStore interface {
	Recorded(name string) (string, bool)
	Find(lang, text string) (string, bool)
	Save(lang, text string, data []byte) (string, error)
}

type phraseLookup interface {
	Lookup(text string) (phrasebook.Phrase, bool)
}

type historyRepo interface {
	Create(ctx context.Context, t *domain.Translation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Translation, error)
	List(ctx context.Context, page domain.Page) ([]domain.Translation, error)
	Count(ctx context.Context) (int, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the service limits and the speech languages.
type Config struct {
	MaxInputRunes int
	ArabicLang    string
	EnglishLang   string
}

// Service runs the Arabizi pipeline and enriches its output with English,
// audio and history.
type Service struct {
	log        *slog.Logger
	translator translator
	phrases    phraseLookup
	synth      synthesizer
	audio      audioStore
	history    historyRepo
	cfg        Config
}

// NewService creates a translation service. Speech and history are optional
// and are attached with SetSpeech and SetHistory.
func NewService(logger *slog.Logger, tr translator, phrases phraseLookup, cfg Config) *Service {
	return &Service{
		log:        logger.With("service", "translation"),
		translator: tr,
		phrases:    phrases,
		cfg:        cfg,
	}
}

// SetSpeech enables audio generation.
func (s *Service) SetSpeech(synth synthesizer, store audioStore) {
	s.synth = synth
	s.audio = store
}

// SetHistory enables persistence of processed translations.
func (s *Service) SetHistory(h historyRepo) {
	s.history = h
}

// HistoryEnabled reports whether a history repository is attached.
func (s *Service) HistoryEnabled() bool {
	return s.history != nil
}
