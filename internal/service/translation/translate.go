package translation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/arabizi-backend/internal/domain"
	"github.com/heartmarshall/arabizi-backend/internal/phrasebook"
	"github.com/heartmarshall/arabizi-backend/internal/translit"
)

// Transliterate runs only the Arabizi pipeline.
func (s *Service) Transliterate(_ context.Context, in TranslateInput) (translit.Result, error) {
	if err := in.Validate(s.cfg.MaxInputRunes); err != nil {
		return translit.Result{}, err
	}
	return translit.Convert(in.Text), nil
}

// Translate transliterates the input and adds English, audio URLs and a
// reference Arabic rendering. Collaborator failures degrade the result
// instead of failing the call: English falls back to the corrected Arabic,
// an audio URL becomes nil, and a history write error is only logged.
func (s *Service) Translate(ctx context.Context, in TranslateInput) (*domain.Translation, error) {
	if err := in.Validate(s.cfg.MaxInputRunes); err != nil {
		return nil, err
	}

	start := time.Now()
	res := translit.Convert(in.Text)

	t := &domain.Translation{
		ID:              uuid.New(),
		Input:           in.Text,
		ArabicRaw:       res.Raw,
		ArabicCorrected: res.Corrected,
		CreatedAt:       time.Now().UTC(),
	}

	if p, ok := s.phrases.Lookup(in.Text); ok {
		t.English = p.English
		t.Reference = p.Arabic
		t.ArabicAudioURL, t.EnglishAudioURL = s.phraseAudio(ctx, p)
		t.FromPhrasebook = true
	} else {
		t.Reference = phrasebook.NotFoundMessage
		english, translated := s.english(ctx, res.Corrected)
		t.English = english
		t.ArabicAudioURL, t.EnglishAudioURL = s.speak(ctx, res.Corrected, english, translated)
	}

	if s.history != nil {
		if err := s.history.Create(ctx, t); err != nil {
			s.log.ErrorContext(ctx, "save translation history",
				slog.String("id", t.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	s.log.InfoContext(ctx, "translation processed",
		slog.String("id", t.ID.String()),
		slog.Bool("phrasebook", t.FromPhrasebook),
		slog.Bool("arabic_audio", t.ArabicAudioURL != nil),
		slog.Bool("english_audio", t.EnglishAudioURL != nil),
		slog.Duration("duration", time.Since(start)),
	)

	return t, nil
}

// english returns the translation of arabic, or arabic itself when the
// translator fails. The bool reports whether a real translation was produced.
func (s *Service) english(ctx context.Context, arabic string) (string, bool) {
	out, err := s.translator.Translate(ctx, arabic)
	if err != nil {
		s.log.WarnContext(ctx, "translation unavailable, using arabic", slog.String("error", err.Error()))
		return arabic, false
	}

	out = strings.TrimSpace(out)
	if out == "" || out == arabic {
		return arabic, false
	}
	return out, true
}

// speak produces the Arabic and English audio URLs concurrently. English
// audio is skipped when there is no real English text.
func (s *Service) speak(ctx context.Context, arabic, english string, translated bool) (arURL, enURL *string) {
	if s.synth == nil || s.audio == nil {
		return nil, nil
	}

	var g errgroup.Group
	g.Go(func() error {
		arURL = s.audioURL(ctx, s.cfg.ArabicLang, arabic)
		return nil
	})
	if translated {
		g.Go(func() error {
			enURL = s.audioURL(ctx, s.cfg.EnglishLang, english)
			return nil
		})
	}
	_ = g.Wait()

	return arURL, enURL
}

// phraseAudio prefers the phrase's installed recordings and synthesises
// the curated text for any that are missing. Without speech both are nil.
func (s *Service) phraseAudio(ctx context.Context, p phrasebook.Phrase) (arURL, enURL *string) {
	if s.synth == nil || s.audio == nil {
		return nil, nil
	}

	var g errgroup.Group
	g.Go(func() error {
		arURL = s.recordedOr(ctx, p.ArabicAudio, s.cfg.ArabicLang, p.Arabic)
		return nil
	})
	g.Go(func() error {
		enURL = s.recordedOr(ctx, p.EnglishAudio, s.cfg.EnglishLang, p.English)
		return nil
	})
	_ = g.Wait()

	return arURL, enURL
}

func (s *Service) recordedOr(ctx context.Context, name, lang, text string) *string {
	if url, ok := s.audio.Recorded(name); ok {
		return &url
	}
	return s.audioURL(ctx, lang, text)
}

// audioURL returns a stored file for (lang, text), synthesising it first
// when it does not exist yet. It returns nil on any failure.
func (s *Service) audioURL(ctx context.Context, lang, text string) *string {
	if url, ok := s.audio.Find(lang, text); ok {
		return &url
	}

	data, err := s.synth.Synthesize(ctx, text, lang)
	if err != nil {
		s.log.WarnContext(ctx, "speech synthesis failed",
			slog.String("lang", lang),
			slog.String("error", err.Error()),
		)
		return nil
	}

	url, err := s.audio.Save(lang, text, data)
	if err != nil {
		s.log.WarnContext(ctx, "store audio failed",
			slog.String("lang", lang),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return &url
}
