package translation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/arabizi-backend/internal/domain"
)

// HistoryPage is one page of stored translations.
type HistoryPage struct {
	Items  []domain.Translation
	Total  int
	Limit  int
	Offset int
}

// ListHistory returns stored translations, newest first.
// A zero limit means domain.DefaultPageLimit.
func (s *Service) ListHistory(ctx context.Context, page domain.Page) (*HistoryPage, error) {
	if s.history == nil {
		return nil, domain.ErrDisabled
	}

	if page.Limit == 0 {
		page.Limit = domain.DefaultPageLimit
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, err := s.history.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	total, err := s.history.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count history: %w", err)
	}

	return &HistoryPage{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

// GetHistory returns one stored translation.
func (s *Service) GetHistory(ctx context.Context, id uuid.UUID) (*domain.Translation, error) {
	if s.history == nil {
		return nil, domain.ErrDisabled
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.history.GetByID(ctx, id)
}
