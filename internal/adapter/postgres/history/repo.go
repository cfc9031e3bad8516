// Package history persists processed translations in PostgreSQL.
// Queries are built with squirrel and scanned with pgxscan.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/arabizi-backend/internal/adapter/postgres"
	"github.com/heartmarshall/arabizi-backend/internal/domain"
)

const table = "translations"

var columns = []string{
	"id", "input", "arabic_raw", "arabic_corrected", "english", "reference",
	"arabic_audio_url", "english_audio_url", "from_phrasebook", "created_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// row mirrors the translations table.
type row struct {
	ID              uuid.UUID `db:"id"`
	Input           string    `db:"input"`
	ArabicRaw       string    `db:"arabic_raw"`
	ArabicCorrected string    `db:"arabic_corrected"`
	English         string    `db:"english"`
	Reference       string    `db:"reference"`
	ArabicAudioURL  *string   `db:"arabic_audio_url"`
	EnglishAudioURL *string   `db:"english_audio_url"`
	FromPhrasebook  bool      `db:"from_phrasebook"`
	CreatedAt       time.Time `db:"created_at"`
}

func (r row) toDomain() domain.Translation {
	return domain.Translation{
		ID:              r.ID,
		Input:           r.Input,
		ArabicRaw:       r.ArabicRaw,
		ArabicCorrected: r.ArabicCorrected,
		English:         r.English,
		Reference:       r.Reference,
		ArabicAudioURL:  r.ArabicAudioURL,
		EnglishAudioURL: r.EnglishAudioURL,
		FromPhrasebook:  r.FromPhrasebook,
		CreatedAt:       r.CreatedAt,
	}
}

// Repo provides translation history persistence.
type Repo struct {
	q postgres.Querier
}

// New creates a history repository on top of a pool, a transaction or a mock.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Create inserts t and sets its CreatedAt from the database clock.
func (r *Repo) Create(ctx context.Context, t *domain.Translation) error {
	query, args, err := psql.Insert(table).
		Columns(columns[:len(columns)-1]...).
		Values(
			t.ID, t.Input, t.ArabicRaw, t.ArabicCorrected, t.English, t.Reference,
			t.ArabicAudioURL, t.EnglishAudioURL, t.FromPhrasebook,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("history: build insert: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&t.CreatedAt); err != nil {
		return postgres.MapError(err, "translation", t.ID)
	}
	return nil
}

// GetByID returns a single translation or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Translation, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("history: build select: %w", err)
	}

	var rec row
	if err := pgxscan.Get(ctx, r.q, &rec, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return nil, postgres.MapError(err, "translation", id)
	}

	t := rec.toDomain()
	return &t, nil
}

// List returns translations newest first.
func (r *Repo) List(ctx context.Context, page domain.Page) ([]domain.Translation, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("history: build list: %w", err)
	}

	var recs []row
	if err := pgxscan.Select(ctx, r.q, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}

	out := make([]domain.Translation, len(recs))
	for i, rec := range recs {
		out[i] = rec.toDomain()
	}
	return out, nil
}

// Count returns the total number of stored translations.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("history: build count: %w", err)
	}

	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}

// DeleteOlderThan removes translations created before threshold and returns
// how many rows were deleted.
func (r *Repo) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := psql.Delete(table).
		Where(squirrel.Lt{"created_at": threshold}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("history: build delete: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("history: delete older than %s: %w", threshold.Format(time.RFC3339), err)
	}
	return tag.RowsAffected(), nil
}
