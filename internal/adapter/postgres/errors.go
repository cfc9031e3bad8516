package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/arabizi-backend/internal/domain"
)

// codeErrors maps SQLSTATE codes to the domain error they represent.
var codeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23502": domain.ErrValidation,    // not_null_violation
	"23514": domain.ErrValidation,    // check_violation
	"22001": domain.ErrValidation,    // string_data_right_truncation
	"22P02": domain.ErrValidation,    // invalid_text_representation
}

// MapError wraps err with the entity and id and translates no-rows and
// known constraint failures into domain errors. Context errors and unknown
// failures keep their original cause.
func MapError(err error, entity string, id fmt.Stringer) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", entity, id, classify(err))
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := codeErrors[pgErr.Code]; ok {
			return mapped
		}
	}
	return err
}
