package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

// pgCodeErrors maps the constraint violations the catalog schema can raise.
var pgCodeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
}

// MapError converts pgx errors to domain errors and prefixes them with the
// entity and key, as in "catalog_word 42: not found". Context errors and
// unknown errors are wrapped unchanged.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	mapped := err
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		// passed through
	case pgxscan.NotFound(err):
		mapped = domain.ErrNotFound
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if derr, ok := pgCodeErrors[pgErr.Code]; ok {
				mapped = derr
			}
		}
	}

	return fmt.Errorf("%s %v: %w", entity, key, mapped)
}
