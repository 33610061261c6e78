package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/spanish-vocab/internal/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	buildID := uuid.MustParse("6a1f7c1e-3b0d-4c55-9d7e-2f9c0b8e4a10")
	deadlock := &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}

	tests := []struct {
		name    string
		err     error
		entity  string
		key     any
		wantIs  error
		wantMsg string
	}{
		{
			name: "no rows", err: pgx.ErrNoRows, entity: "catalog_word", key: 42,
			wantIs: domain.ErrNotFound, wantMsg: "catalog_word 42: not found",
		},
		{
			name: "wrapped no rows", err: fmt.Errorf("scan row: %w", pgx.ErrNoRows), entity: "catalog_build", key: buildID,
			wantIs: domain.ErrNotFound, wantMsg: "catalog_build 6a1f7c1e-3b0d-4c55-9d7e-2f9c0b8e4a10: not found",
		},
		{
			name: "duplicate frequency rank", err: &pgconn.PgError{Code: "23505"}, entity: "catalog_word", key: 7,
			wantIs: domain.ErrAlreadyExists, wantMsg: "catalog_word 7: already exists",
		},
		{
			name: "unknown build", err: &pgconn.PgError{Code: "23503"}, entity: "catalog_word", key: 7,
			wantIs: domain.ErrNotFound,
		},
		{
			name: "rank check", err: fmt.Errorf("batch: %w", &pgconn.PgError{Code: "23514"}), entity: "catalog_word", key: 7,
			wantIs: domain.ErrValidation,
		},
		{
			name: "other pg error", err: deadlock, entity: "catalog_build", key: buildID,
			wantIs: deadlock,
		},
		{
			name: "deadline", err: context.DeadlineExceeded, entity: "catalog_word", key: 1,
			wantIs: context.DeadlineExceeded, wantMsg: "catalog_word 1: context deadline exceeded",
		},
		{
			name: "canceled", err: fmt.Errorf("query: %w", context.Canceled), entity: "catalog_word", key: 1,
			wantIs: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tt.err, tt.entity, tt.key)
			if !errors.Is(got, tt.wantIs) {
				t.Fatalf("MapError() = %v, want it to wrap %v", got, tt.wantIs)
			}
			if tt.wantMsg != "" && got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "catalog_word", 1); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_ConstraintNotMistakenForNotFound(t *testing.T) {
	t.Parallel()

	got := MapError(&pgconn.PgError{Code: "23505"}, "catalog_build", uuid.New())
	if errors.Is(got, domain.ErrNotFound) {
		t.Errorf("unique violation must not map to ErrNotFound: %v", got)
	}
}
