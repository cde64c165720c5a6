package e_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"sosAlert/pkg/e"
)

func TestWrapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), e.ErrDeadline},
		{"canceled", context.Canceled, e.ErrCanceled},
		{"unique", &pgconn.PgError{Code: "23505"}, e.ErrUniqueViolation},
		{"bad uuid text", &pgconn.PgError{Code: "22P02"}, e.ErrInvalidInput},
		{"other pg", &pgconn.PgError{Code: "57P01"}, e.ErrInternal},
		{"no rows", pgx.ErrNoRows, e.ErrNotFound},
		{"unknown", errors.New("boom"), e.ErrInternal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := e.WrapError(context.Background(), "op", tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	t.Parallel()

	if err := e.WrapError(context.Background(), "op", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
