package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Typed store errors. Callers branch with errors.Is; everything the
// driver reports that is not one of these surfaces wrapped as unknown.
var (
	ErrNotFound            = errors.New("store: not found")
	ErrUniqueViolation     = errors.New("store: unique constraint violation")
	ErrForeignKeyViolation = errors.New("store: foreign key violation")
)

// errNoRowsAffected stands in for a zero-row UPDATE/DELETE; mapError
// resolves it to ErrNotFound like any other missing-row case.
var errNoRowsAffected = pgx.ErrNoRows

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError translates driver-level errors into the typed taxonomy so no
// store-specific text leaks past the repository layer.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrForeignKeyViolation)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
