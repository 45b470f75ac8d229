// Package pgerr translates PostgreSQL driver errors into the errs taxonomy so
// repositories never leak driver types to the application layer.
package pgerr

import (
	"errors"

	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes the repositories react to.
const (
	UniqueViolation     = "23505" // unique_violation
	ForeignKeyViolation = "23503" // foreign_key_violation
)

// IsCode reports whether err carries the given SQLSTATE.
func IsCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// Translate maps a write error. Unique violations become a ConflictError with
// the given reason; anything else is returned unchanged.
func Translate(err error, subject, reason string) error {
	if err == nil {
		return nil
	}
	if IsCode(err, UniqueViolation) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictError(subject, reason)
	}
	return err
}

// NotFound maps gorm's missing-row error onto an ObjectNotFoundError.
func NotFound(err error, subject string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(subject, id)
	}
	return err
}
