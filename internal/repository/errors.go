package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate resource")
	// ErrConditionFailed means a guarded UPDATE matched no rows
	// (stock below the requested quantity, session no longer OPEN, …).
	ErrConditionFailed = errors.New("update condition not met")
)

const pgUniqueViolation = "23505"

// uniqueConstraint returns the violated constraint name when err is a
// Postgres unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// translate maps driver-level errors onto the package sentinels.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	if constraint, ok := uniqueConstraint(err); ok {
		return &DuplicateError{Constraint: constraint, Err: err}
	}
	return fmt.Errorf("%s: %w", what, err)
}

// DuplicateError carries the violated constraint so callers can tell
// "session already open" apart from other uniqueness conflicts.
type DuplicateError struct {
	Constraint string
	Err        error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate on %s: %v", e.Constraint, e.Err)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

func (e *DuplicateError) Unwrap() error { return e.Err }
