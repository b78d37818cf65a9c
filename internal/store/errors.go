package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a
// uniqueness constraint. Relying on the database constraint, rather
// than a check-then-insert, keeps concurrent duplicates down to
// exactly one winner.
var ErrConflict = errors.New("conflict")

const pqUniqueViolation = "23505"

// translateError maps driver-level errors onto the store sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ErrConflict
	}
	return err
}
