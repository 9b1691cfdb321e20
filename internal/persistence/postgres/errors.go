package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"example.com/fittrack/internal/domain"
)

// SQLSTATE class 23 constraint codes.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// mapError translates driver failures into the domain error taxonomy.
// Constraint violations keep their meaning; everything else collapses into
// ErrStorage so callers never see driver internals.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidReference, pgErr.ConstraintName)
		case codeCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidValue, pgErr.ConstraintName)
		}
	}

	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}
