package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/lherron/scomadm/internal/domain"
)

// ConnectionError is returned when a connection cannot be established
type ConnectionError struct {
	Dialect  Dialect
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	if code := SQLState(e.Err); code != "" {
		return fmt.Sprintf("failed to connect to %s (SQLSTATE %s): %v", e.Endpoint, code, e.Err)
	}
	return fmt.Sprintf("failed to connect to %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err came from connection acquisition
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// SQLState returns the PostgreSQL SQLSTATE code carried by err, or "".
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Classify maps driver constraint errors onto domain sentinels, keeping
// the driver error in the chain. Other errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		case "23503", "23514": // foreign_key_violation, check_violation
			return fmt.Errorf("%w: %w", domain.ErrConstraint, err)
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		default:
			return fmt.Errorf("%w: %w", domain.ErrConstraint, err)
		}
	}

	return err
}
