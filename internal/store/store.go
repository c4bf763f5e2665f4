// Package store runs the admin statements against the users and comments
// tables and maps result rows onto domain records.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/lherron/scomadm/internal/db"
)

// Store is the root store that provides access to table-specific stores.
type Store struct {
	db *db.DB

	Users    *UserStore
	Comments *CommentStore
}

// New creates a new Store wrapping the given database connection.
func New(database *db.DB) *Store {
	s := &Store{db: database}
	s.Users = &UserStore{store: s}
	s.Comments = &CommentStore{store: s}
	return s
}

// withTx executes fn within a transaction. If fn returns nil, the transaction
// is committed; otherwise it is rolled back.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.db.Logger().Debug("transaction committed")
	return nil
}

// execInTx runs a single write statement in its own transaction and
// returns the number of affected rows.
func (s *Store) execInTx(ctx context.Context, stmt sq.Sqlizer) (int64, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build statement: %w", err)
	}

	var affected int64
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return db.Classify(err)
		}
		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		s.db.Logger().Debug("statement executed", zap.String("query", query), zap.Int64("rows", affected))
		return nil
	})
	return affected, err
}

// query runs a read statement and hands each row to scan along with the
// result's column types.
func (s *Store) query(ctx context.Context, stmt sq.Sqlizer, scan func(*sql.Rows, []*sql.ColumnType) error) error {
	query, args, err := stmt.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.ColumnTypes()
	if err != nil {
		return fmt.Errorf("failed to read column types: %w", err)
	}

	n := 0
	for rows.Next() {
		if err := scan(rows, cols); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	s.db.Logger().Debug("query executed", zap.String("query", query), zap.Int("rows", n))
	return nil
}

// naiveColumn reports whether the named column holds timestamps without
// a time zone. Unknown columns count as zoned.
func naiveColumn(cols []*sql.ColumnType, name string) bool {
	for _, c := range cols {
		if c.Name() == name {
			return isNaiveTimestampType(c.DatabaseTypeName())
		}
	}
	return false
}

// isNaiveTimestampType matches the type names pgx reports for timestamp
// (TIMESTAMP) and the declared types SQLite reports for its date columns.
func isNaiveTimestampType(typeName string) bool {
	switch strings.ToUpper(strings.TrimSpace(typeName)) {
	case "TIMESTAMP", "TIMESTAMP WITHOUT TIME ZONE", "DATETIME", "DATE":
		return true
	default:
		return false
	}
}
