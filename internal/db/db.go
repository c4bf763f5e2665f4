package db

import (
	"context"
	"database/sql"
	"net/url"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/lherron/scomadm/internal/config"
	"github.com/lherron/scomadm/internal/logging"
)

// Dialect identifies the SQL flavour behind a DSN
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DB wraps a single database connection
type DB struct {
	*sql.DB
	dialect  Dialect
	endpoint string
	log      *zap.Logger
	closed   bool
}

// ParseDSN picks the dialect for dsn and returns the driver name and the
// data source string that driver expects.
//
// sqlite://path, sqlite:path, file: URIs and :memory: select SQLite.
// Everything else, URL or keyword/value form, is handed to pgx.
func ParseDSN(dsn string) (Dialect, string, string) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return DialectSQLite, "sqlite3", strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "sqlite:"):
		return DialectSQLite, "sqlite3", strings.TrimPrefix(dsn, "sqlite:")
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return DialectSQLite, "sqlite3", dsn
	default:
		return DialectPostgres, "pgx", dsn
	}
}

// Open opens exactly one connection to the database described by cfg and
// verifies it with a ping. Every failure is returned as a *ConnectionError.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = logging.Discard()
	}

	dialect, driver, source := ParseDSN(cfg.DSN)
	endpoint := redact(cfg.DSN)
	log.Debug("opening database", zap.String("dialect", string(dialect)), zap.String("endpoint", endpoint))

	sqlDB, err := sql.Open(driver, source)
	if err != nil {
		return nil, &ConnectionError{Dialect: dialect, Endpoint: endpoint, Err: err}
	}

	// One connection for the whole process, never a pool.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, &ConnectionError{Dialect: dialect, Endpoint: endpoint, Err: err}
	}

	log.Info("connection opened", zap.String("dialect", string(dialect)), zap.String("endpoint", endpoint))
	return &DB{DB: sqlDB, dialect: dialect, endpoint: endpoint, log: log}, nil
}

// Dialect returns the dialect selected from the DSN
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Endpoint returns the DSN with any password removed
func (db *DB) Endpoint() string {
	return db.endpoint
}

// Logger returns the logger the connection was opened with
func (db *DB) Logger() *zap.Logger {
	return db.log
}

// Builder returns a statement builder using the dialect's placeholders
func (db *DB) Builder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Close closes the connection. Safe to call multiple times.
func (db *DB) Close() error {
	if db == nil || db.closed {
		return nil
	}
	db.closed = true
	err := db.DB.Close()
	db.log.Debug("connection closed", zap.String("endpoint", db.endpoint))
	return err
}

// redact strips the password from URL-style DSNs for logs and error text.
// Keyword/value DSNs are reduced to their host and dbname pairs.
func redact(dsn string) string {
	if strings.Contains(dsn, "://") {
		if u, err := url.Parse(dsn); err == nil {
			return u.Redacted()
		}
		return "<unparseable dsn>"
	}
	if strings.Contains(dsn, "=") {
		var kept []string
		for _, field := range strings.Fields(dsn) {
			if strings.HasPrefix(field, "host=") || strings.HasPrefix(field, "port=") || strings.HasPrefix(field, "dbname=") {
				kept = append(kept, field)
			}
		}
		return strings.Join(kept, " ")
	}
	return dsn
}
