package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lherron/scomadm/internal/config"
	"github.com/lherron/scomadm/internal/db"
)

// Schema mirrors the users and comments tables of the SCOM database
// closely enough for the admin statements to run against SQLite.
const Schema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	author TEXT NOT NULL,
	message TEXT NOT NULL,
	page_slug TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// TempDB creates a temporary SQLite database with Schema applied and
// returns it together with the DSN that reopens it.
func TempDB(t *testing.T) (*db.DB, string) {
	t.Helper()

	dsn := "sqlite://" + filepath.Join(t.TempDir(), "scom.db")

	database, err := db.Open(context.Background(), config.DatabaseConfig{DSN: dsn}, nil)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})

	if _, err := database.Exec(Schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return database, dsn
}

// InsertUser adds a user row. createdAt uses the "2006-01-02 15:04:05" form.
func InsertUser(t *testing.T, database *db.DB, username, email, role, createdAt string) {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO users (username, email, role, created_at) VALUES (?, ?, ?, ?)`,
		username, email, role, createdAt,
	)
	if err != nil {
		t.Fatalf("Failed to insert user %s: %v", username, err)
	}
}

// InsertComment adds a comment row. createdAt uses the "2006-01-02 15:04:05" form.
func InsertComment(t *testing.T, database *db.DB, author, message, slug, createdAt string) {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO comments (author, message, page_slug, created_at) VALUES (?, ?, ?, ?)`,
		author, message, slug, createdAt,
	)
	if err != nil {
		t.Fatalf("Failed to insert comment by %s: %v", author, err)
	}
}

// CountUsers returns the number of rows in users
func CountUsers(t *testing.T, database *db.DB) int {
	t.Helper()
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	return n
}

// UserRole returns the stored role for username
func UserRole(t *testing.T, database *db.DB, username string) string {
	t.Helper()
	var role string
	if err := database.QueryRow(`SELECT role FROM users WHERE username = ?`, username).Scan(&role); err != nil {
		t.Fatalf("Failed to read role of %s: %v", username, err)
	}
	return role
}
