package domain

import (
	"errors"
	"time"
)

// Role is the access role stored in users.role
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is one row of the users table
type User struct {
	ID        string    `json:"id" yaml:"id" db:"id"`
	Username  string    `json:"username" yaml:"username" db:"username"`
	Email     string    `json:"email" yaml:"email" db:"email"`
	Role      Role      `json:"role" yaml:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at" db:"created_at"`

	// CreatedAtNaive is set when created_at comes from a column without a
	// time zone.
	CreatedAtNaive bool `json:"-" yaml:"-" db:"-"`
}

// Comment is one row of the comments table
type Comment struct {
	ID        string    `json:"id" yaml:"id" db:"id"`
	Author    string    `json:"author" yaml:"author" db:"author"`
	Message   string    `json:"message" yaml:"message" db:"message"`
	PageSlug  string    `json:"page_slug,omitempty" yaml:"page_slug,omitempty" db:"page_slug"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at" db:"created_at"`

	CreatedAtNaive bool `json:"-" yaml:"-" db:"-"`
}

// Outcome describes what a single-row mutation did
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeNotFound Outcome = "not_found"
)

// OutcomeFromRows maps an affected-row count to an Outcome.
// Any positive count counts as applied since username is unique.
func OutcomeFromRows(n int64) Outcome {
	if n > 0 {
		return OutcomeApplied
	}
	return OutcomeNotFound
}

// MutationResult is returned by delete and promote operations.
// A not-found result is a normal outcome, not an error.
type MutationResult struct {
	Username string
	Outcome  Outcome
}

// Found reports whether the target row existed
func (r MutationResult) Found() bool {
	return r.Outcome == OutcomeApplied
}

var (
	// ErrConflict is returned when a statement violates a uniqueness constraint
	ErrConflict = errors.New("conflict")
	// ErrConstraint is returned for foreign key and check violations
	ErrConstraint = errors.New("constraint violation")
)

const (
	timestampLayout      = "2006-01-02 15:04:05"
	timestampLayoutMicro = "2006-01-02 15:04:05.000000"
	timestampOffset      = "-07:00"
)

// FormatTimestamp renders a created_at value for listings. Microseconds
// are printed as six digits and omitted entirely when zero. The UTC
// offset is appended unless naive is set.
func FormatTimestamp(t time.Time, naive bool) string {
	layout := timestampLayoutMicro
	if t.Nanosecond()/1000 == 0 {
		layout = timestampLayout
	}
	if !naive {
		layout += timestampOffset
	}
	return t.Format(layout)
}
