package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/lherron/scomadm/internal/domain"
)

// UserStore handles reads and writes on the users table.
type UserStore struct {
	store *Store
}

// List returns every user, oldest first.
func (us *UserStore) List(ctx context.Context) ([]domain.User, error) {
	stmt := us.store.db.Builder().
		Select("id", "username", "email", "role", "created_at").
		From("users").
		OrderBy("created_at")

	users := []domain.User{}
	err := us.store.query(ctx, stmt, func(rows *sql.Rows, cols []*sql.ColumnType) error {
		u, err := scanUser(rows, naiveColumn(cols, "created_at"))
		if err != nil {
			return err
		}
		users = append(users, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Delete removes the user with the given username. A missing user is
// reported through the result outcome and the transaction still commits.
func (us *UserStore) Delete(ctx context.Context, username string) (domain.MutationResult, error) {
	stmt := us.store.db.Builder().
		Delete("users").
		Where(sq.Eq{"username": username})

	affected, err := us.store.execInTx(ctx, stmt)
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("failed to delete user %q: %w", username, err)
	}
	return domain.MutationResult{Username: username, Outcome: domain.OutcomeFromRows(affected)}, nil
}

// Promote sets the role of the given user to admin. Promoting a user who
// is already admin still counts as applied.
func (us *UserStore) Promote(ctx context.Context, username string) (domain.MutationResult, error) {
	stmt := us.store.db.Builder().
		Update("users").
		Set("role", string(domain.RoleAdmin)).
		Where(sq.Eq{"username": username})

	affected, err := us.store.execInTx(ctx, stmt)
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("failed to promote user %q: %w", username, err)
	}
	return domain.MutationResult{Username: username, Outcome: domain.OutcomeFromRows(affected)}, nil
}

func scanUser(rows *sql.Rows, naive bool) (domain.User, error) {
	var (
		id, username, email, role string
		createdAt                 time.Time
	)
	if err := rows.Scan(&id, &username, &email, &role, &createdAt); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:        id,
		Username:  username,
		Email:     email,
		Role:      domain.Role(role),
		CreatedAt: createdAt,

		CreatedAtNaive: naive,
	}, nil
}
