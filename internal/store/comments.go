package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/lherron/scomadm/internal/domain"
)

// RecentCommentLimit caps how many comments ListBySlug returns
const RecentCommentLimit = 20

// CommentStore reads the comments table.
type CommentStore struct {
	store *Store
}

// ListBySlug returns the most recent comments on a page, newest first.
func (cs *CommentStore) ListBySlug(ctx context.Context, slug string) ([]domain.Comment, error) {
	stmt := cs.store.db.Builder().
		Select("id", "author", "message", "created_at").
		From("comments").
		Where(sq.Eq{"page_slug": slug}).
		OrderBy("created_at DESC").
		Limit(RecentCommentLimit)

	comments := []domain.Comment{}
	err := cs.store.query(ctx, stmt, func(rows *sql.Rows, cols []*sql.ColumnType) error {
		c, err := scanComment(rows, naiveColumn(cols, "created_at"))
		if err != nil {
			return err
		}
		c.PageSlug = slug
		comments = append(comments, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for %q: %w", slug, err)
	}
	return comments, nil
}

func scanComment(rows *sql.Rows, naive bool) (domain.Comment, error) {
	var (
		id, author, message string
		createdAt           time.Time
	)
	if err := rows.Scan(&id, &author, &message, &createdAt); err != nil {
		return domain.Comment{}, err
	}
	return domain.Comment{
		ID:        id,
		Author:    author,
		Message:   message,
		CreatedAt: createdAt,

		CreatedAtNaive: naive,
	}, nil
}
