package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/journalsoc/journal-api/internal/errors"

	"github.com/journalsoc/journal-api/internal/data/pgxutil"
	"github.com/journalsoc/journal-api/internal/domain/model"
)

// PostRepo provides database operations for journal posts.
type PostRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPostRepo creates a new PostRepo instance with the given database connection.
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// NewPostRepoWithTimeProvider creates a PostRepo with a custom TimeProvider (useful for testing).
func NewPostRepoWithTimeProvider(db *sql.DB, timeProvider TimeProvider) *PostRepo {
	return &PostRepo{
		DB:           db,
		timeProvider: timeProvider,
	}
}

// Create inserts a new post in the unreviewed state. The ID and timestamps
// are assigned here, never taken from the caller.
func (r *PostRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	if post == nil {
		return nil, errors.New("post is required")
	}

	id := uuid.NewString()
	now := r.timeProvider.Now().UTC()

	var out model.Post
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, postInsertQuery, id, post.Title, post.Content, post.AuthorID, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Post])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", apperrors.MapDBError(err))
	}

	return &out, nil
}

// GetByID retrieves a post by its ID.
func (r *PostRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, postGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		post, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Post])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("post %q not found", id)
		}
		return nil, fmt.Errorf("failed to get post: %w", apperrors.MapDBError(err))
	}
	return &post, nil
}

// ListByReviewed retrieves posts in the given review state, newest first.
// The seq tie-break keeps posts created within the same instant in
// insertion order.
func (r *PostRepo) ListByReviewed(ctx context.Context, reviewed bool) ([]*model.Post, error) {
	var posts []model.Post
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, postListByReviewedQuery, reviewed)
		if err != nil {
			return err
		}
		defer rows.Close()
		posts, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Post])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", apperrors.MapDBError(err))
	}

	result := make([]*model.Post, len(posts))
	for i := range posts {
		result[i] = &posts[i]
	}
	return result, nil
}

// MarkReviewed transitions a post to the reviewed state. The conditional
// UPDATE makes concurrent approvals race-free: exactly one caller observes
// the transition, everyone else sees an already-reviewed row.
func (r *PostRepo) MarkReviewed(ctx context.Context, id string) (bool, error) {
	now := r.timeProvider.Now().UTC()

	var transitioned bool
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			ct, err := tx.Exec(ctx, postMarkReviewedQuery, id, now)
			if err != nil {
				return err
			}
			if ct.RowsAffected() > 0 {
				transitioned = true
				return nil
			}

			// No row changed: either the post is already reviewed or it
			// does not exist. Distinguish the two for the caller.
			var exists bool
			if err := tx.QueryRow(ctx, postExistsQuery, id).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return pgx.ErrNoRows
			}
			transitioned = false
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.NotFoundf("post %q not found", id)
		}
		return false, fmt.Errorf("failed to mark post reviewed: %w", apperrors.MapDBError(err))
	}
	return transitioned, nil
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	postInsertQuery = `
		INSERT INTO posts (id, title, content, author_id, is_reviewed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $5)
		RETURNING id, title, content, author_id, is_reviewed, created_at, updated_at`

	postGetByIDQuery = `
		SELECT id, title, content, author_id, is_reviewed, created_at, updated_at
		FROM posts
		WHERE id = $1`

	postListByReviewedQuery = `
		SELECT id, title, content, author_id, is_reviewed, created_at, updated_at
		FROM posts
		WHERE is_reviewed = $1
		ORDER BY created_at DESC, seq ASC`

	postMarkReviewedQuery = `
		UPDATE posts
		SET is_reviewed = TRUE, updated_at = $2
		WHERE id = $1 AND NOT is_reviewed`

	postExistsQuery = `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`
)
