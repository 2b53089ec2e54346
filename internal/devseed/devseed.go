// Package devseed populates a development database with profiles and posts
// so a freshly started instance has something to moderate. It is only wired
// up in dev mode and every write is idempotent, so repeated restarts do not
// multiply rows.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/journalsoc/journal-api/internal/data"
	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
	"github.com/journalsoc/journal-api/internal/domain/model"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB       *sql.DB
	profiles *data.ProfileRepo
	posts    *data.PostRepo
}

// NewServices constructs the repositories used for seeding against the provided DB.
func NewServices(db *sql.DB) Services {
	return Services{
		DB:       db,
		profiles: data.NewProfileRepo(db),
		posts:    data.NewPostRepo(db),
	}
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := seedProfiles(ctx, svcs.profiles, logger)
	if err := seedPosts(ctx, svcs.posts, logger); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedProfiles(ctx context.Context, repo *data.ProfileRepo, logger *slog.Logger) int {
	failures := 0
	profiles := []*model.UpsertProfileRequest{
		{
			ID:    "dev-admin",
			Email: "admin@dev.local",
			Roles: domainauth.RoleSet{domainauth.RoleAdmin, domainauth.RoleUser},
		},
		{
			ID:    "dev-writer",
			Email: "writer@dev.local",
			Roles: domainauth.RoleSet{domainauth.RoleWriter, domainauth.RoleUser},
		},
		{
			ID:    "dev-reader",
			Email: "reader@dev.local",
			Roles: domainauth.DefaultRoleSet(),
		},
	}

	for _, req := range profiles {
		if _, err := repo.Upsert(ctx, req); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed profile", "id", req.ID, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			logger.InfoContext(ctx, "seeded profile", "id", req.ID, "roles", req.Roles.Strings())
		}
	}

	return failures
}

// seedPosts inserts sample posts only when the database holds none, keeping
// restarts from stacking duplicates.
func seedPosts(ctx context.Context, repo *data.PostRepo, logger *slog.Logger) error {
	for _, reviewed := range []bool{false, true} {
		existing, err := repo.ListByReviewed(ctx, reviewed)
		if err != nil {
			return fmt.Errorf("check existing posts: %w", err)
		}
		if len(existing) > 0 {
			if logger != nil {
				logger.InfoContext(ctx, "posts already present, skipping post seed")
			}
			return nil
		}
	}

	posts := []*model.Post{
		{
			Title:    "Welcome to the journal",
			Content:  "This post was approved before you arrived. Publish something of your own.",
			AuthorID: "dev-writer",
		},
		{
			Title:    "A draft awaiting review",
			Content:  "An admin needs to approve this one from the review queue.",
			AuthorID: "dev-writer",
		},
	}

	for i, post := range posts {
		created, err := repo.Create(ctx, post)
		if err != nil {
			return fmt.Errorf("seed post %q: %w", post.Title, err)
		}
		// First post goes straight to published so the public listing is not empty.
		if i == 0 {
			if _, err := repo.MarkReviewed(ctx, created.ID); err != nil {
				return fmt.Errorf("approve seeded post %q: %w", post.Title, err)
			}
		}
		if logger != nil {
			logger.InfoContext(ctx, "seeded post", "id", created.ID, "title", post.Title)
		}
	}

	return nil
}
