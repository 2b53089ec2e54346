package core

import (
	"context"

	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
	"github.com/journalsoc/journal-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	// Create inserts a new post. ID and timestamps are assigned by the repository.
	Create(ctx context.Context, post *model.Post) (*model.Post, error)

	// GetByID retrieves a post by its ID.
	GetByID(ctx context.Context, id string) (*model.Post, error)

	// ListByReviewed returns posts filtered by review state, ordered by
	// created_at descending with insertion order breaking ties.
	ListByReviewed(ctx context.Context, reviewed bool) ([]*model.Post, error)

	// MarkReviewed flips is_reviewed from false to true and bumps updated_at.
	// Returns true when the row transitioned, false when it was already
	// reviewed. A missing id is an error.
	MarkReviewed(ctx context.Context, id string) (bool, error)
}

// ProfileRepository defines the interface for profile (role record) data operations.
type ProfileRepository interface {
	// GetByID retrieves a profile by user id.
	GetByID(ctx context.Context, id string) (*model.Profile, error)

	// ListByIDs retrieves multiple profiles in one batch. Missing ids are
	// simply absent from the result map, not an error.
	ListByIDs(ctx context.Context, ids []string) (map[string]*model.Profile, error)

	// List returns profiles ordered by created_at descending.
	List(ctx context.Context, limit, offset int) ([]*model.Profile, error)

	// Upsert creates the profile if absent and refreshes the email if present.
	// Roles are only written on first insert; later logins never overwrite an
	// admin-managed role set.
	Upsert(ctx context.Context, req *model.UpsertProfileRequest) (*model.Profile, error)

	// UpdateRoles replaces the role set and bumps updated_at, returning the
	// stored row so callers re-read instead of trusting an optimistic copy.
	UpdateRoles(ctx context.Context, id string, roles domainauth.RoleSet) (*model.Profile, error)
}
