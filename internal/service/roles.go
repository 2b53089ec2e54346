package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/journalsoc/journal-api/internal/core"
	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
	"github.com/journalsoc/journal-api/internal/domain/model"
	"github.com/journalsoc/journal-api/internal/domain/policy"
	apperrors "github.com/journalsoc/journal-api/internal/errors"
)

// RoleServiceOptions groups dependencies for RoleService.
type RoleServiceOptions struct {
	Profiles core.ProfileRepository
	Logger   *slog.Logger // optional
}

// RoleService is the role store facade: it answers role lookups with a
// default-deny posture and guards role mutation behind the policy table.
type RoleService struct {
	profiles core.ProfileRepository
	logger   *slog.Logger
}

// NewRoleService constructs a new RoleService.
func NewRoleService(opts RoleServiceOptions) *RoleService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RoleService{profiles: opts.Profiles, logger: logger}
}

// GetRoles returns the role set for userID. A user with no profile record
// holds exactly the user role.
func (s *RoleService) GetRoles(ctx context.Context, userID string) (domainauth.RoleSet, error) {
	if userID == "" {
		return nil, apperrors.Validation("user id is required")
	}
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return domainauth.DefaultRoleSet(), nil
		}
		return nil, fmt.Errorf("get roles for %s: %w", userID, err)
	}
	return profile.Roles, nil
}

// SetRolesInput groups parameters for SetRoles.
type SetRolesInput struct {
	CallerID string
	TargetID string
	Roles    domainauth.RoleSet
}

// SetRoles replaces the target user's role set. Requires the admin role and
// forbids self-modification. Returns the profile as re-read from the store
// so the caller synchronizes to ground truth rather than an optimistic copy.
func (s *RoleService) SetRoles(ctx context.Context, input SetRolesInput) (*model.Profile, error) {
	if input.TargetID == "" {
		return nil, apperrors.Validation("target user id is required")
	}

	callerRoles, err := s.GetRoles(ctx, input.CallerID)
	if err != nil {
		return nil, fmt.Errorf("resolve caller roles: %w", err)
	}
	if !policy.CanManageRoles(callerRoles, input.CallerID, input.TargetID) {
		return nil, apperrors.Unauthorized("managing roles requires the admin role and a target other than yourself")
	}

	if err := input.Roles.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	profile, err := s.profiles.UpdateRoles(ctx, input.TargetID, input.Roles.Normalize())
	if err != nil {
		return nil, fmt.Errorf("update roles for %s: %w", input.TargetID, err)
	}
	return profile, nil
}

// ListProfiles returns profiles newest first for the admin management view.
func (s *RoleService) ListProfiles(ctx context.Context, input ListProfilesInput) ([]*model.Profile, error) {
	callerRoles, err := s.GetRoles(ctx, input.CallerID)
	if err != nil {
		return nil, fmt.Errorf("resolve caller roles: %w", err)
	}
	if !policy.Can(callerRoles, policy.ActionManageRoles) {
		return nil, apperrors.Unauthorized("listing profiles requires the admin role")
	}

	profiles, err := s.profiles.List(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// ListProfilesInput groups parameters for ListProfiles.
type ListProfilesInput struct {
	CallerID string
	Limit    int
	Offset   int
}

// EnsureProfile idempotently records the identity in the profile store,
// granting initialRoles only when the profile does not exist yet. Used at
// login so authorization checks have a row to read.
func (s *RoleService) EnsureProfile(
	ctx context.Context,
	identity domainauth.Identity,
	initialRoles domainauth.RoleSet,
) (*model.Profile, error) {
	req := &model.UpsertProfileRequest{
		ID:    identity.UserID,
		Email: identity.Email,
		Roles: initialRoles.Normalize(),
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	profile, err := s.profiles.Upsert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("ensure profile for %s: %w", identity.UserID, err)
	}
	return profile, nil
}
