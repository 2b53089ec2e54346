package service

import (
	"context"
	"fmt"
	"log/slog"

	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
	"github.com/journalsoc/journal-api/internal/domain/model"
	"github.com/journalsoc/journal-api/internal/domain/policy"
	apperrors "github.com/journalsoc/journal-api/internal/errors"

	"github.com/journalsoc/journal-api/internal/core"
)

// ReviewNotifier receives a best-effort notification after a post first
// transitions to reviewed. Failures are logged by the caller, never surfaced
// to the approver.
type ReviewNotifier interface {
	NotifyApproved(ctx context.Context, post *model.Post) error
}

// ModerationServiceOptions groups dependencies for ModerationService.
type ModerationServiceOptions struct {
	Posts    core.PostRepository
	Profiles core.ProfileRepository
	Notifier ReviewNotifier // optional
	Logger   *slog.Logger   // optional
}

// ModerationService orchestrates post creation, the review queue, and
// approval transitions. Authorization is checked against the profile store
// on every call; the caller identity is always passed in explicitly, never
// read from ambient state.
type ModerationService struct {
	posts    core.PostRepository
	profiles core.ProfileRepository
	notifier ReviewNotifier
	logger   *slog.Logger
}

// NewModerationService constructs a new ModerationService.
func NewModerationService(opts ModerationServiceOptions) *ModerationService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ModerationService{
		posts:    opts.Posts,
		profiles: opts.Profiles,
		notifier: opts.Notifier,
		logger:   logger,
	}
}

// CreatePost creates a new unreviewed post authored by authorID.
// Requires the writer or admin role.
func (s *ModerationService) CreatePost(
	ctx context.Context,
	authorID string,
	req *model.CreatePostRequest,
) (*model.Post, error) {
	if authorID == "" {
		return nil, apperrors.Validation("author id is required")
	}
	if req == nil {
		return nil, apperrors.Validation("create post request is required")
	}

	roles, err := s.rolesFor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("resolve author roles: %w", err)
	}
	if !policy.Can(roles, policy.ActionCreatePost) {
		return nil, apperrors.Unauthorized("creating posts requires the writer or admin role")
	}

	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	post, err := s.posts.Create(ctx, &model.Post{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   authorID,
		IsReviewed: false,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// ListUnreviewed returns the review queue, newest first. Admin only.
func (s *ModerationService) ListUnreviewed(ctx context.Context, callerID string) ([]*model.Post, error) {
	roles, err := s.rolesFor(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("resolve caller roles: %w", err)
	}
	if !policy.Can(roles, policy.ActionListUnreviewedPosts) {
		return nil, apperrors.Unauthorized("listing unreviewed posts requires the admin role")
	}

	posts, err := s.posts.ListByReviewed(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list unreviewed posts: %w", err)
	}
	return posts, nil
}

// ApprovePost transitions a post to reviewed. Admin only. Approving a post
// that is already reviewed is a successful no-op, which makes concurrent
// double approvals safe without locking.
func (s *ModerationService) ApprovePost(ctx context.Context, callerID, postID string) error {
	if postID == "" {
		return apperrors.Validation("post id is required")
	}

	roles, err := s.rolesFor(ctx, callerID)
	if err != nil {
		return fmt.Errorf("resolve caller roles: %w", err)
	}
	if !policy.Can(roles, policy.ActionApprovePost) {
		return apperrors.Unauthorized("approving posts requires the admin role")
	}

	transitioned, err := s.posts.MarkReviewed(ctx, postID)
	if err != nil {
		return fmt.Errorf("approve post %s: %w", postID, err)
	}
	if transitioned {
		s.notifyApproved(ctx, postID)
	}
	return nil
}

// ListPublished returns reviewed posts, newest first. No authorization
// required; published posts are visible to everyone.
func (s *ModerationService) ListPublished(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.posts.ListByReviewed(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

// ResolveAuthors maps each distinct author id in posts to a displayable
// label (the profile email). Resolution is best-effort: a failed or missing
// lookup degrades to the sentinel label for the affected entries only and
// never fails the listing.
func (s *ModerationService) ResolveAuthors(ctx context.Context, posts []*model.Post) map[string]string {
	labels := make(map[string]string, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, seen := labels[p.AuthorID]; !seen {
			labels[p.AuthorID] = model.UnknownAuthorLabel
			ids = append(ids, p.AuthorID)
		}
	}
	if len(ids) == 0 {
		return labels
	}

	profiles, err := s.profiles.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.WarnContext(ctx, "author resolution failed, using sentinel labels",
			"authors", len(ids), "error", err)
		return labels
	}
	for id, profile := range profiles {
		if profile.Email != "" {
			labels[id] = profile.Email
		}
	}
	return labels
}

// rolesFor reads the caller's current role set from the profile store.
// Absence of a profile record grants no elevated privilege.
func (s *ModerationService) rolesFor(ctx context.Context, userID string) (domainauth.RoleSet, error) {
	if userID == "" {
		return domainauth.RoleSet{}, nil
	}
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return domainauth.DefaultRoleSet(), nil
		}
		return nil, err
	}
	return profile.Roles, nil
}

func (s *ModerationService) notifyApproved(ctx context.Context, postID string) {
	if s.notifier == nil {
		return
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		s.logger.WarnContext(ctx, "load approved post for notification failed",
			"post_id", postID, "error", err)
		return
	}
	if err := s.notifier.NotifyApproved(ctx, post); err != nil {
		s.logger.WarnContext(ctx, "review notification failed",
			"post_id", postID, "error", err)
	}
}
