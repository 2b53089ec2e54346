// Package httpx provides HTTP handlers and utilities for the journal API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/journalsoc/journal-api/internal/domain/model"
	"github.com/journalsoc/journal-api/internal/service"
)

// PostHandlers provides HTTP handlers for post and moderation operations.
type PostHandlers struct {
	Svc *service.ModerationService
}

// Create handles HTTP requests to create a new post.
// POST /api/posts.
func (h *PostHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.Svc.CreatePost(r.Context(), CallerID(r.Context()), &req)
	if err != nil {
		RenderAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, post)
}

// ListPublished handles HTTP requests to list reviewed posts with author labels.
// GET /api/posts. No authentication required.
func (h *PostHandlers) ListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Svc.ListPublished(r.Context())
	if err != nil {
		RenderAppError(w, err)
		return
	}

	labels := h.Svc.ResolveAuthors(r.Context(), posts)
	views := make([]*model.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, &model.PostView{Post: *p, AuthorLabel: labels[p.AuthorID]})
	}

	WriteJSON(w, http.StatusOK, map[string]any{"posts": views})
}

// ListUnreviewed handles HTTP requests to list the review queue with author
// labels. GET /api/posts/review. Admin only; the service enforces the policy.
func (h *PostHandlers) ListUnreviewed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Svc.ListUnreviewed(r.Context(), CallerID(r.Context()))
	if err != nil {
		RenderAppError(w, err)
		return
	}

	labels := h.Svc.ResolveAuthors(r.Context(), posts)
	views := make([]*model.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, &model.PostView{Post: *p, AuthorLabel: labels[p.AuthorID]})
	}

	WriteJSON(w, http.StatusOK, map[string]any{"posts": views})
}

// Approve handles HTTP requests to approve a post for publication.
// POST /api/posts/{id}/approve. Approving an already-reviewed post succeeds
// without changing anything.
func (h *PostHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("post id is required")},
		)
		return
	}

	if err := h.Svc.ApprovePost(r.Context(), CallerID(r.Context()), id); err != nil {
		RenderAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"approved": true})
}
