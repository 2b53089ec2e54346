package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
	"github.com/journalsoc/journal-api/internal/service"
)

const maxProfileListLimit = 100 // Maximum number of profiles that can be requested in one call

// ProfileHandlers provides HTTP handlers for profile and role operations.
type ProfileHandlers struct {
	Svc *service.RoleService
}

// List handles HTTP requests to list profiles with pagination.
// GET /api/profiles. Admin only; the service enforces the policy.
func (h *ProfileHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxProfileListLimit)

	profiles, err := h.Svc.ListProfiles(r.Context(), service.ListProfilesInput{
		CallerID: CallerID(r.Context()),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		RenderAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"profiles": profiles,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetRoles handles HTTP requests to read a user's role set.
// GET /api/profiles/{id}/roles. Users missing from the store report the
// default role set.
func (h *ProfileHandlers) GetRoles(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("profile id is required")},
		)
		return
	}

	roles, err := h.Svc.GetRoles(r.Context(), id)
	if err != nil {
		RenderAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"user_id": id, "roles": roles.Strings()})
}

// updateRolesRequest is the payload for role replacement.
type updateRolesRequest struct {
	Roles []string `json:"roles"`
}

// UpdateRoles handles HTTP requests to replace a user's role set.
// PUT /api/profiles/{id}/roles. Admin only; admins cannot change their own roles.
func (h *ProfileHandlers) UpdateRoles(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("profile id is required")},
		)
		return
	}

	var req updateRolesRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	roles, err := domainauth.ParseRoleSet(req.Roles)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	profile, err := h.Svc.SetRoles(r.Context(), service.SetRolesInput{
		CallerID: CallerID(r.Context()),
		TargetID: id,
		Roles:    roles,
	})
	if err != nil {
		RenderAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}
