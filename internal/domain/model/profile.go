package model

import (
	"errors"
	"strings"
	"time"

	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
)

// Profile is the role record for a user. Identity (id, email) is owned by the
// identity provider; this service only reads it. Roles are the source of truth
// for authorization checks and are mutated exclusively through UpdateRoles.
type Profile struct {
	ID        string             `json:"id"         db:"id"`
	Email     string             `json:"email"      db:"email"`
	Roles     domainauth.RoleSet `json:"roles"      db:"roles"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" db:"updated_at"`
}

// UpsertProfileRequest represents the idempotent profile write performed at login.
type UpsertProfileRequest struct {
	ID    string             `json:"id"`
	Email string             `json:"email"`
	Roles domainauth.RoleSet `json:"roles"`
}

// Validate validates the UpsertProfileRequest fields.
func (r *UpsertProfileRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("profile id is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("profile email is required")
	}
	return r.Roles.Validate()
}

// UpdateRolesRequest represents an admin-initiated role change for a user.
type UpdateRolesRequest struct {
	Roles domainauth.RoleSet `json:"roles"`
}

// Validate validates the UpdateRolesRequest fields. A role set that omits
// the user role is malformed input, not a policy denial.
func (r *UpdateRolesRequest) Validate() error {
	return r.Roles.Validate()
}

// UnknownAuthorLabel is the sentinel shown when an author's profile cannot
// be resolved. Resolution failures degrade to this label per entry rather
// than failing the listing.
const UnknownAuthorLabel = "Unknown Author"
