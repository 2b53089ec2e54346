package auth

// Package auth contains domain-level types for identity, roles, and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Role represents an application authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWriter Role = "writer"
	RoleUser   Role = "user"
)

// ParseRole converts a string to a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleWriter:
		return RoleWriter, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// RoleSet is the set of roles assigned to a user. Every valid RoleSet
// contains RoleUser; Normalize enforces that invariant.
type RoleSet []Role

// DefaultRoleSet returns the roles granted when no profile record exists.
// Absence of a role record grants no elevated privilege.
func DefaultRoleSet() RoleSet {
	return RoleSet{RoleUser}
}

// Contains reports whether the set includes the given role.
func (rs RoleSet) Contains(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Normalize deduplicates the set, guarantees RoleUser membership, and
// returns a sorted copy so equal sets compare equal.
func (rs RoleSet) Normalize() RoleSet {
	seen := make(map[Role]bool, len(rs)+1)
	out := make(RoleSet, 0, len(rs)+1)
	for _, r := range rs {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	if !seen[RoleUser] {
		out = append(out, RoleUser)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate rejects sets that omit RoleUser or contain unknown roles.
// Unlike Normalize it does not repair the set; callers that accept
// external input must surface the violation rather than mask it.
func (rs RoleSet) Validate() error {
	if !rs.Contains(RoleUser) {
		return fmt.Errorf("role set must contain %q", RoleUser)
	}
	for _, r := range rs {
		if _, err := ParseRole(string(r)); err != nil {
			return err
		}
	}
	return nil
}

// Strings returns the set as plain strings for persistence.
func (rs RoleSet) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// ParseRoleSet converts raw strings (e.g., a TEXT[] column) into a RoleSet.
func ParseRoleSet(values []string) (RoleSet, error) {
	rs := make(RoleSet, 0, len(values))
	for _, v := range values {
		role, err := ParseRole(v)
		if err != nil {
			return nil, err
		}
		rs = append(rs, role)
	}
	return rs.Normalize(), nil
}

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (e.g., sub claim)
	FirstName string
	LastName  string
	Email     string
	Groups    []string
	ExpiresAt time.Time // absolute expiry from IdP token
}

// DisplayLabel derives a human-readable label for the identity:
// full name, then first name, then the email local part, then "User".
func (id Identity) DisplayLabel() string {
	first := strings.TrimSpace(id.FirstName)
	last := strings.TrimSpace(id.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	}
	if at := strings.Index(id.Email, "@"); at > 0 {
		return id.Email[:at]
	}
	return "User"
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Roles     RoleSet   `json:"roles"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin returns true if the session carries the admin role.
func (s Session) IsAdmin() bool { return s.Roles.Contains(RoleAdmin) }
