// Package policy holds the authorization rules for the moderation workflow.
// It is a pure function of (role set, action); it performs no I/O and keeps
// every grant explicit. Admin does not inherit writer's permissions, it is
// granted the same actions independently, so this table stays the single
// source of truth.
package policy

import (
	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
)

// Action identifies an operation subject to authorization.
type Action string

const (
	ActionCreatePost          Action = "create_post"
	ActionListUnreviewedPosts Action = "list_unreviewed_posts"
	ActionApprovePost         Action = "approve_post"
	ActionListReviewedPosts   Action = "list_reviewed_posts"
	ActionManageRoles         Action = "manage_roles"
)

// Can reports whether the given role set may perform the action.
// ActionManageRoles also requires the target check in CanManageRoles;
// Can alone answers the role half of that rule.
func Can(roles domainauth.RoleSet, action Action) bool {
	switch action {
	case ActionCreatePost:
		return roles.Contains(domainauth.RoleWriter) || roles.Contains(domainauth.RoleAdmin)
	case ActionListUnreviewedPosts:
		return roles.Contains(domainauth.RoleAdmin)
	case ActionApprovePost:
		return roles.Contains(domainauth.RoleAdmin)
	case ActionListReviewedPosts:
		return true
	case ActionManageRoles:
		return roles.Contains(domainauth.RoleAdmin)
	default:
		return false
	}
}

// CanManageRoles reports whether callerID may change targetID's roles.
// Admins may manage anyone but themselves; the self-modification block is
// policy, not a UI nicety.
func CanManageRoles(roles domainauth.RoleSet, callerID, targetID string) bool {
	if !Can(roles, ActionManageRoles) {
		return false
	}
	return callerID != targetID
}
