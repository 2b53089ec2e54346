package authroles

import (
	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
)

// StaticRoleMapper maps IdP groups to the role set seeded at first login.
// Membership in the admin or writer group grants that role; everyone gets
// the user role.
type StaticRoleMapper struct {
	AdminGroup  string
	WriterGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.RoleSet {
	roles := domainauth.DefaultRoleSet()
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			roles = append(roles, domainauth.RoleAdmin)
		}
		if m.WriterGroup != "" && g == m.WriterGroup {
			roles = append(roles, domainauth.RoleWriter)
		}
	}
	return roles.Normalize()
}
