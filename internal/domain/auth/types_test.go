package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleSet_Normalize_AlwaysContainsUser(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   RoleSet
		want RoleSet
	}{
		{"empty", RoleSet{}, RoleSet{RoleUser}},
		{"nil", nil, RoleSet{RoleUser}},
		{"admin only", RoleSet{RoleAdmin}, RoleSet{RoleAdmin, RoleUser}},
		{"duplicates", RoleSet{RoleWriter, RoleWriter, RoleUser}, RoleSet{RoleUser, RoleWriter}},
		{"already complete", RoleSet{RoleAdmin, RoleUser, RoleWriter}, RoleSet{RoleAdmin, RoleUser, RoleWriter}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			assert.Equal(t, tc.want, got)
			assert.True(t, got.Contains(RoleUser))
		})
	}
}

func TestRoleSet_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, RoleSet{RoleUser}.Validate())
	require.NoError(t, RoleSet{RoleAdmin, RoleUser}.Validate())

	assert.Error(t, RoleSet{}.Validate(), "empty set omits user")
	assert.Error(t, RoleSet{RoleAdmin}.Validate(), "set without user must not validate")
	assert.Error(t, RoleSet{RoleUser, Role("superuser")}.Validate(), "unknown role")
}

func TestParseRoleSet(t *testing.T) {
	t.Parallel()

	rs, err := ParseRoleSet([]string{"writer", "user"})
	require.NoError(t, err)
	assert.Equal(t, RoleSet{RoleUser, RoleWriter}, rs)

	_, err = ParseRoleSet([]string{"user", "root"})
	assert.Error(t, err)
}

func TestIdentity_DisplayLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		id   Identity
		want string
	}{
		{"full name", Identity{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, "Ada Lovelace"},
		{"first name only", Identity{FirstName: "Ada", Email: "ada@example.com"}, "Ada"},
		{"email local part", Identity{Email: "ada@example.com"}, "ada"},
		{"nothing usable", Identity{}, "User"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.id.DisplayLabel())
		})
	}
}

func TestSession_IsAdmin(t *testing.T) {
	t.Parallel()

	s := Session{Roles: RoleSet{RoleAdmin, RoleUser}, ExpiresAt: time.Now().Add(time.Hour)}
	assert.True(t, s.IsAdmin())
	assert.False(t, Session{Roles: RoleSet{RoleUser}}.IsAdmin())
}
