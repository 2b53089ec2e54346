// Package testutil provides testing utilities and helpers for the journal service.
package testutil

import (
	"fmt"
	"time"

	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
	"github.com/journalsoc/journal-api/internal/domain/model"
)

// PostBuilder provides a fluent interface for building Post objects for testing.
type PostBuilder struct {
	post *model.Post
}

// NewPost creates a new PostBuilder with sensible defaults.
func NewPost() *PostBuilder {
	return &PostBuilder{
		post: &model.Post{
			ID:        "post-1",
			Title:     "First entry",
			Content:   `{"blocks":[{"type":"paragraph","text":"hello"}]}`,
			AuthorID:  "writer-1",
			CreatedAt: TestTime(),
			UpdatedAt: TestTime(),
		},
	}
}

// WithID sets the post id.
func (b *PostBuilder) WithID(id string) *PostBuilder {
	b.post.ID = id
	return b
}

// WithTitle sets the post title.
func (b *PostBuilder) WithTitle(title string) *PostBuilder {
	b.post.Title = title
	return b
}

// WithContent sets the serialized content payload.
func (b *PostBuilder) WithContent(content string) *PostBuilder {
	b.post.Content = content
	return b
}

// WithAuthor sets the post author id.
func (b *PostBuilder) WithAuthor(authorID string) *PostBuilder {
	b.post.AuthorID = authorID
	return b
}

// Reviewed marks the post as reviewed.
func (b *PostBuilder) Reviewed() *PostBuilder {
	b.post.IsReviewed = true
	return b
}

// WithCreatedAt sets both timestamps to the given time.
func (b *PostBuilder) WithCreatedAt(t time.Time) *PostBuilder {
	b.post.CreatedAt = t
	b.post.UpdatedAt = t
	return b
}

// Build returns the constructed Post.
func (b *PostBuilder) Build() *model.Post {
	p := *b.post
	return &p
}

// ProfileBuilder provides a fluent interface for building Profile objects for testing.
type ProfileBuilder struct {
	profile *model.Profile
}

// NewProfile creates a new ProfileBuilder with sensible defaults.
func NewProfile() *ProfileBuilder {
	return &ProfileBuilder{
		profile: &model.Profile{
			ID:        "user-1",
			Email:     "user-1@example.com",
			Roles:     domainauth.DefaultRoleSet(),
			CreatedAt: TestTime(),
			UpdatedAt: TestTime(),
		},
	}
}

// WithID sets the profile id and derives a matching email.
func (b *ProfileBuilder) WithID(id string) *ProfileBuilder {
	b.profile.ID = id
	b.profile.Email = fmt.Sprintf("%s@example.com", id)
	return b
}

// WithEmail sets the profile email.
func (b *ProfileBuilder) WithEmail(email string) *ProfileBuilder {
	b.profile.Email = email
	return b
}

// WithRoles sets the role set.
func (b *ProfileBuilder) WithRoles(roles ...domainauth.Role) *ProfileBuilder {
	b.profile.Roles = domainauth.RoleSet(roles).Normalize()
	return b
}

// AsAdmin grants the admin role.
func (b *ProfileBuilder) AsAdmin() *ProfileBuilder {
	return b.WithRoles(domainauth.RoleAdmin)
}

// AsWriter grants the writer role.
func (b *ProfileBuilder) AsWriter() *ProfileBuilder {
	return b.WithRoles(domainauth.RoleWriter)
}

// Build returns the constructed Profile.
func (b *ProfileBuilder) Build() *model.Profile {
	p := *b.profile
	return &p
}

// Common session presets used by service and handler tests.

// AdminSession returns a session carrying the admin role.
func AdminSession() domainauth.Session {
	return domainauth.Session{
		ID:        "sess-admin",
		UserID:    "admin-1",
		Email:     "admin-1@example.com",
		Roles:     domainauth.RoleSet{domainauth.RoleAdmin}.Normalize(),
		ExpiresAt: TestTime().Add(time.Hour),
	}
}

// WriterSession returns a session carrying the writer role.
func WriterSession() domainauth.Session {
	return domainauth.Session{
		ID:        "sess-writer",
		UserID:    "writer-1",
		Email:     "writer-1@example.com",
		Roles:     domainauth.RoleSet{domainauth.RoleWriter}.Normalize(),
		ExpiresAt: TestTime().Add(time.Hour),
	}
}

// UserSession returns a session carrying only the user role.
func UserSession() domainauth.Session {
	return domainauth.Session{
		ID:        "sess-user",
		UserID:    "user-1",
		Email:     "user-1@example.com",
		Roles:     domainauth.DefaultRoleSet(),
		ExpiresAt: TestTime().Add(time.Hour),
	}
}
