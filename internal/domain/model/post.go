// Package model defines the core data types and structures used throughout the journal service.
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// maxTitleLen is the maximum allowed length for post titles in characters.
	maxTitleLen = 255
)

// Post represents a journal post. Content is a serialized rich-text document
// treated as an opaque payload; the service never parses or validates it.
type Post struct {
	ID         string    `json:"id"          db:"id"`
	Title      string    `json:"title"       db:"title"`
	Content    string    `json:"content"     db:"content"`
	AuthorID   string    `json:"author_id"   db:"author_id"`
	IsReviewed bool      `json:"is_reviewed" db:"is_reviewed"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"  db:"updated_at"`
}

// CreatePostRequest represents a request to create a new post.
// The author is supplied by the caller, never read from ambient state.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate validates the CreatePostRequest fields.
func (r *CreatePostRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Title) > maxTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	return nil
}

// PostView is a Post decorated with a displayable author label for listings.
type PostView struct {
	Post
	AuthorLabel string `json:"author_label"`
}
