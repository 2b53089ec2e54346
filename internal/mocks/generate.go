// Package mocks provides mock implementations for testing the journal service.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockPostRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(post, nil)
package mocks

// Generate mock for PostRepository interface from internal/core package.
// This creates MockPostRepository with methods for all PostRepository interface methods:
// Create, GetByID, ListByReviewed, MarkReviewed
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=post_repository_mock.go github.com/journalsoc/journal-api/internal/core PostRepository

// Generate mock for ProfileRepository interface from internal/core package.
// This creates MockProfileRepository with methods for all ProfileRepository interface methods:
// GetByID, ListByIDs, List, Upsert, UpdateRoles
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=profile_repository_mock.go github.com/journalsoc/journal-api/internal/core ProfileRepository
