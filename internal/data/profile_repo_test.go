package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
	"github.com/journalsoc/journal-api/internal/domain/model"
	apperrors "github.com/journalsoc/journal-api/internal/errors"
	"github.com/journalsoc/journal-api/internal/testutil"
)

func TestProfileRepo_UpsertAndGet(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewProfileRepo(db)
		ctx := context.Background()

		created, err := repo.Upsert(ctx, &model.UpsertProfileRequest{
			ID:    "user-1",
			Email: "user-1@example.com",
			Roles: domainauth.RoleSet{domainauth.RoleWriter, domainauth.RoleUser},
		})
		require.NoError(t, err)
		assert.Equal(t, "user-1", created.ID)
		assert.True(t, created.Roles.Contains(domainauth.RoleWriter))
		assert.True(t, created.Roles.Contains(domainauth.RoleUser))

		got, err := repo.GetByID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, created.Email, got.Email)
		assert.Equal(t, created.Roles, got.Roles)
	})
}

func TestProfileRepo_Upsert_DoesNotOverwriteRoles(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewProfileRepo(db)
		ctx := context.Background()

		_, err := repo.Upsert(ctx, &model.UpsertProfileRequest{
			ID:    "user-1",
			Email: "user-1@example.com",
			Roles: domainauth.RoleSet{domainauth.RoleAdmin, domainauth.RoleUser},
		})
		require.NoError(t, err)

		// A later login maps to plain user; the admin grant must survive,
		// while the email refresh still lands.
		again, err := repo.Upsert(ctx, &model.UpsertProfileRequest{
			ID:    "user-1",
			Email: "renamed@example.com",
			Roles: domainauth.DefaultRoleSet(),
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed@example.com", again.Email)
		assert.True(t, again.Roles.Contains(domainauth.RoleAdmin))
	})
}

func TestProfileRepo_Upsert_InvalidRequest(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewProfileRepo(db)

		_, err := repo.Upsert(context.Background(), &model.UpsertProfileRequest{
			Email: "no-id@example.com",
			Roles: domainauth.DefaultRoleSet(),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestProfileRepo_GetByID_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewProfileRepo(db)

		_, err := repo.GetByID(context.Background(), "no-such-user")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestProfileRepo_ListByIDs_MissingIDsAbsent(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewProfileRepo(db)
		ctx := context.Background()

		for _, id := range []string{"user-1", "user-2"} {
			_, err := repo.Upsert(ctx, &model.UpsertProfileRequest{
				ID:    id,
				Email: id + "@example.com",
				Roles: domainauth.DefaultRoleSet(),
			})
			require.NoError(t, err)
		}

		profiles, err := repo.ListByIDs(ctx, []string{"user-1", "ghost", "user-2"})
		require.NoError(t, err)
		assert.Len(t, profiles, 2)
		assert.Contains(t, profiles, "user-1")
		assert.Contains(t, profiles, "user-2")
		assert.NotContains(t, profiles, "ghost")
	})
}

func TestProfileRepo_ListByIDs_Empty(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewProfileRepo(db)

		profiles, err := repo.ListByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, profiles)
	})
}

func TestProfileRepo_List_NewestFirst(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewProfileRepoWithTimeProvider(db, tp)

		for _, id := range []string{"user-1", "user-2", "user-3"} {
			_, err := repo.Upsert(ctx, &model.UpsertProfileRequest{
				ID:    id,
				Email: id + "@example.com",
				Roles: domainauth.DefaultRoleSet(),
			})
			require.NoError(t, err)
			tp.AddTime(time.Second)
		}

		profiles, err := repo.List(ctx, 2, 0)
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, "user-3", profiles[0].ID)
		assert.Equal(t, "user-2", profiles[1].ID)

		rest, err := repo.List(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "user-1", rest[0].ID)
	})
}

func TestProfileRepo_UpdateRoles(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewProfileRepoWithTimeProvider(db, tp)

		created, err := repo.Upsert(ctx, &model.UpsertProfileRequest{
			ID:    "user-1",
			Email: "user-1@example.com",
			Roles: domainauth.DefaultRoleSet(),
		})
		require.NoError(t, err)

		tp.AddTime(time.Minute)
		updated, err := repo.UpdateRoles(ctx, "user-1", domainauth.RoleSet{domainauth.RoleWriter, domainauth.RoleUser})
		require.NoError(t, err)
		assert.True(t, updated.Roles.Contains(domainauth.RoleWriter))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})
}

func TestProfileRepo_UpdateRoles_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewProfileRepo(db)

		_, err := repo.UpdateRoles(context.Background(), "no-such-user", domainauth.DefaultRoleSet())
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
