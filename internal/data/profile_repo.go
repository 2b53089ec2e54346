package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/journalsoc/journal-api/internal/errors"

	"github.com/journalsoc/journal-api/internal/data/pgxutil"
	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
	"github.com/journalsoc/journal-api/internal/domain/model"
)

// ProfileRepo provides database operations for user profiles and their roles.
type ProfileRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProfileRepo creates a new ProfileRepo instance with the given database connection.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// NewProfileRepoWithTimeProvider creates a ProfileRepo with a custom TimeProvider (useful for testing).
func NewProfileRepoWithTimeProvider(db *sql.DB, timeProvider TimeProvider) *ProfileRepo {
	return &ProfileRepo{
		DB:           db,
		timeProvider: timeProvider,
	}
}

// profileRow mirrors the profiles table. Roles travel as TEXT[] and are
// parsed into the domain type after scanning.
type profileRow struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Roles     []string  `db:"roles"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row profileRow) toProfile() (*model.Profile, error) {
	roles, err := domainauth.ParseRoleSet(row.Roles)
	if err != nil {
		return nil, fmt.Errorf("profile %q has malformed roles: %w", row.ID, err)
	}
	return &model.Profile{
		ID:        row.ID,
		Email:     row.Email,
		Roles:     roles,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// GetByID retrieves a profile by user id.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	var row profileRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[profileRow])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("profile %q not found", id)
		}
		return nil, fmt.Errorf("failed to get profile: %w", apperrors.MapDBError(err))
	}
	return row.toProfile()
}

// ListByIDs retrieves multiple profiles in one batch. Ids without a matching
// row are simply absent from the result map.
func (r *ProfileRepo) ListByIDs(ctx context.Context, ids []string) (map[string]*model.Profile, error) {
	if len(ids) == 0 {
		return map[string]*model.Profile{}, nil
	}

	var rowsOut []profileRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileListByIDsQuery, ids)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[profileRow])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles by ids: %w", apperrors.MapDBError(err))
	}

	result := make(map[string]*model.Profile, len(rowsOut))
	for _, row := range rowsOut {
		profile, err := row.toProfile()
		if err != nil {
			return nil, err
		}
		result[profile.ID] = profile
	}
	return result, nil
}

// List retrieves profiles with pagination, newest first.
func (r *ProfileRepo) List(ctx context.Context, limit, offset int) ([]*model.Profile, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []profileRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[profileRow])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", apperrors.MapDBError(err))
	}

	result := make([]*model.Profile, 0, len(rowsOut))
	for _, row := range rowsOut {
		profile, err := row.toProfile()
		if err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, nil
}

// Upsert creates the profile on first login and refreshes the email on later
// logins. Roles are written only on insert; the conflict branch deliberately
// leaves them alone so an admin-managed role set survives re-login.
func (r *ProfileRepo) Upsert(ctx context.Context, req *model.UpsertProfileRequest) (*model.Profile, error) {
	if req == nil {
		return nil, errors.New("upsert profile request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	roles := req.Roles.Normalize()

	var row profileRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileUpsertQuery, req.ID, req.Email, roles.Strings(), now)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[profileRow])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", apperrors.MapDBError(err))
	}
	return row.toProfile()
}

// UpdateRoles replaces the role set for a user and returns the stored row.
func (r *ProfileRepo) UpdateRoles(ctx context.Context, id string, roles domainauth.RoleSet) (*model.Profile, error) {
	now := r.timeProvider.Now().UTC()

	var row profileRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, profileUpdateRolesQuery, id, roles.Normalize().Strings(), now)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[profileRow])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("profile %q not found", id)
		}
		return nil, fmt.Errorf("failed to update roles: %w", apperrors.MapDBError(err))
	}
	return row.toProfile()
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	profileGetByIDQuery = `
		SELECT id, email, roles, created_at, updated_at
		FROM profiles
		WHERE id = $1`

	profileListByIDsQuery = `
		SELECT id, email, roles, created_at, updated_at
		FROM profiles
		WHERE id = ANY($1)`

	profileListQuery = `
		SELECT id, email, roles, created_at, updated_at
		FROM profiles
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	profileUpsertQuery = `
		INSERT INTO profiles (id, email, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email, updated_at = EXCLUDED.updated_at
		RETURNING id, email, roles, created_at, updated_at`

	profileUpdateRolesQuery = `
		UPDATE profiles
		SET roles = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, email, roles, created_at, updated_at`
)
