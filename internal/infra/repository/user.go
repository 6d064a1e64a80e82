package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidcheck/internal/pkg/pgconv"
	"kidcheck/internal/usecase/commands"
	"kidcheck/internal/usecase/queries"
)

const selectUserByIDSQL = `
	SELECT id, email, display_name, role, is_active
	FROM users
	WHERE id = $1
`

const selectUserByEmailSQL = `
	SELECT id, email, display_name, role, is_active, password_hash
	FROM users
	WHERE email = $1
`

const updateLastLoginSQL = `
	UPDATE users
	SET last_login_at = now()
	WHERE id = $1
`

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryImpl {
	return &UserRepositoryImpl{pool: pool}
}

var (
	_ commands.UserRepository    = (*UserRepositoryImpl)(nil)
	_ commands.LastLoginRecorder = (*UserRepositoryImpl)(nil)
)

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*commands.UserSnapshot, error) {
	var snap commands.UserSnapshot
	err := r.pool.QueryRow(ctx, selectUserByIDSQL, pgconv.UUIDToPgtype(id)).Scan(
		&snap.ID, &snap.Email, &snap.DisplayName, &snap.Role, &snap.IsActive,
	)
	if err != nil {
		return nil, classifyErr("failed to find user", err)
	}
	return &snap, nil
}

func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, updateLastLoginSQL, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return classifyErr("failed to update last login", err)
	}
	return nil
}

type UserReadStoreImpl struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) queries.UserReadStore {
	return &UserReadStoreImpl{pool: pool}
}

func (s *UserReadStoreImpl) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := s.pool.QueryRow(ctx, selectUserByIDSQL, pgconv.UUIDToPgtype(id)).Scan(
		&view.ID, &view.Email, &view.DisplayName, &view.Role, &view.IsActive,
	)
	if err != nil {
		return nil, classifyErr("failed to find user", err)
	}
	return &view, nil
}

func (s *UserReadStoreImpl) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		view queries.AuthorizedUserView
		hash string
	)
	err := s.pool.QueryRow(ctx, selectUserByEmailSQL, email).Scan(
		&view.ID, &view.Email, &view.DisplayName, &view.Role, &view.IsActive, &hash,
	)
	if err != nil {
		return nil, "", classifyErr("failed to find user by email", err)
	}
	return &view, hash, nil
}
