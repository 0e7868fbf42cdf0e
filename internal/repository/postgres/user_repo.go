package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ventia/ventia-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	ctx := context.Background()
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, email, password_hash, name, avatar_url, is_active, created_at, updated_at
		FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.WorkspaceID, &u.Email, &u.PasswordHash, &u.Name, &u.AvatarURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// FindActiveByEmailAndWorkspaceName returns all active users with the given
// email inside workspaces carrying the given name, with their workspace rows.
func (r *UserRepository) FindActiveByEmailAndWorkspaceName(email, workspaceName string) ([]*domain.UserWithWorkspace, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.workspace_id, u.email, u.password_hash, u.name, u.avatar_url, u.is_active, u.created_at, u.updated_at,
		       w.id, w.name, w.subdomain, w.created_at, w.updated_at
		FROM users u
		JOIN workspaces w ON w.id = u.workspace_id
		WHERE u.email = $1 AND u.is_active AND w.name = $2`,
		email, workspaceName,
	)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer rows.Close()

	var result []*domain.UserWithWorkspace
	for rows.Next() {
		var uw domain.UserWithWorkspace
		if err := rows.Scan(
			&uw.User.ID, &uw.User.WorkspaceID, &uw.User.Email, &uw.User.PasswordHash, &uw.User.Name,
			&uw.User.AvatarURL, &uw.User.IsActive, &uw.User.CreatedAt, &uw.User.UpdatedAt,
			&uw.Workspace.ID, &uw.Workspace.Name, &uw.Workspace.Subdomain, &uw.Workspace.CreatedAt, &uw.Workspace.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		result = append(result, &uw)
	}
	return result, rows.Err()
}

// ListActiveByWorkspace retrieves all active users of a workspace
func (r *UserRepository) ListActiveByWorkspace(workspaceID uuid.UUID) ([]*domain.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, workspace_id, email, password_hash, name, avatar_url, is_active, created_at, updated_at
		FROM users WHERE workspace_id = $1 AND is_active
		ORDER BY name`, workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var result []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.WorkspaceID, &u.Email, &u.PasswordHash, &u.Name, &u.AvatarURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		result = append(result, &u)
	}
	return result, rows.Err()
}
