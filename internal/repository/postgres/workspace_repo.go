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

// WorkspaceRepository implements domain.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

// GetByID retrieves a workspace by its ID
func (r *WorkspaceRepository) GetByID(id uuid.UUID) (*domain.Workspace, error) {
	ctx := context.Background()
	var ws domain.Workspace
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, subdomain, created_at, updated_at
		FROM workspaces WHERE id = $1`, id,
	).Scan(&ws.ID, &ws.Name, &ws.Subdomain, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return &ws, nil
}

// CreateWithOwner atomically creates a workspace and its first user
func (r *WorkspaceRepository) CreateWithOwner(workspace *domain.Workspace, owner *domain.User) (*domain.Workspace, *domain.User, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created := *workspace
	created.ID = uuid.New()
	err = tx.QueryRow(ctx, `
		INSERT INTO workspaces (id, name, subdomain)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`,
		created.ID, workspace.Name, workspace.Subdomain,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("insert workspace: %w", err)
	}

	createdOwner := *owner
	createdOwner.ID = uuid.New()
	createdOwner.WorkspaceID = created.ID
	createdOwner.IsActive = true
	err = tx.QueryRow(ctx, `
		INSERT INTO users (id, workspace_id, email, password_hash, name, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING created_at, updated_at`,
		createdOwner.ID, created.ID, owner.Email, owner.PasswordHash, owner.Name,
	).Scan(&createdOwner.CreatedAt, &createdOwner.UpdatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("insert owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &created, &createdOwner, nil
}
