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

// CompanyRepository implements domain.CompanyRepository using PostgreSQL
type CompanyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// Create creates a new company
func (r *CompanyRepository) Create(company *domain.Company) (*domain.Company, error) {
	ctx := context.Background()
	created := *company
	created.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO companies (id, workspace_id, name, email, phone, website, industry, address, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		created.ID, company.WorkspaceID, company.Name, company.Email, company.Phone,
		company.Website, company.Industry, company.Address, company.AssignedTo, company.CreatedBy,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return &created, nil
}

// GetByID retrieves a company by its ID within a workspace
func (r *CompanyRepository) GetByID(workspaceID, id uuid.UUID) (*domain.Company, error) {
	ctx := context.Background()
	var c domain.Company
	err := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, name, email, phone, website, industry, address, assigned_to, created_by, created_at, updated_at
		FROM companies WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	).Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.Email, &c.Phone, &c.Website, &c.Industry,
		&c.Address, &c.AssignedTo, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// ListByWorkspace retrieves all companies of a workspace with display fields
// resolved, newest first.
func (r *CompanyRepository) ListByWorkspace(workspaceID uuid.UUID) ([]*domain.CompanyWithRelations, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.workspace_id, c.name, c.email, c.phone, c.website, c.industry, c.address,
		       c.assigned_to, c.created_by, c.created_at, c.updated_at,
		       cu.name, au.id, au.name, au.avatar_url
		FROM companies c
		JOIN users cu ON cu.id = c.created_by
		LEFT JOIN users au ON au.id = c.assigned_to
		WHERE c.workspace_id = $1
		ORDER BY c.created_at DESC`, workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var result []*domain.CompanyWithRelations
	for rows.Next() {
		var c domain.CompanyWithRelations
		var assigneeID *uuid.UUID
		var assigneeName, assigneeAvatar *string
		if err := rows.Scan(
			&c.ID, &c.WorkspaceID, &c.Name, &c.Email, &c.Phone, &c.Website, &c.Industry, &c.Address,
			&c.AssignedTo, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
			&c.CreatorName, &assigneeID, &assigneeName, &assigneeAvatar,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		if assigneeID != nil {
			c.Assignee = &domain.Assignee{ID: *assigneeID, AvatarURL: assigneeAvatar}
			if assigneeName != nil {
				c.Assignee.Name = *assigneeName
			}
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

// Update persists a company's mutable fields
func (r *CompanyRepository) Update(company *domain.Company) (*domain.Company, error) {
	ctx := context.Background()
	updated := *company
	err := r.pool.QueryRow(ctx, `
		UPDATE companies
		SET name = $3, email = $4, phone = $5, website = $6, industry = $7, address = $8,
		    assigned_to = $9, updated_at = now()
		WHERE workspace_id = $1 AND id = $2
		RETURNING updated_at`,
		company.WorkspaceID, company.ID, company.Name, company.Email, company.Phone,
		company.Website, company.Industry, company.Address, company.AssignedTo,
	).Scan(&updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	return &updated, nil
}

// Delete permanently removes a company
func (r *CompanyRepository) Delete(workspaceID, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
