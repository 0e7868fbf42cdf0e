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

// ContactRepository implements domain.ContactRepository using PostgreSQL
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// Create creates a new contact
func (r *ContactRepository) Create(contact *domain.Contact) (*domain.Contact, error) {
	ctx := context.Background()
	created := *contact
	created.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (id, workspace_id, first_name, last_name, email, phone, position, company_id, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		created.ID, contact.WorkspaceID, contact.FirstName, contact.LastName, contact.Email,
		contact.Phone, contact.Position, contact.CompanyID, contact.AssignedTo, contact.CreatedBy,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return &created, nil
}

// GetByID retrieves a contact by its ID within a workspace
func (r *ContactRepository) GetByID(workspaceID, id uuid.UUID) (*domain.Contact, error) {
	ctx := context.Background()
	var c domain.Contact
	err := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, first_name, last_name, email, phone, position, company_id, assigned_to, created_by, created_at, updated_at
		FROM contacts WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	).Scan(&c.ID, &c.WorkspaceID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Position,
		&c.CompanyID, &c.AssignedTo, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

// ListByWorkspace retrieves all contacts of a workspace with display fields
// resolved, newest first.
func (r *ContactRepository) ListByWorkspace(workspaceID uuid.UUID) ([]*domain.ContactWithRelations, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.workspace_id, c.first_name, c.last_name, c.email, c.phone, c.position,
		       c.company_id, c.assigned_to, c.created_by, c.created_at, c.updated_at,
		       cu.name, co.name, au.id, au.name, au.avatar_url
		FROM contacts c
		JOIN users cu ON cu.id = c.created_by
		LEFT JOIN companies co ON co.id = c.company_id
		LEFT JOIN users au ON au.id = c.assigned_to
		WHERE c.workspace_id = $1
		ORDER BY c.created_at DESC`, workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var result []*domain.ContactWithRelations
	for rows.Next() {
		var c domain.ContactWithRelations
		var assigneeID *uuid.UUID
		var assigneeName, assigneeAvatar *string
		if err := rows.Scan(
			&c.ID, &c.WorkspaceID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Position,
			&c.CompanyID, &c.AssignedTo, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
			&c.CreatorName, &c.CompanyName, &assigneeID, &assigneeName, &assigneeAvatar,
		); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
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

// Update persists a contact's mutable fields
func (r *ContactRepository) Update(contact *domain.Contact) (*domain.Contact, error) {
	ctx := context.Background()
	updated := *contact
	err := r.pool.QueryRow(ctx, `
		UPDATE contacts
		SET first_name = $3, last_name = $4, email = $5, phone = $6, position = $7,
		    company_id = $8, assigned_to = $9, updated_at = now()
		WHERE workspace_id = $1 AND id = $2
		RETURNING updated_at`,
		contact.WorkspaceID, contact.ID, contact.FirstName, contact.LastName, contact.Email,
		contact.Phone, contact.Position, contact.CompanyID, contact.AssignedTo,
	).Scan(&updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return &updated, nil
}

// Delete permanently removes a contact
func (r *ContactRepository) Delete(workspaceID, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}
