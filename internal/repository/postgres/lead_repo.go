package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/ventia/ventia-backend/internal/domain"
)

// LeadRepository implements domain.LeadRepository using PostgreSQL
type LeadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

// Create creates a new lead
func (r *LeadRepository) Create(lead *domain.Lead) (*domain.Lead, error) {
	ctx := context.Background()
	budget, err := decimalToPgNumeric(lead.Budget)
	if err != nil {
		return nil, fmt.Errorf("invalid budget: %w", err)
	}

	created := *lead
	created.ID = uuid.New()
	err = r.pool.QueryRow(ctx, `
		INSERT INTO leads (id, workspace_id, name, budget, currency, status, current_stage_id, contact_id, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		created.ID, lead.WorkspaceID, lead.Name, budget, lead.Currency, lead.Status,
		lead.CurrentStageID, lead.ContactID, lead.AssignedTo, lead.CreatedBy,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	return &created, nil
}

// GetByID retrieves a lead by its ID within a workspace
func (r *LeadRepository) GetByID(workspaceID, id uuid.UUID) (*domain.Lead, error) {
	ctx := context.Background()
	var l domain.Lead
	var budget pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, name, budget, currency, status, current_stage_id, contact_id, assigned_to, created_by, created_at, updated_at
		FROM leads WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	).Scan(&l.ID, &l.WorkspaceID, &l.Name, &budget, &l.Currency, &l.Status,
		&l.CurrentStageID, &l.ContactID, &l.AssignedTo, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	l.Budget = pgNumericToDecimal(budget)
	return &l, nil
}

const leadListQuery = `
	SELECT l.id, l.workspace_id, l.name, l.budget, l.currency, l.status, l.current_stage_id,
	       l.contact_id, l.assigned_to, l.created_by, l.created_at, l.updated_at,
	       cu.name, ct.id, ct.first_name, ct.last_name, co.name
	FROM leads l
	JOIN users cu ON cu.id = l.created_by
	LEFT JOIN contacts ct ON ct.id = l.contact_id
	LEFT JOIN companies co ON co.id = ct.company_id
	WHERE l.workspace_id = $1
	ORDER BY l.created_at DESC`

// ListByWorkspace retrieves all leads of a workspace with the linked contact
// (and its company name) resolved, newest first.
func (r *LeadRepository) ListByWorkspace(workspaceID uuid.UUID) ([]*domain.LeadWithRelations, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, leadListQuery, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	return scanLeadRows(rows)
}

// ListRecent retrieves the most recently created leads for the dashboard
func (r *LeadRepository) ListRecent(workspaceID uuid.UUID, limit int) ([]*domain.LeadWithRelations, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, leadListQuery+` LIMIT $2`, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent leads: %w", err)
	}
	defer rows.Close()
	return scanLeadRows(rows)
}

func scanLeadRows(rows pgx.Rows) ([]*domain.LeadWithRelations, error) {
	var result []*domain.LeadWithRelations
	for rows.Next() {
		var l domain.LeadWithRelations
		var budget pgtype.Numeric
		var contactID *uuid.UUID
		var contactFirst, contactLast, companyName *string
		if err := rows.Scan(
			&l.ID, &l.WorkspaceID, &l.Name, &budget, &l.Currency, &l.Status, &l.CurrentStageID,
			&l.ContactID, &l.AssignedTo, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
			&l.CreatorName, &contactID, &contactFirst, &contactLast, &companyName,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		l.Budget = pgNumericToDecimal(budget)
		if contactID != nil {
			contact := &domain.LeadContact{ID: *contactID, CompanyName: companyName}
			if contactFirst != nil {
				contact.FirstName = *contactFirst
			}
			if contactLast != nil {
				contact.LastName = *contactLast
			}
			l.Contact = contact
		}
		result = append(result, &l)
	}
	return result, rows.Err()
}

// Update persists a lead's mutable fields
func (r *LeadRepository) Update(lead *domain.Lead) (*domain.Lead, error) {
	ctx := context.Background()
	budget, err := decimalToPgNumeric(lead.Budget)
	if err != nil {
		return nil, fmt.Errorf("invalid budget: %w", err)
	}

	updated := *lead
	err = r.pool.QueryRow(ctx, `
		UPDATE leads
		SET name = $3, budget = $4, currency = $5, status = $6, current_stage_id = $7,
		    contact_id = $8, assigned_to = $9, updated_at = now()
		WHERE workspace_id = $1 AND id = $2
		RETURNING updated_at`,
		lead.WorkspaceID, lead.ID, lead.Name, budget, lead.Currency, lead.Status,
		lead.CurrentStageID, lead.ContactID, lead.AssignedTo,
	).Scan(&updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return &updated, nil
}

// Delete permanently removes a lead
func (r *LeadRepository) Delete(workspaceID, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

// CountActive counts leads whose status column is "active"
func (r *LeadRepository) CountActive(workspaceID uuid.UUID) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE workspace_id = $1 AND status = $2`,
		workspaceID, domain.StatusActive,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}

// SumActiveBudget sums the budget of active leads
func (r *LeadRepository) SumActiveBudget(workspaceID uuid.UUID) (decimal.Decimal, error) {
	ctx := context.Background()
	var sum pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(budget), 0) FROM leads WHERE workspace_id = $1 AND status = $2`,
		workspaceID, domain.StatusActive,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum lead budgets: %w", err)
	}
	return pgNumericToDecimal(sum), nil
}
