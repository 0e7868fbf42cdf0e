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

// NoteRepository implements domain.NoteRepository using PostgreSQL
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create creates a new note
func (r *NoteRepository) Create(note *domain.Note) (*domain.Note, error) {
	ctx := context.Background()
	created := *note
	created.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notes (id, workspace_id, content, type, contact_id, lead_id, company_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		created.ID, note.WorkspaceID, note.Content, note.Type,
		note.ContactID, note.LeadID, note.CompanyID, note.CreatedBy,
	).Scan(&created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return &created, nil
}

// CreateMany inserts a batch of notes in one transaction
func (r *NoteRepository) CreateMany(notes []*domain.Note) error {
	if len(notes) == 0 {
		return nil
	}
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, note := range notes {
		id := note.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO notes (id, workspace_id, content, type, contact_id, lead_id, company_id, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, note.WorkspaceID, note.Content, note.Type,
			note.ContactID, note.LeadID, note.CompanyID, note.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("insert note: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const noteSelect = `
	SELECT n.id, n.workspace_id, n.content, n.type, n.contact_id, n.lead_id, n.company_id,
	       n.created_by, n.created_at, u.name, u.avatar_url
	FROM notes n
	JOIN users u ON u.id = n.created_by`

// ListByWorkspace retrieves notes with their author resolved, newest first.
// The filter narrows the listing to one parent entity when set.
func (r *NoteRepository) ListByWorkspace(workspaceID uuid.UUID, filter domain.NoteFilter) ([]*domain.NoteWithAuthor, error) {
	ctx := context.Background()

	query := noteSelect + ` WHERE n.workspace_id = $1`
	args := []any{workspaceID}
	switch {
	case filter.ContactID != nil:
		query += ` AND n.contact_id = $2`
		args = append(args, *filter.ContactID)
	case filter.LeadID != nil:
		query += ` AND n.lead_id = $2`
		args = append(args, *filter.LeadID)
	case filter.CompanyID != nil:
		query += ` AND n.company_id = $2`
		args = append(args, *filter.CompanyID)
	}
	query += ` ORDER BY n.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var result []*domain.NoteWithAuthor
	for rows.Next() {
		var n domain.NoteWithAuthor
		if err := rows.Scan(
			&n.ID, &n.WorkspaceID, &n.Content, &n.Type, &n.ContactID, &n.LeadID, &n.CompanyID,
			&n.CreatedBy, &n.CreatedAt, &n.AuthorName, &n.AuthorAvatarURL,
		); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		result = append(result, &n)
	}
	return result, rows.Err()
}

// GetByID retrieves a note with its author resolved
func (r *NoteRepository) GetByID(workspaceID, id uuid.UUID) (*domain.NoteWithAuthor, error) {
	ctx := context.Background()
	var n domain.NoteWithAuthor
	err := r.pool.QueryRow(ctx, noteSelect+` WHERE n.workspace_id = $1 AND n.id = $2`,
		workspaceID, id,
	).Scan(
		&n.ID, &n.WorkspaceID, &n.Content, &n.Type, &n.ContactID, &n.LeadID, &n.CompanyID,
		&n.CreatedBy, &n.CreatedAt, &n.AuthorName, &n.AuthorAvatarURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &n, nil
}
