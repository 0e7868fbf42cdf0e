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

// PipelineRepository implements domain.PipelineRepository using PostgreSQL
type PipelineRepository struct {
	pool *pgxpool.Pool
}

// NewPipelineRepository creates a new PipelineRepository
func NewPipelineRepository(pool *pgxpool.Pool) *PipelineRepository {
	return &PipelineRepository{pool: pool}
}

// GetByWorkspace retrieves the workspace's pipeline
func (r *PipelineRepository) GetByWorkspace(workspaceID uuid.UUID) (*domain.Pipeline, error) {
	ctx := context.Background()
	var p domain.Pipeline
	err := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, name, template_type, created_at, updated_at
		FROM pipelines WHERE workspace_id = $1
		ORDER BY created_at LIMIT 1`, workspaceID,
	).Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.TemplateType, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPipelineNotFound
		}
		return nil, fmt.Errorf("get pipeline: %w", err)
	}
	return &p, nil
}

// GetWithStages retrieves the workspace's pipeline with its stages ordered by
// order index
func (r *PipelineRepository) GetWithStages(workspaceID uuid.UUID) (*domain.PipelineWithStages, error) {
	pipeline, err := r.GetByWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	stages, err := r.ListStages(pipeline.ID)
	if err != nil {
		return nil, err
	}
	return &domain.PipelineWithStages{Pipeline: *pipeline, Stages: stages}, nil
}

// Create creates a new pipeline
func (r *PipelineRepository) Create(pipeline *domain.Pipeline) (*domain.Pipeline, error) {
	ctx := context.Background()
	created := *pipeline
	created.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO pipelines (id, workspace_id, name, template_type)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		created.ID, pipeline.WorkspaceID, pipeline.Name, pipeline.TemplateType,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert pipeline: %w", err)
	}
	return &created, nil
}

// UpdateTemplateType updates the pipeline's template type
func (r *PipelineRepository) UpdateTemplateType(id uuid.UUID, templateType string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE pipelines SET template_type = $2, updated_at = now() WHERE id = $1`,
		id, templateType,
	)
	if err != nil {
		return fmt.Errorf("update pipeline: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPipelineNotFound
	}
	return nil
}

// ListStages retrieves a pipeline's stages by ascending order index
func (r *PipelineRepository) ListStages(pipelineID uuid.UUID) ([]*domain.PipelineStage, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, pipeline_id, name, order_index, color, bg_color, created_at
		FROM pipeline_stages WHERE pipeline_id = $1
		ORDER BY order_index`, pipelineID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var result []*domain.PipelineStage
	for rows.Next() {
		var s domain.PipelineStage
		if err := rows.Scan(&s.ID, &s.PipelineID, &s.Name, &s.OrderIndex, &s.Color, &s.BgColor, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

// GetStageByID retrieves a single stage
func (r *PipelineRepository) GetStageByID(id uuid.UUID) (*domain.PipelineStage, error) {
	ctx := context.Background()
	var s domain.PipelineStage
	err := r.pool.QueryRow(ctx, `
		SELECT id, pipeline_id, name, order_index, color, bg_color, created_at
		FROM pipeline_stages WHERE id = $1`, id,
	).Scan(&s.ID, &s.PipelineID, &s.Name, &s.OrderIndex, &s.Color, &s.BgColor, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStageNotFound
		}
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return &s, nil
}

// ApplyStagePlan executes a reconciliation plan in one transaction. Updates and
// deletes are scoped to the pipeline so a stale client payload cannot touch
// another pipeline's stages. Leads pointing at a deleted stage have
// current_stage_id cleared before the delete runs.
func (r *PipelineRepository) ApplyStagePlan(pipelineID uuid.UUID, plan domain.StagePlan) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range plan.Updates {
		_, err := tx.Exec(ctx, `
			UPDATE pipeline_stages
			SET name = $3, order_index = $4, color = $5, bg_color = $6
			WHERE id = $1 AND pipeline_id = $2`,
			u.ID, pipelineID, u.Name, u.OrderIndex, u.Color, u.BgColor,
		)
		if err != nil {
			return fmt.Errorf("update stage: %w", err)
		}
	}

	for _, c := range plan.Creates {
		id := uuid.New()
		if c.ID != nil {
			id = *c.ID
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO pipeline_stages (id, pipeline_id, name, order_index, color, bg_color)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, pipelineID, c.Name, c.OrderIndex, c.Color, c.BgColor,
		)
		if err != nil {
			return fmt.Errorf("insert stage: %w", err)
		}
	}

	if len(plan.DeleteIDs) > 0 {
		_, err := tx.Exec(ctx,
			`UPDATE leads SET current_stage_id = NULL WHERE current_stage_id = ANY($1)`,
			plan.DeleteIDs,
		)
		if err != nil {
			return fmt.Errorf("clear lead stage references: %w", err)
		}
		_, err = tx.Exec(ctx,
			`DELETE FROM pipeline_stages WHERE id = ANY($1) AND pipeline_id = $2`,
			plan.DeleteIDs, pipelineID,
		)
		if err != nil {
			return fmt.Errorf("delete stages: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
