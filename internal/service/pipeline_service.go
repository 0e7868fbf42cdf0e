package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ventia/ventia-backend/internal/domain"
)

// newStagePrefix marks client-side placeholder ids for stages that do not
// exist yet.
const newStagePrefix = "new-stage"

// PipelineService reconciles the workspace's sales funnel against
// client-submitted stage lists
type PipelineService struct {
	pipelineRepo domain.PipelineRepository
}

// NewPipelineService creates a new PipelineService
func NewPipelineService(pipelineRepo domain.PipelineRepository) *PipelineService {
	return &PipelineService{pipelineRepo: pipelineRepo}
}

// GetPipeline retrieves the workspace's pipeline with its ordered stages
func (s *PipelineService) GetPipeline(workspaceID uuid.UUID) (*domain.PipelineWithStages, error) {
	return s.pipelineRepo.GetWithStages(workspaceID)
}

// SavePipeline reconciles the submitted ordered stage list against the
// persisted stage set as one atomic unit of work and returns the refreshed
// pipeline. The pipeline row is created on first save.
func (s *PipelineService) SavePipeline(workspaceID uuid.UUID, templateType string, stages []domain.StageInput) (*domain.PipelineWithStages, error) {
	if templateType == "" {
		templateType = domain.DefaultTemplateType
	}

	pipeline, err := s.pipelineRepo.GetByWorkspace(workspaceID)
	if err != nil {
		if !errors.Is(err, domain.ErrPipelineNotFound) {
			return nil, err
		}
		pipeline, err = s.pipelineRepo.Create(&domain.Pipeline{
			WorkspaceID:  workspaceID,
			Name:         domain.DefaultPipelineName,
			TemplateType: templateType,
		})
		if err != nil {
			return nil, err
		}
	} else if pipeline.TemplateType != templateType {
		if err := s.pipelineRepo.UpdateTemplateType(pipeline.ID, templateType); err != nil {
			return nil, err
		}
	}

	current, err := s.pipelineRepo.ListStages(pipeline.ID)
	if err != nil {
		return nil, err
	}

	plan := planStages(current, stages)
	if err := s.pipelineRepo.ApplyStagePlan(pipeline.ID, plan); err != nil {
		log.Error().Err(err).
			Str("pipeline_id", pipeline.ID.String()).
			Int("updates", len(plan.Updates)).
			Int("creates", len(plan.Creates)).
			Int("deletes", len(plan.DeleteIDs)).
			Msg("Failed to apply stage plan")
		return nil, err
	}

	return s.pipelineRepo.GetWithStages(workspaceID)
}

// planStages matches the submitted ordered stage list against the persisted
// set. A submitted id that belongs to a persisted stage updates it in place,
// keeping its identity; anything else becomes a create (reusing a UUID-shaped
// placeholder as the new row's id). Persisted stages absent from the list are
// deleted. Order indices follow list positions.
func planStages(current []*domain.PipelineStage, submitted []domain.StageInput) domain.StagePlan {
	persisted := make(map[uuid.UUID]*domain.PipelineStage, len(current))
	for _, stage := range current {
		persisted[stage.ID] = stage
	}

	var plan domain.StagePlan
	kept := make(map[uuid.UUID]bool, len(submitted))

	for i, in := range submitted {
		color := in.Color
		if color == "" {
			color = domain.DefaultStageColor
		}
		bgColor := in.BgColor
		if bgColor == "" {
			bgColor = domain.DefaultStageBgColor
		}
		orderIndex := int32(i)

		if id, ok := persistedStageID(in.ID, persisted); ok {
			plan.Updates = append(plan.Updates, domain.StageUpdate{
				ID:         id,
				Name:       in.Title,
				OrderIndex: orderIndex,
				Color:      color,
				BgColor:    bgColor,
			})
			kept[id] = true
			continue
		}

		create := domain.StageCreate{
			Name:       in.Title,
			OrderIndex: orderIndex,
			Color:      color,
			BgColor:    bgColor,
		}
		if id, err := uuid.Parse(in.ID); err == nil {
			create.ID = &id
		}
		plan.Creates = append(plan.Creates, create)
	}

	for _, stage := range current {
		if !kept[stage.ID] {
			plan.DeleteIDs = append(plan.DeleteIDs, stage.ID)
		}
	}
	return plan
}

// persistedStageID reports whether a submitted id refers to a persisted
// stage. Short ids and "new-stage" placeholders never match.
func persistedStageID(raw string, persisted map[uuid.UUID]*domain.PipelineStage) (uuid.UUID, bool) {
	if len(raw) <= 20 || strings.HasPrefix(raw, newStagePrefix) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	if _, ok := persisted[id]; !ok {
		return uuid.Nil, false
	}
	return id, true
}
