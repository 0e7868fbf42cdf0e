package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/middleware"
	"github.com/ventia/ventia-backend/internal/service"
	"github.com/ventia/ventia-backend/internal/websocket"
)

// PipelineHandler handles pipeline-related HTTP requests
type PipelineHandler struct {
	pipelineService *service.PipelineService
	publisher       websocket.EventPublisher
}

// NewPipelineHandler creates a new PipelineHandler
func NewPipelineHandler(pipelineService *service.PipelineService, publisher websocket.EventPublisher) *PipelineHandler {
	return &PipelineHandler{pipelineService: pipelineService, publisher: publisher}
}

// StageRequest is one stage descriptor in a save request. ID is either a
// persisted stage id or a client-generated placeholder.
type StageRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Color   string `json:"color"`
	BgColor string `json:"bgColor"`
}

// SavePipelineRequest represents the save pipeline request body. The client
// submits the chosen template as templateName; templateType is accepted as
// an alias.
type SavePipelineRequest struct {
	TemplateName string         `json:"templateName"`
	TemplateType string         `json:"templateType"`
	Stages       []StageRequest `json:"stages"`
}

// StageResponse represents a pipeline stage in API responses
type StageResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OrderIndex int32  `json:"orderIndex"`
	Color      string `json:"color"`
	BgColor    string `json:"bgColor"`
	CreatedAt  string `json:"createdAt"`
}

// PipelineResponse represents a pipeline with its stages in API responses
type PipelineResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	TemplateType string          `json:"templateType"`
	Stages       []StageResponse `json:"stages"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// GetPipeline handles GET /api/pipelines. A workspace without a saved
// pipeline gets a JSON null, not an error.
func (h *PipelineHandler) GetPipeline(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	pipeline, err := h.pipelineService.GetPipeline(workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrPipelineNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to get pipeline")
		return NewInternalError(c, "Failed to get pipeline")
	}

	return c.JSON(http.StatusOK, toPipelineResponse(pipeline))
}

// SavePipeline handles POST /api/pipelines
func (h *PipelineHandler) SavePipeline(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req SavePipelineRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	stages := make([]domain.StageInput, len(req.Stages))
	for i, stage := range req.Stages {
		stages[i] = domain.StageInput{
			ID:      stage.ID,
			Title:   stage.Title,
			Color:   stage.Color,
			BgColor: stage.BgColor,
		}
	}

	templateName := req.TemplateName
	if templateName == "" {
		templateName = req.TemplateType
	}

	pipeline, err := h.pipelineService.SavePipeline(workspaceID, templateName, stages)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to save pipeline")
		return NewInternalError(c, "Failed to save pipeline")
	}

	response := toPipelineResponse(pipeline)
	h.publisher.Publish(workspaceID, websocket.PipelineUpdated(response))

	return c.JSON(http.StatusOK, response)
}

func toPipelineResponse(pipeline *domain.PipelineWithStages) PipelineResponse {
	stages := make([]StageResponse, len(pipeline.Stages))
	for i, stage := range pipeline.Stages {
		stages[i] = StageResponse{
			ID:         stage.ID.String(),
			Name:       stage.Name,
			OrderIndex: stage.OrderIndex,
			Color:      stage.Color,
			BgColor:    stage.BgColor,
			CreatedAt:  stage.CreatedAt.Format(time.RFC3339),
		}
	}
	return PipelineResponse{
		ID:           pipeline.ID.String(),
		Name:         pipeline.Name,
		TemplateType: pipeline.TemplateType,
		Stages:       stages,
		CreatedAt:    pipeline.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    pipeline.UpdatedAt.Format(time.RFC3339),
	}
}
