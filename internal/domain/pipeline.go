package domain

import (
	"time"

	"github.com/google/uuid"
)

// Default pipeline attributes applied on first save
const (
	DefaultPipelineName = "Sales Pipeline"
	DefaultTemplateType = "Personalizado"
	DefaultStageColor   = "border-gray-400"
	DefaultStageBgColor = "bg-gray-50"
)

// Pipeline is the single configurable sales funnel of a workspace
type Pipeline struct {
	ID           uuid.UUID `json:"id"`
	WorkspaceID  uuid.UUID `json:"workspaceId"`
	Name         string    `json:"name"`
	TemplateType string    `json:"templateType"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PipelineStage is one ordered step of a pipeline. OrderIndex is contiguous
// and matches the submitted array position after every save.
type PipelineStage struct {
	ID         uuid.UUID `json:"id"`
	PipelineID uuid.UUID `json:"pipelineId"`
	Name       string    `json:"name"`
	OrderIndex int32     `json:"orderIndex"`
	Color      string    `json:"color"`
	BgColor    string    `json:"bgColor"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PipelineWithStages is a pipeline with its stages in ascending order index
type PipelineWithStages struct {
	Pipeline
	Stages []*PipelineStage `json:"stages"`
}

// StageInput is one stage descriptor as submitted by the client. ID is either
// a persisted stage id or a client-generated placeholder for a new stage.
type StageInput struct {
	ID      string
	Title   string
	Color   string
	BgColor string
}

// StageUpdate updates a persisted stage in place, preserving its identity
type StageUpdate struct {
	ID         uuid.UUID
	Name       string
	OrderIndex int32
	Color      string
	BgColor    string
}

// StageCreate inserts a new stage; ID is non-nil when the client placeholder
// already carries a usable UUID.
type StageCreate struct {
	ID         *uuid.UUID
	Name       string
	OrderIndex int32
	Color      string
	BgColor    string
}

// StagePlan is the reconciliation outcome for one pipeline save: stages to
// update in place, stages to insert, and persisted stages to remove.
type StagePlan struct {
	Updates   []StageUpdate
	Creates   []StageCreate
	DeleteIDs []uuid.UUID
}

// PipelineRepository defines the interface for pipeline persistence operations
type PipelineRepository interface {
	GetByWorkspace(workspaceID uuid.UUID) (*Pipeline, error)
	GetWithStages(workspaceID uuid.UUID) (*PipelineWithStages, error)
	Create(pipeline *Pipeline) (*Pipeline, error)
	UpdateTemplateType(id uuid.UUID, templateType string) error
	ListStages(pipelineID uuid.UUID) ([]*PipelineStage, error)
	GetStageByID(id uuid.UUID) (*PipelineStage, error)
	// ApplyStagePlan executes the plan as one transaction. Leads referencing
	// a deleted stage get their stage reference cleared in the same
	// transaction (cascade-null policy).
	ApplyStagePlan(pipelineID uuid.UUID, plan StagePlan) error
}
