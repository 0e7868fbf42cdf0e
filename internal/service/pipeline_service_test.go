package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/testutil"
)

func newPipelineFixture() (*PipelineService, *testutil.MockPipelineRepository, *testutil.MockLeadRepository) {
	pipelineRepo := testutil.NewMockPipelineRepository()
	leadRepo := testutil.NewMockLeadRepository()
	pipelineRepo.Leads = leadRepo
	return NewPipelineService(pipelineRepo), pipelineRepo, leadRepo
}

func stageInputs(stages []*domain.PipelineStage) []domain.StageInput {
	inputs := make([]domain.StageInput, len(stages))
	for i, s := range stages {
		inputs[i] = domain.StageInput{ID: s.ID.String(), Title: s.Name, Color: s.Color, BgColor: s.BgColor}
	}
	return inputs
}

func TestSavePipelineFirstSave(t *testing.T) {
	svc, _, _ := newPipelineFixture()
	workspaceID := uuid.New()

	result, err := svc.SavePipeline(workspaceID, "", []domain.StageInput{
		{ID: "new-stage-1", Title: "Contactado"},
		{ID: "new-stage-2", Title: "Propuesta", Color: "border-blue-400", BgColor: "bg-blue-50"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultPipelineName, result.Name)
	assert.Equal(t, domain.DefaultTemplateType, result.TemplateType)
	require.Len(t, result.Stages, 2)
	assert.Equal(t, "Contactado", result.Stages[0].Name)
	assert.Equal(t, int32(0), result.Stages[0].OrderIndex)
	assert.Equal(t, domain.DefaultStageColor, result.Stages[0].Color)
	assert.Equal(t, domain.DefaultStageBgColor, result.Stages[0].BgColor)
	assert.Equal(t, "border-blue-400", result.Stages[1].Color)
	assert.Equal(t, int32(1), result.Stages[1].OrderIndex)
}

func TestSavePipelineIdempotent(t *testing.T) {
	svc, _, _ := newPipelineFixture()
	workspaceID := uuid.New()

	first, err := svc.SavePipeline(workspaceID, "Ventas B2B", []domain.StageInput{
		{ID: "new-stage-1", Title: "Contactado"},
		{ID: "new-stage-2", Title: "Ganado"},
	})
	require.NoError(t, err)

	second, err := svc.SavePipeline(workspaceID, "Ventas B2B", stageInputs(first.Stages))
	require.NoError(t, err)

	require.Len(t, second.Stages, len(first.Stages))
	for i := range first.Stages {
		assert.Equal(t, first.Stages[i].ID, second.Stages[i].ID, "stage identity must survive a no-op save")
		assert.Equal(t, first.Stages[i].Name, second.Stages[i].Name)
		assert.Equal(t, first.Stages[i].OrderIndex, second.Stages[i].OrderIndex)
	}
}

func TestSavePipelineRemovalDeletesOnlyThatStage(t *testing.T) {
	svc, _, _ := newPipelineFixture()
	workspaceID := uuid.New()

	first, err := svc.SavePipeline(workspaceID, "", []domain.StageInput{
		{ID: "new-stage-1", Title: "A"},
		{ID: "new-stage-2", Title: "B"},
		{ID: "new-stage-3", Title: "C"},
	})
	require.NoError(t, err)
	require.Len(t, first.Stages, 3)

	// drop the middle stage
	second, err := svc.SavePipeline(workspaceID, "", stageInputs([]*domain.PipelineStage{first.Stages[0], first.Stages[2]}))
	require.NoError(t, err)

	require.Len(t, second.Stages, 2)
	assert.Equal(t, first.Stages[0].ID, second.Stages[0].ID)
	assert.Equal(t, first.Stages[2].ID, second.Stages[1].ID)
	assert.Equal(t, int32(1), second.Stages[1].OrderIndex, "surviving stage shifts down")
}

func TestSavePipelineReorderKeepsIdentity(t *testing.T) {
	svc, _, _ := newPipelineFixture()
	workspaceID := uuid.New()

	first, err := svc.SavePipeline(workspaceID, "", []domain.StageInput{
		{ID: "new-stage-1", Title: "A"},
		{ID: "new-stage-2", Title: "B"},
	})
	require.NoError(t, err)

	second, err := svc.SavePipeline(workspaceID, "", stageInputs([]*domain.PipelineStage{first.Stages[1], first.Stages[0]}))
	require.NoError(t, err)

	require.Len(t, second.Stages, 2)
	assert.Equal(t, first.Stages[1].ID, second.Stages[0].ID)
	assert.Equal(t, int32(0), second.Stages[0].OrderIndex)
	assert.Equal(t, first.Stages[0].ID, second.Stages[1].ID)
	assert.Equal(t, int32(1), second.Stages[1].OrderIndex)
}

func TestSavePipelineReusesUUIDPlaceholder(t *testing.T) {
	svc, _, _ := newPipelineFixture()
	workspaceID := uuid.New()
	placeholder := uuid.New()

	result, err := svc.SavePipeline(workspaceID, "", []domain.StageInput{
		{ID: placeholder.String(), Title: "Nuevo"},
	})
	require.NoError(t, err)

	require.Len(t, result.Stages, 1)
	assert.Equal(t, placeholder, result.Stages[0].ID)
}

func TestSavePipelineDeleteCascadeNullsLeads(t *testing.T) {
	svc, _, leadRepo := newPipelineFixture()
	workspaceID := uuid.New()

	first, err := svc.SavePipeline(workspaceID, "", []domain.StageInput{
		{ID: "new-stage-1", Title: "A"},
		{ID: "new-stage-2", Title: "B"},
	})
	require.NoError(t, err)

	doomed := first.Stages[1].ID
	lead, err := leadRepo.Create(&domain.Lead{
		WorkspaceID:    workspaceID,
		Name:           "Deal",
		Status:         domain.StatusActive,
		CurrentStageID: &doomed,
	})
	require.NoError(t, err)

	_, err = svc.SavePipeline(workspaceID, "", stageInputs([]*domain.PipelineStage{first.Stages[0]}))
	require.NoError(t, err)

	refreshed, err := leadRepo.GetByID(workspaceID, lead.ID)
	require.NoError(t, err)
	assert.Nil(t, refreshed.CurrentStageID, "leads on a deleted stage lose the reference")
}

func TestSavePipelineUpdatesTemplateType(t *testing.T) {
	svc, _, _ := newPipelineFixture()
	workspaceID := uuid.New()

	first, err := svc.SavePipeline(workspaceID, "Ventas B2B", nil)
	require.NoError(t, err)
	assert.Equal(t, "Ventas B2B", first.TemplateType)

	second, err := svc.SavePipeline(workspaceID, "", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTemplateType, second.TemplateType)
	assert.Equal(t, first.ID, second.ID, "pipeline row is reused across saves")
}

func TestSavePipelineApplyFailureSurfaces(t *testing.T) {
	svc, pipelineRepo, _ := newPipelineFixture()
	pipelineRepo.ApplyErr = errors.New("connection reset")

	_, err := svc.SavePipeline(uuid.New(), "", []domain.StageInput{{ID: "new-stage-1", Title: "A"}})
	assert.Error(t, err)
}

func TestGetPipelineNotFound(t *testing.T) {
	svc, _, _ := newPipelineFixture()

	_, err := svc.GetPipeline(uuid.New())
	assert.ErrorIs(t, err, domain.ErrPipelineNotFound)
}

func TestPlanStages(t *testing.T) {
	existing := []*domain.PipelineStage{
		{ID: uuid.New(), Name: "A", OrderIndex: 0},
		{ID: uuid.New(), Name: "B", OrderIndex: 1},
	}

	t.Run("unknown UUID-shaped id becomes a create reusing the id", func(t *testing.T) {
		stray := uuid.New()
		plan := planStages(existing, []domain.StageInput{
			{ID: existing[0].ID.String(), Title: "A"},
			{ID: stray.String(), Title: "C"},
		})
		require.Len(t, plan.Creates, 1)
		require.NotNil(t, plan.Creates[0].ID)
		assert.Equal(t, stray, *plan.Creates[0].ID)
		assert.Len(t, plan.Updates, 1)
		assert.Equal(t, []uuid.UUID{existing[1].ID}, plan.DeleteIDs)
	})

	t.Run("new-stage placeholder never matches a persisted stage", func(t *testing.T) {
		plan := planStages(existing, []domain.StageInput{
			{ID: "new-stage-1734558472-abcdef", Title: "C"},
		})
		assert.Empty(t, plan.Updates)
		require.Len(t, plan.Creates, 1)
		assert.Nil(t, plan.Creates[0].ID)
		assert.Len(t, plan.DeleteIDs, 2)
	})

	t.Run("empty submission deletes everything", func(t *testing.T) {
		plan := planStages(existing, nil)
		assert.Empty(t, plan.Updates)
		assert.Empty(t, plan.Creates)
		assert.Len(t, plan.DeleteIDs, 2)
	})
}
