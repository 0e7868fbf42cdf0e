package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ventia/ventia-backend/internal/service"
	"github.com/ventia/ventia-backend/internal/testutil"
	"github.com/ventia/ventia-backend/internal/websocket"
)

func newPipelineHandler() *PipelineHandler {
	pipelineRepo := testutil.NewMockPipelineRepository()
	pipelineService := service.NewPipelineService(pipelineRepo)
	return NewPipelineHandler(pipelineService, &websocket.NoOpPublisher{})
}

func TestGetPipeline_EmptyWorkspace(t *testing.T) {
	e := echo.New()
	handler := newPipelineHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/pipelines", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New(), uuid.New(), "user@acme.com")

	if err := handler.GetPipeline(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	if body := strings.TrimSpace(rec.Body.String()); body != "null" {
		t.Errorf("Expected JSON null for a workspace without a pipeline, got %q", body)
	}
}

func TestGetPipeline_ReturnsSingleObject(t *testing.T) {
	e := echo.New()
	handler := newPipelineHandler()
	workspaceID := uuid.New()
	userID := uuid.New()

	saveBody := `{"stages": [{"id": "new-stage-1", "title": "Contactado"}]}`
	saveReq := httptest.NewRequest(http.MethodPost, "/api/pipelines", strings.NewReader(saveBody))
	saveReq.Header.Set("Content-Type", "application/json")
	saveRec := httptest.NewRecorder()
	saveCtx := e.NewContext(saveReq, saveRec)
	setupAuthContext(saveCtx, userID, workspaceID, "user@acme.com")
	if err := handler.SavePipeline(saveCtx); err != nil {
		t.Fatalf("Failed to save pipeline: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/pipelines", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID, workspaceID, "user@acme.com")

	if err := handler.GetPipeline(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "[") {
		t.Fatalf("Expected a single pipeline object, got an array: %s", rec.Body.String())
	}

	var response PipelineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Name != "Sales Pipeline" {
		t.Errorf("Expected pipeline name 'Sales Pipeline', got %s", response.Name)
	}
	if len(response.Stages) != 1 {
		t.Errorf("Expected 1 stage, got %d", len(response.Stages))
	}
}

func TestSavePipeline_FirstSave(t *testing.T) {
	e := echo.New()
	handler := newPipelineHandler()
	workspaceID := uuid.New()

	reqBody := `{"stages": [
		{"id": "new-stage-1", "title": "Contactado"},
		{"id": "new-stage-2", "title": "Propuesta", "color": "border-blue-500", "bgColor": "bg-blue-50"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/pipelines", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New(), workspaceID, "user@acme.com")

	if err := handler.SavePipeline(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response PipelineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Name != "Sales Pipeline" {
		t.Errorf("Expected default pipeline name, got %s", response.Name)
	}
	if response.TemplateType != "Personalizado" {
		t.Errorf("Expected default template type, got %s", response.TemplateType)
	}
	if len(response.Stages) != 2 {
		t.Fatalf("Expected 2 stages, got %d", len(response.Stages))
	}
	if response.Stages[0].Name != "Contactado" || response.Stages[0].OrderIndex != 0 {
		t.Errorf("Expected 'Contactado' at index 0, got %+v", response.Stages[0])
	}
	if response.Stages[0].Color != "border-gray-400" {
		t.Errorf("Expected default color, got %s", response.Stages[0].Color)
	}
	if response.Stages[1].Color != "border-blue-500" {
		t.Errorf("Expected submitted color, got %s", response.Stages[1].Color)
	}
}

func TestSavePipeline_TemplateName(t *testing.T) {
	e := echo.New()
	handler := newPipelineHandler()
	workspaceID := uuid.New()

	reqBody := `{"templateName": "Ventas B2B", "stages": [{"id": "new-stage-1", "title": "Prospección"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/pipelines", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New(), workspaceID, "user@acme.com")

	if err := handler.SavePipeline(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response PipelineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.TemplateType != "Ventas B2B" {
		t.Errorf("Expected template 'Ventas B2B', got %s", response.TemplateType)
	}
}

func TestSavePipeline_KeepsStageIdentity(t *testing.T) {
	e := echo.New()
	handler := newPipelineHandler()
	workspaceID := uuid.New()
	userID := uuid.New()

	firstBody := `{"stages": [{"id": "new-stage-1", "title": "Contactado"}]}`
	firstReq := httptest.NewRequest(http.MethodPost, "/api/pipelines", strings.NewReader(firstBody))
	firstReq.Header.Set("Content-Type", "application/json")
	firstRec := httptest.NewRecorder()
	firstCtx := e.NewContext(firstReq, firstRec)
	setupAuthContext(firstCtx, userID, workspaceID, "user@acme.com")
	if err := handler.SavePipeline(firstCtx); err != nil {
		t.Fatalf("Failed to save pipeline: %v", err)
	}
	var first PipelineResponse
	if err := json.Unmarshal(firstRec.Body.Bytes(), &first); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	stageID := first.Stages[0].ID

	secondBody := `{"stages": [{"id": "` + stageID + `", "title": "Contactado y Calificado"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/pipelines", strings.NewReader(secondBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID, workspaceID, "user@acme.com")

	if err := handler.SavePipeline(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response PipelineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Stages) != 1 {
		t.Fatalf("Expected 1 stage, got %d", len(response.Stages))
	}
	if response.Stages[0].ID != stageID {
		t.Errorf("Expected stage to keep its id %s, got %s", stageID, response.Stages[0].ID)
	}
	if response.Stages[0].Name != "Contactado y Calificado" {
		t.Errorf("Expected renamed stage, got %s", response.Stages[0].Name)
	}
}
