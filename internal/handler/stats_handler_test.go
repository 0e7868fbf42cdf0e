package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/service"
	"github.com/ventia/ventia-backend/internal/testutil"
)

func TestGetStats_Aggregates(t *testing.T) {
	e := echo.New()
	leadRepo := testutil.NewMockLeadRepository()
	handler := NewStatsHandler(service.NewStatsService(leadRepo))
	workspaceID := uuid.New()
	userID := uuid.New()

	leads := []*domain.Lead{
		{WorkspaceID: workspaceID, Name: "Uno", Budget: decimal.NewFromInt(1000), Currency: "USD", Status: "active", CreatedBy: userID},
		{WorkspaceID: workspaceID, Name: "Dos", Budget: decimal.NewFromInt(500), Currency: "USD", Status: "active", CreatedBy: userID},
		{WorkspaceID: workspaceID, Name: "Perdido", Budget: decimal.NewFromInt(9000), Currency: "USD", Status: "lost", CreatedBy: userID},
	}
	for _, lead := range leads {
		if _, err := leadRepo.Create(lead); err != nil {
			t.Fatalf("Failed to seed lead: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID, workspaceID, "user@acme.com")

	if err := handler.GetStats(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.TotalLeads != 2 {
		t.Errorf("Expected 2 active leads, got %d", response.TotalLeads)
	}
	if !response.PipelineValue.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Expected pipeline value 1500, got %s", response.PipelineValue)
	}
	if response.ActiveTasks != 0 || response.TasksDueToday != 0 {
		t.Errorf("Expected zero task counters, got %d and %d", response.ActiveTasks, response.TasksDueToday)
	}
	if len(response.RecentActivity) != 3 {
		t.Errorf("Expected 3 recent leads, got %d", len(response.RecentActivity))
	}
}
