package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/ventia/ventia-backend/internal/middleware"
	"github.com/ventia/ventia-backend/internal/service"
)

// StatsHandler handles dashboard statistics HTTP requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// StatsResponse represents the dashboard statistics. The task counters are
// zero-valued placeholders; no task entity exists behind them.
type StatsResponse struct {
	TotalLeads     int64           `json:"totalLeads"`
	PipelineValue  decimal.Decimal `json:"pipelineValue"`
	ActiveTasks    int64           `json:"activeTasks"`
	TasksDueToday  int64           `json:"tasksDueToday"`
	RecentActivity []LeadResponse  `json:"recentActivity"`
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	stats, err := h.statsService.GetDashboardStats(workspaceID)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to get dashboard stats")
		return NewInternalError(c, "Failed to get dashboard stats")
	}

	recent := make([]LeadResponse, len(stats.RecentActivity))
	for i, lead := range stats.RecentActivity {
		recent[i] = toLeadListResponse(lead)
	}

	return c.JSON(http.StatusOK, StatsResponse{
		TotalLeads:     stats.TotalLeads,
		PipelineValue:  stats.PipelineValue,
		ActiveTasks:    stats.ActiveTasks,
		TasksDueToday:  stats.TasksDueToday,
		RecentActivity: recent,
	})
}
