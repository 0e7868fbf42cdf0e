package service

import (
	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/domain"
)

// recentActivityLimit is the number of leads shown on the dashboard
const recentActivityLimit = 5

// StatsService aggregates dashboard counters
type StatsService struct {
	leadRepo domain.LeadRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(leadRepo domain.LeadRepository) *StatsService {
	return &StatsService{leadRepo: leadRepo}
}

// GetDashboardStats computes the workspace dashboard: active lead count, the
// summed budget of active leads and the most recent leads. The task counters
// stay zero; there is no task entity behind them.
func (s *StatsService) GetDashboardStats(workspaceID uuid.UUID) (*domain.DashboardStats, error) {
	totalLeads, err := s.leadRepo.CountActive(workspaceID)
	if err != nil {
		return nil, err
	}
	pipelineValue, err := s.leadRepo.SumActiveBudget(workspaceID)
	if err != nil {
		return nil, err
	}
	recent, err := s.leadRepo.ListRecent(workspaceID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalLeads:     totalLeads,
		PipelineValue:  pipelineValue,
		RecentActivity: recent,
	}, nil
}
