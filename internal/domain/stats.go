package domain

import "github.com/shopspring/decimal"

// DashboardStats holds the aggregate counters for the dashboard. Task
// tracking is not part of this scope; the task counters stay zero so the
// response shape the client consumes remains stable.
type DashboardStats struct {
	TotalLeads     int64                `json:"totalLeads"`
	PipelineValue  decimal.Decimal      `json:"pipelineValue"`
	ActiveTasks    int64                `json:"activeTasks"`
	TasksDueToday  int64                `json:"tasksDueToday"`
	RecentActivity []*LeadWithRelations `json:"recentActivity"`
}
