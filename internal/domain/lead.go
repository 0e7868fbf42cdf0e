package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusActive is the status column value stored whenever a lead sits on a
// pipeline stage; the stage id then carries the real state.
const StatusActive = "active"

// Lead represents a sales opportunity
type Lead struct {
	ID             uuid.UUID       `json:"id"`
	WorkspaceID    uuid.UUID       `json:"workspaceId"`
	Name           string          `json:"name"`
	Budget         decimal.Decimal `json:"budget"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status"`
	CurrentStageID *uuid.UUID      `json:"currentStageId"`
	ContactID      *uuid.UUID      `json:"contactId"`
	AssignedTo     *uuid.UUID      `json:"assignedTo"`
	CreatedBy      uuid.UUID       `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// DisplayStatus reconstructs the status the client works with: the stage id
// when the lead sits on a pipeline stage, otherwise the legacy status string.
func (l *Lead) DisplayStatus() string {
	if l.CurrentStageID != nil {
		return l.CurrentStageID.String()
	}
	return l.Status
}

// LeadStatus is the parsed form of a client-submitted status value: either a
// pipeline stage reference or a legacy free-text status. The wire format
// overloads a single string; the shape detection happens here, once, instead
// of threading the raw string through business logic.
type LeadStatus struct {
	stageID uuid.UUID
	legacy  string
	isStage bool
}

// ParseLeadStatus classifies a submitted status value. Only the canonical
// 36-character UUID form counts as a stage reference.
func ParseLeadStatus(raw string) LeadStatus {
	if len(raw) == 36 {
		if id, err := uuid.Parse(raw); err == nil {
			return LeadStatus{stageID: id, isStage: true}
		}
	}
	return LeadStatus{legacy: raw}
}

// StageID returns the referenced stage id and whether the status is a stage
func (s LeadStatus) StageID() (uuid.UUID, bool) {
	return s.stageID, s.isStage
}

// Legacy returns the free-text status; empty when the status is a stage
func (s LeadStatus) Legacy() string {
	return s.legacy
}

// LeadContact is the contact summary embedded in lead list responses,
// including the contact's company name when linked.
type LeadContact struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	CompanyName *string   `json:"-"`
}

// LeadWithRelations is a lead with display fields resolved for listing
type LeadWithRelations struct {
	Lead
	Contact     *LeadContact `json:"-"`
	CreatorName string       `json:"-"`
}

// LeadRepository defines the interface for lead persistence operations
type LeadRepository interface {
	Create(lead *Lead) (*Lead, error)
	GetByID(workspaceID, id uuid.UUID) (*Lead, error)
	ListByWorkspace(workspaceID uuid.UUID) ([]*LeadWithRelations, error)
	Update(lead *Lead) (*Lead, error)
	Delete(workspaceID, id uuid.UUID) error

	// Dashboard aggregates
	CountActive(workspaceID uuid.UUID) (int64, error)
	SumActiveBudget(workspaceID uuid.UUID) (decimal.Decimal, error)
	ListRecent(workspaceID uuid.UUID, limit int) ([]*LeadWithRelations, error)
}
