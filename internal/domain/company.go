package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company represents an organization; contacts may reference one company
type Company struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID uuid.UUID  `json:"workspaceId"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Website     string     `json:"website"`
	Industry    string     `json:"industry"`
	Address     string     `json:"address"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
	CreatedBy   uuid.UUID  `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CompanyWithRelations is a company with display fields resolved for listing
type CompanyWithRelations struct {
	Company
	CreatorName string    `json:"-"`
	Assignee    *Assignee `json:"-"`
}

// CompanyRepository defines the interface for company persistence operations
type CompanyRepository interface {
	Create(company *Company) (*Company, error)
	GetByID(workspaceID, id uuid.UUID) (*Company, error)
	ListByWorkspace(workspaceID uuid.UUID) ([]*CompanyWithRelations, error)
	Update(company *Company) (*Company, error)
	Delete(workspaceID, id uuid.UUID) error
}
