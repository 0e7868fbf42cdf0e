package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact represents a person tracked in the CRM
type Contact struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID uuid.UUID  `json:"workspaceId"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Position    string     `json:"position"`
	CompanyID   *uuid.UUID `json:"companyId"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
	CreatedBy   uuid.UUID  `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// FullName returns "FirstName LastName" with surrounding whitespace trimmed
func (c *Contact) FullName() string {
	name := c.FirstName
	if c.LastName != "" {
		if name != "" {
			name += " "
		}
		name += c.LastName
	}
	return name
}

// Assignee is the subset of user fields embedded in list responses
type Assignee struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
}

// ContactWithRelations is a contact with display fields resolved for listing
type ContactWithRelations struct {
	Contact
	CreatorName string    `json:"-"`
	CompanyName *string   `json:"-"`
	Assignee    *Assignee `json:"-"`
}

// ContactRepository defines the interface for contact persistence operations
type ContactRepository interface {
	Create(contact *Contact) (*Contact, error)
	GetByID(workspaceID, id uuid.UUID) (*Contact, error)
	ListByWorkspace(workspaceID uuid.UUID) ([]*ContactWithRelations, error)
	Update(contact *Contact) (*Contact, error)
	Delete(workspaceID, id uuid.UUID) error
}
