package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note types. User-authored notes carry NoteTypeUser; the change-log deriver
// writes NoteTypeCreation and NoteTypeUpdate rows.
const (
	NoteTypeUser     = "user"
	NoteTypeCreation = "creation"
	NoteTypeUpdate   = "update"
)

// Note is a timestamped text record attached to a contact, lead or company.
// Notes are immutable once created: no update or delete operation exists.
type Note struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID uuid.UUID  `json:"workspaceId"`
	Content     string     `json:"content"`
	Type        string     `json:"type"`
	ContactID   *uuid.UUID `json:"contactId"`
	LeadID      *uuid.UUID `json:"leadId"`
	CompanyID   *uuid.UUID `json:"companyId"`
	CreatedBy   uuid.UUID  `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NoteTarget identifies the single parent entity a note is attached to
type NoteTarget struct {
	ContactID *uuid.UUID
	LeadID    *uuid.UUID
	CompanyID *uuid.UUID
}

// ForContact targets a contact
func ForContact(id uuid.UUID) NoteTarget { return NoteTarget{ContactID: &id} }

// ForLead targets a lead
func ForLead(id uuid.UUID) NoteTarget { return NoteTarget{LeadID: &id} }

// ForCompany targets a company
func ForCompany(id uuid.UUID) NoteTarget { return NoteTarget{CompanyID: &id} }

// NoteFilter narrows a note listing to one parent entity
type NoteFilter struct {
	ContactID *uuid.UUID
	LeadID    *uuid.UUID
	CompanyID *uuid.UUID
}

// NoteWithAuthor is a note with the author's display fields resolved
type NoteWithAuthor struct {
	Note
	AuthorName      string  `json:"-"`
	AuthorAvatarURL *string `json:"-"`
}

// NoteRepository defines the interface for note persistence operations
type NoteRepository interface {
	Create(note *Note) (*Note, error)
	CreateMany(notes []*Note) error
	ListByWorkspace(workspaceID uuid.UUID, filter NoteFilter) ([]*NoteWithAuthor, error)
	GetByID(workspaceID, id uuid.UUID) (*NoteWithAuthor, error)
}
