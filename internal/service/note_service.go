package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/domain"
)

// NoteService handles user-authored note business logic. Derived change-log
// notes are written by the services that own the mutations, not here.
type NoteService struct {
	noteRepo domain.NoteRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo domain.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// GetNotes retrieves notes of a workspace, optionally narrowed to one parent
// entity, with their authors resolved.
func (s *NoteService) GetNotes(workspaceID uuid.UUID, filter domain.NoteFilter) ([]*domain.NoteWithAuthor, error) {
	return s.noteRepo.ListByWorkspace(workspaceID, filter)
}

// CreateNoteInput contains input for creating a user-authored note
type CreateNoteInput struct {
	Content   string
	ContactID *uuid.UUID
	LeadID    *uuid.UUID
	CompanyID *uuid.UUID
}

// CreateNote creates a user-authored note
func (s *NoteService) CreateNote(workspaceID, userID uuid.UUID, input CreateNoteInput) (*domain.Note, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.ErrContentRequired
	}

	note := &domain.Note{
		WorkspaceID: workspaceID,
		Content:     content,
		Type:        domain.NoteTypeUser,
		ContactID:   input.ContactID,
		LeadID:      input.LeadID,
		CompanyID:   input.CompanyID,
		CreatedBy:   userID,
	}
	return s.noteRepo.Create(note)
}
