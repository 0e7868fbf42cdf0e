package changelog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/domain"
)

type captureNoteRepo struct {
	created []*domain.Note
	failAll bool
}

func (m *captureNoteRepo) Create(note *domain.Note) (*domain.Note, error) {
	if m.failAll {
		return nil, errors.New("write failed")
	}
	m.created = append(m.created, note)
	return note, nil
}

func (m *captureNoteRepo) CreateMany(notes []*domain.Note) error {
	if m.failAll {
		return errors.New("write failed")
	}
	m.created = append(m.created, notes...)
	return nil
}

func (m *captureNoteRepo) ListByWorkspace(workspaceID uuid.UUID, filter domain.NoteFilter) ([]*domain.NoteWithAuthor, error) {
	return nil, nil
}

func (m *captureNoteRepo) GetByID(workspaceID, id uuid.UUID) (*domain.NoteWithAuthor, error) {
	return nil, domain.ErrNotFound
}

func TestRecord_WritesOneNotePerEntry(t *testing.T) {
	repo := &captureNoteRepo{}
	recorder := NewRecorder(repo)

	workspaceID := uuid.New()
	authorID := uuid.New()
	leadID := uuid.New()

	recorder.Record(workspaceID, authorID, domain.ForLead(leadID), domain.NoteTypeUpdate, []string{
		FieldSet("Nombre", "Big Deal"),
		StageChange("Ganado", "Negociación"),
	})

	if len(repo.created) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(repo.created))
	}
	for _, note := range repo.created {
		if note.Type != domain.NoteTypeUpdate {
			t.Errorf("Expected note type 'update', got %q", note.Type)
		}
		if note.LeadID == nil || *note.LeadID != leadID {
			t.Error("Expected note linked to the lead")
		}
		if note.ContactID != nil || note.CompanyID != nil {
			t.Error("Expected note linked to exactly one parent")
		}
		if note.WorkspaceID != workspaceID {
			t.Error("Expected note scoped to the workspace")
		}
		if note.CreatedBy != authorID {
			t.Error("Expected note attributed to the author")
		}
	}
}

func TestRecord_NoEntriesWritesNothing(t *testing.T) {
	repo := &captureNoteRepo{}
	recorder := NewRecorder(repo)

	recorder.Record(uuid.New(), uuid.New(), domain.ForContact(uuid.New()), domain.NoteTypeCreation, nil)

	if len(repo.created) != 0 {
		t.Errorf("Expected no notes, got %d", len(repo.created))
	}
}

func TestRecord_SwallowsWriteFailure(t *testing.T) {
	repo := &captureNoteRepo{failAll: true}
	recorder := NewRecorder(repo)

	// Must not panic or propagate; the caller's mutation already committed.
	recorder.Record(uuid.New(), uuid.New(), domain.ForCompany(uuid.New()), domain.NoteTypeUpdate, []string{
		FieldSet("Nombre", "Acme"),
	})
}
