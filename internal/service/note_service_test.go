package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/testutil"
)

func TestCreateNote(t *testing.T) {
	noteRepo := testutil.NewMockNoteRepository()
	svc := NewNoteService(noteRepo)
	workspaceID := uuid.New()
	leadID := uuid.New()

	created, err := svc.CreateNote(workspaceID, uuid.New(), CreateNoteInput{
		Content: "  Llamar el lunes  ",
		LeadID:  &leadID,
	})
	if err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if created.Content != "Llamar el lunes" {
		t.Errorf("content = %q, want trimmed", created.Content)
	}
	if created.Type != domain.NoteTypeUser {
		t.Errorf("type = %q, want user", created.Type)
	}
}

func TestCreateNoteRequiresContent(t *testing.T) {
	svc := NewNoteService(testutil.NewMockNoteRepository())

	_, err := svc.CreateNote(uuid.New(), uuid.New(), CreateNoteInput{Content: "   "})
	if !errors.Is(err, domain.ErrContentRequired) {
		t.Errorf("CreateNote() error = %v, want ErrContentRequired", err)
	}
}

func TestGetNotesFilters(t *testing.T) {
	noteRepo := testutil.NewMockNoteRepository()
	svc := NewNoteService(noteRepo)
	workspaceID := uuid.New()
	userID := uuid.New()
	contactID := uuid.New()
	leadID := uuid.New()

	if _, err := svc.CreateNote(workspaceID, userID, CreateNoteInput{Content: "nota contacto", ContactID: &contactID}); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if _, err := svc.CreateNote(workspaceID, userID, CreateNoteInput{Content: "nota lead", LeadID: &leadID}); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}

	all, err := svc.GetNotes(workspaceID, domain.NoteFilter{})
	if err != nil {
		t.Fatalf("GetNotes() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered returned %d notes, want 2", len(all))
	}

	byContact, err := svc.GetNotes(workspaceID, domain.NoteFilter{ContactID: &contactID})
	if err != nil {
		t.Fatalf("GetNotes() error = %v", err)
	}
	if len(byContact) != 1 || byContact[0].Content != "nota contacto" {
		t.Errorf("contact filter returned %v", byContact)
	}

	other, err := svc.GetNotes(uuid.New(), domain.NoteFilter{})
	if err != nil {
		t.Fatalf("GetNotes() error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("cross-tenant listing returned %d notes", len(other))
	}
}

func TestGetNotesResolvesAuthor(t *testing.T) {
	noteRepo := testutil.NewMockNoteRepository()
	svc := NewNoteService(noteRepo)
	workspaceID := uuid.New()

	avatar := "https://cdn.example.com/u.png"
	author := &domain.User{ID: uuid.New(), WorkspaceID: workspaceID, Name: "Carlos", AvatarURL: &avatar}
	noteRepo.Authors[author.ID] = author

	if _, err := svc.CreateNote(workspaceID, author.ID, CreateNoteInput{Content: "hola"}); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}

	notes, err := svc.GetNotes(workspaceID, domain.NoteFilter{})
	if err != nil {
		t.Fatalf("GetNotes() error = %v", err)
	}
	if len(notes) != 1 || notes[0].AuthorName != "Carlos" {
		t.Errorf("author not resolved: %+v", notes)
	}
}
