package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/changelog"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/testutil"
)

func newCompanyService() (*CompanyService, *testutil.MockCompanyRepository, *testutil.MockUserRepository, *testutil.MockNoteRepository) {
	companyRepo := testutil.NewMockCompanyRepository()
	userRepo := testutil.NewMockUserRepository()
	noteRepo := testutil.NewMockNoteRepository()
	svc := NewCompanyService(companyRepo, userRepo, changelog.NewRecorder(noteRepo))
	return svc, companyRepo, userRepo, noteRepo
}

func TestCreateCompany(t *testing.T) {
	svc, _, _, noteRepo := newCompanyService()
	workspaceID := uuid.New()

	created, err := svc.CreateCompany(workspaceID, uuid.New(), CreateCompanyInput{
		Name:     "Acme Corp",
		Industry: "Retail",
	})
	if err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	notes := notesFor(noteRepo, workspaceID, domain.NoteFilter{CompanyID: &created.ID})
	if len(notes) != 3 {
		t.Fatalf("created %d notes, want 3", len(notes))
	}
	foundCreated := false
	for _, n := range notes {
		if n.Content == "Compañía creada" {
			foundCreated = true
		}
	}
	if !foundCreated {
		t.Error("missing creation note")
	}
}

func TestCreateCompanyRequiresName(t *testing.T) {
	svc, _, _, _ := newCompanyService()

	_, err := svc.CreateCompany(uuid.New(), uuid.New(), CreateCompanyInput{Name: " "})
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("CreateCompany() error = %v, want ErrNameRequired", err)
	}
}

func TestUpdateCompanyAssigneeResolved(t *testing.T) {
	svc, _, userRepo, noteRepo := newCompanyService()
	workspaceID := uuid.New()
	userID := uuid.New()

	assignee := &domain.User{ID: uuid.New(), WorkspaceID: workspaceID, Name: "Carlos", IsActive: true}
	userRepo.AddUser(assignee)

	created, err := svc.CreateCompany(workspaceID, userID, CreateCompanyInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	_, err = svc.UpdateCompany(workspaceID, userID, created.ID, UpdateCompanyInput{AssignedTo: &assignee.ID})
	if err != nil {
		t.Fatalf("UpdateCompany() error = %v", err)
	}

	found := false
	for _, n := range notesFor(noteRepo, workspaceID, domain.NoteFilter{CompanyID: &created.ID}) {
		if n.Content == "El valor del campo «Usuario Asignado» se establece en «Carlos»" {
			found = true
		}
	}
	if !found {
		t.Error("expected assignee note with resolved user name")
	}
}

func TestUpdateCompanyNoChangesNoNotes(t *testing.T) {
	svc, _, _, noteRepo := newCompanyService()
	workspaceID := uuid.New()
	userID := uuid.New()

	created, err := svc.CreateCompany(workspaceID, userID, CreateCompanyInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}
	before := len(notesFor(noteRepo, workspaceID, domain.NoteFilter{CompanyID: &created.ID}))

	sameName := "Acme"
	if _, err := svc.UpdateCompany(workspaceID, userID, created.ID, UpdateCompanyInput{Name: &sameName}); err != nil {
		t.Fatalf("UpdateCompany() error = %v", err)
	}

	after := len(notesFor(noteRepo, workspaceID, domain.NoteFilter{CompanyID: &created.ID}))
	if after != before {
		t.Errorf("unchanged update emitted %d notes", after-before)
	}
}

func TestUpdateCompanyNotFound(t *testing.T) {
	svc, _, _, _ := newCompanyService()

	_, err := svc.UpdateCompany(uuid.New(), uuid.New(), uuid.New(), UpdateCompanyInput{})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Errorf("UpdateCompany() error = %v, want ErrCompanyNotFound", err)
	}
}

func TestCreateCompanySucceedsWhenNotesFail(t *testing.T) {
	svc, _, _, noteRepo := newCompanyService()
	noteRepo.FailWrites = true

	created, err := svc.CreateCompany(uuid.New(), uuid.New(), CreateCompanyInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("CreateCompany() error = %v, mutation must survive note failure", err)
	}
	if created.Name != "Acme" {
		t.Errorf("name = %q", created.Name)
	}
}
