package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/changelog"
	"github.com/ventia/ventia-backend/internal/domain"
)

// ContactService handles contact business logic
type ContactService struct {
	contactRepo domain.ContactRepository
	companyRepo domain.CompanyRepository
	userRepo    domain.UserRepository
	recorder    *changelog.Recorder
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo domain.ContactRepository, companyRepo domain.CompanyRepository, userRepo domain.UserRepository, recorder *changelog.Recorder) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		recorder:    recorder,
	}
}

// CreateContactInput contains input for creating a contact
type CreateContactInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Position   string
	CompanyID  *uuid.UUID
	AssignedTo *uuid.UUID
}

// CreateContact creates a contact and records its creation notes
func (s *ContactService) CreateContact(workspaceID, userID uuid.UUID, input CreateContactInput) (*domain.Contact, error) {
	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		return nil, domain.ErrNameRequired
	}

	contact := &domain.Contact{
		WorkspaceID: workspaceID,
		FirstName:   firstName,
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Position:    strings.TrimSpace(input.Position),
		CompanyID:   input.CompanyID,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   userID,
	}

	created, err := s.contactRepo.Create(contact)
	if err != nil {
		return nil, err
	}

	fields := []changelog.FieldValue{
		{Label: changelog.LabelFirstName, Display: created.FirstName},
		{Label: changelog.LabelLastName, Display: created.LastName},
		{Label: changelog.LabelEmail, Display: created.Email},
		{Label: changelog.LabelPhone, Display: created.Phone},
		{Label: changelog.LabelPosition, Display: created.Position},
	}
	if created.CompanyID != nil {
		fields = append(fields, changelog.FieldValue{
			Label:   changelog.LabelCompany,
			Display: companyDisplay(s.companyRepo, workspaceID, *created.CompanyID),
		})
	}
	if created.AssignedTo != nil {
		fields = append(fields, changelog.FieldValue{
			Label:   changelog.LabelAssignee,
			Display: userDisplay(s.userRepo, *created.AssignedTo),
		})
	}
	entries := changelog.CreationEntries(changelog.ContactCreated, fields)
	s.recorder.Record(workspaceID, userID, domain.ForContact(created.ID), domain.NoteTypeCreation, entries)

	return created, nil
}

// GetContacts retrieves all contacts of a workspace with display relations
func (s *ContactService) GetContacts(workspaceID uuid.UUID) ([]*domain.ContactWithRelations, error) {
	return s.contactRepo.ListByWorkspace(workspaceID)
}

// UpdateContactInput contains the submitted fields of a partial contact
// update. Nil means the field is not being set.
type UpdateContactInput struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Position   *string
	CompanyID  *uuid.UUID
	AssignedTo *uuid.UUID
}

// UpdateContact applies a partial update and records one note per changed
// field. Note recording is best-effort and never fails the update.
func (s *ContactService) UpdateContact(workspaceID, userID, id uuid.UUID, input UpdateContactInput) (*domain.Contact, error) {
	existing, err := s.contactRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	var entries []string
	addText := func(label string, old string, submitted *string, dst *string) {
		if changelog.TextChanged(old, submitted) {
			entries = append(entries, changelog.FieldSet(label, *submitted))
		}
		if submitted != nil {
			*dst = *submitted
		}
	}

	addText(changelog.LabelFirstName, existing.FirstName, input.FirstName, &existing.FirstName)
	addText(changelog.LabelLastName, existing.LastName, input.LastName, &existing.LastName)
	addText(changelog.LabelEmail, existing.Email, input.Email, &existing.Email)
	addText(changelog.LabelPhone, existing.Phone, input.Phone, &existing.Phone)
	addText(changelog.LabelPosition, existing.Position, input.Position, &existing.Position)

	if input.CompanyID != nil {
		if changelog.RefChanged(existing.CompanyID, input.CompanyID) {
			entries = append(entries, changelog.FieldSet(changelog.LabelCompany,
				companyDisplay(s.companyRepo, workspaceID, *input.CompanyID)))
		}
		existing.CompanyID = input.CompanyID
	}
	if input.AssignedTo != nil {
		if changelog.RefChanged(existing.AssignedTo, input.AssignedTo) {
			entries = append(entries, changelog.FieldSet(changelog.LabelAssignee,
				userDisplay(s.userRepo, *input.AssignedTo)))
		}
		existing.AssignedTo = input.AssignedTo
	}

	updated, err := s.contactRepo.Update(existing)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(workspaceID, userID, domain.ForContact(updated.ID), domain.NoteTypeUpdate, entries)

	return updated, nil
}

// DeleteContact removes a contact
func (s *ContactService) DeleteContact(workspaceID, id uuid.UUID) error {
	return s.contactRepo.Delete(workspaceID, id)
}
