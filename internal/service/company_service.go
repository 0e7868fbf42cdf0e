package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/changelog"
	"github.com/ventia/ventia-backend/internal/domain"
)

// CompanyService handles company business logic
type CompanyService struct {
	companyRepo domain.CompanyRepository
	userRepo    domain.UserRepository
	recorder    *changelog.Recorder
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo domain.CompanyRepository, userRepo domain.UserRepository, recorder *changelog.Recorder) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		recorder:    recorder,
	}
}

// CreateCompanyInput contains input for creating a company
type CreateCompanyInput struct {
	Name       string
	Email      string
	Phone      string
	Website    string
	Industry   string
	Address    string
	AssignedTo *uuid.UUID
}

// CreateCompany creates a company and records its creation notes
func (s *CompanyService) CreateCompany(workspaceID, userID uuid.UUID, input CreateCompanyInput) (*domain.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	company := &domain.Company{
		WorkspaceID: workspaceID,
		Name:        name,
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Website:     strings.TrimSpace(input.Website),
		Industry:    strings.TrimSpace(input.Industry),
		Address:     strings.TrimSpace(input.Address),
		AssignedTo:  input.AssignedTo,
		CreatedBy:   userID,
	}

	created, err := s.companyRepo.Create(company)
	if err != nil {
		return nil, err
	}

	fields := []changelog.FieldValue{
		{Label: changelog.LabelName, Display: created.Name},
		{Label: changelog.LabelEmail, Display: created.Email},
		{Label: changelog.LabelPhone, Display: created.Phone},
		{Label: changelog.LabelWebsite, Display: created.Website},
		{Label: changelog.LabelIndustry, Display: created.Industry},
		{Label: changelog.LabelAddress, Display: created.Address},
	}
	if created.AssignedTo != nil {
		fields = append(fields, changelog.FieldValue{
			Label:   changelog.LabelAssignee,
			Display: userDisplay(s.userRepo, *created.AssignedTo),
		})
	}
	entries := changelog.CreationEntries(changelog.CompanyCreated, fields)
	s.recorder.Record(workspaceID, userID, domain.ForCompany(created.ID), domain.NoteTypeCreation, entries)

	return created, nil
}

// GetCompanies retrieves all companies of a workspace with display relations
func (s *CompanyService) GetCompanies(workspaceID uuid.UUID) ([]*domain.CompanyWithRelations, error) {
	return s.companyRepo.ListByWorkspace(workspaceID)
}

// UpdateCompanyInput contains the submitted fields of a partial company
// update. Nil means the field is not being set.
type UpdateCompanyInput struct {
	Name       *string
	Email      *string
	Phone      *string
	Website    *string
	Industry   *string
	Address    *string
	AssignedTo *uuid.UUID
}

// UpdateCompany applies a partial update and records one note per changed
// field. Note recording is best-effort and never fails the update.
func (s *CompanyService) UpdateCompany(workspaceID, userID, id uuid.UUID, input UpdateCompanyInput) (*domain.Company, error) {
	existing, err := s.companyRepo.GetByID(workspaceID, id)
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

	addText(changelog.LabelName, existing.Name, input.Name, &existing.Name)
	addText(changelog.LabelEmail, existing.Email, input.Email, &existing.Email)
	addText(changelog.LabelPhone, existing.Phone, input.Phone, &existing.Phone)
	addText(changelog.LabelWebsite, existing.Website, input.Website, &existing.Website)
	addText(changelog.LabelIndustry, existing.Industry, input.Industry, &existing.Industry)
	addText(changelog.LabelAddress, existing.Address, input.Address, &existing.Address)

	if input.AssignedTo != nil {
		if changelog.RefChanged(existing.AssignedTo, input.AssignedTo) {
			entries = append(entries, changelog.FieldSet(changelog.LabelAssignee,
				userDisplay(s.userRepo, *input.AssignedTo)))
		}
		existing.AssignedTo = input.AssignedTo
	}

	updated, err := s.companyRepo.Update(existing)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(workspaceID, userID, domain.ForCompany(updated.ID), domain.NoteTypeUpdate, entries)

	return updated, nil
}

// DeleteCompany removes a company
func (s *CompanyService) DeleteCompany(workspaceID, id uuid.UUID) error {
	return s.companyRepo.Delete(workspaceID, id)
}
