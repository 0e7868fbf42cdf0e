package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventia/ventia-backend/internal/changelog"
	"github.com/ventia/ventia-backend/internal/domain"
)

// DefaultCurrency is applied when a lead is created without one
const DefaultCurrency = "USD"

// LeadService handles lead business logic, including the overloaded status
// field: a submitted status that parses as a stage id moves the lead onto
// that pipeline stage, anything else is stored as a legacy status string.
type LeadService struct {
	leadRepo     domain.LeadRepository
	contactRepo  domain.ContactRepository
	companyRepo  domain.CompanyRepository
	userRepo     domain.UserRepository
	pipelineRepo domain.PipelineRepository
	recorder     *changelog.Recorder
}

// NewLeadService creates a new LeadService
func NewLeadService(leadRepo domain.LeadRepository, contactRepo domain.ContactRepository, companyRepo domain.CompanyRepository, userRepo domain.UserRepository, pipelineRepo domain.PipelineRepository, recorder *changelog.Recorder) *LeadService {
	return &LeadService{
		leadRepo:     leadRepo,
		contactRepo:  contactRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		pipelineRepo: pipelineRepo,
		recorder:     recorder,
	}
}

// CreateLeadInput contains input for creating a lead. Status carries the raw
// client value; Budget and Currency are optional.
type CreateLeadInput struct {
	Name       string
	Budget     *decimal.Decimal
	Currency   string
	Status     string
	ContactID  *uuid.UUID
	AssignedTo *uuid.UUID
}

// CreateLead creates a lead and records its creation notes. Only fields the
// client actually populated are logged.
func (s *LeadService) CreateLead(workspaceID, userID uuid.UUID, input CreateLeadInput) (*domain.Lead, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	lead := &domain.Lead{
		WorkspaceID: workspaceID,
		Name:        name,
		Budget:      decimal.Zero,
		Currency:    input.Currency,
		Status:      domain.StatusActive,
		ContactID:   input.ContactID,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   userID,
	}
	if input.Budget != nil {
		lead.Budget = *input.Budget
	}
	if lead.Currency == "" {
		lead.Currency = DefaultCurrency
	}

	statusDisplay := ""
	if input.Status != "" {
		parsed := domain.ParseLeadStatus(input.Status)
		if stageID, ok := parsed.StageID(); ok {
			lead.CurrentStageID = &stageID
			lead.Status = domain.StatusActive
			statusDisplay = s.stageDisplay(stageID)
		} else {
			lead.Status = parsed.Legacy()
			statusDisplay = parsed.Legacy()
		}
	}

	created, err := s.leadRepo.Create(lead)
	if err != nil {
		return nil, err
	}

	fields := []changelog.FieldValue{
		{Label: changelog.LabelName, Display: created.Name},
	}
	if input.Budget != nil && !input.Budget.IsZero() {
		fields = append(fields, changelog.FieldValue{Label: changelog.LabelBudget, Display: input.Budget.String()})
	}
	if input.Currency != "" {
		fields = append(fields, changelog.FieldValue{Label: changelog.LabelCurrency, Display: input.Currency})
	}
	fields = append(fields, changelog.FieldValue{Label: changelog.LabelStatus, Display: statusDisplay})
	if created.ContactID != nil {
		fields = append(fields, changelog.FieldValue{
			Label:   changelog.LabelContact,
			Display: contactDisplay(s.contactRepo, workspaceID, *created.ContactID),
		})
	}
	if created.AssignedTo != nil {
		fields = append(fields, changelog.FieldValue{
			Label:   changelog.LabelAssignee,
			Display: userDisplay(s.userRepo, *created.AssignedTo),
		})
	}

	entries := changelog.CreationEntries(changelog.LeadCreated, fields)
	if created.ContactID != nil {
		if companyName, ok := s.contactCompanyName(workspaceID, *created.ContactID); ok {
			entries = append(entries, changelog.LinkedCompany(companyName))
		}
	}
	s.recorder.Record(workspaceID, userID, domain.ForLead(created.ID), domain.NoteTypeCreation, entries)

	return created, nil
}

// GetLeads retrieves all leads of a workspace with display relations
func (s *LeadService) GetLeads(workspaceID uuid.UUID) ([]*domain.LeadWithRelations, error) {
	return s.leadRepo.ListByWorkspace(workspaceID)
}

// UpdateLeadInput contains the submitted fields of a partial lead update.
// Nil means the field is not being set.
type UpdateLeadInput struct {
	Name       *string
	Budget     *decimal.Decimal
	Currency   *string
	Status     *string
	ContactID  *uuid.UUID
	AssignedTo *uuid.UUID
}

// UpdateLead applies a partial update and records one note per changed field.
// A stage transition emits the "Nuevo estatus" form instead of the generic
// field-set form. Note recording is best-effort and never fails the update.
func (s *LeadService) UpdateLead(workspaceID, userID, id uuid.UUID, input UpdateLeadInput) (*domain.Lead, error) {
	existing, err := s.leadRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	var entries []string

	if changelog.TextChanged(existing.Name, input.Name) {
		entries = append(entries, changelog.FieldSet(changelog.LabelName, *input.Name))
	}
	if input.Name != nil {
		existing.Name = *input.Name
	}

	if changelog.NumberChanged(existing.Budget, input.Budget) {
		entries = append(entries, changelog.FieldSet(changelog.LabelBudget, input.Budget.String()))
	}
	if input.Budget != nil {
		existing.Budget = *input.Budget
	}

	if changelog.TextChanged(existing.Currency, input.Currency) {
		entries = append(entries, changelog.FieldSet(changelog.LabelCurrency, *input.Currency))
	}
	if input.Currency != nil {
		existing.Currency = *input.Currency
	}

	if input.Status != nil {
		parsed := domain.ParseLeadStatus(*input.Status)
		if stageID, ok := parsed.StageID(); ok {
			if existing.CurrentStageID == nil || *existing.CurrentStageID != stageID {
				entries = append(entries, changelog.StageChange(s.stageDisplay(stageID), s.oldStatusDisplay(existing)))
			}
			existing.CurrentStageID = &stageID
			existing.Status = domain.StatusActive
		} else {
			if existing.Status != parsed.Legacy() {
				entries = append(entries, changelog.FieldSet(changelog.LabelStatus, parsed.Legacy()))
			}
			existing.Status = parsed.Legacy()
		}
	}

	if input.ContactID != nil {
		if changelog.RefChanged(existing.ContactID, input.ContactID) {
			// Company link note goes first, before the contact field note.
			if companyName, ok := s.contactCompanyName(workspaceID, *input.ContactID); ok {
				entries = append(entries, changelog.LinkedCompany(companyName))
			}
			entries = append(entries, changelog.FieldSet(changelog.LabelContact,
				contactDisplay(s.contactRepo, workspaceID, *input.ContactID)))
		}
		existing.ContactID = input.ContactID
	}

	if input.AssignedTo != nil {
		if changelog.RefChanged(existing.AssignedTo, input.AssignedTo) {
			entries = append(entries, changelog.FieldSet(changelog.LabelAssignee,
				userDisplay(s.userRepo, *input.AssignedTo)))
		}
		existing.AssignedTo = input.AssignedTo
	}

	updated, err := s.leadRepo.Update(existing)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(workspaceID, userID, domain.ForLead(updated.ID), domain.NoteTypeUpdate, entries)

	return updated, nil
}

// DeleteLead removes a lead
func (s *LeadService) DeleteLead(workspaceID, id uuid.UUID) error {
	return s.leadRepo.Delete(workspaceID, id)
}

// stageDisplay resolves a stage id to its name for note text
func (s *LeadService) stageDisplay(stageID uuid.UUID) string {
	stage, err := s.pipelineRepo.GetStageByID(stageID)
	if err != nil {
		return changelog.UnknownStage
	}
	return stage.Name
}

// oldStatusDisplay reconstructs the display status of the record before a
// stage transition: the old stage name, else the legacy status string.
func (s *LeadService) oldStatusDisplay(lead *domain.Lead) string {
	if lead.CurrentStageID != nil {
		return s.stageDisplay(*lead.CurrentStageID)
	}
	if lead.Status != "" {
		return lead.Status
	}
	return changelog.NoStatus
}

// contactCompanyName resolves the company name of a linked contact
func (s *LeadService) contactCompanyName(workspaceID, contactID uuid.UUID) (string, bool) {
	contact, err := s.contactRepo.GetByID(workspaceID, contactID)
	if err != nil || contact.CompanyID == nil {
		return "", false
	}
	company, err := s.companyRepo.GetByID(workspaceID, *contact.CompanyID)
	if err != nil {
		return "", false
	}
	return company.Name, true
}
