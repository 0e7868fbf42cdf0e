package testutil

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventia/ventia-backend/internal/domain"
)

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces        map[uuid.UUID]*domain.Workspace
	CreateWithOwnerFn func(workspace *domain.Workspace, owner *domain.User) (*domain.Workspace, *domain.User, error)
	Users             *MockUserRepository
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository(users *MockUserRepository) *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces: make(map[uuid.UUID]*domain.Workspace),
		Users:      users,
	}
}

// GetByID retrieves a workspace by ID
func (m *MockWorkspaceRepository) GetByID(id uuid.UUID) (*domain.Workspace, error) {
	if ws, ok := m.Workspaces[id]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// CreateWithOwner creates a workspace and its first user
func (m *MockWorkspaceRepository) CreateWithOwner(workspace *domain.Workspace, owner *domain.User) (*domain.Workspace, *domain.User, error) {
	if m.CreateWithOwnerFn != nil {
		return m.CreateWithOwnerFn(workspace, owner)
	}
	ws := *workspace
	ws.ID = uuid.New()
	ws.CreatedAt = time.Now()
	ws.UpdatedAt = ws.CreatedAt
	m.Workspaces[ws.ID] = &ws

	u := *owner
	u.ID = uuid.New()
	u.WorkspaceID = ws.ID
	u.IsActive = true
	u.CreatedAt = ws.CreatedAt
	u.UpdatedAt = ws.CreatedAt
	if m.Users != nil {
		m.Users.AddUser(&u)
		m.Users.AddWorkspace(&ws)
	}
	return &ws, &u, nil
}

// AddWorkspace adds a workspace to the mock repository (helper for tests)
func (m *MockWorkspaceRepository) AddWorkspace(ws *domain.Workspace) {
	m.Workspaces[ws.ID] = ws
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID       map[uuid.UUID]*domain.User
	Workspaces map[uuid.UUID]*domain.Workspace
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:       make(map[uuid.UUID]*domain.User),
		Workspaces: make(map[uuid.UUID]*domain.Workspace),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// FindActiveByEmailAndWorkspaceName matches active users by email within
// workspaces of the given name
func (m *MockUserRepository) FindActiveByEmailAndWorkspaceName(email, workspaceName string) ([]*domain.UserWithWorkspace, error) {
	var result []*domain.UserWithWorkspace
	for _, user := range m.ByID {
		if user.Email != email || !user.IsActive {
			continue
		}
		ws, ok := m.Workspaces[user.WorkspaceID]
		if !ok || ws.Name != workspaceName {
			continue
		}
		result = append(result, &domain.UserWithWorkspace{User: *user, Workspace: *ws})
	}
	return result, nil
}

// ListActiveByWorkspace lists active users of a workspace sorted by name
func (m *MockUserRepository) ListActiveByWorkspace(workspaceID uuid.UUID) ([]*domain.User, error) {
	var result []*domain.User
	for _, user := range m.ByID {
		if user.WorkspaceID == workspaceID && user.IsActive {
			result = append(result, user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByID[user.ID] = user
}

// AddWorkspace registers a workspace for login matching (helper for tests)
func (m *MockUserRepository) AddWorkspace(ws *domain.Workspace) {
	m.Workspaces[ws.ID] = ws
}

// MockContactRepository is a mock implementation of domain.ContactRepository
type MockContactRepository struct {
	Contacts map[uuid.UUID]*domain.Contact
}

// NewMockContactRepository creates a new MockContactRepository
func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{Contacts: make(map[uuid.UUID]*domain.Contact)}
}

// Create creates a new contact
func (m *MockContactRepository) Create(contact *domain.Contact) (*domain.Contact, error) {
	created := *contact
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.Contacts[created.ID] = &created
	return &created, nil
}

// GetByID retrieves a contact by ID within a workspace
func (m *MockContactRepository) GetByID(workspaceID, id uuid.UUID) (*domain.Contact, error) {
	if c, ok := m.Contacts[id]; ok && c.WorkspaceID == workspaceID {
		return c, nil
	}
	return nil, domain.ErrContactNotFound
}

// ListByWorkspace lists contacts of a workspace
func (m *MockContactRepository) ListByWorkspace(workspaceID uuid.UUID) ([]*domain.ContactWithRelations, error) {
	var result []*domain.ContactWithRelations
	for _, c := range m.Contacts {
		if c.WorkspaceID == workspaceID {
			result = append(result, &domain.ContactWithRelations{Contact: *c})
		}
	}
	return result, nil
}

// Update updates a contact
func (m *MockContactRepository) Update(contact *domain.Contact) (*domain.Contact, error) {
	existing, ok := m.Contacts[contact.ID]
	if !ok || existing.WorkspaceID != contact.WorkspaceID {
		return nil, domain.ErrContactNotFound
	}
	updated := *contact
	updated.UpdatedAt = time.Now()
	m.Contacts[updated.ID] = &updated
	return &updated, nil
}

// Delete removes a contact
func (m *MockContactRepository) Delete(workspaceID, id uuid.UUID) error {
	if c, ok := m.Contacts[id]; ok && c.WorkspaceID == workspaceID {
		delete(m.Contacts, id)
		return nil
	}
	return domain.ErrContactNotFound
}

// MockCompanyRepository is a mock implementation of domain.CompanyRepository
type MockCompanyRepository struct {
	Companies map[uuid.UUID]*domain.Company
}

// NewMockCompanyRepository creates a new MockCompanyRepository
func NewMockCompanyRepository() *MockCompanyRepository {
	return &MockCompanyRepository{Companies: make(map[uuid.UUID]*domain.Company)}
}

// Create creates a new company
func (m *MockCompanyRepository) Create(company *domain.Company) (*domain.Company, error) {
	created := *company
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.Companies[created.ID] = &created
	return &created, nil
}

// GetByID retrieves a company by ID within a workspace
func (m *MockCompanyRepository) GetByID(workspaceID, id uuid.UUID) (*domain.Company, error) {
	if c, ok := m.Companies[id]; ok && c.WorkspaceID == workspaceID {
		return c, nil
	}
	return nil, domain.ErrCompanyNotFound
}

// ListByWorkspace lists companies of a workspace
func (m *MockCompanyRepository) ListByWorkspace(workspaceID uuid.UUID) ([]*domain.CompanyWithRelations, error) {
	var result []*domain.CompanyWithRelations
	for _, c := range m.Companies {
		if c.WorkspaceID == workspaceID {
			result = append(result, &domain.CompanyWithRelations{Company: *c})
		}
	}
	return result, nil
}

// Update updates a company
func (m *MockCompanyRepository) Update(company *domain.Company) (*domain.Company, error) {
	existing, ok := m.Companies[company.ID]
	if !ok || existing.WorkspaceID != company.WorkspaceID {
		return nil, domain.ErrCompanyNotFound
	}
	updated := *company
	updated.UpdatedAt = time.Now()
	m.Companies[updated.ID] = &updated
	return &updated, nil
}

// Delete removes a company
func (m *MockCompanyRepository) Delete(workspaceID, id uuid.UUID) error {
	if c, ok := m.Companies[id]; ok && c.WorkspaceID == workspaceID {
		delete(m.Companies, id)
		return nil
	}
	return domain.ErrCompanyNotFound
}

// MockLeadRepository is a mock implementation of domain.LeadRepository
type MockLeadRepository struct {
	Leads map[uuid.UUID]*domain.Lead
}

// NewMockLeadRepository creates a new MockLeadRepository
func NewMockLeadRepository() *MockLeadRepository {
	return &MockLeadRepository{Leads: make(map[uuid.UUID]*domain.Lead)}
}

// Create creates a new lead
func (m *MockLeadRepository) Create(lead *domain.Lead) (*domain.Lead, error) {
	created := *lead
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.Leads[created.ID] = &created
	return &created, nil
}

// GetByID retrieves a lead by ID within a workspace
func (m *MockLeadRepository) GetByID(workspaceID, id uuid.UUID) (*domain.Lead, error) {
	if l, ok := m.Leads[id]; ok && l.WorkspaceID == workspaceID {
		return l, nil
	}
	return nil, domain.ErrLeadNotFound
}

// ListByWorkspace lists leads of a workspace
func (m *MockLeadRepository) ListByWorkspace(workspaceID uuid.UUID) ([]*domain.LeadWithRelations, error) {
	var result []*domain.LeadWithRelations
	for _, l := range m.Leads {
		if l.WorkspaceID == workspaceID {
			result = append(result, &domain.LeadWithRelations{Lead: *l})
		}
	}
	return result, nil
}

// Update updates a lead
func (m *MockLeadRepository) Update(lead *domain.Lead) (*domain.Lead, error) {
	existing, ok := m.Leads[lead.ID]
	if !ok || existing.WorkspaceID != lead.WorkspaceID {
		return nil, domain.ErrLeadNotFound
	}
	updated := *lead
	updated.UpdatedAt = time.Now()
	m.Leads[updated.ID] = &updated
	return &updated, nil
}

// Delete removes a lead
func (m *MockLeadRepository) Delete(workspaceID, id uuid.UUID) error {
	if l, ok := m.Leads[id]; ok && l.WorkspaceID == workspaceID {
		delete(m.Leads, id)
		return nil
	}
	return domain.ErrLeadNotFound
}

// CountActive counts active leads of a workspace
func (m *MockLeadRepository) CountActive(workspaceID uuid.UUID) (int64, error) {
	var count int64
	for _, l := range m.Leads {
		if l.WorkspaceID == workspaceID && l.Status == domain.StatusActive {
			count++
		}
	}
	return count, nil
}

// SumActiveBudget sums budgets of active leads
func (m *MockLeadRepository) SumActiveBudget(workspaceID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, l := range m.Leads {
		if l.WorkspaceID == workspaceID && l.Status == domain.StatusActive {
			sum = sum.Add(l.Budget)
		}
	}
	return sum, nil
}

// ListRecent lists the most recently created leads
func (m *MockLeadRepository) ListRecent(workspaceID uuid.UUID, limit int) ([]*domain.LeadWithRelations, error) {
	all, err := m.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// MockPipelineRepository is a mock implementation of domain.PipelineRepository
type MockPipelineRepository struct {
	Pipelines map[uuid.UUID]*domain.Pipeline
	Stages    map[uuid.UUID]*domain.PipelineStage
	Leads     *MockLeadRepository
	ApplyErr  error
}

// NewMockPipelineRepository creates a new MockPipelineRepository
func NewMockPipelineRepository() *MockPipelineRepository {
	return &MockPipelineRepository{
		Pipelines: make(map[uuid.UUID]*domain.Pipeline),
		Stages:    make(map[uuid.UUID]*domain.PipelineStage),
	}
}

// GetByWorkspace retrieves the workspace's pipeline
func (m *MockPipelineRepository) GetByWorkspace(workspaceID uuid.UUID) (*domain.Pipeline, error) {
	for _, p := range m.Pipelines {
		if p.WorkspaceID == workspaceID {
			return p, nil
		}
	}
	return nil, domain.ErrPipelineNotFound
}

// GetWithStages retrieves the workspace's pipeline with its ordered stages
func (m *MockPipelineRepository) GetWithStages(workspaceID uuid.UUID) (*domain.PipelineWithStages, error) {
	pipeline, err := m.GetByWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	stages, err := m.ListStages(pipeline.ID)
	if err != nil {
		return nil, err
	}
	return &domain.PipelineWithStages{Pipeline: *pipeline, Stages: stages}, nil
}

// Create creates a new pipeline
func (m *MockPipelineRepository) Create(pipeline *domain.Pipeline) (*domain.Pipeline, error) {
	created := *pipeline
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.Pipelines[created.ID] = &created
	return &created, nil
}

// UpdateTemplateType updates the pipeline's template type
func (m *MockPipelineRepository) UpdateTemplateType(id uuid.UUID, templateType string) error {
	p, ok := m.Pipelines[id]
	if !ok {
		return domain.ErrPipelineNotFound
	}
	p.TemplateType = templateType
	return nil
}

// ListStages lists a pipeline's stages by ascending order index
func (m *MockPipelineRepository) ListStages(pipelineID uuid.UUID) ([]*domain.PipelineStage, error) {
	var result []*domain.PipelineStage
	for _, s := range m.Stages {
		if s.PipelineID == pipelineID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderIndex < result[j].OrderIndex })
	return result, nil
}

// GetStageByID retrieves a stage
func (m *MockPipelineRepository) GetStageByID(id uuid.UUID) (*domain.PipelineStage, error) {
	if s, ok := m.Stages[id]; ok {
		return s, nil
	}
	return nil, domain.ErrStageNotFound
}

// ApplyStagePlan applies a reconciliation plan against the in-memory stage set
func (m *MockPipelineRepository) ApplyStagePlan(pipelineID uuid.UUID, plan domain.StagePlan) error {
	if m.ApplyErr != nil {
		return m.ApplyErr
	}
	for _, u := range plan.Updates {
		s, ok := m.Stages[u.ID]
		if !ok || s.PipelineID != pipelineID {
			continue
		}
		s.Name = u.Name
		s.OrderIndex = u.OrderIndex
		s.Color = u.Color
		s.BgColor = u.BgColor
	}
	for _, c := range plan.Creates {
		id := uuid.New()
		if c.ID != nil {
			id = *c.ID
		}
		m.Stages[id] = &domain.PipelineStage{
			ID:         id,
			PipelineID: pipelineID,
			Name:       c.Name,
			OrderIndex: c.OrderIndex,
			Color:      c.Color,
			BgColor:    c.BgColor,
			CreatedAt:  time.Now(),
		}
	}
	for _, id := range plan.DeleteIDs {
		if s, ok := m.Stages[id]; ok && s.PipelineID == pipelineID {
			delete(m.Stages, id)
			if m.Leads != nil {
				for _, l := range m.Leads.Leads {
					if l.CurrentStageID != nil && *l.CurrentStageID == id {
						l.CurrentStageID = nil
					}
				}
			}
		}
	}
	return nil
}

// AddStage adds a stage to the mock repository (helper for tests)
func (m *MockPipelineRepository) AddStage(stage *domain.PipelineStage) {
	m.Stages[stage.ID] = stage
}

// MockNoteRepository is a mock implementation of domain.NoteRepository.
// Set FailWrites to simulate a broken notes path.
type MockNoteRepository struct {
	Notes      map[uuid.UUID]*domain.Note
	Authors    map[uuid.UUID]*domain.User
	FailWrites bool
}

// NewMockNoteRepository creates a new MockNoteRepository
func NewMockNoteRepository() *MockNoteRepository {
	return &MockNoteRepository{
		Notes:   make(map[uuid.UUID]*domain.Note),
		Authors: make(map[uuid.UUID]*domain.User),
	}
}

// Create creates a new note
func (m *MockNoteRepository) Create(note *domain.Note) (*domain.Note, error) {
	if m.FailWrites {
		return nil, errors.New("note write failed")
	}
	created := *note
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	m.Notes[created.ID] = &created
	return &created, nil
}

// CreateMany inserts a batch of notes
func (m *MockNoteRepository) CreateMany(notes []*domain.Note) error {
	if m.FailWrites {
		return errors.New("note write failed")
	}
	for _, note := range notes {
		if _, err := m.Create(note); err != nil {
			return err
		}
	}
	return nil
}

// ListByWorkspace lists notes with the filter applied, newest first
func (m *MockNoteRepository) ListByWorkspace(workspaceID uuid.UUID, filter domain.NoteFilter) ([]*domain.NoteWithAuthor, error) {
	var result []*domain.NoteWithAuthor
	for _, n := range m.Notes {
		if n.WorkspaceID != workspaceID {
			continue
		}
		if filter.ContactID != nil && (n.ContactID == nil || *n.ContactID != *filter.ContactID) {
			continue
		}
		if filter.LeadID != nil && (n.LeadID == nil || *n.LeadID != *filter.LeadID) {
			continue
		}
		if filter.CompanyID != nil && (n.CompanyID == nil || *n.CompanyID != *filter.CompanyID) {
			continue
		}
		result = append(result, m.withAuthor(n))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// GetByID retrieves a note with its author resolved
func (m *MockNoteRepository) GetByID(workspaceID, id uuid.UUID) (*domain.NoteWithAuthor, error) {
	if n, ok := m.Notes[id]; ok && n.WorkspaceID == workspaceID {
		return m.withAuthor(n), nil
	}
	return nil, domain.ErrNoteNotFound
}

func (m *MockNoteRepository) withAuthor(n *domain.Note) *domain.NoteWithAuthor {
	na := &domain.NoteWithAuthor{Note: *n}
	if author, ok := m.Authors[n.CreatedBy]; ok {
		na.AuthorName = author.Name
		na.AuthorAvatarURL = author.AvatarURL
	}
	return na
}

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	Products map[uuid.UUID]*domain.Product
}

// NewMockProductRepository creates a new MockProductRepository
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{Products: make(map[uuid.UUID]*domain.Product)}
}

// Create creates a new product
func (m *MockProductRepository) Create(product *domain.Product) (*domain.Product, error) {
	created := *product
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.Products[created.ID] = &created
	return &created, nil
}

// ListActiveByWorkspace lists active products of a workspace
func (m *MockProductRepository) ListActiveByWorkspace(workspaceID uuid.UUID) ([]*domain.Product, error) {
	var result []*domain.Product
	for _, p := range m.Products {
		if p.WorkspaceID == workspaceID && p.IsActive {
			result = append(result, p)
		}
	}
	return result, nil
}
