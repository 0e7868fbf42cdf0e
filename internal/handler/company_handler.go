package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/middleware"
	"github.com/ventia/ventia-backend/internal/service"
	"github.com/ventia/ventia-backend/internal/websocket"
)

// CompanyHandler handles company-related HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
	publisher      websocket.EventPublisher
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *service.CompanyService, publisher websocket.EventPublisher) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, publisher: publisher}
}

// CreateCompanyRequest represents the create company request body
type CreateCompanyRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Website    string     `json:"website"`
	Industry   string     `json:"industry"`
	Address    string     `json:"address"`
	AssignedTo *uuid.UUID `json:"assignedTo"`
}

// UpdateCompanyRequest represents the update company request body.
// Omitted fields are left untouched.
type UpdateCompanyRequest struct {
	Name       *string    `json:"name"`
	Email      *string    `json:"email"`
	Phone      *string    `json:"phone"`
	Website    *string    `json:"website"`
	Industry   *string    `json:"industry"`
	Address    *string    `json:"address"`
	AssignedTo *uuid.UUID `json:"assignedTo"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Website     string            `json:"website"`
	Industry    string            `json:"industry"`
	Address     string            `json:"address"`
	AssignedTo  *string           `json:"assignedTo"`
	Assignee    *AssigneeResponse `json:"assignee,omitempty"`
	CreatedBy   string            `json:"createdBy"`
	CreatorName string            `json:"creatorName,omitempty"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

// CreateCompany handles POST /api/companies
func (h *CompanyHandler) CreateCompany(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}
	userID := middleware.GetUserID(c)

	var req CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.CreateCompanyInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Website:    req.Website,
		Industry:   req.Industry,
		Address:    req.Address,
		AssignedTo: req.AssignedTo,
	}

	company, err := h.companyService.CreateCompany(workspaceID, userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to create company")
		return NewInternalError(c, "Failed to create company")
	}

	response := toCompanyResponse(company)
	h.publisher.Publish(workspaceID, websocket.CompanyCreated(response))

	return c.JSON(http.StatusCreated, response)
}

// GetCompanies handles GET /api/companies
func (h *CompanyHandler) GetCompanies(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	companies, err := h.companyService.GetCompanies(workspaceID)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to get companies")
		return NewInternalError(c, "Failed to get companies")
	}

	response := make([]CompanyResponse, len(companies))
	for i, company := range companies {
		response[i] = toCompanyListResponse(company)
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateCompany handles PATCH /api/companies/:id
func (h *CompanyHandler) UpdateCompany(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid company ID", nil)
	}

	var req UpdateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateCompanyInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Website:    req.Website,
		Industry:   req.Industry,
		Address:    req.Address,
		AssignedTo: req.AssignedTo,
	}

	company, err := h.companyService.UpdateCompany(workspaceID, userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return NewNotFoundError(c, "Company not found")
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Str("company_id", id.String()).Msg("Failed to update company")
		return NewInternalError(c, "Failed to update company")
	}

	response := toCompanyResponse(company)
	h.publisher.Publish(workspaceID, websocket.CompanyUpdated(response))

	return c.JSON(http.StatusOK, response)
}

// DeleteCompany handles DELETE /api/companies/:id
func (h *CompanyHandler) DeleteCompany(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid company ID", nil)
	}

	if err := h.companyService.DeleteCompany(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return NewNotFoundError(c, "Company not found")
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Str("company_id", id.String()).Msg("Failed to delete company")
		return NewInternalError(c, "Failed to delete company")
	}

	h.publisher.Publish(workspaceID, websocket.CompanyDeleted(map[string]string{"id": id.String()}))

	return c.NoContent(http.StatusNoContent)
}

func toCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:         company.ID.String(),
		Name:       company.Name,
		Email:      company.Email,
		Phone:      company.Phone,
		Website:    company.Website,
		Industry:   company.Industry,
		Address:    company.Address,
		AssignedTo: uuidPtrString(company.AssignedTo),
		CreatedBy:  company.CreatedBy.String(),
		CreatedAt:  company.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  company.UpdatedAt.Format(time.RFC3339),
	}
}

func toCompanyListResponse(company *domain.CompanyWithRelations) CompanyResponse {
	response := toCompanyResponse(&company.Company)
	response.CreatorName = company.CreatorName
	response.Assignee = toAssigneeResponse(company.Assignee)
	return response
}
