package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/middleware"
	"github.com/ventia/ventia-backend/internal/service"
	"github.com/ventia/ventia-backend/internal/websocket"
)

// LeadHandler handles lead-related HTTP requests
type LeadHandler struct {
	leadService *service.LeadService
	publisher   websocket.EventPublisher
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *service.LeadService, publisher websocket.EventPublisher) *LeadHandler {
	return &LeadHandler{leadService: leadService, publisher: publisher}
}

// CreateLeadRequest represents the create lead request body. Status carries
// either a pipeline stage id or a legacy status string.
type CreateLeadRequest struct {
	Name       string           `json:"name"`
	Budget     *decimal.Decimal `json:"budget"`
	Currency   string           `json:"currency"`
	Status     string           `json:"status"`
	ContactID  *uuid.UUID       `json:"contactId"`
	AssignedTo *uuid.UUID       `json:"assignedTo"`
}

// UpdateLeadRequest represents the update lead request body.
// Omitted fields are left untouched.
type UpdateLeadRequest struct {
	Name       *string          `json:"name"`
	Budget     *decimal.Decimal `json:"budget"`
	Currency   *string          `json:"currency"`
	Status     *string          `json:"status"`
	ContactID  *uuid.UUID       `json:"contactId"`
	AssignedTo *uuid.UUID       `json:"assignedTo"`
}

// LeadContactResponse is the contact summary embedded in lead responses
type LeadContactResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	CompanyName *string `json:"companyName,omitempty"`
}

// LeadResponse represents a lead in API responses. Status carries the stage
// id when the lead sits on a pipeline stage, otherwise the legacy status.
type LeadResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Budget      decimal.Decimal      `json:"budget"`
	Currency    string               `json:"currency"`
	Status      string               `json:"status"`
	ContactID   *string              `json:"contactId"`
	Contact     *LeadContactResponse `json:"contact,omitempty"`
	AssignedTo  *string              `json:"assignedTo"`
	CreatedBy   string               `json:"createdBy"`
	CreatorName string               `json:"creatorName,omitempty"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
}

// CreateLead handles POST /api/leads
func (h *LeadHandler) CreateLead(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}
	userID := middleware.GetUserID(c)

	var req CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.CreateLeadInput{
		Name:       req.Name,
		Budget:     req.Budget,
		Currency:   req.Currency,
		Status:     req.Status,
		ContactID:  req.ContactID,
		AssignedTo: req.AssignedTo,
	}

	lead, err := h.leadService.CreateLead(workspaceID, userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to create lead")
		return NewInternalError(c, "Failed to create lead")
	}

	response := toLeadResponse(lead)
	h.publisher.Publish(workspaceID, websocket.LeadCreated(response))

	return c.JSON(http.StatusCreated, response)
}

// GetLeads handles GET /api/leads
func (h *LeadHandler) GetLeads(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	leads, err := h.leadService.GetLeads(workspaceID)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to get leads")
		return NewInternalError(c, "Failed to get leads")
	}

	response := make([]LeadResponse, len(leads))
	for i, lead := range leads {
		response[i] = toLeadListResponse(lead)
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateLead handles PATCH /api/leads/:id
func (h *LeadHandler) UpdateLead(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid lead ID", nil)
	}

	var req UpdateLeadRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateLeadInput{
		Name:       req.Name,
		Budget:     req.Budget,
		Currency:   req.Currency,
		Status:     req.Status,
		ContactID:  req.ContactID,
		AssignedTo: req.AssignedTo,
	}

	lead, err := h.leadService.UpdateLead(workspaceID, userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return NewNotFoundError(c, "Lead not found")
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Str("lead_id", id.String()).Msg("Failed to update lead")
		return NewInternalError(c, "Failed to update lead")
	}

	response := toLeadResponse(lead)
	h.publisher.Publish(workspaceID, websocket.LeadUpdated(response))

	return c.JSON(http.StatusOK, response)
}

// DeleteLead handles DELETE /api/leads/:id
func (h *LeadHandler) DeleteLead(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid lead ID", nil)
	}

	if err := h.leadService.DeleteLead(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return NewNotFoundError(c, "Lead not found")
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Str("lead_id", id.String()).Msg("Failed to delete lead")
		return NewInternalError(c, "Failed to delete lead")
	}

	h.publisher.Publish(workspaceID, websocket.LeadDeleted(map[string]string{"id": id.String()}))

	return c.NoContent(http.StatusNoContent)
}

func toLeadResponse(lead *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:         lead.ID.String(),
		Name:       lead.Name,
		Budget:     lead.Budget,
		Currency:   lead.Currency,
		Status:     lead.DisplayStatus(),
		ContactID:  uuidPtrString(lead.ContactID),
		AssignedTo: uuidPtrString(lead.AssignedTo),
		CreatedBy:  lead.CreatedBy.String(),
		CreatedAt:  lead.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  lead.UpdatedAt.Format(time.RFC3339),
	}
}

func toLeadListResponse(lead *domain.LeadWithRelations) LeadResponse {
	response := toLeadResponse(&lead.Lead)
	response.CreatorName = lead.CreatorName
	if lead.Contact != nil {
		response.Contact = &LeadContactResponse{
			ID:          lead.Contact.ID.String(),
			FirstName:   lead.Contact.FirstName,
			LastName:    lead.Contact.LastName,
			CompanyName: lead.Contact.CompanyName,
		}
	}
	return response
}
