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

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contactService *service.ContactService
	publisher      websocket.EventPublisher
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *service.ContactService, publisher websocket.EventPublisher) *ContactHandler {
	return &ContactHandler{contactService: contactService, publisher: publisher}
}

// CreateContactRequest represents the create contact request body
type CreateContactRequest struct {
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Position   string     `json:"position"`
	CompanyID  *uuid.UUID `json:"companyId"`
	AssignedTo *uuid.UUID `json:"assignedTo"`
}

// UpdateContactRequest represents the update contact request body.
// Omitted fields are left untouched.
type UpdateContactRequest struct {
	FirstName  *string    `json:"firstName"`
	LastName   *string    `json:"lastName"`
	Email      *string    `json:"email"`
	Phone      *string    `json:"phone"`
	Position   *string    `json:"position"`
	CompanyID  *uuid.UUID `json:"companyId"`
	AssignedTo *uuid.UUID `json:"assignedTo"`
}

// AssigneeResponse is the user summary embedded in list responses
type AssigneeResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID          string            `json:"id"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Position    string            `json:"position"`
	CompanyID   *string           `json:"companyId"`
	CompanyName *string           `json:"companyName,omitempty"`
	AssignedTo  *string           `json:"assignedTo"`
	Assignee    *AssigneeResponse `json:"assignee,omitempty"`
	CreatedBy   string            `json:"createdBy"`
	CreatorName string            `json:"creatorName,omitempty"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

// CreateContact handles POST /api/contacts
func (h *ContactHandler) CreateContact(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}
	userID := middleware.GetUserID(c)

	var req CreateContactRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.CreateContactInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		CompanyID:  req.CompanyID,
		AssignedTo: req.AssignedTo,
	}

	contact, err := h.contactService.CreateContact(workspaceID, userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "firstName", Message: "First name is required"},
			})
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to create contact")
		return NewInternalError(c, "Failed to create contact")
	}

	response := toContactResponse(contact)
	h.publisher.Publish(workspaceID, websocket.ContactCreated(response))

	return c.JSON(http.StatusCreated, response)
}

// GetContacts handles GET /api/contacts
func (h *ContactHandler) GetContacts(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	contacts, err := h.contactService.GetContacts(workspaceID)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to get contacts")
		return NewInternalError(c, "Failed to get contacts")
	}

	response := make([]ContactResponse, len(contacts))
	for i, contact := range contacts {
		response[i] = toContactListResponse(contact)
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateContact handles PUT /api/contacts/:id
func (h *ContactHandler) UpdateContact(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid contact ID", nil)
	}

	var req UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateContactInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		CompanyID:  req.CompanyID,
		AssignedTo: req.AssignedTo,
	}

	contact, err := h.contactService.UpdateContact(workspaceID, userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return NewNotFoundError(c, "Contact not found")
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Str("contact_id", id.String()).Msg("Failed to update contact")
		return NewInternalError(c, "Failed to update contact")
	}

	response := toContactResponse(contact)
	h.publisher.Publish(workspaceID, websocket.ContactUpdated(response))

	return c.JSON(http.StatusOK, response)
}

// DeleteContact handles DELETE /api/contacts/:id
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid contact ID", nil)
	}

	if err := h.contactService.DeleteContact(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return NewNotFoundError(c, "Contact not found")
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Str("contact_id", id.String()).Msg("Failed to delete contact")
		return NewInternalError(c, "Failed to delete contact")
	}

	h.publisher.Publish(workspaceID, websocket.ContactDeleted(map[string]string{"id": id.String()}))

	return c.NoContent(http.StatusNoContent)
}

func toContactResponse(contact *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:         contact.ID.String(),
		FirstName:  contact.FirstName,
		LastName:   contact.LastName,
		Email:      contact.Email,
		Phone:      contact.Phone,
		Position:   contact.Position,
		CompanyID:  uuidPtrString(contact.CompanyID),
		AssignedTo: uuidPtrString(contact.AssignedTo),
		CreatedBy:  contact.CreatedBy.String(),
		CreatedAt:  contact.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  contact.UpdatedAt.Format(time.RFC3339),
	}
}

func toContactListResponse(contact *domain.ContactWithRelations) ContactResponse {
	response := toContactResponse(&contact.Contact)
	response.CompanyName = contact.CompanyName
	response.CreatorName = contact.CreatorName
	response.Assignee = toAssigneeResponse(contact.Assignee)
	return response
}

func toAssigneeResponse(assignee *domain.Assignee) *AssigneeResponse {
	if assignee == nil {
		return nil
	}
	return &AssigneeResponse{
		ID:        assignee.ID.String(),
		Name:      assignee.Name,
		AvatarURL: assignee.AvatarURL,
	}
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
