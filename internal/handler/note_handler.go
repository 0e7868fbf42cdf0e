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

// NoteHandler handles note-related HTTP requests
type NoteHandler struct {
	noteService *service.NoteService
	publisher   websocket.EventPublisher
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteService *service.NoteService, publisher websocket.EventPublisher) *NoteHandler {
	return &NoteHandler{noteService: noteService, publisher: publisher}
}

// CreateNoteRequest represents the create note request body
type CreateNoteRequest struct {
	Content   string     `json:"content"`
	ContactID *uuid.UUID `json:"contactId"`
	LeadID    *uuid.UUID `json:"leadId"`
	CompanyID *uuid.UUID `json:"companyId"`
}

// NoteAuthorResponse is the author summary embedded in note responses
type NoteAuthorResponse struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID        string              `json:"id"`
	Content   string              `json:"content"`
	Type      string              `json:"type"`
	ContactID *string             `json:"contactId"`
	LeadID    *string             `json:"leadId"`
	CompanyID *string             `json:"companyId"`
	CreatedBy string              `json:"createdBy"`
	Author    *NoteAuthorResponse `json:"author,omitempty"`
	CreatedAt string              `json:"createdAt"`
}

// GetNotes handles GET /api/notes with optional contactId, leadId or
// companyId query filters
func (h *NoteHandler) GetNotes(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var filter domain.NoteFilter
	if raw := c.QueryParam("contactId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return NewValidationError(c, "Invalid contactId filter", nil)
		}
		filter.ContactID = &id
	}
	if raw := c.QueryParam("leadId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return NewValidationError(c, "Invalid leadId filter", nil)
		}
		filter.LeadID = &id
	}
	if raw := c.QueryParam("companyId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return NewValidationError(c, "Invalid companyId filter", nil)
		}
		filter.CompanyID = &id
	}

	notes, err := h.noteService.GetNotes(workspaceID, filter)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to get notes")
		return NewInternalError(c, "Failed to get notes")
	}

	response := make([]NoteResponse, len(notes))
	for i, note := range notes {
		response[i] = toNoteListResponse(note)
	}

	return c.JSON(http.StatusOK, response)
}

// CreateNote handles POST /api/notes
func (h *NoteHandler) CreateNote(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}
	userID := middleware.GetUserID(c)

	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.CreateNoteInput{
		Content:   req.Content,
		ContactID: req.ContactID,
		LeadID:    req.LeadID,
		CompanyID: req.CompanyID,
	}

	note, err := h.noteService.CreateNote(workspaceID, userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrContentRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "content", Message: "Content is required"},
			})
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to create note")
		return NewInternalError(c, "Failed to create note")
	}

	response := toNoteResponse(note)
	h.publisher.Publish(workspaceID, websocket.NoteCreated(response))

	return c.JSON(http.StatusCreated, response)
}

func toNoteResponse(note *domain.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID.String(),
		Content:   note.Content,
		Type:      note.Type,
		ContactID: uuidPtrString(note.ContactID),
		LeadID:    uuidPtrString(note.LeadID),
		CompanyID: uuidPtrString(note.CompanyID),
		CreatedBy: note.CreatedBy.String(),
		CreatedAt: note.CreatedAt.Format(time.RFC3339),
	}
}

func toNoteListResponse(note *domain.NoteWithAuthor) NoteResponse {
	response := toNoteResponse(&note.Note)
	response.Author = &NoteAuthorResponse{
		Name:      note.AuthorName,
		AvatarURL: note.AuthorAvatarURL,
	}
	return response
}
