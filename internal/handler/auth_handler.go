package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/service"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the register request body
type RegisterRequest struct {
	WorkspaceName string `json:"workspaceName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	WorkspaceName string `json:"workspaceName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl"`
}

// WorkspaceResponse represents a workspace in API responses
type WorkspaceResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// AuthResponse represents a successful register or login response
type AuthResponse struct {
	Token     string            `json:"token"`
	User      UserResponse      `json:"user"`
	Workspace WorkspaceResponse `json:"workspace"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.authService.Register(service.RegisterInput{
		WorkspaceName: req.WorkspaceName,
		Email:         req.Email,
		Password:      req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrWorkspaceNameShort) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "workspaceName", Message: "Workspace name must be at least 3 characters"},
			})
		}
		if errors.Is(err, domain.ErrEmailInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "Email is invalid"},
			})
		}
		if errors.Is(err, domain.ErrPasswordTooShort) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password", Message: "Password must be at least 6 characters"},
			})
		}
		log.Error().Err(err).Msg("Failed to register workspace")
		return NewInternalError(c, "Failed to register")
	}

	return c.JSON(http.StatusCreated, toAuthResponse(result))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.authService.Login(service.LoginInput{
		WorkspaceName: req.WorkspaceName,
		Email:         req.Email,
		Password:      req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Credenciales inválidas")
		}
		log.Error().Err(err).Msg("Failed to log in")
		return NewInternalError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		User:      toUserResponse(result.User),
		Workspace: WorkspaceResponse{
			ID:        result.Workspace.ID.String(),
			Name:      result.Workspace.Name,
			Subdomain: result.Workspace.Subdomain,
		},
	}
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}
