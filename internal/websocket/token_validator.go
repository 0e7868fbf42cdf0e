package websocket

import (
	"errors"

	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/token"
)

// ErrInvalidToken is returned when token validation fails
var ErrInvalidToken = errors.New("invalid token")

// TokenValidator validates bearer tokens carried in the WebSocket handshake
// and resolves the caller's workspace.
type TokenValidator struct {
	tokens *token.Manager
}

// NewTokenValidator creates a new TokenValidator
func NewTokenValidator(tokens *token.Manager) *TokenValidator {
	return &TokenValidator{tokens: tokens}
}

// ValidateToken validates a token string and returns the workspace it scopes
func (v *TokenValidator) ValidateToken(raw string) (uuid.UUID, error) {
	claims, err := v.tokens.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return claims.WorkspaceID, nil
}
