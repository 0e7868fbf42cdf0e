// Package token issues and validates the HS256 bearer tokens carried by API
// and WebSocket clients.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TTL is the token lifetime
const TTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned when parsing or validation fails
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity of an authenticated caller. Every entity
// query and mutation is scoped to WorkspaceID.
type Claims struct {
	jwt.RegisteredClaims
	UserID      uuid.UUID `json:"userId"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
	Email       string    `json:"email"`
}

// Manager signs and parses tokens with a shared HMAC secret
type Manager struct {
	secret []byte
}

// NewManager creates a Manager; the secret must not be empty
func NewManager(secret string) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token: secret is required")
	}
	return &Manager{secret: []byte(secret)}, nil
}

// Issue signs a token for the given user
func (m *Manager) Issue(userID, workspaceID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
		UserID:      userID,
		WorkspaceID: workspaceID,
		Email:       email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse validates a token string and returns its claims
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil || claims.WorkspaceID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
