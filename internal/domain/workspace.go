package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the tenant boundary; every other entity belongs to exactly one
type Workspace struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkspaceRepository defines the interface for workspace persistence operations
type WorkspaceRepository interface {
	GetByID(id uuid.UUID) (*Workspace, error)
	// CreateWithOwner atomically creates a workspace and its first user
	CreateWithOwner(workspace *Workspace, owner *User) (*Workspace, *User, error)
}
