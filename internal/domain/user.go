package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a workspace member. Email is unique per workspace, not
// globally: the same address may register separate workspaces.
type User struct {
	ID           uuid.UUID `json:"id"`
	WorkspaceID  uuid.UUID `json:"workspaceId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	AvatarURL    *string   `json:"avatarUrl"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserWithWorkspace pairs a user with its workspace row, used by login to
// pick among same-email users across workspaces sharing a name.
type UserWithWorkspace struct {
	User      User
	Workspace Workspace
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	// FindActiveByEmailAndWorkspaceName returns all active users with the
	// given email inside workspaces carrying the given name.
	FindActiveByEmailAndWorkspaceName(email, workspaceName string) ([]*UserWithWorkspace, error)
	ListActiveByWorkspace(workspaceID uuid.UUID) ([]*User, error)
}
