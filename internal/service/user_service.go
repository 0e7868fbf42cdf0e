package service

import (
	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/domain"
)

// UserService handles workspace member queries
type UserService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUsers retrieves the active users of a workspace
func (s *UserService) GetUsers(workspaceID uuid.UUID) ([]*domain.User, error) {
	return s.userRepo.ListActiveByWorkspace(workspaceID)
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}
