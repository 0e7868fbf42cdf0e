package service

import (
	"fmt"
	"math/rand"
	"net/mail"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/token"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// AuthService handles registration and login
type AuthService struct {
	userRepo      domain.UserRepository
	workspaceRepo domain.WorkspaceRepository
	tokens        *token.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, workspaceRepo domain.WorkspaceRepository, tokens *token.Manager) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		workspaceRepo: workspaceRepo,
		tokens:        tokens,
	}
}

// AuthResult is the outcome of a successful registration or login
type AuthResult struct {
	Token     string
	User      *domain.User
	Workspace *domain.Workspace
}

// RegisterInput contains input for creating a workspace with its first user
type RegisterInput struct {
	WorkspaceName string
	Email         string
	Password      string
}

// Register creates a workspace and its first user in one transaction and
// returns a signed token for the new user.
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.WorkspaceName)
	if len(name) < domain.MinWorkspaceNameLength {
		return nil, domain.ErrWorkspaceNameShort
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrEmailInvalid
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	workspace := &domain.Workspace{
		Name:      name,
		Subdomain: buildSubdomain(name),
	}
	owner := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         emailLocalPart(email),
	}

	createdWorkspace, createdOwner, err := s.workspaceRepo.CreateWithOwner(workspace, owner)
	if err != nil {
		log.Error().Err(err).Str("workspace_name", name).Msg("Failed to register workspace")
		return nil, err
	}

	signed, err := s.tokens.Issue(createdOwner.ID, createdWorkspace.ID, createdOwner.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Info().
		Str("workspace_id", createdWorkspace.ID.String()).
		Str("subdomain", createdWorkspace.Subdomain).
		Msg("Workspace registered")

	return &AuthResult{Token: signed, User: createdOwner, Workspace: createdWorkspace}, nil
}

// LoginInput contains input for authenticating within a named workspace
type LoginInput struct {
	WorkspaceName string
	Email         string
	Password      string
}

// Login authenticates a user inside workspaces carrying the given name. The
// same email may exist in several workspaces of that name; the oldest
// workspace wins. Misses always surface as ErrInvalidCredentials.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	name := strings.TrimSpace(input.WorkspaceName)
	if email == "" || name == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	matches, err := s.userRepo.FindActiveByEmailAndWorkspaceName(email, name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up login candidates")
		return nil, err
	}

	var best *domain.UserWithWorkspace
	for _, match := range matches {
		if bcrypt.CompareHashAndPassword([]byte(match.User.PasswordHash), []byte(input.Password)) != nil {
			continue
		}
		if best == nil || match.Workspace.CreatedAt.Before(best.Workspace.CreatedAt) {
			best = match
		}
	}
	if best == nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(best.User.ID, best.Workspace.ID, best.User.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	user := best.User
	workspace := best.Workspace
	return &AuthResult{Token: signed, User: &user, Workspace: &workspace}, nil
}

const subdomainAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// buildSubdomain slugs the workspace name and appends a short random suffix
// so repeated names stay distinguishable.
func buildSubdomain(name string) string {
	slug := strings.ToLower(name)
	slug = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, slug)

	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = subdomainAlphabet[rand.Intn(len(subdomainAlphabet))]
	}
	return slug + "-" + string(suffix)
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
