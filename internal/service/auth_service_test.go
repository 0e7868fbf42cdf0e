package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/testutil"
	"github.com/ventia/ventia-backend/internal/token"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, *testutil.MockUserRepository) {
	t.Helper()
	tokens, err := token.NewManager("test-secret")
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository(userRepo)
	return NewAuthService(userRepo, workspaceRepo, tokens), userRepo
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthService(t)

	result, err := svc.Register(RegisterInput{
		WorkspaceName: "Acme Ventas",
		Email:         "Maria@Example.com",
		Password:      "secret1",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.Token == "" {
		t.Error("Register() returned empty token")
	}
	if result.Workspace.Name != "Acme Ventas" {
		t.Errorf("workspace name = %q, want %q", result.Workspace.Name, "Acme Ventas")
	}
	if result.User.Email != "maria@example.com" {
		t.Errorf("user email = %q, want lowercased", result.User.Email)
	}
	if result.User.Name != "maria" {
		t.Errorf("user name = %q, want email local part", result.User.Name)
	}
	if !result.User.IsActive {
		t.Error("registered user should be active")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("secret1")); err != nil {
		t.Errorf("password hash does not verify: %v", err)
	}
}

func TestRegisterSubdomainShape(t *testing.T) {
	svc, _ := newAuthService(t)

	result, err := svc.Register(RegisterInput{
		WorkspaceName: "Acme Ventas 2024",
		Email:         "a@b.co",
		Password:      "secret1",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	sub := result.Workspace.Subdomain
	if !strings.HasPrefix(sub, "acme-ventas-2024-") {
		t.Errorf("subdomain = %q, want slug prefix", sub)
	}
	suffix := strings.TrimPrefix(sub, "acme-ventas-2024-")
	if len(suffix) != 5 {
		t.Errorf("subdomain suffix = %q, want 5 characters", suffix)
	}
	for _, r := range suffix {
		if !strings.ContainsRune(subdomainAlphabet, r) {
			t.Errorf("subdomain suffix contains %q", r)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"short workspace name", RegisterInput{WorkspaceName: "ab", Email: "a@b.co", Password: "secret1"}, domain.ErrWorkspaceNameShort},
		{"invalid email", RegisterInput{WorkspaceName: "Acme", Email: "not-an-email", Password: "secret1"}, domain.ErrEmailInvalid},
		{"short password", RegisterInput{WorkspaceName: "Acme", Email: "a@b.co", Password: "12345"}, domain.ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func seedLoginUser(t *testing.T, userRepo *testutil.MockUserRepository, workspaceName, email, password string, createdAt time.Time) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error = %v", err)
	}
	ws := &domain.Workspace{ID: uuid.New(), Name: workspaceName, Subdomain: "x", CreatedAt: createdAt}
	user := &domain.User{
		ID:           uuid.New(),
		WorkspaceID:  ws.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Test",
		IsActive:     true,
	}
	userRepo.AddWorkspace(ws)
	userRepo.AddUser(user)
	return user
}

func TestLogin(t *testing.T) {
	svc, userRepo := newAuthService(t)
	user := seedLoginUser(t, userRepo, "Acme", "maria@example.com", "secret1", time.Now())

	result, err := svc.Login(LoginInput{WorkspaceName: "Acme", Email: "maria@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != user.ID {
		t.Errorf("logged in user = %v, want %v", result.User.ID, user.ID)
	}
	if result.Token == "" {
		t.Error("Login() returned empty token")
	}
}

func TestLoginPrefersOldestWorkspace(t *testing.T) {
	svc, userRepo := newAuthService(t)
	older := seedLoginUser(t, userRepo, "Acme", "maria@example.com", "secret1", time.Now().Add(-48*time.Hour))
	seedLoginUser(t, userRepo, "Acme", "maria@example.com", "secret1", time.Now())

	result, err := svc.Login(LoginInput{WorkspaceName: "Acme", Email: "maria@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Workspace.ID != older.WorkspaceID {
		t.Errorf("workspace = %v, want oldest %v", result.Workspace.ID, older.WorkspaceID)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, userRepo := newAuthService(t)
	seedLoginUser(t, userRepo, "Acme", "maria@example.com", "secret1", time.Now())

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"wrong password", LoginInput{WorkspaceName: "Acme", Email: "maria@example.com", Password: "wrong"}},
		{"unknown email", LoginInput{WorkspaceName: "Acme", Email: "nobody@example.com", Password: "secret1"}},
		{"wrong workspace", LoginInput{WorkspaceName: "Other", Email: "maria@example.com", Password: "secret1"}},
		{"empty password", LoginInput{WorkspaceName: "Acme", Email: "maria@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.input)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginIgnoresInactiveUsers(t *testing.T) {
	svc, userRepo := newAuthService(t)
	user := seedLoginUser(t, userRepo, "Acme", "maria@example.com", "secret1", time.Now())
	user.IsActive = false

	_, err := svc.Login(LoginInput{WorkspaceName: "Acme", Email: "maria@example.com", Password: "secret1"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}
