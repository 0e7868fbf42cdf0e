package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/ventia/ventia-backend/internal/service"
	"github.com/ventia/ventia-backend/internal/testutil"
	"github.com/ventia/ventia-backend/internal/token"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *testutil.MockUserRepository) {
	t.Helper()
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository(userRepo)
	tokens, err := token.NewManager("test-secret")
	if err != nil {
		t.Fatalf("Failed to create token manager: %v", err)
	}
	return NewAuthHandler(service.NewAuthService(userRepo, workspaceRepo, tokens)), userRepo
}

func TestRegister_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler(t)

	reqBody := `{"workspaceName": "Acme Ventas", "email": "Ana@Acme.com", "password": "secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Token == "" {
		t.Error("Expected a token in the response")
	}
	if response.User.Email != "ana@acme.com" {
		t.Errorf("Expected lowercased email, got %s", response.User.Email)
	}
	if response.User.Name != "ana" {
		t.Errorf("Expected user name from email local part, got %s", response.User.Name)
	}
	if response.Workspace.Name != "Acme Ventas" {
		t.Errorf("Expected workspace name 'Acme Ventas', got %s", response.Workspace.Name)
	}
	if !strings.HasPrefix(response.Workspace.Subdomain, "acme-ventas-") {
		t.Errorf("Expected slugged subdomain, got %s", response.Workspace.Subdomain)
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"short workspace name", `{"workspaceName": "ab", "email": "ana@acme.com", "password": "secret123"}`, "workspaceName"},
		{"invalid email", `{"workspaceName": "Acme", "email": "not-an-email", "password": "secret123"}`, "email"},
		{"short password", `{"workspaceName": "Acme", "email": "ana@acme.com", "password": "12345"}`, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handler, _ := newAuthHandler(t)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.Register(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}

			var problem ProblemDetails
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if len(problem.Errors) != 1 || problem.Errors[0].Field != tt.field {
				t.Errorf("Expected validation error on %s, got %+v", tt.field, problem.Errors)
			}
		})
	}
}

func TestLogin_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler(t)

	registerBody := `{"workspaceName": "Acme", "email": "ana@acme.com", "password": "secret123"}`
	registerReq := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(registerBody))
	registerReq.Header.Set("Content-Type", "application/json")
	registerRec := httptest.NewRecorder()
	if err := handler.Register(e.NewContext(registerReq, registerRec)); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	loginBody := `{"workspaceName": "Acme", "email": "ana@acme.com", "password": "secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Token == "" {
		t.Error("Expected a token in the response")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler(t)

	reqBody := `{"workspaceName": "Acme", "email": "ana@acme.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Detail != "Credenciales inválidas" {
		t.Errorf("Expected 'Credenciales inválidas', got %s", problem.Detail)
	}
}
