package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ventia/ventia-backend/internal/token"
)

func newTestManager(t *testing.T) *token.Manager {
	t.Helper()
	m, err := token.NewManager("test-secret")
	if err != nil {
		t.Fatalf("Failed to create token manager: %v", err)
	}
	return m
}

func invoke(t *testing.T, m *AuthMiddleware, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	handler := m.Authenticate()(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	return rec, captured
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokens := newTestManager(t)
	m := NewAuthMiddleware(tokens)

	userID := uuid.New()
	workspaceID := uuid.New()
	signed, err := tokens.Issue(userID, workspaceID, "ana@example.com")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	rec, c := invoke(t, m, "Bearer "+signed)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if GetUserID(c) != userID {
		t.Errorf("Expected user id in context")
	}
	if GetWorkspaceID(c) != workspaceID {
		t.Errorf("Expected workspace id in context")
	}
	if GetEmail(c) != "ana@example.com" {
		t.Errorf("Expected email in context, got %q", GetEmail(c))
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(newTestManager(t))

	rec, _ := invoke(t, m, "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	m := NewAuthMiddleware(newTestManager(t))

	rec, _ := invoke(t, m, "Token abc")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(newTestManager(t))

	rec, _ := invoke(t, m, "Bearer not-a-token")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetWorkspaceID_Unset(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if GetWorkspaceID(c) != uuid.Nil {
		t.Error("Expected uuid.Nil for unauthenticated context")
	}
}
