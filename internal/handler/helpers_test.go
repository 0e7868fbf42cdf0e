package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ventia/ventia-backend/internal/middleware"
)

// setupAuthContext injects the authenticated caller into the request context
// the same way the auth middleware does.
func setupAuthContext(c echo.Context, userID, workspaceID uuid.UUID, email string) {
	ctx := context.WithValue(c.Request().Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.WorkspaceIDKey, workspaceID)
	ctx = context.WithValue(ctx, middleware.EmailKey, email)
	c.SetRequest(c.Request().WithContext(ctx))
}
