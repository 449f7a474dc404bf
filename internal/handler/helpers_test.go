package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/middleware"
)

// setupAuthContext injects an authenticated user id the way the auth
// middleware would.
func setupAuthContext(c echo.Context, userID int32) {
	ctx := context.WithValue(c.Request().Context(), middleware.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}
