package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/middleware"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// TelegramAuthRequest represents the Telegram auth request body
type TelegramAuthRequest struct {
	InitData string `json:"initData"`
}

// Telegram exchanges Telegram WebApp init data for a bearer token.
func (h *AuthHandler) Telegram(c echo.Context) error {
	var req TelegramAuthRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.InitData == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "initData", Message: "Init data is required"},
		})
	}

	result, err := h.authService.Authenticate(req.InitData)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotAllowed) {
			return NewForbiddenError(c, "User is not allowed")
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			return NewUnauthorizedError(c, "Invalid init data")
		}
		log.Error().Err(err).Msg("Failed to authenticate")
		return NewInternalError(c, "Failed to authenticate")
	}

	return c.JSON(http.StatusOK, result)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.authService.Me(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Msg("Failed to get user")
		return NewInternalError(c, "Failed to get user")
	}

	return c.JSON(http.StatusOK, user)
}
