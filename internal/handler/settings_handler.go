package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingRequest represents the update setting request body
type UpdateSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// GetSettings returns every setting in raw string form.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get settings")
		return NewInternalError(c, "Failed to get settings")
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSetting validates and stores one setting.
func (h *SettingsHandler) UpdateSetting(c echo.Context) error {
	var req UpdateSettingRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.settingsService.Update(req.Key, req.Value); err != nil {
		if errors.Is(err, domain.ErrInvalidSettingKey) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "key", Message: "Unknown setting key"},
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "value", Message: "Invalid value for setting"},
			})
		}
		log.Error().Err(err).Msg("Failed to update setting")
		return NewInternalError(c, "Failed to update setting")
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
