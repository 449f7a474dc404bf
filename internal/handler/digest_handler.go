package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// DigestHandler handles manual digest HTTP requests
type DigestHandler struct {
	digestService *service.DigestService
}

// NewDigestHandler creates a new DigestHandler
func NewDigestHandler(digestService *service.DigestService) *DigestHandler {
	return &DigestHandler{digestService: digestService}
}

// SendDigest generates today's digest, broadcasts it, and echoes the text.
func (h *DigestHandler) SendDigest(c echo.Context) error {
	digest, err := h.digestService.Send(c.Request().Context(), time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to send digest")
		return NewInternalError(c, "Failed to send digest")
	}
	return c.JSON(http.StatusOK, map[string]string{"digest": digest})
}
