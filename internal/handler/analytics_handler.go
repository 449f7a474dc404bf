package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/montyapp/monty-backend/internal/util"
	"github.com/rs/zerolog/log"
)

// Bounds for the months query parameter.
const (
	defaultAnalyticsMonths = 3
	maxAnalyticsMonths     = 12
)

// AnalyticsHandler handles analytics HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetAnalytics returns the aggregate snapshot for the last n calendar months.
func (h *AnalyticsHandler) GetAnalytics(c echo.Context) error {
	months := defaultAnalyticsMonths
	if v := c.QueryParam("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxAnalyticsMonths {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "months", Message: "Must be between 1 and 12"},
			})
		}
		months = n
	}

	snapshot, err := h.analyticsService.AggregateLastNMonths(time.Now(), months)
	if err != nil {
		log.Error().Err(err).Msg("Failed to aggregate analytics")
		return NewInternalError(c, "Failed to aggregate analytics")
	}
	return c.JSON(http.StatusOK, snapshot)
}

// GetPeriodAnalytics returns the aggregate snapshot for an explicit window.
func (h *AnalyticsHandler) GetPeriodAnalytics(c echo.Context) error {
	start, err := time.ParseInLocation("2006-01-02", c.QueryParam("start_date"), util.Almaty)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "start_date", Message: "Must be in YYYY-MM-DD format"},
		})
	}
	endDay, err := time.ParseInLocation("2006-01-02", c.QueryParam("end_date"), util.Almaty)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "end_date", Message: "Must be in YYYY-MM-DD format"},
		})
	}
	// end_date is inclusive; the aggregate window is half-open.
	end := endDay.AddDate(0, 0, 1)

	snapshot, err := h.analyticsService.Aggregate(start, end)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "start_date", Message: "Must not be after end_date"},
			})
		}
		log.Error().Err(err).Msg("Failed to aggregate analytics")
		return NewInternalError(c, "Failed to aggregate analytics")
	}
	return c.JSON(http.StatusOK, snapshot)
}
