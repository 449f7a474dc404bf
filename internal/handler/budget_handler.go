package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/montyapp/monty-backend/internal/util"
	"github.com/rs/zerolog/log"
)

// BudgetHandler handles budget configuration and reconciliation HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest represents the set budget limit request body
type SetBudgetRequest struct {
	CategoryID  int32   `json:"category_id"`
	LimitAmount int64   `json:"limit_amount"`
	Period      *string `json:"period,omitempty"`
}

// GetCurrent returns the reconciled budget summary for the current month.
func (h *BudgetHandler) GetCurrent(c echo.Context) error {
	summary, err := h.budgetService.Reconcile(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to reconcile budgets")
		return NewInternalError(c, "Failed to reconcile budgets")
	}
	return c.JSON(http.StatusOK, summary)
}

// GetConfigs returns the raw budget configs for the current month.
func (h *BudgetHandler) GetConfigs(c echo.Context) error {
	configs, err := h.budgetService.GetConfigs(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get budget configs")
		return NewInternalError(c, "Failed to get budget configs")
	}
	return c.JSON(http.StatusOK, configs)
}

// SetConfig upserts the monthly limit for one category.
func (h *BudgetHandler) SetConfig(c echo.Context) error {
	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.CategoryID <= 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category_id", Message: "Category ID is required"},
		})
	}

	var period *time.Time
	if req.Period != nil && *req.Period != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *req.Period, util.Almaty)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "period", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		period = &parsed
	}

	budget, err := h.budgetService.SetConfig(req.CategoryID, req.LimitAmount, period, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrInvalidLimit) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "limit_amount", Message: "Must not be negative"},
			})
		}
		log.Error().Err(err).Msg("Failed to set budget")
		return NewInternalError(c, "Failed to set budget")
	}

	return c.JSON(http.StatusOK, budget)
}
