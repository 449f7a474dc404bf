package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/middleware"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/montyapp/monty-backend/internal/util"
	"github.com/rs/zerolog/log"
)

// TransactionHandler handles transaction stream HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	CategoryID int32   `json:"category_id"`
	Amount     int64   `json:"amount"`
	Comment    *string `json:"comment,omitempty"`
}

// UpdateTransactionRequest represents the partial update transaction request body
type UpdateTransactionRequest struct {
	CategoryID *int32  `json:"category_id,omitempty"`
	Amount     *int64  `json:"amount,omitempty"`
	Comment    *string `json:"comment,omitempty"`
}

// CreateTransaction appends a new entry to the stream.
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.CategoryID <= 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category_id", Message: "Category ID is required"},
		})
	}

	transaction, err := h.transactionService.CreateTransaction(userID, service.CreateTransactionInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Comment:    req.Comment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Must be a positive integer"},
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "comment", Message: "Comment is too long"},
			})
		}
		log.Error().Err(err).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	return c.JSON(http.StatusCreated, transaction)
}

// GetTransactions returns transactions matching the query filters, newest first.
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	filters, err := parseTransactionFilters(c)
	if err != nil {
		return NewValidationError(c, "Invalid query parameters", nil)
	}

	transactions, err := h.transactionService.GetTransactions(filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "start_date", Message: "Must not be after end_date"},
			})
		}
		log.Error().Err(err).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}

	return c.JSON(http.StatusOK, transactions)
}

// UpdateTransaction applies a partial update to a transaction.
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	transaction, err := h.transactionService.UpdateTransaction(id, service.UpdateTransactionInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Comment:    req.Comment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Must be a positive integer"},
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "comment", Message: "Comment is too long"},
			})
		}
		log.Error().Err(err).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	return c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction removes a transaction.
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	return c.NoContent(http.StatusNoContent)
}

// ExportCSV streams the filtered transactions as a CSV attachment.
func (h *TransactionHandler) ExportCSV(c echo.Context) error {
	filters, err := parseTransactionFilters(c)
	if err != nil {
		return NewValidationError(c, "Invalid query parameters", nil)
	}

	payload, filename, err := h.transactionService.ExportCSV(filters)
	if err != nil {
		log.Error().Err(err).Msg("Failed to export transactions")
		return NewInternalError(c, "Failed to export transactions")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", payload)
}

// parseTransactionFilters reads the shared list/export query parameters.
// Date-only values are taken as Almaty midnights; end_date is inclusive and
// extends to the end of its day.
func parseTransactionFilters(c echo.Context) (*domain.TransactionFilters, error) {
	filters := &domain.TransactionFilters{Search: c.QueryParam("search")}

	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 32)
		if err != nil || id <= 0 {
			return nil, domain.ErrInvalidInput
		}
		categoryID := int32(id)
		filters.CategoryID = &categoryID
	}
	if v := c.QueryParam("start_date"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, util.Almaty)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filters.StartDate = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, util.Almaty)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		end := t.AddDate(0, 0, 1)
		filters.EndDate = &end
	}
	return filters, nil
}
