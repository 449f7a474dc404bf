package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category ledger HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Group string `json:"group"`
	Type  string `json:"type"`
	Icon  string `json:"icon"`
}

// UpdateCategoryRequest represents the partial update category request body
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Group *string `json:"group,omitempty"`
	Type  *string `json:"type,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// CreateCategory creates a new category.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(service.CreateCategoryInput{
		Name:  req.Name,
		Group: domain.CategoryGroup(req.Group),
		Type:  domain.TransactionType(req.Type),
		Icon:  req.Icon,
	})
	if err != nil {
		if field, message, ok := categoryValidationDetail(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: field, Message: message},
			})
		}
		log.Error().Err(err).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	return c.JSON(http.StatusCreated, category)
}

// GetCategories returns every category.
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get categories")
		return NewInternalError(c, "Failed to get categories")
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}

// UpdateCategory applies a partial update to a category.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateCategoryInput{Name: req.Name, Icon: req.Icon}
	if req.Group != nil {
		group := domain.CategoryGroup(*req.Group)
		input.Group = &group
	}
	if req.Type != nil {
		typ := domain.TransactionType(*req.Type)
		input.Type = &typ
	}

	category, err := h.categoryService.UpdateCategory(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if field, message, ok := categoryValidationDetail(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: field, Message: message},
			})
		}
		log.Error().Err(err).Msg("Failed to update category")
		return NewInternalError(c, "Failed to update category")
	}

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category unless transactions still reference it.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseInt32Param(c, "id")
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrCategoryInUse) {
			return NewConflictError(c, "Category has transactions and cannot be deleted")
		}
		log.Error().Err(err).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	return c.NoContent(http.StatusNoContent)
}

// categoryValidationDetail maps category validation errors onto field details.
func categoryValidationDetail(err error) (field, message string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return "name", "Name is required", true
	case errors.Is(err, domain.ErrNameTooLong):
		return "name", "Name is too long", true
	case errors.Is(err, domain.ErrIconRequired):
		return "icon", "Icon is required", true
	case errors.Is(err, domain.ErrInvalidGroup):
		return "group", "Must be one of: BASE, COMFORT, SAVINGS, INCOME", true
	case errors.Is(err, domain.ErrInvalidType):
		return "type", "Must be one of: EXPENSE, INCOME", true
	case errors.Is(err, domain.ErrTypeGroupMismatch):
		return "type", "INCOME type requires the INCOME group and vice versa", true
	}
	return "", "", false
}

// parseInt32Param parses a positive int32 path parameter.
func parseInt32Param(c echo.Context, name string) (int32, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil || v <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return int32(v), nil
}
