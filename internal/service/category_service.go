package service

import (
	"strings"

	"github.com/montyapp/monty-backend/internal/domain"
)

// CategoryService handles category ledger business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput holds the input for creating a category
type CreateCategoryInput struct {
	Name  string
	Group domain.CategoryGroup
	Type  domain.TransactionType
	Icon  string
}

// UpdateCategoryInput holds the partial input for updating a category
type UpdateCategoryInput struct {
	Name  *string
	Group *domain.CategoryGroup
	Type  *domain.TransactionType
	Icon  *string
}

func validateCategory(c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)
	if c.Name == "" {
		return domain.ErrNameRequired
	}
	if len(c.Name) > domain.MaxCategoryNameLength {
		return domain.ErrNameTooLong
	}
	if c.Icon == "" {
		return domain.ErrIconRequired
	}
	if !c.Group.Valid() {
		return domain.ErrInvalidGroup
	}
	if !c.Type.Valid() {
		return domain.ErrInvalidType
	}
	// A category is INCOME-typed exactly when it sits in the INCOME group;
	// SAVINGS deposits stay EXPENSE-typed.
	if (c.Type == domain.TypeIncome) != (c.Group == domain.GroupIncome) {
		return domain.ErrTypeGroupMismatch
	}
	return nil
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(input CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		Name:  input.Name,
		Group: input.Group,
		Type:  input.Type,
		Icon:  input.Icon,
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	return s.categoryRepo.Create(category)
}

// GetCategories retrieves every category
func (s *CategoryService) GetCategories() ([]*domain.Category, error) {
	return s.categoryRepo.GetAll()
}

// UpdateCategory applies a partial update to a category
func (s *CategoryService) UpdateCategory(id int32, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Group != nil {
		category.Group = *input.Group
	}
	if input.Type != nil {
		category.Type = *input.Type
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	if err := validateCategory(category); err != nil {
		return nil, err
	}
	return s.categoryRepo.Update(category)
}

// DeleteCategory removes a category. It refuses while any transaction still
// references the category, so the ledger never orphans entries.
func (s *CategoryService) DeleteCategory(id int32) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountTransactions(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}

	return s.categoryRepo.Delete(id)
}
