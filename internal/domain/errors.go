package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInternalError       = errors.New("internal error")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserNotAllowed      = errors.New("user is not allowed")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category has transactions and cannot be deleted")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNameRequired        = errors.New("name is required")
	ErrIconRequired        = errors.New("icon is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrInvalidGroup        = errors.New("invalid category group")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrTypeGroupMismatch   = errors.New("category type does not match its group")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidLimit        = errors.New("limit amount must be zero or positive")
	ErrInvalidSettingKey   = errors.New("unknown setting key")
	ErrInvalidDateRange    = errors.New("invalid date range")
)

// Validation constants
const (
	MaxCategoryNameLength = 50
	MaxCategoryIconLength = 10
	MaxCommentLength      = 255
)
