package domain

import "time"

// Transaction is a dated monetary entry against exactly one category.
// Amounts are whole tenge; the direction of the cash flow is derived from
// the referenced category, never stored here.
type Transaction struct {
	ID              string    `json:"id"`
	UserID          int32     `json:"user_id"`
	CategoryID      int32     `json:"category_id"`
	Amount          int64     `json:"amount"`
	TransactionDate time.Time `json:"transaction_date"`
	Comment         *string   `json:"comment,omitempty"`
}

// TransactionFilters narrows a transaction query. Date bounds are half-open
// [StartDate, EndDate). Search is a case-insensitive substring match against
// the comment and the resolved category name; it combines with the date
// bounds (AND).
type TransactionFilters struct {
	CategoryID *int32
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

// CategorizedTransaction is a transaction joined with its category and
// author, the unit the aggregation layers work on.
type CategorizedTransaction struct {
	Transaction
	CategoryName string
	CategoryIcon string
	Group        CategoryGroup
	Type         TransactionType
	UserName     string
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(id string) (*Transaction, error)
	Query(filters *TransactionFilters) ([]*Transaction, error)
	Update(transaction *Transaction) (*Transaction, error)
	Delete(id string) error
	// SumByCategory returns spent per category over [start, end).
	SumByCategory(start, end time.Time) (map[int32]int64, error)
	// SumSavings returns the lifetime sum over SAVINGS-group categories.
	SumSavings() (int64, error)
	// QueryCategorized returns transactions in [start, end) joined with
	// category and author metadata, ordered by date descending.
	QueryCategorized(start, end time.Time) ([]*CategorizedTransaction, error)
	// QueryCategorizedFiltered is QueryCategorized over an arbitrary filter,
	// used by the CSV export.
	QueryCategorizedFiltered(filters *TransactionFilters) ([]*CategorizedTransaction, error)
}
