package domain

// CategoryGroup is the coarse budget bucket a category belongs to.
type CategoryGroup string

const (
	GroupBase    CategoryGroup = "BASE"
	GroupComfort CategoryGroup = "COMFORT"
	GroupSavings CategoryGroup = "SAVINGS"
	GroupIncome  CategoryGroup = "INCOME"
)

// Valid reports whether g is one of the known groups.
func (g CategoryGroup) Valid() bool {
	switch g {
	case GroupBase, GroupComfort, GroupSavings, GroupIncome:
		return true
	}
	return false
}

// TransactionType is the cash-flow direction of a category.
type TransactionType string

const (
	TypeExpense TransactionType = "EXPENSE"
	TypeIncome  TransactionType = "INCOME"
)

// Valid reports whether t is one of the known types.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Category is a spending or income category. The type is INCOME exactly when
// the group is INCOME; SAVINGS deposits are EXPENSE transactions by
// convention since they leave the discretionary budget.
type Category struct {
	ID    int32           `json:"id"`
	Name  string          `json:"name"`
	Group CategoryGroup   `json:"group"`
	Type  TransactionType `json:"type"`
	Icon  string          `json:"icon"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id int32) (*Category, error)
	GetAll() ([]*Category, error)
	Update(category *Category) (*Category, error)
	Delete(id int32) error
	CountTransactions(id int32) (int64, error)
}
