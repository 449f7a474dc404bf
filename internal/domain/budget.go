package domain

import "time"

// MonthlyBudget is the configured ceiling for one category in one period.
// Period is the first day of the calendar month it governs. SAVINGS-group
// entries carry a target rather than a ceiling and are never over budget.
type MonthlyBudget struct {
	ID          int32     `json:"id"`
	CategoryID  int32     `json:"category_id"`
	Period      time.Time `json:"period"`
	LimitAmount int64     `json:"limit_amount"`
}

// BudgetConfig is a monthly budget joined with its category metadata, the
// shape the settings screen edits.
type BudgetConfig struct {
	CategoryID   int32           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	CategoryIcon string          `json:"category_icon"`
	Group        CategoryGroup   `json:"group"`
	Type         TransactionType `json:"type"`
	LimitAmount  int64           `json:"limit_amount"`
}

// BudgetLine is the reconciled figure for one category in one period.
type BudgetLine struct {
	CategoryID   int32         `json:"category_id"`
	CategoryName string        `json:"category_name"`
	CategoryIcon string        `json:"category_icon"`
	Group        CategoryGroup `json:"group"`
	LimitAmount  int64         `json:"limit_amount"`
	Spent        int64         `json:"spent"`
	Remaining    int64         `json:"remaining"`
	OverBudget   bool          `json:"over_budget"`
}

// BudgetSummary is the dashboard view of a reconciled period. The umbrella
// figures are present only when a total_budget is configured; Unallocated
// may be negative, signaling over-allocation.
type BudgetSummary struct {
	TotalSavingsGoal    int64         `json:"total_savings_goal"`
	CurrentSavings      int64         `json:"current_savings"`
	Budgets             []*BudgetLine `json:"budgets"`
	DiscretionarySpent  int64         `json:"discretionary_spent"`
	DiscretionaryBudget int64         `json:"discretionary_budget"`
	TotalBudget         int64         `json:"total_budget,omitempty"`
	OverallRemaining    *int64        `json:"overall_remaining,omitempty"`
	Unallocated         *int64        `json:"unallocated,omitempty"`
}

type BudgetRepository interface {
	GetByPeriod(period time.Time) ([]*BudgetConfig, error)
	Upsert(budget *MonthlyBudget) (*MonthlyBudget, error)
}
