package domain

// FlowDirection tags a derived figure as inflow, outflow, or a savings
// deposit. Savings are tagged distinctly from plain expenses even though
// both reduce the balance.
type FlowDirection string

const (
	DirectionIncome  FlowDirection = "income"
	DirectionExpense FlowDirection = "expense"
	DirectionSavings FlowDirection = "savings"
)

// PeriodTotals are the headline figures for an aggregation window.
type PeriodTotals struct {
	TotalIncome   int64 `json:"total_income"`
	TotalExpenses int64 `json:"total_expenses"`
	TotalSavings  int64 `json:"total_savings"`
	Balance       int64 `json:"balance"`
}

// CategoryBreakdown is one category's contribution to a window.
type CategoryBreakdown struct {
	Name   string        `json:"name"`
	Icon   string        `json:"icon"`
	Amount int64         `json:"amount"`
	Type   FlowDirection `json:"type"`
	Share  float64       `json:"share"`
}

// GroupBreakdown is the same contribution one level coarser.
type GroupBreakdown struct {
	Group  CategoryGroup `json:"group"`
	Amount int64         `json:"amount"`
	Type   FlowDirection `json:"type"`
	Share  float64       `json:"share"`
}

// DailyPoint is one day's activity. The series is sparse: days without
// transactions are omitted.
type DailyPoint struct {
	Date    string `json:"date"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// UserBreakdown is one contributor's totals for a window.
type UserBreakdown struct {
	Name    string `json:"name"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Savings int64  `json:"savings"`
}

// TopExpense is one of the largest expense entries in a window.
type TopExpense struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Amount   int64  `json:"amount"`
	Comment  string `json:"comment,omitempty"`
}

// AnalyticsSnapshot is the full derived view of one window.
type AnalyticsSnapshot struct {
	PeriodTotals
	ByCategory               []*CategoryBreakdown `json:"by_category"`
	ByGroup                  []*GroupBreakdown    `json:"by_group"`
	DailyData                []*DailyPoint        `json:"daily_data"`
	TopExpenses              []*TopExpense        `json:"top_expenses"`
	ByUser                   []*UserBreakdown     `json:"by_user"`
	ComparisonPreviousPeriod *PeriodTotals        `json:"comparison_previous_period,omitempty"`
}
