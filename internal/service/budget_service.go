package service

import (
	"time"

	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/util"
	"golang.org/x/sync/errgroup"
)

// BudgetService reconciles the transaction stream against the configured
// monthly limits. All derived figures (remaining, over-budget, discretionary
// and umbrella totals) are computed here and nowhere else.
type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	settings        *SettingsService
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, settings *SettingsService) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		settings:        settings,
	}
}

// Reconcile joins the budget configs for now's calendar month with the
// period's spending and returns the dashboard summary.
func (s *BudgetService) Reconcile(now time.Time) (*domain.BudgetSummary, error) {
	periodStart := util.MonthStart(now)
	periodEnd := util.NextMonthStart(now)

	// The three inputs are independent reads.
	var (
		configs []*domain.BudgetConfig
		spent   map[int32]int64
		typed   *domain.TypedSettings
	)
	g := new(errgroup.Group)
	g.Go(func() (err error) {
		configs, err = s.budgetRepo.GetByPeriod(periodStart)
		return err
	})
	g.Go(func() (err error) {
		spent, err = s.transactionRepo.SumByCategory(periodStart, periodEnd)
		return err
	})
	g.Go(func() (err error) {
		typed, err = s.settings.Typed()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lines := make([]*domain.BudgetLine, 0, len(configs))
	var discretionarySpent, discretionaryBudget, savingsSpent int64
	for _, cfg := range configs {
		categorySpent := spent[cfg.CategoryID]
		remaining := cfg.LimitAmount - categorySpent

		line := &domain.BudgetLine{
			CategoryID:   cfg.CategoryID,
			CategoryName: cfg.CategoryName,
			CategoryIcon: cfg.CategoryIcon,
			Group:        cfg.Group,
			LimitAmount:  cfg.LimitAmount,
			Spent:        categorySpent,
			Remaining:    remaining,
			OverBudget:   remaining < 0 && cfg.Group != domain.GroupSavings,
		}
		lines = append(lines, line)

		switch cfg.Group {
		case domain.GroupBase, domain.GroupComfort:
			discretionarySpent += categorySpent
			discretionaryBudget += cfg.LimitAmount
		case domain.GroupSavings:
			savingsSpent += categorySpent
		case domain.GroupIncome:
			// Income categories carry no ceiling.
		}
	}

	summary := &domain.BudgetSummary{
		TotalSavingsGoal:    typed.TargetAmount,
		CurrentSavings:      savingsSpent,
		Budgets:             lines,
		DiscretionarySpent:  discretionarySpent,
		DiscretionaryBudget: discretionaryBudget,
	}

	if typed.TotalBudget > 0 {
		summary.TotalBudget = typed.TotalBudget
		overallRemaining := typed.TotalBudget - discretionarySpent
		unallocated := typed.TotalBudget - discretionaryBudget
		summary.OverallRemaining = &overallRemaining
		summary.Unallocated = &unallocated
	}

	return summary, nil
}

// GetConfigs returns the budget configs for now's calendar month.
func (s *BudgetService) GetConfigs(now time.Time) ([]*domain.BudgetConfig, error) {
	configs, err := s.budgetRepo.GetByPeriod(util.MonthStart(now))
	if err != nil {
		return nil, err
	}
	if configs == nil {
		configs = []*domain.BudgetConfig{}
	}
	return configs, nil
}

// SetConfig upserts the limit for (category, period). A nil period defaults
// to now's calendar month; any supplied period is normalized to its month
// start.
func (s *BudgetService) SetConfig(categoryID int32, limitAmount int64, period *time.Time, now time.Time) (*domain.MonthlyBudget, error) {
	if limitAmount < 0 {
		return nil, domain.ErrInvalidLimit
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}

	periodStart := util.MonthStart(now)
	if period != nil {
		periodStart = util.MonthStart(*period)
	}

	return s.budgetRepo.Upsert(&domain.MonthlyBudget{
		CategoryID:  categoryID,
		Period:      periodStart,
		LimitAmount: limitAmount,
	})
}
