package service

import (
	"sort"
	"time"

	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/util"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Number of categories and top expenses reported per window.
const (
	maxCategoryBreakdowns = 10
	maxTopExpenses        = 5
)

// AnalyticsService derives window aggregates from the transaction stream.
// Every figure is recomputed from the authoritative transactions on each
// call; nothing is patched incrementally.
type AnalyticsService struct {
	transactionRepo domain.TransactionRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(transactionRepo domain.TransactionRepository) *AnalyticsService {
	return &AnalyticsService{transactionRepo: transactionRepo}
}

// AggregateLastNMonths aggregates from the first day of the month months-1
// months ago (Almaty) through now.
func (s *AnalyticsService) AggregateLastNMonths(now time.Time, months int) (*domain.AnalyticsSnapshot, error) {
	start := util.MonthsBack(now, months-1)
	return s.Aggregate(start, now)
}

// Aggregate derives the full snapshot for [start, end), including the
// totals-only comparison for the preceding window of identical length.
func (s *AnalyticsService) Aggregate(start, end time.Time) (*domain.AnalyticsSnapshot, error) {
	if start.After(end) {
		return nil, domain.ErrInvalidDateRange
	}

	prevStart, prevEnd := util.PreviousWindow(start, end)

	var current, previous []*domain.CategorizedTransaction
	g := new(errgroup.Group)
	g.Go(func() (err error) {
		current, err = s.transactionRepo.QueryCategorized(start, end)
		return err
	})
	g.Go(func() (err error) {
		previous, err = s.transactionRepo.QueryCategorized(prevStart, prevEnd)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := derive(current)
	if len(previous) > 0 {
		prevTotals := sumTotals(previous)
		snapshot.ComparisonPreviousPeriod = &prevTotals
	}
	return snapshot, nil
}

// direction classifies one transaction by its category's type and group.
func direction(t *domain.CategorizedTransaction) domain.FlowDirection {
	switch {
	case t.Type == domain.TypeIncome:
		return domain.DirectionIncome
	case t.Group == domain.GroupSavings:
		return domain.DirectionSavings
	default:
		return domain.DirectionExpense
	}
}

func sumTotals(transactions []*domain.CategorizedTransaction) domain.PeriodTotals {
	var totals domain.PeriodTotals
	for _, t := range transactions {
		switch direction(t) {
		case domain.DirectionIncome:
			totals.TotalIncome += t.Amount
		case domain.DirectionSavings:
			totals.TotalSavings += t.Amount
		case domain.DirectionExpense:
			totals.TotalExpenses += t.Amount
		}
	}
	totals.Balance = totals.TotalIncome - totals.TotalExpenses - totals.TotalSavings
	return totals
}

// share computes amount's fraction of the window's total money flow,
// yielding 0 for an empty window.
func share(amount int64, totals domain.PeriodTotals) float64 {
	denominator := totals.TotalIncome + totals.TotalExpenses + totals.TotalSavings
	if denominator == 0 {
		return 0
	}
	v, _ := decimal.NewFromInt(amount).
		DivRound(decimal.NewFromInt(denominator), 4).Float64()
	return v
}

func derive(transactions []*domain.CategorizedTransaction) *domain.AnalyticsSnapshot {
	totals := sumTotals(transactions)

	snapshot := &domain.AnalyticsSnapshot{
		PeriodTotals: totals,
		ByCategory:   deriveByCategory(transactions, totals),
		ByGroup:      deriveByGroup(transactions, totals),
		DailyData:    deriveDaily(transactions),
		TopExpenses:  deriveTopExpenses(transactions),
		ByUser:       deriveByUser(transactions),
	}
	return snapshot
}

func deriveByCategory(transactions []*domain.CategorizedTransaction, totals domain.PeriodTotals) []*domain.CategoryBreakdown {
	type accumulator struct {
		icon   string
		amount int64
		dir    domain.FlowDirection
	}
	byName := make(map[string]*accumulator)
	var order []string

	for _, t := range transactions {
		acc, ok := byName[t.CategoryName]
		if !ok {
			acc = &accumulator{icon: t.CategoryIcon, dir: direction(t)}
			byName[t.CategoryName] = acc
			order = append(order, t.CategoryName)
		}
		acc.amount += t.Amount
	}

	breakdowns := make([]*domain.CategoryBreakdown, 0, len(order))
	for _, name := range order {
		acc := byName[name]
		breakdowns = append(breakdowns, &domain.CategoryBreakdown{
			Name:   name,
			Icon:   acc.icon,
			Amount: acc.amount,
			Type:   acc.dir,
			Share:  share(acc.amount, totals),
		})
	}

	sort.SliceStable(breakdowns, func(i, j int) bool {
		return breakdowns[i].Amount > breakdowns[j].Amount
	})
	if len(breakdowns) > maxCategoryBreakdowns {
		breakdowns = breakdowns[:maxCategoryBreakdowns]
	}
	return breakdowns
}

func deriveByGroup(transactions []*domain.CategorizedTransaction, totals domain.PeriodTotals) []*domain.GroupBreakdown {
	byGroup := make(map[domain.CategoryGroup]int64)
	var order []domain.CategoryGroup

	for _, t := range transactions {
		if _, ok := byGroup[t.Group]; !ok {
			order = append(order, t.Group)
		}
		byGroup[t.Group] += t.Amount
	}

	breakdowns := make([]*domain.GroupBreakdown, 0, len(order))
	for _, group := range order {
		amount := byGroup[group]
		var dir domain.FlowDirection
		switch group {
		case domain.GroupIncome:
			dir = domain.DirectionIncome
		case domain.GroupSavings:
			dir = domain.DirectionSavings
		case domain.GroupBase, domain.GroupComfort:
			dir = domain.DirectionExpense
		}
		breakdowns = append(breakdowns, &domain.GroupBreakdown{
			Group:  group,
			Amount: amount,
			Type:   dir,
			Share:  share(amount, totals),
		})
	}

	sort.SliceStable(breakdowns, func(i, j int) bool {
		return breakdowns[i].Amount > breakdowns[j].Amount
	})
	return breakdowns
}

func deriveDaily(transactions []*domain.CategorizedTransaction) []*domain.DailyPoint {
	byDay := make(map[string]*domain.DailyPoint)
	for _, t := range transactions {
		day := util.DayKey(t.TransactionDate)
		point, ok := byDay[day]
		if !ok {
			point = &domain.DailyPoint{Date: day}
			byDay[day] = point
		}
		switch direction(t) {
		case domain.DirectionIncome:
			point.Income += t.Amount
		case domain.DirectionExpense:
			point.Expense += t.Amount
		case domain.DirectionSavings:
			// Savings deposits have their own totals; folding them into the
			// daily expense line would double-count on the spending chart.
		}
	}

	points := make([]*domain.DailyPoint, 0, len(byDay))
	for _, point := range byDay {
		points = append(points, point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

func deriveTopExpenses(transactions []*domain.CategorizedTransaction) []*domain.TopExpense {
	var expenses []*domain.CategorizedTransaction
	for _, t := range transactions {
		if direction(t) == domain.DirectionExpense {
			expenses = append(expenses, t)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount > expenses[j].Amount
	})
	if len(expenses) > maxTopExpenses {
		expenses = expenses[:maxTopExpenses]
	}

	top := make([]*domain.TopExpense, 0, len(expenses))
	for _, t := range expenses {
		var comment string
		if t.Comment != nil {
			comment = *t.Comment
		}
		top = append(top, &domain.TopExpense{
			Date:     util.DayKey(t.TransactionDate),
			Category: t.CategoryName,
			Icon:     t.CategoryIcon,
			Amount:   t.Amount,
			Comment:  comment,
		})
	}
	return top
}

func deriveByUser(transactions []*domain.CategorizedTransaction) []*domain.UserBreakdown {
	byName := make(map[string]*domain.UserBreakdown)
	var order []string

	for _, t := range transactions {
		breakdown, ok := byName[t.UserName]
		if !ok {
			breakdown = &domain.UserBreakdown{Name: t.UserName}
			byName[t.UserName] = breakdown
			order = append(order, t.UserName)
		}
		switch direction(t) {
		case domain.DirectionIncome:
			breakdown.Income += t.Amount
		case domain.DirectionSavings:
			breakdown.Savings += t.Amount
		case domain.DirectionExpense:
			breakdown.Expense += t.Amount
		}
	}

	breakdowns := make([]*domain.UserBreakdown, 0, len(order))
	for _, name := range order {
		breakdowns = append(breakdowns, byName[name])
	}
	sort.Slice(breakdowns, func(i, j int) bool {
		return breakdowns[i].Name < breakdowns[j].Name
	})
	return breakdowns
}
