package service

import (
	"time"

	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/util"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// GoalService derives the savings-goal snapshot. Savings accumulate
// indefinitely: the current figure is the lifetime sum of SAVINGS-group
// transactions, with no date lower bound.
type GoalService struct {
	transactionRepo domain.TransactionRepository
	settings        *SettingsService
}

// NewGoalService creates a new GoalService
func NewGoalService(transactionRepo domain.TransactionRepository, settings *SettingsService) *GoalService {
	return &GoalService{transactionRepo: transactionRepo, settings: settings}
}

// Snapshot computes the goal state as of now.
func (s *GoalService) Snapshot(now time.Time) (*domain.Goal, error) {
	var (
		typed   *domain.TypedSettings
		savings int64
	)
	g := new(errgroup.Group)
	g.Go(func() (err error) {
		typed, err = s.settings.Typed()
		return err
	})
	g.Go(func() (err error) {
		savings, err = s.transactionRepo.SumSavings()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	goal := &domain.Goal{
		TargetAmount:   typed.TargetAmount,
		CurrentSavings: savings,
	}

	if typed.TargetAmount > 0 {
		ratio := decimal.NewFromInt(savings).
			Mul(decimal.NewFromInt(100)).
			DivRound(decimal.NewFromInt(typed.TargetAmount), 1)
		goal.ProgressRatio, _ = ratio.Float64()

		display := ratio
		if display.IsNegative() {
			display = decimal.Zero
		}
		if display.GreaterThan(decimal.NewFromInt(100)) {
			display = decimal.NewFromInt(100)
		}
		goal.ProgressPercent, _ = display.Float64()
	}

	if typed.TargetDate.IsZero() {
		return goal, nil
	}
	goal.TargetDate = typed.TargetDate.Format("2006-01-02")

	today := util.DayStart(now)
	target := util.DayStart(typed.TargetDate)

	if today.Before(target) {
		days := int(target.Sub(today).Hours() / 24)
		goal.DaysRemaining = &days

		needed := typed.TargetAmount - savings
		if needed < 0 {
			needed = 0
		}
		divisor := int64(days)
		if divisor < 1 {
			divisor = 1
		}
		goal.DailyNeeded = decimal.NewFromInt(needed).
			DivRound(decimal.NewFromInt(divisor), 0).IntPart()
	} else {
		passed := int(today.Sub(target).Hours() / 24)
		goal.DaysPassed = &passed
	}

	return goal, nil
}
