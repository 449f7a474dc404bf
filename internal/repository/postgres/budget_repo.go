package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/montyapp/monty-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// GetByPeriod retrieves every budget config for a period joined with its
// category metadata
func (r *BudgetRepository) GetByPeriod(period time.Time) ([]*domain.BudgetConfig, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT b.category_id, c.name, c.icon, c."group", c.type, b.limit_amount
		 FROM monthly_budgets b
		 JOIN categories c ON c.id = b.category_id
		 WHERE b.period = $1
		 ORDER BY b.category_id`,
		period,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*domain.BudgetConfig
	for rows.Next() {
		var c domain.BudgetConfig
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.CategoryIcon, &c.Group, &c.Type, &c.LimitAmount); err != nil {
			return nil, err
		}
		configs = append(configs, &c)
	}
	return configs, rows.Err()
}

// Upsert creates the budget for (category, period) or overwrites its limit
func (r *BudgetRepository) Upsert(budget *domain.MonthlyBudget) (*domain.MonthlyBudget, error) {
	ctx := context.Background()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO monthly_budgets (category_id, period, limit_amount)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (category_id, period) DO UPDATE SET limit_amount = EXCLUDED.limit_amount
		 RETURNING id`,
		budget.CategoryID, budget.Period, budget.LimitAmount,
	).Scan(&budget.ID)
	if err != nil {
		return nil, err
	}
	return budget, nil
}
