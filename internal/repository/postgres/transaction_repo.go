package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/montyapp/monty-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO transactions (id, user_id, category_id, amount, transaction_date, comment)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		transaction.ID, transaction.UserID, transaction.CategoryID,
		transaction.Amount, transaction.TransactionDate, transaction.Comment,
	)
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetByID retrieves a transaction by its id
func (r *TransactionRepository) GetByID(id string) (*domain.Transaction, error) {
	ctx := context.Background()
	var t domain.Transaction
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, category_id, amount, transaction_date, comment
		 FROM transactions WHERE id = $1`, id,
	).Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.TransactionDate, &t.Comment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}

// filterClause builds the WHERE conditions for filters against aliases
// t (transactions) and c (categories).
func filterClause(filters *domain.TransactionFilters, args []any) (string, []any) {
	var conds []string

	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		conds = append(conds, fmt.Sprintf("t.category_id = $%d", len(args)))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		conds = append(conds, fmt.Sprintf("t.transaction_date >= $%d", len(args)))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		conds = append(conds, fmt.Sprintf("t.transaction_date < $%d", len(args)))
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		args = append(args, "%"+search+"%")
		conds = append(conds, fmt.Sprintf("(t.comment ILIKE $%d OR c.name ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Query retrieves transactions matching filters, newest first
func (r *TransactionRepository) Query(filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	ctx := context.Background()
	if filters == nil {
		filters = &domain.TransactionFilters{}
	}

	query := `SELECT t.id, t.user_id, t.category_id, t.amount, t.transaction_date, t.comment
		 FROM transactions t
		 JOIN categories c ON c.id = t.category_id`
	where, args := filterClause(filters, nil)
	query += where + " ORDER BY t.transaction_date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.TransactionDate, &t.Comment); err != nil {
			return nil, err
		}
		transactions = append(transactions, &t)
	}
	return transactions, rows.Err()
}

// Update overwrites a transaction's mutable attributes
func (r *TransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions SET category_id = $2, amount = $3, comment = $4 WHERE id = $1`,
		transaction.ID, transaction.CategoryID, transaction.Amount, transaction.Comment,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// SumByCategory returns the spent amount per category over [start, end)
func (r *TransactionRepository) SumByCategory(start, end time.Time) (map[int32]int64, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT category_id, COALESCE(SUM(amount), 0)
		 FROM transactions
		 WHERE transaction_date >= $1 AND transaction_date < $2
		 GROUP BY category_id`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[int32]int64)
	for rows.Next() {
		var categoryID int32
		var sum int64
		if err := rows.Scan(&categoryID, &sum); err != nil {
			return nil, err
		}
		sums[categoryID] = sum
	}
	return sums, rows.Err()
}

// SumSavings returns the lifetime sum over SAVINGS-group categories
func (r *TransactionRepository) SumSavings() (int64, error) {
	ctx := context.Background()
	var sum int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(t.amount), 0)
		 FROM transactions t
		 JOIN categories c ON c.id = t.category_id
		 WHERE c."group" = $1`,
		domain.GroupSavings,
	).Scan(&sum)
	return sum, err
}

// QueryCategorized returns transactions in [start, end) joined with
// category and author metadata, newest first
func (r *TransactionRepository) QueryCategorized(start, end time.Time) ([]*domain.CategorizedTransaction, error) {
	return r.QueryCategorizedFiltered(&domain.TransactionFilters{
		StartDate: &start,
		EndDate:   &end,
	})
}

// QueryCategorizedFiltered is QueryCategorized over an arbitrary filter
func (r *TransactionRepository) QueryCategorizedFiltered(filters *domain.TransactionFilters) ([]*domain.CategorizedTransaction, error) {
	ctx := context.Background()
	if filters == nil {
		filters = &domain.TransactionFilters{}
	}

	query := `SELECT t.id, t.user_id, t.category_id, t.amount, t.transaction_date, t.comment,
		        c.name, c.icon, c."group", c.type, u.first_name
		 FROM transactions t
		 JOIN categories c ON c.id = t.category_id
		 JOIN users u ON u.id = t.user_id`
	where, args := filterClause(filters, nil)
	query += where + " ORDER BY t.transaction_date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.CategorizedTransaction
	for rows.Next() {
		var t domain.CategorizedTransaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.TransactionDate, &t.Comment,
			&t.CategoryName, &t.CategoryIcon, &t.Group, &t.Type, &t.UserName,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &t)
	}
	return transactions, rows.Err()
}
