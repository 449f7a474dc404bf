package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/montyapp/monty-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category and returns it with its assigned id
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, "group", type, icon) VALUES ($1, $2, $3, $4) RETURNING id`,
		category.Name, category.Group, category.Type, category.Icon,
	).Scan(&category.ID)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID retrieves a category by its id
func (r *CategoryRepository) GetByID(id int32) (*domain.Category, error) {
	ctx := context.Background()
	var c domain.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, "group", type, icon FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Group, &c.Type, &c.Icon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetAll retrieves every category
func (r *CategoryRepository) GetAll() ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT id, name, "group", type, icon FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Group, &c.Type, &c.Icon); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// Update overwrites a category's attributes
func (r *CategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $2, "group" = $3, type = $4, icon = $5 WHERE id = $1`,
		category.ID, category.Name, category.Group, category.Type, category.Icon,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// CountTransactions returns how many transactions reference the category
func (r *CategoryRepository) CountTransactions(id int32) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id = $1`, id,
	).Scan(&count)
	return count, err
}
