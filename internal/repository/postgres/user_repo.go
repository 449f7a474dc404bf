package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/montyapp/monty-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(id int32) (*domain.User, error) {
	ctx := context.Background()
	var u domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, telegram_id, first_name, is_active FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.TelegramID, &u.FirstName, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByTelegramID retrieves a user by their Telegram id
func (r *UserRepository) GetByTelegramID(telegramID int64) (*domain.User, error) {
	ctx := context.Background()
	var u domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, telegram_id, first_name, is_active FROM users WHERE telegram_id = $1`, telegramID,
	).Scan(&u.ID, &u.TelegramID, &u.FirstName, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Upsert creates the user on first login and refreshes the display name on
// subsequent ones
func (r *UserRepository) Upsert(user *domain.User) (*domain.User, error) {
	ctx := context.Background()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (telegram_id, first_name, is_active)
		 VALUES ($1, $2, TRUE)
		 ON CONFLICT (telegram_id) DO UPDATE SET first_name = EXCLUDED.first_name, is_active = TRUE
		 RETURNING id, is_active`,
		user.TelegramID, user.FirstName,
	).Scan(&user.ID, &user.IsActive)
	if err != nil {
		return nil, err
	}
	return user, nil
}
