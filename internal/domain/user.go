package domain

// User is a member of the shared budget, identified by their Telegram id.
type User struct {
	ID         int32  `json:"id"`
	TelegramID int64  `json:"telegram_id"`
	FirstName  string `json:"first_name"`
	IsActive   bool   `json:"is_active"`
}

type UserRepository interface {
	GetByID(id int32) (*User, error)
	GetByTelegramID(telegramID int64) (*User, error)
	// Upsert creates the user on first login and refreshes the display name
	// on subsequent ones.
	Upsert(user *User) (*User, error)
}
