package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/util"
)

// TransactionService handles transaction stream business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	userRepo        domain.UserRepository
	notifier        Notifier
}

// NewTransactionService creates a new TransactionService. notifier may be
// nil when notifications are disabled.
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, userRepo domain.UserRepository, notifier Notifier) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	CategoryID int32
	Amount     int64
	Comment    *string
}

// UpdateTransactionInput holds the partial input for updating a transaction
type UpdateTransactionInput struct {
	CategoryID *int32
	Amount     *int64
	Comment    *string
}

func normalizeComment(comment *string) (*string, error) {
	if comment == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > domain.MaxCommentLength {
		return nil, domain.ErrInvalidInput
	}
	return &trimmed, nil
}

// CreateTransaction appends a new entry to the stream and announces it.
func (s *TransactionService) CreateTransaction(userID int32, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}

	comment, err := normalizeComment(input.Comment)
	if err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		ID:              uuid.New().String(),
		UserID:          userID,
		CategoryID:      input.CategoryID,
		Amount:          input.Amount,
		TransactionDate: time.Now().UTC(),
		Comment:         comment,
	}

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		var commentText string
		if comment != nil {
			commentText = *comment
		}
		userName := s.userName(userID)
		s.notifier.NotifyTransaction(category.Icon, category.Name, created.Amount, userName, commentText)
	}

	return created, nil
}

// userName resolves the author's display name for notifications. A lookup
// failure degrades to a generic name rather than failing the write.
func (s *TransactionService) userName(userID int32) string {
	user, err := s.userRepo.GetByID(userID)
	if err != nil || user.FirstName == "" {
		return "Пользователь"
	}
	return user.FirstName
}

// GetTransactions retrieves transactions matching filters, newest first.
func (s *TransactionService) GetTransactions(filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if filters == nil {
		filters = &domain.TransactionFilters{}
	}
	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return nil, domain.ErrInvalidDateRange
	}

	transactions, err := s.transactionRepo.Query(filters)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*domain.Transaction{}
	}
	return transactions, nil
}

// UpdateTransaction applies a partial update to a transaction
func (s *TransactionService) UpdateTransaction(id string, input UpdateTransactionInput) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*input.CategoryID); err != nil {
			return nil, err
		}
		transaction.CategoryID = *input.CategoryID
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, domain.ErrInvalidAmount
		}
		transaction.Amount = *input.Amount
	}
	if input.Comment != nil {
		comment, err := normalizeComment(input.Comment)
		if err != nil {
			return nil, err
		}
		transaction.Comment = comment
	}

	return s.transactionRepo.Update(transaction)
}

// DeleteTransaction removes a transaction
func (s *TransactionService) DeleteTransaction(id string) error {
	return s.transactionRepo.Delete(id)
}

// ExportCSV renders the transactions matching filters as a CSV attachment,
// newest first, and returns the payload with a dated filename.
func (s *TransactionService) ExportCSV(filters *domain.TransactionFilters) ([]byte, string, error) {
	if filters == nil {
		filters = &domain.TransactionFilters{}
	}

	rows, err := s.transactionRepo.QueryCategorizedFiltered(filters)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Дата", "Категория", "Сумма", "Тип", "Кто", "Комментарий"}); err != nil {
		return nil, "", err
	}
	for _, row := range rows {
		var comment string
		if row.Comment != nil {
			comment = *row.Comment
		}
		record := []string{
			row.TransactionDate.In(util.Almaty).Format("2006-01-02 15:04"),
			row.CategoryName,
			strconv.FormatInt(row.Amount, 10),
			string(row.Type),
			row.UserName,
			comment,
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().In(util.Almaty).Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
