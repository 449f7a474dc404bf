package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/testutil"
)

func newTransactionFixture() (*TransactionService, *testutil.MockCategoryRepository, *testutil.MockTransactionRepository, *testutil.MockNotifier) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.AddCategory(&domain.Category{
		ID:    1,
		Name:  "Продукты",
		Group: domain.GroupBase,
		Type:  domain.TypeExpense,
		Icon:  "🛒",
	})
	transactionRepo := testutil.NewMockTransactionRepository(categoryRepo)
	userRepo := testutil.NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: 1, TelegramID: 100, FirstName: "Бекжан", IsActive: true})
	notifier := testutil.NewMockNotifier()
	return NewTransactionService(transactionRepo, categoryRepo, userRepo, notifier), categoryRepo, transactionRepo, notifier
}

func TestCreateTransaction_Success(t *testing.T) {
	transactionService, _, transactionRepo, notifier := newTransactionFixture()

	transaction, err := transactionService.CreateTransaction(1, CreateTransactionInput{
		CategoryID: 1,
		Amount:     4500,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if transaction.ID == "" {
		t.Error("Expected a generated ID")
	}
	if transaction.Amount != 4500 {
		t.Errorf("Expected amount 4500, got %d", transaction.Amount)
	}
	if len(transactionRepo.Transactions) != 1 {
		t.Errorf("Expected 1 stored transaction, got %d", len(transactionRepo.Transactions))
	}
	if len(notifier.Notifications) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifier.Notifications))
	}
}

func TestCreateTransaction_ZeroAmount(t *testing.T) {
	transactionService, _, _, _ := newTransactionFixture()

	_, err := transactionService.CreateTransaction(1, CreateTransactionInput{
		CategoryID: 1,
		Amount:     0,
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreateTransaction_UnknownCategory(t *testing.T) {
	transactionService, _, _, _ := newTransactionFixture()

	_, err := transactionService.CreateTransaction(1, CreateTransactionInput{
		CategoryID: 42,
		Amount:     1000,
	})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateTransaction_BlankCommentDropped(t *testing.T) {
	transactionService, _, _, _ := newTransactionFixture()

	comment := "   "
	transaction, err := transactionService.CreateTransaction(1, CreateTransactionInput{
		CategoryID: 1,
		Amount:     1000,
		Comment:    &comment,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if transaction.Comment != nil {
		t.Errorf("Expected blank comment to be dropped, got %q", *transaction.Comment)
	}
}

func TestCreateTransaction_CommentTooLong(t *testing.T) {
	transactionService, _, _, _ := newTransactionFixture()

	comment := strings.Repeat("x", domain.MaxCommentLength+1)
	_, err := transactionService.CreateTransaction(1, CreateTransactionInput{
		CategoryID: 1,
		Amount:     1000,
		Comment:    &comment,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestGetTransactions_InvalidDateRange(t *testing.T) {
	transactionService, _, _, _ := newTransactionFixture()

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := transactionService.GetTransactions(&domain.TransactionFilters{
		StartDate: &start,
		EndDate:   &end,
	})
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}
}

func TestGetTransactions_EmptyResultIsNotNil(t *testing.T) {
	transactionService, _, _, _ := newTransactionFixture()

	transactions, err := transactionService.GetTransactions(nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if transactions == nil {
		t.Error("Expected an empty slice, got nil")
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	transactionService, _, _, _ := newTransactionFixture()

	amount := int64(100)
	_, err := transactionService.UpdateTransaction("missing", UpdateTransactionInput{Amount: &amount})
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestUpdateTransaction_PartialUpdate(t *testing.T) {
	transactionService, _, _, _ := newTransactionFixture()

	comment := "рынок"
	created, err := transactionService.CreateTransaction(1, CreateTransactionInput{
		CategoryID: 1,
		Amount:     2000,
		Comment:    &comment,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	amount := int64(2500)
	updated, err := transactionService.UpdateTransaction(created.ID, UpdateTransactionInput{Amount: &amount})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.Amount != 2500 {
		t.Errorf("Expected amount 2500, got %d", updated.Amount)
	}
	if updated.Comment == nil || *updated.Comment != "рынок" {
		t.Error("Expected comment to be untouched")
	}
}

func TestDeleteTransaction_Success(t *testing.T) {
	transactionService, _, transactionRepo, _ := newTransactionFixture()

	created, err := transactionService.CreateTransaction(1, CreateTransactionInput{
		CategoryID: 1,
		Amount:     1000,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := transactionService.DeleteTransaction(created.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(transactionRepo.Transactions) != 0 {
		t.Errorf("Expected 0 stored transactions, got %d", len(transactionRepo.Transactions))
	}
}

func TestExportCSV_HeadersAndRows(t *testing.T) {
	transactionService, _, transactionRepo, _ := newTransactionFixture()
	transactionRepo.UserNames[1] = "Бекжан"

	comment := "рынок"
	if _, err := transactionService.CreateTransaction(1, CreateTransactionInput{
		CategoryID: 1,
		Amount:     4500,
		Comment:    &comment,
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	payload, filename, err := transactionService.ExportCSV(nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.HasPrefix(filename, "transactions_") || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("Unexpected filename %q", filename)
	}

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Дата,Категория,Сумма,Тип,Кто,Комментарий" {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Продукты") || !strings.Contains(lines[1], "4500") {
		t.Errorf("Unexpected row %q", lines[1])
	}
}
