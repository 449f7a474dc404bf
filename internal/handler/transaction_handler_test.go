package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/montyapp/monty-backend/internal/testutil"
)

func newTransactionHandlerFixture() (*TransactionHandler, *testutil.MockTransactionRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Продукты", Group: domain.GroupBase, Type: domain.TypeExpense, Icon: "🛒"})
	transactionRepo := testutil.NewMockTransactionRepository(categoryRepo)
	userRepo := testutil.NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: 1, TelegramID: 100, FirstName: "Бекжан", IsActive: true})
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo, userRepo, testutil.NewMockNotifier())
	return NewTransactionHandler(transactionService), transactionRepo
}

func TestCreateTransactionHandler_Success(t *testing.T) {
	e := echo.New()
	handler, transactionRepo := newTransactionHandlerFixture()

	body := `{"category_id":1,"amount":4500,"comment":"рынок"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var transaction domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &transaction); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if transaction.Amount != 4500 {
		t.Errorf("Expected amount 4500, got %d", transaction.Amount)
	}
	if transaction.UserID != 1 {
		t.Errorf("Expected user id 1, got %d", transaction.UserID)
	}
	if len(transactionRepo.Transactions) != 1 {
		t.Errorf("Expected 1 stored transaction, got %d", len(transactionRepo.Transactions))
	}
}

func TestCreateTransactionHandler_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandlerFixture()

	body := `{"category_id":1,"amount":4500}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestCreateTransactionHandler_ZeroAmount(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandlerFixture()

	body := `{"category_id":1,"amount":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTransactionsHandler_BadDateFilter(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?start_date=15-03-2024", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDeleteTransactionHandler_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandlerFixture()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	setupAuthContext(c, 1)

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestExportCSVHandler_Attachment(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export/csv", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.ExportCSV(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected text/csv content type, got %s", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "attachment") {
		t.Errorf("Expected attachment disposition, got %s", cd)
	}
	if !strings.Contains(rec.Body.String(), "Дата,Категория,Сумма,Тип,Кто,Комментарий") {
		t.Error("Expected the CSV header row")
	}
}
