package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/montyapp/monty-backend/internal/testutil"
	"github.com/montyapp/monty-backend/internal/util"
)

func newBudgetHandlerFixture() (*BudgetHandler, *testutil.MockCategoryRepository, *testutil.MockTransactionRepository, *testutil.MockBudgetRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository(categoryRepo)
	budgetRepo := testutil.NewMockBudgetRepository(categoryRepo)
	settingsService := service.NewSettingsService(testutil.NewMockSettingsRepository())
	budgetService := service.NewBudgetService(budgetRepo, transactionRepo, categoryRepo, settingsService)
	return NewBudgetHandler(budgetService), categoryRepo, transactionRepo, budgetRepo
}

func TestGetCurrentBudgets_Success(t *testing.T) {
	e := echo.New()
	handler, categoryRepo, transactionRepo, budgetRepo := newBudgetHandlerFixture()

	now := time.Now()
	categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Продукты", Group: domain.GroupBase, Type: domain.TypeExpense, Icon: "🛒"})
	budgetRepo.Upsert(&domain.MonthlyBudget{CategoryID: 1, Period: util.MonthStart(now), LimitAmount: 80000})
	transactionRepo.Transactions["t1"] = &domain.Transaction{ID: "t1", UserID: 1, CategoryID: 1, Amount: 30000, TransactionDate: now}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/current", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.GetCurrent(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var summary domain.BudgetSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(summary.Budgets) != 1 {
		t.Fatalf("Expected 1 budget line, got %d", len(summary.Budgets))
	}
	if summary.Budgets[0].Spent != 30000 {
		t.Errorf("Expected spent 30000, got %d", summary.Budgets[0].Spent)
	}
}

func TestSetBudgetConfig_Success(t *testing.T) {
	e := echo.New()
	handler, categoryRepo, _, _ := newBudgetHandlerFixture()
	categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Продукты", Group: domain.GroupBase, Type: domain.TypeExpense, Icon: "🛒"})

	body := `{"category_id":1,"limit_amount":80000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/settings/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.SetConfig(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var budget domain.MonthlyBudget
	if err := json.Unmarshal(rec.Body.Bytes(), &budget); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if budget.LimitAmount != 80000 {
		t.Errorf("Expected limit 80000, got %d", budget.LimitAmount)
	}
}

func TestSetBudgetConfig_NegativeLimit(t *testing.T) {
	e := echo.New()
	handler, categoryRepo, _, _ := newBudgetHandlerFixture()
	categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Продукты", Group: domain.GroupBase, Type: domain.TypeExpense, Icon: "🛒"})

	body := `{"category_id":1,"limit_amount":-100}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/settings/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.SetConfig(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestSetBudgetConfig_UnknownCategory(t *testing.T) {
	e := echo.New()
	handler, _, _, _ := newBudgetHandlerFixture()

	body := `{"category_id":42,"limit_amount":80000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/settings/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, 1)

	if err := handler.SetConfig(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
