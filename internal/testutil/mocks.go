package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/montyapp/monty-backend/internal/domain"
)

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	TxCounts   map[int32]int64
	NextID     int32
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		TxCounts:   make(map[int32]int64),
		NextID:     1,
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.ID = m.NextID
	m.NextID++
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int32) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves every category ordered by ID
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	ids := make([]int32, 0, len(m.Categories))
	for id := range m.Categories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	categories := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		categories = append(categories, m.Categories[id])
	}
	return categories, nil
}

// Update updates an existing category
func (m *MockCategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	if _, ok := m.Categories[category.ID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	m.Categories[category.ID] = category
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id int32) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// CountTransactions returns the configured transaction count for a category
func (m *MockCategoryRepository) CountTransactions(id int32) (int64, error) {
	return m.TxCounts[id], nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
	m.Categories[category.ID] = category
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository. Derived reads (sums, categorized joins) are
// computed from Transactions plus the category metadata registered with the
// paired MockCategoryRepository.
type MockTransactionRepository struct {
	Transactions map[string]*domain.Transaction
	Categories   *MockCategoryRepository
	UserNames    map[int32]string
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository(categories *MockCategoryRepository) *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[string]*domain.Transaction),
		Categories:   categories,
		UserNames:    make(map[int32]string),
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(id string) (*domain.Transaction, error) {
	if transaction, ok := m.Transactions[id]; ok {
		return transaction, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// Query retrieves transactions matching filters, newest first
func (m *MockTransactionRepository) Query(filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, t := range m.Transactions {
		if m.matches(t, filters) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TransactionDate.After(result[j].TransactionDate)
	})
	return result, nil
}

// Update updates an existing transaction
func (m *MockTransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	if _, ok := m.Transactions[transaction.ID]; !ok {
		return nil, domain.ErrTransactionNotFound
	}
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(id string) error {
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// SumByCategory returns spent per category over [start, end)
func (m *MockTransactionRepository) SumByCategory(start, end time.Time) (map[int32]int64, error) {
	sums := make(map[int32]int64)
	for _, t := range m.Transactions {
		if inWindow(t.TransactionDate, start, end) {
			sums[t.CategoryID] += t.Amount
		}
	}
	return sums, nil
}

// SumSavings returns the lifetime sum over SAVINGS-group categories
func (m *MockTransactionRepository) SumSavings() (int64, error) {
	var sum int64
	for _, t := range m.Transactions {
		category, ok := m.Categories.Categories[t.CategoryID]
		if ok && category.Group == domain.GroupSavings {
			sum += t.Amount
		}
	}
	return sum, nil
}

// QueryCategorized returns joined transactions in [start, end), newest first
func (m *MockTransactionRepository) QueryCategorized(start, end time.Time) ([]*domain.CategorizedTransaction, error) {
	return m.QueryCategorizedFiltered(&domain.TransactionFilters{
		StartDate: &start,
		EndDate:   &end,
	})
}

// QueryCategorizedFiltered returns joined transactions matching filters,
// newest first
func (m *MockTransactionRepository) QueryCategorizedFiltered(filters *domain.TransactionFilters) ([]*domain.CategorizedTransaction, error) {
	var result []*domain.CategorizedTransaction
	for _, t := range m.Transactions {
		if !m.matches(t, filters) {
			continue
		}
		row := &domain.CategorizedTransaction{
			Transaction: *t,
			UserName:    m.UserNames[t.UserID],
		}
		if category, ok := m.Categories.Categories[t.CategoryID]; ok {
			row.CategoryName = category.Name
			row.CategoryIcon = category.Icon
			row.Group = category.Group
			row.Type = category.Type
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TransactionDate.After(result[j].TransactionDate)
	})
	return result, nil
}

func (m *MockTransactionRepository) matches(t *domain.Transaction, filters *domain.TransactionFilters) bool {
	if filters == nil {
		return true
	}
	if filters.CategoryID != nil && t.CategoryID != *filters.CategoryID {
		return false
	}
	if filters.StartDate != nil && t.TransactionDate.Before(*filters.StartDate) {
		return false
	}
	if filters.EndDate != nil && !t.TransactionDate.Before(*filters.EndDate) {
		return false
	}
	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		var haystack string
		if t.Comment != nil {
			haystack = strings.ToLower(*t.Comment)
		}
		var categoryName string
		if category, ok := m.Categories.Categories[t.CategoryID]; ok {
			categoryName = strings.ToLower(category.Name)
		}
		if !strings.Contains(haystack, needle) && !strings.Contains(categoryName, needle) {
			return false
		}
	}
	return true
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets    map[int32]*domain.MonthlyBudget
	Categories *MockCategoryRepository
	NextID     int32
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository(categories *MockCategoryRepository) *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets:    make(map[int32]*domain.MonthlyBudget),
		Categories: categories,
		NextID:     1,
	}
}

// GetByPeriod returns the configs for one period joined with category metadata
func (m *MockBudgetRepository) GetByPeriod(period time.Time) ([]*domain.BudgetConfig, error) {
	var configs []*domain.BudgetConfig
	for _, b := range m.Budgets {
		if !b.Period.Equal(period) {
			continue
		}
		config := &domain.BudgetConfig{
			CategoryID:  b.CategoryID,
			LimitAmount: b.LimitAmount,
		}
		if category, ok := m.Categories.Categories[b.CategoryID]; ok {
			config.CategoryName = category.Name
			config.CategoryIcon = category.Icon
			config.Group = category.Group
			config.Type = category.Type
		}
		configs = append(configs, config)
	}
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].CategoryID < configs[j].CategoryID
	})
	return configs, nil
}

// Upsert inserts or replaces the limit for (category, period)
func (m *MockBudgetRepository) Upsert(budget *domain.MonthlyBudget) (*domain.MonthlyBudget, error) {
	for _, b := range m.Budgets {
		if b.CategoryID == budget.CategoryID && b.Period.Equal(budget.Period) {
			b.LimitAmount = budget.LimitAmount
			return b, nil
		}
	}
	budget.ID = m.NextID
	m.NextID++
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// MockSettingsRepository is a mock implementation of domain.SettingsRepository
type MockSettingsRepository struct {
	Values map[string]string
}

// NewMockSettingsRepository creates a new MockSettingsRepository
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{Values: make(map[string]string)}
}

// Get retrieves one setting, empty string when unset
func (m *MockSettingsRepository) Get(key string) (string, error) {
	return m.Values[key], nil
}

// Set stores one setting
func (m *MockSettingsRepository) Set(key, value string) error {
	m.Values[key] = value
	return nil
}

// GetAll retrieves every stored setting
func (m *MockSettingsRepository) GetAll() (map[string]string, error) {
	values := make(map[string]string, len(m.Values))
	for k, v := range m.Values {
		values[k] = v
	}
	return values, nil
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users  map[int32]*domain.User
	NextID int32
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int32]*domain.User),
		NextID: 1,
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id int32) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByTelegramID retrieves a user by Telegram ID
func (m *MockUserRepository) GetByTelegramID(telegramID int64) (*domain.User, error) {
	for _, user := range m.Users {
		if user.TelegramID == telegramID {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Upsert creates the user on first login and refreshes the name afterwards
func (m *MockUserRepository) Upsert(user *domain.User) (*domain.User, error) {
	for _, existing := range m.Users {
		if existing.TelegramID == user.TelegramID {
			existing.FirstName = user.FirstName
			return existing, nil
		}
	}
	user.ID = m.NextID
	m.NextID++
	user.IsActive = true
	m.Users[user.ID] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
	m.Users[user.ID] = user
}

// MockNotifier records notifications instead of delivering them
type MockNotifier struct {
	Notifications []string
	Broadcasts    []string
}

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// NotifyTransaction records a transaction notification
func (m *MockNotifier) NotifyTransaction(icon, categoryName string, amount int64, userName, comment string) {
	m.Notifications = append(m.Notifications, categoryName)
}

// Broadcast records a broadcast message
func (m *MockNotifier) Broadcast(_ context.Context, text string) error {
	m.Broadcasts = append(m.Broadcasts, text)
	return nil
}
