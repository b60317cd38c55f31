package services

import (
	"context"
	"io"
	"time"

	"fintrack/internal/aggregator"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	SeedDefaults() error
	ListCategories(userID string) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	CreateCategory(userID, name string, description *string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *string
}

// ImportResult reports the outcome of a statement import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID, categoryID string, amount float64, date time.Time, description *string) (*models.Expense, error)
	GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
	ImportOFX(ctx context.Context, userID, categoryID string, r io.Reader) (*ImportResult, error)
}

// BudgetUpdate holds the budget fields that may change after creation. Nil
// fields are left untouched.
type BudgetUpdate struct {
	LimitAmount    *float64
	EndDate        *time.Time
	AlertThreshold *float64
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID string, limitAmount float64, startDate, endDate time.Time, alertThreshold float64) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	GetBudgetStatus(userID, budgetID string) (*aggregator.BudgetStatus, error)
}

// IncomeServicer defines the contract for income-source business logic.
type IncomeServicer interface {
	CreateIncomeSource(userID, name string, amount float64, frequency models.IncomeFrequency, description *string) (*models.IncomeSource, error)
	GetUserIncomeSources(userID string) ([]models.IncomeSource, error)
	GetIncomeSourceByID(userID, incomeSourceID string) (*models.IncomeSource, error)
	DeleteIncomeSource(userID, incomeSourceID string) error
}

// ReportServicer defines the contract for aggregated dashboards and reports.
type ReportServicer interface {
	GetDashboard(userID string) (*Dashboard, error)
	GetExpenseReport(userID string, period aggregator.Period) (*ExpenseReport, error)
	GetBudgetStatuses(userID string) ([]aggregator.BudgetStatus, error)
	GetIncomeSummary(userID string) (*IncomeSummary, error)
}

// SnapshotServicer loads and caches per-user record snapshots.
type SnapshotServicer interface {
	// Load returns the user's snapshot, from cache when fresh.
	Load(userID string) (*Snapshot, error)
	// Invalidate drops the user's cached snapshot and tells other replicas
	// to do the same.
	Invalidate(userID string)
	// Evict drops the user's cached snapshot on this replica only.
	Evict(userID string)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
