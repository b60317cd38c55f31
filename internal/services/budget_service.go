package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/aggregator"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// DefaultAlertThreshold is the alert threshold of budgets created without one.
const DefaultAlertThreshold = 80.0

// budgetService handles budget-related business logic.
type budgetService struct {
	db         *gorm.DB
	categories CategoryServicer
	snapshots  SnapshotServicer
	opts       aggregator.EvaluateOptions
}

// NewBudgetService creates a new BudgetServicer. opts decides which expenses
// count against a budget when its status is evaluated.
func NewBudgetService(db *gorm.DB, categories CategoryServicer, snapshots SnapshotServicer, opts aggregator.EvaluateOptions) BudgetServicer {
	return &budgetService{db: db, categories: categories, snapshots: snapshots, opts: opts}
}

// CreateBudget creates a new budget for a category.
func (s *budgetService) CreateBudget(
	userID, categoryID string,
	limitAmount float64,
	startDate, endDate time.Time,
	alertThreshold float64,
) (*models.Budget, error) {
	if limitAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit amount must be greater than zero")
	}
	if err := validateThreshold(alertThreshold); err != nil {
		return nil, err
	}
	startDate, endDate = calendarDate(startDate), calendarDate(endDate)
	if !endDate.After(startDate) {
		return nil, apperrors.ErrInvalidBudgetWindow
	}

	if _, err := s.categories.GetCategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:         userID,
		CategoryID:     categoryID,
		LimitAmount:    limitAmount,
		StartDate:      startDate,
		EndDate:        endDate,
		AlertThreshold: alertThreshold,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.snapshots.Invalidate(userID)
	return budget, nil
}

// GetUserBudgets returns a paginated list of the user's budgets, latest
// start date first.
func (s *budgetService) GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Budget{}).Where("user_id = ?", userID).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Category").Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget changes a budget's limit, end date or alert threshold.
func (s *budgetService) UpdateBudget(userID, budgetID string, update BudgetUpdate) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.LimitAmount != nil {
		if *update.LimitAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit amount must be greater than zero")
		}
		updates["limit_amount"] = *update.LimitAmount
	}
	if update.EndDate != nil {
		end := calendarDate(*update.EndDate)
		if !end.After(calendarDate(budget.StartDate)) {
			return nil, apperrors.ErrInvalidBudgetWindow
		}
		updates["end_date"] = end
	}
	if update.AlertThreshold != nil {
		if err := validateThreshold(*update.AlertThreshold); err != nil {
			return nil, err
		}
		updates["alert_threshold"] = *update.AlertThreshold
	}

	if len(updates) == 0 {
		return budget, nil
	}
	if err := s.db.Model(budget).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.snapshots.Invalidate(userID)
	return s.GetBudgetByID(userID, budgetID)
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.snapshots.Invalidate(userID)
	return nil
}

// GetBudgetStatus evaluates a single budget against the user's expenses.
func (s *budgetService) GetBudgetStatus(userID, budgetID string) (*aggregator.BudgetStatus, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Load(userID)
	if err != nil {
		return nil, err
	}

	status := roundStatus(aggregator.EvaluateBudget(toAggregatorBudget(*budget), snap.Expenses, snap.Categories, s.opts))
	return &status, nil
}

func validateThreshold(threshold float64) error {
	if threshold < 0 || threshold > 100 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "alert threshold must be between 0 and 100")
	}
	return nil
}
