package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/ofx"
	"fintrack/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db         *gorm.DB
	categories CategoryServicer
	snapshots  SnapshotServicer
	parser     *ofx.Parser
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, categories CategoryServicer, snapshots SnapshotServicer) ExpenseServicer {
	return &expenseService{db: db, categories: categories, snapshots: snapshots, parser: ofx.NewParser()}
}

// CreateExpense records a new expense in a category visible to the user.
func (s *expenseService) CreateExpense(userID, categoryID string, amount float64, date time.Time, description *string) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if _, err := s.categories.GetCategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Date:        calendarDate(date),
		Description: trimmed(description),
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.snapshots.Invalidate(userID)
	return expense, nil
}

// GetUserExpenses returns a paginated list of the user's expenses, newest
// first.
func (s *expenseService) GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	query := func() *gorm.DB {
		q := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
		if filter.FromDate != nil {
			q = q.Where("date >= ?", calendarDate(*filter.FromDate))
		}
		if filter.ToDate != nil {
			q = q.Where("date <= ?", calendarDate(*filter.ToDate))
		}
		if filter.CategoryID != nil {
			q = q.Where("category_id = ?", *filter.CategoryID)
		}
		return q
	}

	var totalItems int64
	if err := query().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := query().Order("date DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID returns an expense if it belongs to the user.
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.snapshots.Invalidate(userID)
	return nil
}

// ImportOFX records every debit in an OFX statement as an expense in
// categoryID. Credits, zero amounts and transactions imported before (by
// their FITID) are skipped. The import is all or nothing.
func (s *expenseService) ImportOFX(ctx context.Context, userID, categoryID string, r io.Reader) (*ImportResult, error) {
	if _, err := s.categories.GetCategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	transactions, err := s.parser.ParseFile(ctx, r)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInvalidImportFile, err)
	}

	result := &ImportResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, t := range transactions {
			if !t.Debit || t.Amount <= 0 {
				result.Skipped++
				continue
			}

			var fitID *string
			if t.FiTID != "" {
				id := t.FiTID
				fitID = &id

				var count int64
				if err := tx.Model(&models.Expense{}).
					Where("user_id = ? AND external_id = ?", userID, id).
					Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					result.Skipped++
					continue
				}
			}

			description := t.Description
			expense := &models.Expense{
				UserID:      userID,
				CategoryID:  categoryID,
				Amount:      t.Amount,
				Date:        calendarDate(t.Date),
				Description: trimmed(&description),
				ExternalID:  fitID,
			}
			if err := tx.Create(expense).Error; err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if result.Imported > 0 {
		s.snapshots.Invalidate(userID)
	}
	logger.Get().Infow("Imported OFX statement",
		"user_id", userID,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}

// trimmed returns nil for nil or blank strings and a trimmed copy otherwise.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
