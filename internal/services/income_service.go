package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// incomeService handles income-source business logic.
type incomeService struct {
	db        *gorm.DB
	snapshots SnapshotServicer
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, snapshots SnapshotServicer) IncomeServicer {
	return &incomeService{db: db, snapshots: snapshots}
}

// CreateIncomeSource records a recurring income stream.
func (s *incomeService) CreateIncomeSource(userID, name string, amount float64, frequency models.IncomeFrequency, description *string) (*models.IncomeSource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income source name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !frequency.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported frequency")
	}

	source := &models.IncomeSource{
		UserID:      userID,
		Name:        name,
		Amount:      amount,
		Frequency:   frequency,
		Description: trimmed(description),
	}
	if err := s.db.Create(source).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.snapshots.Invalidate(userID)
	return source, nil
}

// GetUserIncomeSources returns all of the user's income sources in creation
// order.
func (s *incomeService) GetUserIncomeSources(userID string) ([]models.IncomeSource, error) {
	sources := make([]models.IncomeSource, 0)
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&sources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sources, nil
}

// GetIncomeSourceByID returns an income source if it belongs to the user.
func (s *incomeService) GetIncomeSourceByID(userID, incomeSourceID string) (*models.IncomeSource, error) {
	var source models.IncomeSource
	if err := s.db.Where("id = ? AND user_id = ?", incomeSourceID, userID).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeSourceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &source, nil
}

// DeleteIncomeSource soft-deletes an income source.
func (s *incomeService) DeleteIncomeSource(userID, incomeSourceID string) error {
	source, err := s.GetIncomeSourceByID(userID, incomeSourceID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(source).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.snapshots.Invalidate(userID)
	return nil
}
