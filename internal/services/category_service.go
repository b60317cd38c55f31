package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db        *gorm.DB
	snapshots SnapshotServicer
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, snapshots SnapshotServicer) CategoryServicer {
	return &categoryService{db: db, snapshots: snapshots}
}

// SeedDefaults inserts the shared default categories that are missing.
func (s *categoryService) SeedDefaults() error {
	defaults := models.DefaultCategories()
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListCategories returns the default categories followed by the user's own,
// each group ordered by name.
func (s *categoryService) ListCategories(userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id IS NULL OR user_id = ?", userID).
		Order("CASE WHEN user_id IS NULL THEN 0 ELSE 1 END, name").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a default category or one owned by the user.
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND (user_id IS NULL OR user_id = ?)", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateCategory creates a category owned by the user. Names are unique per
// user, case-insensitively, including the default names.
func (s *categoryService) CreateCategory(userID, name string, description *string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("LOWER(name) = ? AND (user_id IS NULL OR user_id = ?)", strings.ToLower(name), userID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID:      &userID,
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.snapshots.Invalidate(userID)
	return category, nil
}

// DeleteCategory soft-deletes one of the user's own categories. Expenses and
// budgets that reference it are kept and report the category as unknown.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}
	if category.IsDefault() {
		return apperrors.WithMessage(apperrors.ErrForbidden, "default categories cannot be deleted")
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.snapshots.Invalidate(userID)
	return nil
}
