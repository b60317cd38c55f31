package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date returns midnight UTC of the given calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns midnight UTC of the current date.
func Today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return Date(y, m, d)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category owned by userID.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: &userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense of amount in categoryID on date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID string, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestBudget creates a budget with the given limit covering the current
// month.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryID string, limit float64) *models.Budget {
	t.Helper()

	today := Today()
	start := Date(today.Year(), today.Month(), 1)
	budget := &models.Budget{
		UserID:         userID,
		CategoryID:     categoryID,
		LimitAmount:    limit,
		StartDate:      start,
		EndDate:        start.AddDate(0, 1, -1),
		AlertThreshold: 80,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestIncomeSource creates an income source.
func CreateTestIncomeSource(t *testing.T, db *gorm.DB, userID string, amount float64, frequency models.IncomeFrequency) *models.IncomeSource {
	t.Helper()

	source := &models.IncomeSource{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Income %d", nextID()),
		Amount:    amount,
		Frequency: frequency,
	}
	if err := db.Create(source).Error; err != nil {
		t.Fatalf("failed to create test income source: %v", err)
	}
	return source
}
