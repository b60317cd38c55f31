package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Name                string         `gorm:"not null" json:"name"`
	Email               string         `gorm:"uniqueIndex;not null" json:"email"`
	Password            string         `gorm:"not null" json:"-"`
	IsActive            bool           `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string         `gorm:"size:64" json:"-"`
	FailedLoginAttempts int            `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time     `json:"-"`
	LastLoginAt         *time.Time     `json:"last_login_at,omitempty"`
	Expenses            []Expense      `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Budgets             []Budget       `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	IncomeSources       []IncomeSource `gorm:"foreignKey:UserID" json:"income_sources,omitempty"`
}
