package models

import "time"

// Expense represents a single recorded spend. Expenses are created and deleted
// but never edited.
type Expense struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  string    `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount      float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Description *string   `json:"description,omitempty"`
	// ExternalID is the bank's transaction ID for imported expenses.
	ExternalID *string `gorm:"index" json:"external_id,omitempty"`
}
