package models

import "time"

// Budget represents a spending limit for a category over a date range.
type Budget struct {
	Base
	UserID         string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID     string    `gorm:"type:uuid;not null" json:"category_id"`
	LimitAmount    float64   `gorm:"type:numeric(12,2);not null" json:"limit_amount"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null" json:"end_date"`
	AlertThreshold float64   `gorm:"not null;default:80" json:"alert_threshold"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
