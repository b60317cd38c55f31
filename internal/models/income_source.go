package models

// IncomeFrequency is how often an income source pays out.
type IncomeFrequency string

const (
	IncomeFrequencyDaily     IncomeFrequency = "daily"
	IncomeFrequencyWeekly    IncomeFrequency = "weekly"
	IncomeFrequencyBiWeekly  IncomeFrequency = "bi-weekly"
	IncomeFrequencyMonthly   IncomeFrequency = "monthly"
	IncomeFrequencyQuarterly IncomeFrequency = "quarterly"
	IncomeFrequencyAnnually  IncomeFrequency = "annually"
)

// IsValid reports whether f is one of the supported frequencies.
func (f IncomeFrequency) IsValid() bool {
	switch f {
	case IncomeFrequencyDaily, IncomeFrequencyWeekly, IncomeFrequencyBiWeekly,
		IncomeFrequencyMonthly, IncomeFrequencyQuarterly, IncomeFrequencyAnnually:
		return true
	}
	return false
}

// IncomeSource represents a recurring income stream.
type IncomeSource struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string          `gorm:"not null" json:"name"`
	Amount      float64         `gorm:"type:numeric(12,2);not null" json:"amount"`
	Frequency   IncomeFrequency `gorm:"not null" json:"frequency"`
	Description *string         `json:"description,omitempty"`
}
