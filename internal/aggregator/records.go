// Package aggregator turns one user's raw expense, budget and income records
// into summaries. Every function is pure: inputs are read, never modified, and
// no function performs I/O, so all of them are safe for concurrent use.
package aggregator

import "time"

// UnknownCategory labels expenses whose category cannot be resolved.
const UnknownCategory = "Unknown"

// Expense is the aggregator's view of a recorded spend.
type Expense struct {
	ID          string
	CategoryID  string
	Amount      float64
	Date        time.Time
	Description *string
}

// Budget is the aggregator's view of a category spending limit.
type Budget struct {
	ID             string
	CategoryID     string
	LimitAmount    float64
	StartDate      time.Time
	EndDate        time.Time
	AlertThreshold float64
}

// IncomeSource is the aggregator's view of a recurring income stream.
// Frequency is kept as a plain string so unrecognized values can be passed
// through and handled by MonthlyEquivalent.
type IncomeSource struct {
	ID        string
	Name      string
	Amount    float64
	Frequency string
}

// CategoryResolver maps a category ID to its display name.
type CategoryResolver interface {
	CategoryName(id string) (string, bool)
}

// CategoryNames is a map-backed CategoryResolver.
type CategoryNames map[string]string

// CategoryName implements CategoryResolver.
func (n CategoryNames) CategoryName(id string) (string, bool) {
	name, ok := n[id]
	return name, ok
}

func resolveName(names CategoryResolver, id string) string {
	if names == nil {
		return UnknownCategory
	}
	if name, ok := names.CategoryName(id); ok {
		return name
	}
	return UnknownCategory
}

// dateOf returns midnight UTC of the calendar date t falls on in its own
// location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// share returns part/whole*100, or 0 when whole is not positive.
func share(part, whole float64) float64 {
	if whole > 0 {
		return part / whole * 100
	}
	return 0
}
