package aggregator

import (
	"sort"
	"time"
)

// DefaultWindowDays is the trailing window used by dashboards.
const DefaultWindowDays = 30

// TotalInWindow sums expenses dated on or after the calendar date windowDays
// days before asOf. Times of day are ignored on both sides of the comparison.
func TotalInWindow(expenses []Expense, asOf time.Time, windowDays int) float64 {
	cutoff := dateOf(asOf).AddDate(0, 0, -windowDays)
	total := 0.0
	for _, e := range ExpensesSince(expenses, cutoff) {
		total += e.Amount
	}
	return total
}

// ExpensesSince returns the expenses dated on or after since's calendar date.
func ExpensesSince(expenses []Expense, since time.Time) []Expense {
	cutoff := dateOf(since)
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if !dateOf(e.Date).Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// RecentExpenses returns up to n expenses ordered newest first. The input
// slice is left untouched.
func RecentExpenses(expenses []Expense, n int) []Expense {
	if n <= 0 {
		return []Expense{}
	}
	sorted := make([]Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Period is a report period.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// IsValid reports whether p is a known period.
func (p Period) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

// PeriodStart returns the calendar date a report period begins on when
// viewed from asOf. Unknown periods fall back to one month.
func PeriodStart(p Period, asOf time.Time) time.Time {
	d := dateOf(asOf)
	switch p {
	case PeriodWeek:
		return d.AddDate(0, 0, -7)
	case PeriodQuarter:
		return d.AddDate(0, -3, 0)
	case PeriodYear:
		return d.AddDate(-1, 0, 0)
	default:
		return d.AddDate(0, -1, 0)
	}
}
