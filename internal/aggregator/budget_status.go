package aggregator

// Band classifies a utilization percentage.
type Band string

const (
	BandOK       Band = "ok"
	BandWarning  Band = "warning"
	BandCritical Band = "critical"
)

// Fixed banding thresholds. The per-budget alert threshold does not affect
// banding.
const (
	WarningPercentage  = 75.0
	CriticalPercentage = 90.0
	ExceededPercentage = 100.0
)

// BandFor classifies a utilization percentage.
func BandFor(percentage float64) Band {
	switch {
	case percentage >= CriticalPercentage:
		return BandCritical
	case percentage >= WarningPercentage:
		return BandWarning
	default:
		return BandOK
	}
}

// BudgetStatus is the utilization of one budget.
type BudgetStatus struct {
	BudgetID         string  `json:"budget_id"`
	CategoryID       string  `json:"category_id"`
	Category         string  `json:"category"`
	Spent            float64 `json:"spent"`
	Limit            float64 `json:"limit"`
	Percentage       float64 `json:"percentage"`
	Band             Band    `json:"band"`
	ThresholdReached bool    `json:"threshold_reached"`
	Exceeded         bool    `json:"exceeded"`
}

// EvaluateOptions controls which expenses count against a budget.
type EvaluateOptions struct {
	// Windowed restricts spend to expenses dated within the budget's
	// [StartDate, EndDate] range, inclusive. When false every expense in the
	// budget's category counts regardless of date.
	Windowed bool
}

// EvaluateBudgets returns one status per budget, in input order.
func EvaluateBudgets(budgets []Budget, expenses []Expense, names CategoryResolver, opts EvaluateOptions) []BudgetStatus {
	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		statuses = append(statuses, EvaluateBudget(b, expenses, names, opts))
	}
	return statuses
}

// EvaluateBudget computes spend and utilization for a single budget.
func EvaluateBudget(b Budget, expenses []Expense, names CategoryResolver, opts EvaluateOptions) BudgetStatus {
	start, end := dateOf(b.StartDate), dateOf(b.EndDate)
	spent := 0.0
	for _, e := range expenses {
		if e.CategoryID != b.CategoryID {
			continue
		}
		if opts.Windowed {
			d := dateOf(e.Date)
			if d.Before(start) || d.After(end) {
				continue
			}
		}
		spent += e.Amount
	}

	pct := share(spent, b.LimitAmount)
	return BudgetStatus{
		BudgetID:         b.ID,
		CategoryID:       b.CategoryID,
		Category:         resolveName(names, b.CategoryID),
		Spent:            spent,
		Limit:            b.LimitAmount,
		Percentage:       pct,
		Band:             BandFor(pct),
		ThresholdReached: b.LimitAmount > 0 && pct >= b.AlertThreshold,
		Exceeded:         pct >= ExceededPercentage,
	}
}
