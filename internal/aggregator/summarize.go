package aggregator

// ExpenseSummary is one category's share of total spend.
type ExpenseSummary struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// SummarizeByCategory groups expenses by resolved category name and computes
// each group's share of the total. Groups appear in order of first occurrence.
// Expenses whose category cannot be resolved are grouped under
// UnknownCategory, so two unresolved IDs share one group.
func SummarizeByCategory(expenses []Expense, names CategoryResolver) []ExpenseSummary {
	summaries := make([]ExpenseSummary, 0)
	index := make(map[string]int)
	total := 0.0

	for _, e := range expenses {
		total += e.Amount
		name := resolveName(names, e.CategoryID)
		i, ok := index[name]
		if !ok {
			i = len(summaries)
			index[name] = i
			summaries = append(summaries, ExpenseSummary{Category: name})
		}
		summaries[i].Amount += e.Amount
	}

	for i := range summaries {
		summaries[i].Percentage = share(summaries[i].Amount, total)
	}
	return summaries
}

// HighestSpending returns the summary with the largest amount. On ties the
// latest summary wins. It reports false for an empty slice.
func HighestSpending(summaries []ExpenseSummary) (ExpenseSummary, bool) {
	if len(summaries) == 0 {
		return ExpenseSummary{}, false
	}
	best := summaries[0]
	for _, s := range summaries[1:] {
		if s.Amount >= best.Amount {
			best = s
		}
	}
	return best, true
}
