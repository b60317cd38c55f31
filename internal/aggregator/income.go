package aggregator

// Frequencies understood by MonthlyEquivalent.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyBiWeekly  = "bi-weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyAnnually  = "annually"
)

// MonthlyEquivalent normalizes an income source to a monthly amount.
// Unrecognized frequencies are treated as monthly.
func MonthlyEquivalent(s IncomeSource) float64 {
	switch s.Frequency {
	case FrequencyDaily:
		return s.Amount * 30
	case FrequencyWeekly:
		return s.Amount * 4.33
	case FrequencyBiWeekly:
		return s.Amount * 2.17
	case FrequencyQuarterly:
		return s.Amount / 3
	case FrequencyAnnually:
		return s.Amount / 12
	default:
		return s.Amount
	}
}

// TotalMonthlyIncome sums the monthly equivalent of every source.
func TotalMonthlyIncome(sources []IncomeSource) float64 {
	total := 0.0
	for _, s := range sources {
		total += MonthlyEquivalent(s)
	}
	return total
}
