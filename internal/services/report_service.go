package services

import (
	"time"

	"fintrack/internal/aggregator"
	"fintrack/internal/money"
)

// recentExpenseCount is how many expenses the dashboard lists.
const recentExpenseCount = 5

// ReportOptions configures report computation.
type ReportOptions struct {
	Evaluate   aggregator.EvaluateOptions
	WindowDays int
	// Now returns the reference time of reports. Defaults to time.Now.
	Now func() time.Time
}

// ExpenseView is an expense as shown in reports, with its category resolved.
type ExpenseView struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"category_id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
}

// Dashboard is the overview of a user's finances.
type Dashboard struct {
	AsOf               string                      `json:"as_of"`
	WindowDays         int                         `json:"window_days"`
	TotalMonthlyIncome float64                     `json:"total_monthly_income"`
	RecentSpending     float64                     `json:"recent_spending"`
	NetMonthly         float64                     `json:"net_monthly"`
	RecentExpenses     []ExpenseView               `json:"recent_expenses"`
	CategorySummary    []aggregator.ExpenseSummary `json:"category_summary"`
	BudgetStatuses     []aggregator.BudgetStatus   `json:"budget_statuses"`
}

// ExpenseReport summarizes spending over a report period.
type ExpenseReport struct {
	Period          aggregator.Period           `json:"period"`
	StartDate       string                      `json:"start_date"`
	EndDate         string                      `json:"end_date"`
	TotalExpenses   float64                     `json:"total_expenses"`
	ExpenseCount    int                         `json:"expense_count"`
	CategorySummary []aggregator.ExpenseSummary `json:"category_summary"`
	HighestCategory *aggregator.ExpenseSummary  `json:"highest_category"`
}

// IncomeSourceSummary is one income source with its monthly equivalent.
type IncomeSourceSummary struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Frequency         string  `json:"frequency"`
	Amount            float64 `json:"amount"`
	MonthlyEquivalent float64 `json:"monthly_equivalent"`
}

// IncomeSummary lists income sources normalized to a monthly rate.
type IncomeSummary struct {
	Sources            []IncomeSourceSummary `json:"sources"`
	TotalMonthlyIncome float64               `json:"total_monthly_income"`
}

// reportService computes reports from cached snapshots.
type reportService struct {
	snapshots SnapshotServicer
	opts      ReportOptions
}

// NewReportService creates a new ReportServicer.
func NewReportService(snapshots SnapshotServicer, opts ReportOptions) ReportServicer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = aggregator.DefaultWindowDays
	}
	return &reportService{snapshots: snapshots, opts: opts}
}

// GetDashboard returns income, recent spending, budgets and category shares.
func (s *reportService) GetDashboard(userID string) (*Dashboard, error) {
	snap, err := s.snapshots.Load(userID)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	income := aggregator.TotalMonthlyIncome(snap.IncomeSources)
	spent := aggregator.TotalInWindow(snap.Expenses, now, s.opts.WindowDays)

	recent := aggregator.RecentExpenses(snap.Expenses, recentExpenseCount)
	views := make([]ExpenseView, 0, len(recent))
	for _, e := range recent {
		views = append(views, expenseView(e, snap.Categories))
	}

	return &Dashboard{
		AsOf:               now.Format(time.DateOnly),
		WindowDays:         s.opts.WindowDays,
		TotalMonthlyIncome: money.Round(income),
		RecentSpending:     money.Round(spent),
		NetMonthly:         money.Round(income - spent),
		RecentExpenses:     views,
		CategorySummary:    roundSummaries(aggregator.SummarizeByCategory(snap.Expenses, snap.Categories)),
		BudgetStatuses:     roundStatuses(aggregator.EvaluateBudgets(snap.Budgets, snap.Expenses, snap.Categories, s.opts.Evaluate)),
	}, nil
}

// GetExpenseReport summarizes the expenses dated within period.
func (s *reportService) GetExpenseReport(userID string, period aggregator.Period) (*ExpenseReport, error) {
	snap, err := s.snapshots.Load(userID)
	if err != nil {
		return nil, err
	}
	if !period.IsValid() {
		period = aggregator.PeriodMonth
	}

	now := s.opts.Now()
	start := aggregator.PeriodStart(period, now)
	expenses := aggregator.ExpensesSince(snap.Expenses, start)

	amounts := make([]float64, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}

	summary := aggregator.SummarizeByCategory(expenses, snap.Categories)
	report := &ExpenseReport{
		Period:          period,
		StartDate:       start.Format(time.DateOnly),
		EndDate:         now.Format(time.DateOnly),
		TotalExpenses:   money.Sum(amounts...),
		ExpenseCount:    len(expenses),
		CategorySummary: roundSummaries(summary),
	}
	if top, ok := aggregator.HighestSpending(summary); ok {
		for _, s := range report.CategorySummary {
			if s.Category == top.Category {
				top = s
				break
			}
		}
		report.HighestCategory = &top
	}
	return report, nil
}

// GetBudgetStatuses evaluates every budget of the user.
func (s *reportService) GetBudgetStatuses(userID string) ([]aggregator.BudgetStatus, error) {
	snap, err := s.snapshots.Load(userID)
	if err != nil {
		return nil, err
	}
	return roundStatuses(aggregator.EvaluateBudgets(snap.Budgets, snap.Expenses, snap.Categories, s.opts.Evaluate)), nil
}

// GetIncomeSummary lists each income source's monthly equivalent and their
// total.
func (s *reportService) GetIncomeSummary(userID string) (*IncomeSummary, error) {
	snap, err := s.snapshots.Load(userID)
	if err != nil {
		return nil, err
	}

	summary := &IncomeSummary{
		Sources:            make([]IncomeSourceSummary, 0, len(snap.IncomeSources)),
		TotalMonthlyIncome: money.Round(aggregator.TotalMonthlyIncome(snap.IncomeSources)),
	}
	for _, src := range snap.IncomeSources {
		summary.Sources = append(summary.Sources, IncomeSourceSummary{
			ID:                src.ID,
			Name:              src.Name,
			Frequency:         src.Frequency,
			Amount:            src.Amount,
			MonthlyEquivalent: money.Round(aggregator.MonthlyEquivalent(src)),
		})
	}
	return summary, nil
}

func expenseView(e aggregator.Expense, names aggregator.CategoryResolver) ExpenseView {
	category := aggregator.UnknownCategory
	if name, ok := names.CategoryName(e.CategoryID); ok {
		category = name
	}
	return ExpenseView{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Category:    category,
		Amount:      e.Amount,
		Date:        e.Date.Format(time.DateOnly),
		Description: e.Description,
	}
}

// roundSummaries rounds figures for presentation. Percentages are rounded as
// a set so the presented shares still add up to 100.
func roundSummaries(in []aggregator.ExpenseSummary) []aggregator.ExpenseSummary {
	shares := make([]float64, len(in))
	for i, s := range in {
		shares[i] = s.Percentage
	}
	shares = money.RoundShares(shares...)

	out := make([]aggregator.ExpenseSummary, len(in))
	for i, s := range in {
		s.Amount = money.Round(s.Amount)
		s.Percentage = shares[i]
		out[i] = s
	}
	return out
}

// roundStatus rounds figures for presentation. Band and flags are computed
// from the unrounded percentage and are left as they are.
func roundStatus(s aggregator.BudgetStatus) aggregator.BudgetStatus {
	s.Spent = money.Round(s.Spent)
	s.Limit = money.Round(s.Limit)
	s.Percentage = money.Round(s.Percentage)
	return s
}

func roundStatuses(in []aggregator.BudgetStatus) []aggregator.BudgetStatus {
	out := make([]aggregator.BudgetStatus, len(in))
	for i, s := range in {
		out[i] = roundStatus(s)
	}
	return out
}
