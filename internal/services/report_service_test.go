package services

import (
	"testing"
	"time"

	"fintrack/internal/aggregator"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/testutil"
)

func newTestReports(snapshots SnapshotServicer, now time.Time) ReportServicer {
	return NewReportService(snapshots, ReportOptions{
		Now: func() time.Time { return now },
	})
}

func TestGetDashboard(t *testing.T) {
	t.Run("combines_income_and_spending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		now := testutil.Date(2024, time.March, 31)
		reports := newTestReports(ts.snapshots, now)

		testutil.CreateTestIncomeSource(t, db, user.ID, 3000, models.IncomeFrequencyMonthly)
		testutil.CreateTestIncomeSource(t, db, user.ID, 1200, models.IncomeFrequencyAnnually)
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryFoodID, 100, testutil.Date(2024, time.March, 20))
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryHousingID, 300, testutil.Date(2024, time.March, 1))
		// Older than the 30-day window.
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryFoodID, 50, testutil.Date(2024, time.February, 1))

		dash, err := reports.GetDashboard(user.ID)
		testutil.AssertNoError(t, err)

		if dash.TotalMonthlyIncome != 3100 {
			t.Errorf("expected monthly income 3100, got %v", dash.TotalMonthlyIncome)
		}
		if dash.RecentSpending != 400 {
			t.Errorf("expected recent spending 400, got %v", dash.RecentSpending)
		}
		if dash.NetMonthly != 2700 {
			t.Errorf("expected net 2700, got %v", dash.NetMonthly)
		}
		if dash.WindowDays != aggregator.DefaultWindowDays {
			t.Errorf("expected window %d days, got %d", aggregator.DefaultWindowDays, dash.WindowDays)
		}
		if dash.AsOf != "2024-03-31" {
			t.Errorf("expected as_of 2024-03-31, got %s", dash.AsOf)
		}
		if len(dash.RecentExpenses) != 3 || dash.RecentExpenses[0].Date != "2024-03-20" {
			t.Errorf("expected 3 recent expenses newest first, got %+v", dash.RecentExpenses)
		}
		if dash.RecentExpenses[0].Category != "Food" {
			t.Errorf("expected category name Food, got %s", dash.RecentExpenses[0].Category)
		}
		if len(dash.CategorySummary) != 2 {
			t.Errorf("expected 2 category summaries, got %d", len(dash.CategorySummary))
		}
	})

	t.Run("empty_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		reports := newTestReports(ts.snapshots, testutil.Today())

		dash, err := reports.GetDashboard(user.ID)
		testutil.AssertNoError(t, err)

		if dash.TotalMonthlyIncome != 0 || dash.RecentSpending != 0 || dash.NetMonthly != 0 {
			t.Errorf("expected zero totals, got %+v", dash)
		}
		if dash.RecentExpenses == nil || dash.CategorySummary == nil || dash.BudgetStatuses == nil {
			t.Error("expected empty lists, got nil")
		}
	})

	t.Run("caps_recent_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		reports := newTestReports(ts.snapshots, testutil.Date(2024, time.March, 31))

		for day := 1; day <= 8; day++ {
			testutil.CreateTestExpense(t, db, user.ID, models.CategoryFoodID, 1, testutil.Date(2024, time.March, day))
		}

		dash, err := reports.GetDashboard(user.ID)
		testutil.AssertNoError(t, err)
		if len(dash.RecentExpenses) != recentExpenseCount {
			t.Errorf("expected %d recent expenses, got %d", recentExpenseCount, len(dash.RecentExpenses))
		}
	})
}

func TestGetExpenseReport(t *testing.T) {
	t.Run("month_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		reports := newTestReports(ts.snapshots, testutil.Date(2024, time.March, 15))

		testutil.CreateTestExpense(t, db, user.ID, models.CategoryFoodID, 60, testutil.Date(2024, time.March, 1))
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryHousingID, 40, testutil.Date(2024, time.February, 15))
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryHousingID, 999, testutil.Date(2024, time.February, 14))

		report, err := reports.GetExpenseReport(user.ID, aggregator.PeriodMonth)
		testutil.AssertNoError(t, err)

		if report.StartDate != "2024-02-15" || report.EndDate != "2024-03-15" {
			t.Errorf("expected 2024-02-15..2024-03-15, got %s..%s", report.StartDate, report.EndDate)
		}
		if report.TotalExpenses != 100 || report.ExpenseCount != 2 {
			t.Errorf("expected total 100 over 2 expenses, got %v over %d", report.TotalExpenses, report.ExpenseCount)
		}
		if report.HighestCategory == nil || report.HighestCategory.Category != "Food" {
			t.Fatalf("expected Food as highest category, got %+v", report.HighestCategory)
		}
		if report.HighestCategory.Percentage != 60 {
			t.Errorf("expected 60%%, got %v", report.HighestCategory.Percentage)
		}
	})

	t.Run("equal_shares_add_to_100", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		reports := newTestReports(ts.snapshots, testutil.Date(2024, time.March, 15))

		testutil.CreateTestExpense(t, db, user.ID, models.CategoryFoodID, 10, testutil.Date(2024, time.March, 10))
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryHousingID, 10, testutil.Date(2024, time.March, 9))
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryPersonalID, 10, testutil.Date(2024, time.March, 8))

		report, err := reports.GetExpenseReport(user.ID, aggregator.PeriodMonth)
		testutil.AssertNoError(t, err)

		shares := make([]float64, 0, len(report.CategorySummary))
		for _, s := range report.CategorySummary {
			shares = append(shares, s.Percentage)
		}
		if len(shares) != 3 || shares[0] != 33.34 || shares[1] != 33.33 || shares[2] != 33.33 {
			t.Errorf("expected shares 33.34/33.33/33.33, got %v", shares)
		}
		if total := money.Sum(shares...); total != 100 {
			t.Errorf("expected shares to add up to 100, got %v", total)
		}
		if report.HighestCategory == nil || report.HighestCategory.Category != "Personal" {
			t.Fatalf("expected the last tied category to be highest, got %+v", report.HighestCategory)
		}
		if report.HighestCategory.Percentage != 33.33 {
			t.Errorf("expected highest share to match its summary row, got %v", report.HighestCategory.Percentage)
		}
	})

	t.Run("no_expenses_has_no_highest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		reports := newTestReports(ts.snapshots, testutil.Today())

		report, err := reports.GetExpenseReport(user.ID, aggregator.PeriodWeek)
		testutil.AssertNoError(t, err)
		if report.HighestCategory != nil {
			t.Errorf("expected no highest category, got %+v", report.HighestCategory)
		}
		if report.TotalExpenses != 0 {
			t.Errorf("expected zero total, got %v", report.TotalExpenses)
		}
	})

	t.Run("invalid_period_falls_back_to_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		reports := newTestReports(ts.snapshots, testutil.Date(2024, time.March, 15))

		report, err := reports.GetExpenseReport(user.ID, aggregator.Period("decade"))
		testutil.AssertNoError(t, err)
		if report.Period != aggregator.PeriodMonth {
			t.Errorf("expected month period, got %s", report.Period)
		}
	})
}

func TestGetBudgetStatuses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ts := newTestServices(db)
	user := testutil.CreateTestUser(t, db)
	reports := newTestReports(ts.snapshots, testutil.Today())

	testutil.CreateTestBudget(t, db, user.ID, models.CategoryFoodID, 100)
	testutil.CreateTestBudget(t, db, user.ID, models.CategoryHousingID, 100)
	testutil.CreateTestExpense(t, db, user.ID, models.CategoryFoodID, 95, testutil.Today())
	testutil.CreateTestExpense(t, db, user.ID, models.CategoryHousingID, 150, testutil.Today())

	statuses, err := reports.GetBudgetStatuses(user.ID)
	testutil.AssertNoError(t, err)

	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	byCategory := map[string]aggregator.BudgetStatus{}
	for _, s := range statuses {
		byCategory[s.Category] = s
	}
	if food := byCategory["Food"]; food.Band != aggregator.BandCritical || food.Exceeded {
		t.Errorf("expected Food critical and not exceeded, got %+v", food)
	}
	if housing := byCategory["Housing"]; !housing.Exceeded || housing.Percentage != 150 {
		t.Errorf("expected Housing exceeded at 150%%, got %+v", housing)
	}
}

func TestGetIncomeSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ts := newTestServices(db)
	user := testutil.CreateTestUser(t, db)
	reports := newTestReports(ts.snapshots, testutil.Today())

	testutil.CreateTestIncomeSource(t, db, user.ID, 1000, models.IncomeFrequencyWeekly)
	testutil.CreateTestIncomeSource(t, db, user.ID, 900, models.IncomeFrequencyQuarterly)

	summary, err := reports.GetIncomeSummary(user.ID)
	testutil.AssertNoError(t, err)

	if len(summary.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(summary.Sources))
	}
	if summary.Sources[0].MonthlyEquivalent != 4330 {
		t.Errorf("expected weekly 1000 to be 4330 monthly, got %v", summary.Sources[0].MonthlyEquivalent)
	}
	if summary.Sources[1].MonthlyEquivalent != 300 {
		t.Errorf("expected quarterly 900 to be 300 monthly, got %v", summary.Sources[1].MonthlyEquivalent)
	}
	if summary.TotalMonthlyIncome != 4630 {
		t.Errorf("expected total 4630, got %v", summary.TotalMonthlyIncome)
	}
}
