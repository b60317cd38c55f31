package services

import (
	"testing"
	"time"

	"fintrack/internal/aggregator"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	start := testutil.Date(2024, time.January, 1)
	end := testutil.Date(2024, time.January, 31)

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := ts.budgets.CreateBudget(user.ID, models.CategoryFoodID, 500, start, end, DefaultAlertThreshold)
		testutil.AssertNoError(t, err)

		if budget.ID == "" {
			t.Fatal("expected budget ID to be set")
		}
		if budget.LimitAmount != 500 {
			t.Errorf("expected limit 500, got %v", budget.LimitAmount)
		}
		if budget.AlertThreshold != 80 {
			t.Errorf("expected threshold 80, got %v", budget.AlertThreshold)
		}
	})

	t.Run("dates_truncated_to_calendar_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := ts.budgets.CreateBudget(user.ID, models.CategoryFoodID, 500,
			start.Add(13*time.Hour), end.Add(23*time.Hour), 80)
		testutil.AssertNoError(t, err)

		if !budget.StartDate.Equal(start) || !budget.EndDate.Equal(end) {
			t.Errorf("expected %v..%v, got %v..%v", start, end, budget.StartDate, budget.EndDate)
		}
	})

	t.Run("zero_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)

		_, err := ts.budgets.CreateBudget(user.ID, models.CategoryFoodID, 0, start, end, 80)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("threshold_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)

		_, err := ts.budgets.CreateBudget(user.ID, models.CategoryFoodID, 100, start, end, 101)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("end_not_after_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)

		_, err := ts.budgets.CreateBudget(user.ID, models.CategoryFoodID, 100, start, start, 80)
		testutil.AssertAppError(t, err, "INVALID_BUDGET_WINDOW")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)

		_, err := ts.budgets.CreateBudget(user.ID, "01900000-0000-7000-8000-0000000000ff", 100, start, end, 80)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetUserBudgets(t *testing.T) {
	t.Run("paginated_and_scoped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		for i := 0; i < 3; i++ {
			testutil.CreateTestBudget(t, db, user.ID, models.CategoryFoodID, 100)
		}
		testutil.CreateTestBudget(t, db, other.ID, models.CategoryFoodID, 100)

		result, err := ts.budgets.GetUserBudgets(user.ID, pagination.PageRequest{Page: 1, PageSize: 2})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Errorf("expected 3 total budgets, got %d", result.TotalItems)
		}
		if len(result.Data) != 2 {
			t.Errorf("expected 2 budgets on page, got %d", len(result.Data))
		}
		if result.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", result.TotalPages)
		}
		if result.Data[0].Category == nil || result.Data[0].Category.Name != "Food" {
			t.Error("expected category to be preloaded")
		}
	})
}

func TestGetBudgetByID(t *testing.T) {
	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, models.CategoryFoodID, 100)

		_, err := ts.budgets.GetBudgetByID(other.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, models.CategoryFoodID, 100)

		updated, err := ts.budgets.UpdateBudget(user.ID, budget.ID, BudgetUpdate{
			LimitAmount:    floatPtr(250),
			AlertThreshold: floatPtr(50),
		})
		testutil.AssertNoError(t, err)

		if updated.LimitAmount != 250 {
			t.Errorf("expected limit 250, got %v", updated.LimitAmount)
		}
		if updated.AlertThreshold != 50 {
			t.Errorf("expected threshold 50, got %v", updated.AlertThreshold)
		}
		if !updated.EndDate.Equal(budget.EndDate) {
			t.Errorf("expected end date unchanged, got %v", updated.EndDate)
		}
	})

	t.Run("end_before_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, models.CategoryFoodID, 100)

		end := budget.StartDate.AddDate(0, 0, -1)
		_, err := ts.budgets.UpdateBudget(user.ID, budget.ID, BudgetUpdate{EndDate: &end})
		testutil.AssertAppError(t, err, "INVALID_BUDGET_WINDOW")
	})

	t.Run("negative_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, models.CategoryFoodID, 100)

		_, err := ts.budgets.UpdateBudget(user.ID, budget.ID, BudgetUpdate{LimitAmount: floatPtr(-1)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_update_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, models.CategoryFoodID, 100)

		_, err := ts.budgets.UpdateBudget(user.ID, budget.ID, BudgetUpdate{})
		testutil.AssertNoError(t, err)
		if got := ts.publisher.published(); len(got) != 0 {
			t.Errorf("expected no invalidation, got %v", got)
		}
	})
}

func TestDeleteBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ts := newTestServices(db)
	user := testutil.CreateTestUser(t, db)
	budget := testutil.CreateTestBudget(t, db, user.ID, models.CategoryFoodID, 100)

	testutil.AssertNoError(t, ts.budgets.DeleteBudget(user.ID, budget.ID))

	_, err := ts.budgets.GetBudgetByID(user.ID, budget.ID)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

	err = ts.budgets.DeleteBudget(user.ID, budget.ID)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

func TestGetBudgetStatus(t *testing.T) {
	t.Run("counts_category_spending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ts := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, models.CategoryFoodID, 200)

		testutil.CreateTestExpense(t, db, user.ID, models.CategoryFoodID, 100, testutil.Today())
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryFoodID, 70.5, testutil.Today())
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryHousingID, 900, testutil.Today())

		status, err := ts.budgets.GetBudgetStatus(user.ID, budget.ID)
		testutil.AssertNoError(t, err)

		if status.Category != "Food" {
			t.Errorf("expected category Food, got %s", status.Category)
		}
		if status.Spent != 170.5 {
			t.Errorf("expected spent 170.5, got %v", status.Spent)
		}
		if status.Band != aggregator.BandWarning {
			t.Errorf("expected warning band, got %s", status.Band)
		}
		if !status.ThresholdReached {
			t.Error("expected threshold to be reached at 85.25%")
		}
		if status.Exceeded {
			t.Error("expected budget not to be exceeded")
		}
	})

	t.Run("windowed_ignores_expenses_outside_budget_dates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		snapshots, _ := newTestSnapshots(db)
		categories := NewCategoryService(db, snapshots)
		svc := NewBudgetService(db, categories, snapshots, aggregator.EvaluateOptions{Windowed: true})
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.CreateBudget(user.ID, models.CategoryFoodID, 100,
			testutil.Date(2024, time.March, 1), testutil.Date(2024, time.March, 31), 80)
		testutil.AssertNoError(t, err)

		testutil.CreateTestExpense(t, db, user.ID, models.CategoryFoodID, 40, testutil.Date(2024, time.March, 31))
		testutil.CreateTestExpense(t, db, user.ID, models.CategoryFoodID, 500, testutil.Date(2024, time.April, 1))

		status, err := svc.GetBudgetStatus(user.ID, budget.ID)
		testutil.AssertNoError(t, err)
		if status.Spent != 40 {
			t.Errorf("expected spent 40, got %v", status.Spent)
		}
		if status.Band != aggregator.BandOK {
			t.Errorf("expected ok band, got %s", status.Band)
		}
	})
}
