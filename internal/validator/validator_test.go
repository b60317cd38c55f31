package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func newValidate() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

func TestIncomeFrequency(t *testing.T) {
	v := newValidate()
	type req struct {
		Frequency string `validate:"required,income_frequency"`
	}

	for _, f := range []string{"daily", "weekly", "bi-weekly", "monthly", "quarterly", "annually"} {
		if err := v.Struct(req{Frequency: f}); err != nil {
			t.Errorf("expected %q to be valid: %v", f, err)
		}
	}
	for _, f := range []string{"biweekly", "yearly", "Monthly"} {
		if err := v.Struct(req{Frequency: f}); err == nil {
			t.Errorf("expected %q to be rejected", f)
		}
	}
}

func TestReportPeriod(t *testing.T) {
	v := newValidate()
	type req struct {
		Period string `validate:"omitempty,report_period"`
	}

	for _, p := range []string{"", "week", "month", "quarter", "year"} {
		if err := v.Struct(req{Period: p}); err != nil {
			t.Errorf("expected %q to be valid: %v", p, err)
		}
	}
	if err := v.Struct(req{Period: "decade"}); err == nil {
		t.Error("expected decade to be rejected")
	}
}

func TestCalendarDate(t *testing.T) {
	v := newValidate()
	type req struct {
		Date string `validate:"required,calendar_date"`
	}

	if err := v.Struct(req{Date: "2024-02-29"}); err != nil {
		t.Errorf("expected leap day to be valid: %v", err)
	}
	for _, d := range []string{"2023-02-29", "15/01/2024", "2024-01-15T10:00:00Z"} {
		if err := v.Struct(req{Date: d}); err == nil {
			t.Errorf("expected %q to be rejected", d)
		}
	}
}
