// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fintrack/internal/aggregator"
	"fintrack/internal/models"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("income_frequency", validateIncomeFrequency)
	_ = v.RegisterValidation("report_period", validateReportPeriod)
	_ = v.RegisterValidation("calendar_date", validateCalendarDate)
}

func validateIncomeFrequency(fl validator.FieldLevel) bool {
	return models.IncomeFrequency(fl.Field().String()).IsValid()
}

func validateReportPeriod(fl validator.FieldLevel) bool {
	return aggregator.Period(fl.Field().String()).IsValid()
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}
