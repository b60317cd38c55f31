package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/aggregator"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// ReportHandler serves read-only financial reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExpenseReportQuery holds the report period.
type ExpenseReportQuery struct {
	Period string `form:"period" binding:"omitempty,report_period"`
}

// GetDashboard handles the financial overview.
// @Summary     Get dashboard
// @Description Monthly income, recent spending, net figure, recent expenses, category shares and budget statuses
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.reportService.GetDashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetExpenseReport handles the spending report for a period.
// @Summary     Get expense report
// @Description Total, count, category breakdown and highest-spending category over a period
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "week, month, quarter or year (default month)"
// @Success     200 {object} services.ExpenseReport "Expense report"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/expenses [get]
func (h *ReportHandler) GetExpenseReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ExpenseReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be one of week, month, quarter, year"))
		return
	}
	period := aggregator.Period(query.Period)
	if period == "" {
		period = aggregator.PeriodMonth
	}

	report, err := h.reportService.GetExpenseReport(userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetBudgetStatuses handles the status of every budget.
// @Summary     Get budget statuses
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  aggregator.BudgetStatus "Budget statuses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/budgets [get]
func (h *ReportHandler) GetBudgetStatuses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statuses, err := h.reportService.GetBudgetStatuses(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_statuses": statuses})
}

// GetIncomeSummary handles the monthly income breakdown.
// @Summary     Get income summary
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.IncomeSummary "Income summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/income [get]
func (h *ReportHandler) GetIncomeSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.GetIncomeSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
