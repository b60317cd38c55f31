// Package server wires services and handlers into the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fintrack/internal/docs" // swagger docs
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

// Options configures the services behind the router.
type Options struct {
	Snapshots services.SnapshotServicer
	// Reports also carries the budget evaluation mode shared with the
	// budget service.
	Reports services.ReportOptions
}

// Services holds every service the API exposes.
type Services struct {
	Users      services.UserServicer
	Categories services.CategoryServicer
	Expenses   services.ExpenseServicer
	Budgets    services.BudgetServicer
	Income     services.IncomeServicer
	Reports    services.ReportServicer
	Audit      services.AuditServicer
}

// NewServices constructs the services on db, sharing one snapshot service.
func NewServices(db *gorm.DB, opts Options) *Services {
	categories := services.NewCategoryService(db, opts.Snapshots)
	return &Services{
		Users:      services.NewUserService(db),
		Categories: categories,
		Expenses:   services.NewExpenseService(db, categories, opts.Snapshots),
		Budgets:    services.NewBudgetService(db, categories, opts.Snapshots, opts.Reports.Evaluate),
		Income:     services.NewIncomeService(db, opts.Snapshots),
		Reports:    services.NewReportService(opts.Snapshots, opts.Reports),
		Audit:      services.NewAuditService(db),
	}
}

// NewRouter builds the gin engine with every route of the API. swagger mounts
// the API docs under /swagger.
func NewRouter(svc *Services, swagger bool) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories, svc.Audit)
	expenseHandler := handlers.NewExpenseHandler(svc.Expenses, svc.Audit)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Audit)
	incomeHandler := handlers.NewIncomeHandler(svc.Income, svc.Audit)
	reportHandler := handlers.NewReportHandler(svc.Reports)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	if swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/auth/logout", authHandler.Logout)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.POST("/import", expenseHandler.ImportExpenses)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/status", budgetHandler.GetBudgetStatus)

	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateIncomeSource)
	income.GET("", incomeHandler.GetIncomeSources)
	income.GET("/:id", incomeHandler.GetIncomeSource)
	income.DELETE("/:id", incomeHandler.DeleteIncomeSource)

	reports := protected.Group("/reports")
	reports.GET("/dashboard", reportHandler.GetDashboard)
	reports.GET("/expenses", reportHandler.GetExpenseReport)
	reports.GET("/budgets", reportHandler.GetBudgetStatuses)
	reports.GET("/income", reportHandler.GetIncomeSummary)

	return router
}
