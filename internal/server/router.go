// Package server assembles the HTTP router from the application's services.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "expensetracker/internal/docs" // Import swagger docs
	"expensetracker/internal/handlers"
	"expensetracker/internal/middleware"
	"expensetracker/internal/services"
)

// Services are the dependencies of every route.
type Services struct {
	Categories services.CategoryServicer
	Expenses   services.ExpenseServicer
	Dashboard  services.DashboardServicer
	Receipts   services.ReceiptServicer

	// Store is pinged by the health check; nil skips the ping.
	Store handlers.Pinger
	// MaxUploadBytes bounds receipt uploads.
	MaxUploadBytes int64
}

// NewRouter builds the Gin engine with middleware and every API route.
func NewRouter(svc Services) *gin.Engine {
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	expenseHandler := handlers.NewExpenseHandler(svc.Expenses)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	receiptHandler := handlers.NewReceiptHandler(svc.Receipts, svc.MaxUploadBytes)
	systemHandler := handlers.NewSystemHandler(svc.Store)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = svc.MaxUploadBytes
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", systemHandler.Index)

	api := router.Group("/api")
	api.GET("/health", systemHandler.Health)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Category routes
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/category-breakdown", dashboardHandler.GetCategoryBreakdown)
	dashboard.GET("/monthly-trend", dashboardHandler.GetMonthlyTrend)
	dashboard.GET("/category-comparison", dashboardHandler.GetCategoryComparison)
	dashboard.GET("/category-growth", dashboardHandler.GetCategoryGrowth)

	// Receipt routes
	receipts := api.Group("/receipts")
	receipts.POST("/upload", receiptHandler.UploadReceipt)
	receipts.GET("/image/:filename", receiptHandler.GetReceiptImage)
	receipts.DELETE("/:filename", receiptHandler.DeleteReceipt)

	return router
}
