package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"spendwise/internal/config"
	"spendwise/internal/configstore"
	"spendwise/internal/database"
	"spendwise/internal/handlers"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/services"
	"spendwise/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager; the store is opened once here and closed
	// at shutdown.
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Configuration file stores
	budgetStore := configstore.NewBudgetStore(appConfig.BudgetsPath)
	categoryStore := configstore.NewCategoryStore(appConfig.CategoriesPath)

	// Initialize services
	db := dbManager.DB()
	expenseService := services.NewExpenseService(db)
	incomeService := services.NewIncomeService(db)
	recurringService := services.NewRecurringService(db)
	analyticsService := services.NewAnalyticsService(db)
	budgetService := services.NewBudgetService(db, budgetStore)

	// Initialize handlers
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	configHandler := handlers.NewConfigHandler(categoryStore, budgetStore)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Expense routes
	expenses := v1.Group("/expenses")
	expenses.POST("", expenseHandler.AddExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/search", expenseHandler.SearchExpenses)
	expenses.GET("/export", expenseHandler.ExportExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Income routes
	income := v1.Group("/income")
	income.POST("", incomeHandler.AddIncome)
	income.GET("", incomeHandler.ListIncome)

	// Recurring expense routes
	recurring := v1.Group("/recurring")
	recurring.POST("", recurringHandler.AddRecurring)
	recurring.GET("", recurringHandler.ListRecurring)
	recurring.POST("/process", recurringHandler.ProcessDue)

	// Analytics routes
	analytics := v1.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.Summarize)
	analytics.GET("/trends", analyticsHandler.SpendingTrends)
	analytics.GET("/statistics", analyticsHandler.Statistics)
	analytics.GET("/net-worth", analyticsHandler.NetWorth)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.PUT("/:category", budgetHandler.SetBudget)
	budgets.GET("/status", budgetHandler.BudgetStatus)

	// Read-only configuration resources
	configGroup := v1.Group("/config")
	configGroup.GET("/categories", configHandler.GetCategories)
	configGroup.GET("/budgets", configHandler.GetBudgets)

	log.Infof("Starting Spendwise backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
