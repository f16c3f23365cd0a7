package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"spendwise/internal/configstore"
	"spendwise/internal/handlers"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/models"
	"spendwise/internal/services"
	"spendwise/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Expense{},
		&models.Income{},
		&models.RecurringExpense{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite store and per-test configuration files.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	dir := t.TempDir()
	budgetStore := configstore.NewBudgetStore(filepath.Join(dir, "budgets.json"))
	categoryStore := configstore.NewCategoryStore(filepath.Join(dir, "categories.json"))

	// Services
	expenseService := services.NewExpenseService(db)
	incomeService := services.NewIncomeService(db)
	recurringService := services.NewRecurringService(db)
	analyticsService := services.NewAnalyticsService(db)
	budgetService := services.NewBudgetService(db, budgetStore)

	// Handlers
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	configHandler := handlers.NewConfigHandler(categoryStore, budgetStore)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	expenses := v1.Group("/expenses")
	expenses.POST("", expenseHandler.AddExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/search", expenseHandler.SearchExpenses)
	expenses.GET("/export", expenseHandler.ExportExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	income := v1.Group("/income")
	income.POST("", incomeHandler.AddIncome)
	income.GET("", incomeHandler.ListIncome)

	recurring := v1.Group("/recurring")
	recurring.POST("", recurringHandler.AddRecurring)
	recurring.GET("", recurringHandler.ListRecurring)
	recurring.POST("/process", recurringHandler.ProcessDue)

	analytics := v1.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.Summarize)
	analytics.GET("/trends", analyticsHandler.SpendingTrends)
	analytics.GET("/statistics", analyticsHandler.Statistics)
	analytics.GET("/net-worth", analyticsHandler.NetWorth)

	budgets := v1.Group("/budgets")
	budgets.PUT("/:category", budgetHandler.SetBudget)
	budgets.GET("/status", budgetHandler.BudgetStatus)

	configGroup := v1.Group("/config")
	configGroup.GET("/categories", configHandler.GetCategories)
	configGroup.GET("/budgets", configHandler.GetBudgets)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray parses the response body into a slice.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// addExpense creates an expense and returns its ID.
func (app *testApp) addExpense(t *testing.T, body string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/v1/expenses", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add expense failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(float64)
}
