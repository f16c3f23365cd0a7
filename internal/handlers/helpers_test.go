package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"spendwise/internal/models"
	"spendwise/internal/services"
	"spendwise/internal/validator"
)

// --- mock services ---

type mockExpenseService struct {
	addExpenseFn     func(date string, amount float64, category, subcategory, note, paymentMethod, location, tags string) (*models.Expense, error)
	updateExpenseFn  func(expenseID uint, patch services.ExpensePatch) (*models.Expense, error)
	deleteExpenseFn  func(expenseID uint) error
	getExpenseFn     func(expenseID uint) (*models.Expense, error)
	listExpensesFn   func(filter services.ExpenseFilter) ([]models.Expense, error)
	searchExpensesFn func(query, startDate, endDate string) ([]models.Expense, error)
	exportCSVFn      func(startDate, endDate, filename string) (*services.CSVExport, error)
}

func (m *mockExpenseService) AddExpense(date string, amount float64, category, subcategory, note, paymentMethod, location, tags string) (*models.Expense, error) {
	if m.addExpenseFn != nil {
		return m.addExpenseFn(date, amount, category, subcategory, note, paymentMethod, location, tags)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(expenseID uint, patch services.ExpensePatch) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(expenseID, patch)
	}
	return &models.Expense{ID: expenseID}, nil
}

func (m *mockExpenseService) DeleteExpense(expenseID uint) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(expenseID)
	}
	return nil
}

func (m *mockExpenseService) GetExpenseByID(expenseID uint) (*models.Expense, error) {
	if m.getExpenseFn != nil {
		return m.getExpenseFn(expenseID)
	}
	return &models.Expense{ID: expenseID}, nil
}

func (m *mockExpenseService) ListExpenses(filter services.ExpenseFilter) ([]models.Expense, error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(filter)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) SearchExpenses(query, startDate, endDate string) ([]models.Expense, error) {
	if m.searchExpensesFn != nil {
		return m.searchExpensesFn(query, startDate, endDate)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) ExportCSV(startDate, endDate, filename string) (*services.CSVExport, error) {
	if m.exportCSVFn != nil {
		return m.exportCSVFn(startDate, endDate, filename)
	}
	return &services.CSVExport{}, nil
}

type mockIncomeService struct {
	addIncomeFn  func(date string, amount float64, source, category, note string) (*models.Income, error)
	listIncomeFn func(startDate, endDate, source string) ([]models.Income, error)
}

func (m *mockIncomeService) AddIncome(date string, amount float64, source, category, note string) (*models.Income, error) {
	if m.addIncomeFn != nil {
		return m.addIncomeFn(date, amount, source, category, note)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) ListIncome(startDate, endDate, source string) ([]models.Income, error) {
	if m.listIncomeFn != nil {
		return m.listIncomeFn(startDate, endDate, source)
	}
	return []models.Income{}, nil
}

type mockRecurringService struct {
	addRecurringFn  func(name string, amount float64, category, subcategory, note string, frequency models.Frequency, nextDueDate string) (*models.RecurringExpense, error)
	listRecurringFn func(activeOnly bool) ([]models.RecurringExpense, error)
	processDueFn    func(asOf string) (*services.ProcessResult, error)
}

func (m *mockRecurringService) AddRecurring(name string, amount float64, category, subcategory, note string, frequency models.Frequency, nextDueDate string) (*models.RecurringExpense, error) {
	if m.addRecurringFn != nil {
		return m.addRecurringFn(name, amount, category, subcategory, note, frequency, nextDueDate)
	}
	return &models.RecurringExpense{}, nil
}

func (m *mockRecurringService) ListRecurring(activeOnly bool) ([]models.RecurringExpense, error) {
	if m.listRecurringFn != nil {
		return m.listRecurringFn(activeOnly)
	}
	return []models.RecurringExpense{}, nil
}

func (m *mockRecurringService) ProcessDue(asOf string) (*services.ProcessResult, error) {
	if m.processDueFn != nil {
		return m.processDueFn(asOf)
	}
	return &services.ProcessResult{Processed: []services.MaterializedExpense{}}, nil
}

type mockAnalyticsService struct {
	summarizeFn  func(startDate, endDate, category, groupBy string) ([]services.SummaryRow, error)
	trendsFn     func(months int) (map[string][]services.TrendEntry, error)
	statisticsFn func(startDate, endDate string) (*services.ExpenseStatistics, error)
	netWorthFn   func(month string) (*services.NetWorthReport, error)
}

func (m *mockAnalyticsService) Summarize(startDate, endDate, category, groupBy string) ([]services.SummaryRow, error) {
	if m.summarizeFn != nil {
		return m.summarizeFn(startDate, endDate, category, groupBy)
	}
	return []services.SummaryRow{}, nil
}

func (m *mockAnalyticsService) SpendingTrends(months int) (map[string][]services.TrendEntry, error) {
	if m.trendsFn != nil {
		return m.trendsFn(months)
	}
	return map[string][]services.TrendEntry{}, nil
}

func (m *mockAnalyticsService) Statistics(startDate, endDate string) (*services.ExpenseStatistics, error) {
	if m.statisticsFn != nil {
		return m.statisticsFn(startDate, endDate)
	}
	return &services.ExpenseStatistics{}, nil
}

func (m *mockAnalyticsService) NetWorth(month string) (*services.NetWorthReport, error) {
	if m.netWorthFn != nil {
		return m.netWorthFn(month)
	}
	return &services.NetWorthReport{}, nil
}

type mockBudgetService struct {
	setBudgetFn    func(category string, monthlyLimit float64, startDate string) error
	budgetStatusFn func(month string) (*services.BudgetReport, error)
}

func (m *mockBudgetService) SetBudget(category string, monthlyLimit float64, startDate string) error {
	if m.setBudgetFn != nil {
		return m.setBudgetFn(category, monthlyLimit, startDate)
	}
	return nil
}

func (m *mockBudgetService) BudgetStatus(month string) (*services.BudgetReport, error) {
	if m.budgetStatusFn != nil {
		return m.budgetStatusFn(month)
	}
	return &services.BudgetReport{}, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["status"] != "error" {
		t.Fatalf("expected error status in response, got: %v", result)
	}
	if result["code"] != code {
		t.Errorf("expected error code %q, got %q", code, result["code"])
	}
}
