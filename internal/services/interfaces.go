package services

import "spendwise/internal/models"

// ExpenseFilter holds optional filter parameters for listing expenses.
// The date range is required and inclusive on both endpoints; category and
// payment method match exactly, location and tag match as substrings.
type ExpenseFilter struct {
	StartDate     string
	EndDate       string
	Category      string
	PaymentMethod string
	Location      string
	Tag           string
}

// ExpensePatch is a sparse update. A nil field is left unchanged; a
// non-nil pointer overwrites the stored value, even when it points at a
// zero value. This is presence-based, not value-based: patching a note to
// "" clears it.
type ExpensePatch struct {
	Date          *string
	Amount        *float64
	Category      *string
	Subcategory   *string
	Note          *string
	PaymentMethod *string
	Location      *string
	Tags          *string
}

// Empty reports whether the patch supplies no fields at all.
func (p ExpensePatch) Empty() bool {
	return p.Date == nil && p.Amount == nil && p.Category == nil &&
		p.Subcategory == nil && p.Note == nil && p.PaymentMethod == nil &&
		p.Location == nil && p.Tags == nil
}

// CSVExport is the result of exporting expenses to CSV.
type CSVExport struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	RecordCount int    `json:"record_count"`
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	AddExpense(date string, amount float64, category, subcategory, note, paymentMethod, location, tags string) (*models.Expense, error)
	UpdateExpense(expenseID uint, patch ExpensePatch) (*models.Expense, error)
	DeleteExpense(expenseID uint) error
	GetExpenseByID(expenseID uint) (*models.Expense, error)
	ListExpenses(filter ExpenseFilter) ([]models.Expense, error)
	SearchExpenses(query, startDate, endDate string) ([]models.Expense, error)
	ExportCSV(startDate, endDate, filename string) (*CSVExport, error)
}

// IncomeServicer defines the contract for income tracking.
type IncomeServicer interface {
	AddIncome(date string, amount float64, source, category, note string) (*models.Income, error)
	ListIncome(startDate, endDate, source string) ([]models.Income, error)
}

// MaterializedExpense describes one expense created by due-processing.
type MaterializedExpense struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// ProcessResult is the outcome of one due-processing run.
type ProcessResult struct {
	Processed []MaterializedExpense `json:"processed"`
	Count     int                   `json:"count"`
}

// RecurringServicer defines the contract for recurring expense templates.
type RecurringServicer interface {
	AddRecurring(name string, amount float64, category, subcategory, note string, frequency models.Frequency, nextDueDate string) (*models.RecurringExpense, error)
	ListRecurring(activeOnly bool) ([]models.RecurringExpense, error)
	ProcessDue(asOf string) (*ProcessResult, error)
}

// SummaryRow is one bucket of a grouped expense summary.
type SummaryRow struct {
	Period      string  `gorm:"column:period" json:"period"`
	TotalAmount float64 `gorm:"column:total_amount" json:"total_amount"`
	Count       int64   `gorm:"column:count" json:"count"`
}

// TrendEntry is a category total within one month of a trend table.
type TrendEntry struct {
	Category string  `gorm:"column:category" json:"category"`
	Amount   float64 `gorm:"column:total_amount" json:"amount"`
}

// CategoryTotal is a per-category spend total with transaction count.
type CategoryTotal struct {
	Category string  `gorm:"column:category" json:"category"`
	Total    float64 `gorm:"column:total" json:"total"`
	Count    int64   `gorm:"column:count" json:"count"`
}

// ExpenseStatistics summarizes spending over a date range.
type ExpenseStatistics struct {
	TotalTransactions  int64           `json:"total_transactions"`
	TotalSpent         float64         `json:"total_spent"`
	AverageTransaction float64         `json:"average_transaction"`
	MinTransaction     float64         `json:"min_transaction"`
	MaxTransaction     float64         `json:"max_transaction"`
	DailyAverage       float64         `json:"daily_average"`
	DaysTracked        int64           `json:"days_tracked"`
	TopCategories      []CategoryTotal `json:"top_categories"`
}

// NetWorthReport is the income/expense balance for one month.
type NetWorthReport struct {
	Month         string  `json:"month"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetWorth      float64 `json:"net_worth"`
	SavingsRate   float64 `json:"savings_rate"`
}

// AnalyticsServicer defines the contract for reporting. All operations
// are pure reads.
type AnalyticsServicer interface {
	Summarize(startDate, endDate, category, groupBy string) ([]SummaryRow, error)
	SpendingTrends(months int) (map[string][]TrendEntry, error)
	Statistics(startDate, endDate string) (*ExpenseStatistics, error)
	NetWorth(month string) (*NetWorthReport, error)
}

// CategoryStatus is budget consumption for one configured category.
type CategoryStatus struct {
	Category    string  `json:"category"`
	BudgetLimit float64 `json:"budget_limit"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
	OverBudget  bool    `json:"over_budget"`
}

// BudgetReport is the budget status for every configured category in a month.
type BudgetReport struct {
	Month        string           `json:"month"`
	BudgetStatus []CategoryStatus `json:"budget_status"`
}

// BudgetServicer defines the contract for budget management.
type BudgetServicer interface {
	SetBudget(category string, monthlyLimit float64, startDate string) error
	BudgetStatus(month string) (*BudgetReport, error)
}
