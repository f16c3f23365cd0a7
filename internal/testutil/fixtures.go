package testutil

import (
	"testing"

	"spendwise/internal/models"

	"gorm.io/gorm"
)

// CreateTestExpense inserts an expense with the given date, amount, and
// category. Optional mutators adjust the remaining fields before insert.
func CreateTestExpense(t *testing.T, db *gorm.DB, date string, amount float64, category string, opts ...func(*models.Expense)) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Date:     date,
		Amount:   amount,
		Category: category,
	}
	for _, opt := range opts {
		opt(expense)
	}

	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome inserts an income entry with the given date, amount,
// and source.
func CreateTestIncome(t *testing.T, db *gorm.DB, date string, amount float64, source string) *models.Income {
	t.Helper()

	income := &models.Income{
		Date:     date,
		Amount:   amount,
		Source:   source,
		Category: "salary",
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestRecurring inserts an active recurring template with the given
// name, cadence, and next due date. Optional mutators adjust the
// remaining fields before insert.
func CreateTestRecurring(t *testing.T, db *gorm.DB, name string, frequency models.Frequency, nextDueDate string, opts ...func(*models.RecurringExpense)) *models.RecurringExpense {
	t.Helper()

	recurring := &models.RecurringExpense{
		Name:        name,
		Amount:      25,
		Category:    "Bills & Utilities",
		Frequency:   frequency,
		NextDueDate: nextDueDate,
		Active:      true,
	}
	for _, opt := range opts {
		opt(recurring)
	}

	if err := db.Create(recurring).Error; err != nil {
		t.Fatalf("failed to create test recurring expense: %v", err)
	}
	return recurring
}
