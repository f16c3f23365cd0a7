package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// AddExpense records a new expense.
func (s *expenseService) AddExpense(
	date string,
	amount float64,
	category, subcategory, note, paymentMethod, location, tags string,
) (*models.Expense, error) {
	if !validISODate(date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be a valid YYYY-MM-DD value")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	expense := &models.Expense{
		Date:          date,
		Amount:        amount,
		Category:      category,
		Subcategory:   subcategory,
		Note:          note,
		PaymentMethod: paymentMethod,
		Location:      location,
		Tags:          tags,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// UpdateExpense applies a sparse patch to an existing expense: only the
// fields the patch supplies are touched, then the record is rewritten in
// a single statement.
func (s *expenseService) UpdateExpense(expenseID uint, patch ExpensePatch) (*models.Expense, error) {
	if patch.Empty() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "no fields to update")
	}
	if patch.Date != nil && !validISODate(*patch.Date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be a valid YYYY-MM-DD value")
	}
	if patch.Amount != nil && *patch.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if patch.Category != nil && *patch.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category cannot be empty")
	}

	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		expense.Date = *patch.Date
	}
	if patch.Amount != nil {
		expense.Amount = *patch.Amount
	}
	if patch.Category != nil {
		expense.Category = *patch.Category
	}
	if patch.Subcategory != nil {
		expense.Subcategory = *patch.Subcategory
	}
	if patch.Note != nil {
		expense.Note = *patch.Note
	}
	if patch.PaymentMethod != nil {
		expense.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Location != nil {
		expense.Location = *patch.Location
	}
	if patch.Tags != nil {
		expense.Tags = *patch.Tags
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense removes an expense by ID.
func (s *expenseService) DeleteExpense(expenseID uint) error {
	res := s.db.Delete(&models.Expense{}, expenseID)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// GetExpenseByID retrieves a single expense.
func (s *expenseService) GetExpenseByID(expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// ListExpenses returns expenses within a date range, newest first, with
// optional structured and free-text filters.
func (s *expenseService) ListExpenses(filter ExpenseFilter) ([]models.Expense, error) {
	if !validISODate(filter.StartDate) || !validISODate(filter.EndDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date and end_date must be valid YYYY-MM-DD values")
	}

	q := s.db.Where("date BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.PaymentMethod != "" {
		q = q.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.Location != "" {
		q = q.Where("location LIKE ?", contains(filter.Location))
	}
	if filter.Tag != "" {
		q = q.Where("tags LIKE ?", contains(filter.Tag))
	}

	expenses := []models.Expense{}
	if err := q.Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// SearchExpenses matches a substring against note, category, subcategory,
// location, and tags, optionally narrowed by a date range.
func (s *expenseService) SearchExpenses(query, startDate, endDate string) ([]models.Expense, error) {
	if query == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "search query is required")
	}

	pattern := contains(query)
	q := s.db.Where(
		"note LIKE ? OR category LIKE ? OR subcategory LIKE ? OR location LIKE ? OR tags LIKE ?",
		pattern, pattern, pattern, pattern, pattern,
	)
	if startDate != "" {
		q = q.Where("date >= ?", startDate)
	}
	if endDate != "" {
		q = q.Where("date <= ?", endDate)
	}

	expenses := []models.Expense{}
	if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// csvHeader is the export wire format; callers depend on the exact column names.
const csvHeader = "Date,Amount,Category,Subcategory,Note,Payment Method,Location,Tags"

// ExportCSV renders expenses in a date range as CSV, oldest first.
// Literal commas inside field values are replaced with semicolons rather
// than quoted, so every line splits into exactly eight columns.
func (s *expenseService) ExportCSV(startDate, endDate, filename string) (*CSVExport, error) {
	if !validISODate(startDate) || !validISODate(endDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date and end_date must be valid YYYY-MM-DD values")
	}
	if filename == "" {
		filename = fmt.Sprintf("expenses_%s_to_%s.csv", startDate, endDate)
	}

	var expenses []models.Expense
	if err := s.db.Where("date BETWEEN ? AND ?", startDate, endDate).
		Order("date ASC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, e := range expenses {
		fields := []string{
			e.Date,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
			e.Category,
			e.Subcategory,
			e.Note,
			e.PaymentMethod,
			e.Location,
			e.Tags,
		}
		for i, f := range fields {
			fields[i] = strings.ReplaceAll(f, ",", ";")
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}

	return &CSVExport{
		Filename:    filename,
		Content:     b.String(),
		RecordCount: len(expenses),
	}, nil
}

// contains wraps a term for substring LIKE matching.
func contains(term string) string {
	return "%" + term + "%"
}
