package services

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// analyticsService computes reports from stored expenses and income.
// Every operation is a pure read.
type analyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db}
}

// groupColumns maps grouping keys to the store columns they select.
// Derived keys (month, day_of_week) are handled separately.
var groupColumns = map[string]string{
	"category":       "category",
	"subcategory":    "subcategory",
	"payment_method": "payment_method",
	"location":       "location",
}

// Summarize aggregates expenses in a date range into {period, total,
// count} buckets, ordered by total descending. The grouping key is one of
// category, subcategory, payment_method, location, month, or day_of_week.
func (s *analyticsService) Summarize(startDate, endDate, category, groupBy string) ([]SummaryRow, error) {
	if !validISODate(startDate) || !validISODate(endDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date and end_date must be valid YYYY-MM-DD values")
	}
	if groupBy == "" {
		groupBy = "category"
	}

	if groupBy == "day_of_week" {
		return s.summarizeByWeekday(startDate, endDate, category)
	}

	expr, ok := groupColumns[groupBy]
	if groupBy == "month" {
		// Year-month prefix of the ISO date string.
		expr, ok = "substr(date, 1, 7)", true
	}
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"group_by must be one of: category, subcategory, payment_method, location, month, day_of_week")
	}

	q := s.db.Model(&models.Expense{}).
		Select(expr+" AS period, SUM(amount) AS total_amount, COUNT(*) AS count").
		Where("date BETWEEN ? AND ?", startDate, endDate)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	rows := []SummaryRow{}
	if err := q.Group(expr).Order("total_amount DESC").Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// summarizeByWeekday aggregates in memory because the weekday is derived
// from the stored date string, not a column. Weekday numbering is
// Sunday-first, matching the store's convention.
func (s *analyticsService) summarizeByWeekday(startDate, endDate, category string) ([]SummaryRow, error) {
	q := s.db.Where("date BETWEEN ? AND ?", startDate, endDate)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[time.Weekday]*SummaryRow)
	for _, e := range expenses {
		t, err := time.Parse(isoDate, e.Date)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrBadStoredDate, fmt.Errorf("expense %d: %w", e.ID, err))
		}
		day := t.Weekday()
		row, ok := totals[day]
		if !ok {
			row = &SummaryRow{Period: day.String()}
			totals[day] = row
		}
		row.TotalAmount += e.Amount
		row.Count++
	}

	rows := make([]SummaryRow, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TotalAmount > rows[j].TotalAmount
	})
	return rows, nil
}

// SpendingTrends returns per-category totals for each year-month in the
// lookback window, keyed by month, with amounts descending within each
// month.
func (s *analyticsService) SpendingTrends(months int) (map[string][]TrendEntry, error) {
	if months <= 0 {
		months = 6
	}
	cutoff := time.Now().AddDate(0, -months, 0).Format(isoDate)

	var rows []struct {
		Month       string  `gorm:"column:month"`
		Category    string  `gorm:"column:category"`
		TotalAmount float64 `gorm:"column:total_amount"`
	}
	if err := s.db.Model(&models.Expense{}).
		Select("substr(date, 1, 7) AS month, category, SUM(amount) AS total_amount").
		Where("date >= ?", cutoff).
		Group("substr(date, 1, 7), category").
		Order("month DESC, total_amount DESC").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	trends := make(map[string][]TrendEntry)
	for _, r := range rows {
		trends[r.Month] = append(trends[r.Month], TrendEntry{
			Category: r.Category,
			Amount:   r.TotalAmount,
		})
	}
	return trends, nil
}

// Statistics computes transaction counts, amount aggregates, top
// categories, and the daily average over a date range. The daily average
// divides by the number of distinct transaction days, treating zero days
// as one to avoid dividing by zero.
func (s *analyticsService) Statistics(startDate, endDate string) (*ExpenseStatistics, error) {
	if !validISODate(startDate) || !validISODate(endDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date and end_date must be valid YYYY-MM-DD values")
	}

	var agg struct {
		TotalTransactions  int64   `gorm:"column:total_transactions"`
		TotalSpent         float64 `gorm:"column:total_spent"`
		AverageTransaction float64 `gorm:"column:average_transaction"`
		MinTransaction     float64 `gorm:"column:min_transaction"`
		MaxTransaction     float64 `gorm:"column:max_transaction"`
	}
	if err := s.db.Model(&models.Expense{}).
		Select("COUNT(*) AS total_transactions, " +
			"COALESCE(SUM(amount), 0) AS total_spent, " +
			"COALESCE(AVG(amount), 0) AS average_transaction, " +
			"COALESCE(MIN(amount), 0) AS min_transaction, " +
			"COALESCE(MAX(amount), 0) AS max_transaction").
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Scan(&agg).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	topCategories := []CategoryTotal{}
	if err := s.db.Model(&models.Expense{}).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Group("category").
		Order("total DESC").
		Limit(5).
		Scan(&topCategories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var days int64
	if err := s.db.Model(&models.Expense{}).
		Select("COUNT(DISTINCT date)").
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Scan(&days).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	divisor := days
	if divisor < 1 {
		divisor = 1
	}

	return &ExpenseStatistics{
		TotalTransactions:  agg.TotalTransactions,
		TotalSpent:         agg.TotalSpent,
		AverageTransaction: agg.AverageTransaction,
		MinTransaction:     agg.MinTransaction,
		MaxTransaction:     agg.MaxTransaction,
		DailyAverage:       agg.TotalSpent / float64(divisor),
		DaysTracked:        days,
		TopCategories:      topCategories,
	}, nil
}

// NetWorth reports income minus expenses for a month, plus the savings
// rate as a percentage of income (zero when there is no income).
func (s *analyticsService) NetWorth(month string) (*NetWorthReport, error) {
	if month == "" {
		month = time.Now().Format(yearMonth)
	}
	start, end, err := monthBounds(month)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be a valid YYYY-MM value")
	}

	var totalIncome float64
	if err := s.db.Model(&models.Income{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date BETWEEN ? AND ?", start, end).
		Scan(&totalIncome).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var totalExpenses float64
	if err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date BETWEEN ? AND ?", start, end).
		Scan(&totalExpenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	netWorth := totalIncome - totalExpenses
	var savingsRate float64
	if totalIncome > 0 {
		savingsRate = netWorth / totalIncome * 100
	}

	return &NetWorthReport{
		Month:         month,
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetWorth:      netWorth,
		SavingsRate:   savingsRate,
	}, nil
}
