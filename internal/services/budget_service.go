package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"spendwise/internal/configstore"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// budgetService manages per-category monthly budget limits, which live in
// the budgets configuration file rather than the relational store.
type budgetService struct {
	db      *gorm.DB
	budgets *configstore.BudgetStore
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, budgets *configstore.BudgetStore) BudgetServicer {
	return &budgetService{db: db, budgets: budgets}
}

// SetBudget stores the monthly limit for a category, overwriting any
// existing budget for it. An empty start date defaults to the first of
// the current month.
func (s *budgetService) SetBudget(category string, monthlyLimit float64, startDate string) error {
	if category == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if monthlyLimit < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly_limit cannot be negative")
	}
	if startDate == "" {
		now := time.Now()
		startDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(isoDate)
	} else if !validISODate(startDate) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must be a valid YYYY-MM-DD value")
	}

	budget := configstore.Budget{
		MonthlyLimit: monthlyLimit,
		StartDate:    startDate,
	}
	if err := s.budgets.Set(category, budget); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// BudgetStatus reports spending against every configured budget for a
// month. A missing budgets file is the global "no budgets set" condition;
// a present-but-empty file yields an empty report instead.
func (s *budgetService) BudgetStatus(month string) (*BudgetReport, error) {
	if month == "" {
		month = time.Now().Format(yearMonth)
	}
	start, end, err := monthBounds(month)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be a valid YYYY-MM value")
	}

	budgets, exists, err := s.budgets.Load()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !exists {
		return nil, apperrors.ErrNoBudgetsConfigured
	}

	categories := make([]string, 0, len(budgets))
	for category := range budgets {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	status := []CategoryStatus{}
	for _, category := range categories {
		budget := budgets[category]

		var spent float64
		if err := s.db.Model(&models.Expense{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("category = ? AND date BETWEEN ? AND ?", category, start, end).
			Scan(&spent).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		limit := budget.MonthlyLimit
		var percentUsed float64
		if limit > 0 {
			percentUsed = spent / limit * 100
		}

		status = append(status, CategoryStatus{
			Category:    category,
			BudgetLimit: limit,
			Spent:       spent,
			Remaining:   limit - spent,
			PercentUsed: percentUsed,
			OverBudget:  spent > limit,
		})
	}

	return &BudgetReport{Month: month, BudgetStatus: status}, nil
}
