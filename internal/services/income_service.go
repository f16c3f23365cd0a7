package services

import (
	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// incomeService handles income tracking. Income entries are append-only;
// there is no update or delete operation.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// AddIncome records an earnings entry. Category defaults to "salary".
func (s *incomeService) AddIncome(date string, amount float64, source, category, note string) (*models.Income, error) {
	if !validISODate(date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be a valid YYYY-MM-DD value")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if source == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "source is required")
	}
	if category == "" {
		category = "salary"
	}

	income := &models.Income{
		Date:     date,
		Amount:   amount,
		Source:   source,
		Category: category,
		Note:     note,
	}

	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// ListIncome returns income entries within a date range, newest first,
// optionally filtered by a source substring.
func (s *incomeService) ListIncome(startDate, endDate, source string) ([]models.Income, error) {
	if !validISODate(startDate) || !validISODate(endDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date and end_date must be valid YYYY-MM-DD values")
	}

	q := s.db.Where("date BETWEEN ? AND ?", startDate, endDate)
	if source != "" {
		q = q.Where("source LIKE ?", contains(source))
	}

	entries := []models.Income{}
	if err := q.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}
