package services

import (
	"fmt"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/logger"
	"spendwise/internal/models"
)

// recurringService manages recurring expense templates and materializes
// due expenses from them.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB) RecurringServicer {
	return &recurringService{db: db}
}

// AddRecurring creates a new recurring expense template.
func (s *recurringService) AddRecurring(
	name string,
	amount float64,
	category, subcategory, note string,
	frequency models.Frequency,
	nextDueDate string,
) (*models.RecurringExpense, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if !frequency.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "frequency must be one of: daily, weekly, monthly, yearly")
	}
	if !validISODate(nextDueDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "next_due_date must be a valid YYYY-MM-DD value")
	}

	recurring := &models.RecurringExpense{
		Name:        name,
		Amount:      amount,
		Category:    category,
		Subcategory: subcategory,
		Note:        note,
		Frequency:   frequency,
		NextDueDate: nextDueDate,
		Active:      true,
	}

	if err := s.db.Create(recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recurring, nil
}

// ListRecurring returns templates ordered by next due date. By default
// only active templates are included; pass activeOnly=false to see all.
func (s *recurringService) ListRecurring(activeOnly bool) ([]models.RecurringExpense, error) {
	q := s.db
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	templates := []models.RecurringExpense{}
	if err := q.Order("next_due_date ASC").Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return templates, nil
}

// ProcessDue materializes one expense for every active template whose
// next due date has arrived, then advances each template's due date by a
// single cadence step from its current value. A template several periods
// overdue therefore advances only one step per call; catching up takes
// repeated calls. The materialized expense is dated asOf, not the
// template's due date.
//
// Each template is processed in its own transaction so one store failure
// cannot abort the rest. A template with an unparseable stored due date
// is different: that is a corrupt store, and processing stops with an
// error rather than skipping it silently.
func (s *recurringService) ProcessDue(asOf string) (*ProcessResult, error) {
	if asOf == "" {
		asOf = today()
	}
	if !validISODate(asOf) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be a valid YYYY-MM-DD value")
	}

	var due []models.RecurringExpense
	if err := s.db.Where("next_due_date <= ? AND active = ?", asOf, true).
		Order("id ASC").Find(&due).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	processed := []MaterializedExpense{}
	for _, tpl := range due {
		next, err := nextDueDate(tpl.NextDueDate, tpl.Frequency)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrBadStoredDate, err)
		}

		recurringID := tpl.ID
		err = s.db.Transaction(func(tx *gorm.DB) error {
			expense := &models.Expense{
				Date:        asOf,
				Amount:      tpl.Amount,
				Category:    tpl.Category,
				Subcategory: tpl.Subcategory,
				Note:        fmt.Sprintf("[Recurring: %s] %s", tpl.Name, tpl.Note),
				RecurringID: &recurringID,
			}
			if err := tx.Create(expense).Error; err != nil {
				return err
			}
			return tx.Model(&models.RecurringExpense{}).
				Where("id = ?", tpl.ID).
				Update("next_due_date", next).Error
		})
		if err != nil {
			logger.Get().Errorw("failed to process recurring expense",
				"id", tpl.ID,
				"name", tpl.Name,
				"error", err,
			)
			continue
		}

		processed = append(processed, MaterializedExpense{
			Name:     tpl.Name,
			Amount:   tpl.Amount,
			Category: tpl.Category,
		})
	}

	return &ProcessResult{Processed: processed, Count: len(processed)}, nil
}
