// Package configstore manages the two JSON configuration documents that
// live outside the relational store: per-category budgets (read-write)
// and the category/payment-method taxonomy (read-only with defaults).
package configstore

import (
	"encoding/json"
	"fmt"
	"os"
)

// Budget is a monthly spending limit for a single category.
type Budget struct {
	MonthlyLimit float64 `json:"monthly_limit"`
	StartDate    string  `json:"start_date"`
}

// BudgetStore reads and writes the budgets JSON file, keyed by category
// name. Writes are read-modify-write with last-writer-wins semantics; at
// most one budget exists per category.
type BudgetStore struct {
	path string
}

// NewBudgetStore creates a store backed by the given file path.
func NewBudgetStore(path string) *BudgetStore {
	return &BudgetStore{path: path}
}

// Load reads all configured budgets. The second return value reports
// whether the budgets file exists at all; callers treat a missing file as
// the "no budgets set" condition, not an error.
func (s *BudgetStore) Load() (map[string]Budget, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read budgets file: %w", err)
	}

	budgets := make(map[string]Budget)
	if err := json.Unmarshal(data, &budgets); err != nil {
		return nil, true, fmt.Errorf("parse budgets file: %w", err)
	}
	return budgets, true, nil
}

// Set stores the budget for a category, overwriting any previous value.
func (s *BudgetStore) Set(category string, budget Budget) error {
	budgets, exists, err := s.Load()
	if err != nil {
		return err
	}
	if !exists {
		budgets = make(map[string]Budget)
	}

	budgets[category] = budget

	data, err := json.MarshalIndent(budgets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode budgets: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write budgets file: %w", err)
	}
	return nil
}

// Raw returns the budgets file contents for the read-only resource
// surface, or an empty JSON object when the file is absent.
func (s *BudgetStore) Raw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read budgets file: %w", err)
	}
	return data, nil
}
