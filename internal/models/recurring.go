package models

import "time"

// Frequency is the cadence at which a recurring expense template
// materializes concrete expenses.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is one of the supported cadences.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringExpense is a template that periodically materializes expense
// records. NextDueDate always holds the next occurrence not yet
// materialized and only ever advances forward in time. Inactive templates
// are skipped by due-processing and by default listing but remain
// queryable.
type RecurringExpense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    string    `gorm:"not null" json:"category"`
	Subcategory string    `gorm:"default:''" json:"subcategory"`
	Note        string    `gorm:"default:''" json:"note"`
	Frequency   Frequency `gorm:"not null" json:"frequency"`
	NextDueDate string    `gorm:"not null;index" json:"next_due_date"`
	Active      bool      `gorm:"not null" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName keeps the historical table name rather than GORM's default
// pluralization of the struct name.
func (RecurringExpense) TableName() string { return "recurring_expenses" }
