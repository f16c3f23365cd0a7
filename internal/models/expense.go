package models

import "time"

// Expense represents a single spending record. Dates are stored as ISO
// YYYY-MM-DD strings so range filters compare lexically, matching the
// on-disk schema.
type Expense struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          string    `gorm:"not null;index" json:"date"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Category      string    `gorm:"not null" json:"category"`
	Subcategory   string    `gorm:"default:''" json:"subcategory"`
	Note          string    `gorm:"default:''" json:"note"`
	PaymentMethod string    `gorm:"default:''" json:"payment_method"`
	Location      string    `gorm:"default:''" json:"location"`
	RecurringID   *uint     `json:"recurring_id,omitempty"`
	Tags          string    `gorm:"default:''" json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
}
