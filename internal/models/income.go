package models

import "time"

// Income represents an earnings record. Income entries are append-only:
// the service exposes add and list but no update or delete.
type Income struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"not null;index" json:"date"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Source    string    `gorm:"not null" json:"source"`
	Category  string    `gorm:"default:'salary'" json:"category"`
	Note      string    `gorm:"default:''" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
