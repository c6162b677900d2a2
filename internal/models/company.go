package models

import (
	"time"
)

// Company covers both customers and suppliers; the role comes from which
// foreign key on Order points at it. Name matching is case-insensitive.
type Company struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
