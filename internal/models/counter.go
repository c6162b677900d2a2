package models

// OrderCounter backs the transactional order-number strategy. One row per
// prefix; Value holds the last sequence number handed out.
type OrderCounter struct {
	Prefix string `json:"prefix" gorm:"primaryKey;size:16"`
	Value  int64  `json:"value" gorm:"not null"`
}
