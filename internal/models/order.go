package models

import (
	"time"
)

// Order is the central weighbridge record. OrderNumber is the business key
// used for idempotent upsert. Weight timestamps and bill_date are stored as
// normalized strings ("YYYY-MM-DD HH:MM:SS" in UTC) so the stored value and
// the wire value are the same thing.
type Order struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderNumber string `json:"order_number" gorm:"uniqueIndex;not null"`

	CustomerID *uint `json:"customer_id"`
	SupplierID *uint `json:"supplier_id"`
	DriverID   *uint `json:"driver_id"`

	NumBags   *int    `json:"num_bags"`
	PlateNum  *string `json:"plate_num"`
	Product   *string `json:"product"`    // flour, bran, shawa2ib
	OrderType *string `json:"order_type"` // regular, quick (optional column)

	FirstWeightTime  *string  `json:"first_weight_time"`
	FirstWeightKg    *float64 `json:"first_weight_kg"`
	SecondWeightTime *string  `json:"second_weight_time"`
	SecondWeightKg   *float64 `json:"second_weight_kg"`
	NetWeightKg      *float64 `json:"net_weight_kg"`

	BalanceID       *string  `json:"balance_id"`
	CustomerAddress *string  `json:"customer_address"`
	Fees            *float64 `json:"fees"`

	BillDate              *string  `json:"bill_date"`
	Unit                  *string  `json:"unit"`
	Price                 *float64 `json:"price"`
	Quantity              *float64 `json:"quantity"`
	TotalPrice            *float64 `json:"total_price"`
	SuggestedSellingPrice *float64 `json:"suggested_selling_price"`
	PaymentMethod         *string  `json:"payment_method"` // cash, card, transfer, other
	PaymentTerms          *string  `json:"payment_terms"`  // now, installments, later (optional column)
	Signature             *string  `json:"signature"`

	Status string `json:"status" gorm:"not null;default:'pending'"` // pending, completed

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

type OrderType string

const (
	OrderTypeRegular OrderType = "regular"
	OrderTypeQuick   OrderType = "quick"
)
