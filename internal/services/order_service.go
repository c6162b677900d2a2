package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"weighbridge/internal/models"
	"weighbridge/internal/repository"
	"weighbridge/internal/schema"
	"weighbridge/internal/sequence"
)

const (
	orderNumberPrefix = "ORD"
	orderNumberPad    = 4
)

var ErrNoFields = errors.New("no fields to update")

// UpsertOutcome tags whether an upsert inserted a new row or overwrote an
// existing one, so callers can tell a create from a silent replace.
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
)

type UpsertResult struct {
	ID          uint
	OrderNumber string
	BalanceID   *string
	Outcome     UpsertOutcome
}

// OrderInput is the create-or-replace payload. Absent fields arrive nil and
// are stored as nulls; balance_id is passed through, never generated here.
type OrderInput struct {
	OrderNumber string  `json:"order_number"`
	CustomerID  *uint   `json:"customer_id"`
	SupplierID  *uint   `json:"supplier_id"`
	DriverID    *uint   `json:"driver_id"`
	NumBags     *int    `json:"num_bags"`
	PlateNum    *string `json:"plate_num"`
	Product     *string `json:"product"`
	OrderType   *string `json:"order_type"`

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
	PaymentMethod         *string  `json:"payment_method"`
	PaymentTerms          *string  `json:"payment_terms"`
	Signature             *string  `json:"signature"`

	Status string `json:"status"`
}

type OrderService interface {
	List(filter repository.OrderFilter) ([]repository.OrderRow, error)
	Get(idOrNumber string) (*repository.OrderRow, error)
	Upsert(input OrderInput) (*UpsertResult, error)
	Patch(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}

type orderService struct {
	repo      repository.OrderRepository
	allocator sequence.Allocator
	cols      schema.Columns
}

func NewOrderService(repo repository.OrderRepository, allocator sequence.Allocator, cols schema.Columns) OrderService {
	return &orderService{repo: repo, allocator: allocator, cols: cols}
}

func (s *orderService) List(filter repository.OrderFilter) ([]repository.OrderRow, error) {
	return s.repo.List(filter)
}

func (s *orderService) Get(idOrNumber string) (*repository.OrderRow, error) {
	if id, err := strconv.ParseUint(idOrNumber, 10, 64); err == nil {
		return s.repo.GetByID(uint(id))
	}
	return s.repo.GetByNumber(idOrNumber)
}

func (s *orderService) Upsert(input OrderInput) (*UpsertResult, error) {
	number := strings.TrimSpace(input.OrderNumber)
	if number == "" {
		allocated, err := s.allocator.Next(orderNumberPrefix, orderNumberPad)
		if err != nil {
			return nil, err
		}
		number = allocated
	}

	order := buildOrder(input, number)

	id, created, err := s.repo.Upsert(order)
	if err != nil {
		return nil, err
	}

	outcome := OutcomeUpdated
	if created {
		outcome = OutcomeCreated
	}
	return &UpsertResult{
		ID:          id,
		OrderNumber: number,
		BalanceID:   order.BalanceID,
		Outcome:     outcome,
	}, nil
}

func buildOrder(input OrderInput, number string) *models.Order {
	status := input.Status
	if status == "" {
		status = string(models.OrderPending)
	}
	orderType := input.OrderType
	if orderType == nil {
		regular := string(models.OrderTypeRegular)
		orderType = &regular
	}

	order := &models.Order{
		OrderNumber:           number,
		CustomerID:            input.CustomerID,
		SupplierID:            input.SupplierID,
		DriverID:              input.DriverID,
		NumBags:               input.NumBags,
		PlateNum:              input.PlateNum,
		Product:               input.Product,
		OrderType:             orderType,
		FirstWeightTime:       normalizeTimestampPtr(input.FirstWeightTime),
		FirstWeightKg:         input.FirstWeightKg,
		SecondWeightTime:      normalizeTimestampPtr(input.SecondWeightTime),
		SecondWeightKg:        input.SecondWeightKg,
		NetWeightKg:           input.NetWeightKg,
		BalanceID:             input.BalanceID,
		CustomerAddress:       input.CustomerAddress,
		Fees:                  input.Fees,
		BillDate:              input.BillDate,
		Unit:                  input.Unit,
		Price:                 input.Price,
		Quantity:              input.Quantity,
		TotalPrice:            input.TotalPrice,
		SuggestedSellingPrice: input.SuggestedSellingPrice,
		PaymentMethod:         input.PaymentMethod,
		PaymentTerms:          input.PaymentTerms,
		Signature:             input.Signature,
		Status:                status,
	}

	// net = |second - first| whenever both weights are present and the
	// caller did not supply a net weight of their own.
	if order.NetWeightKg == nil && order.FirstWeightKg != nil && order.SecondWeightKg != nil {
		net := math.Abs(*order.SecondWeightKg - *order.FirstWeightKg)
		order.NetWeightKg = &net
	}
	return order
}

// patchableFields is the fixed allow-list for sparse updates. The two
// optional columns are gated separately on the schema probe.
var patchableFields = map[string]bool{
	"customer_id":             true,
	"supplier_id":             true,
	"driver_id":               true,
	"num_bags":                true,
	"plate_num":               true,
	"product":                 true,
	"first_weight_time":       true,
	"first_weight_kg":         true,
	"second_weight_time":      true,
	"second_weight_kg":        true,
	"net_weight_kg":           true,
	"balance_id":              true,
	"customer_address":        true,
	"fees":                    true,
	"bill_date":               true,
	"unit":                    true,
	"price":                   true,
	"quantity":                true,
	"total_price":             true,
	"suggested_selling_price": true,
	"payment_method":          true,
	"signature":               true,
	"status":                  true,
}

func (s *orderService) recognized(field string) bool {
	switch field {
	case "order_type":
		return s.cols.HasOrderType
	case "payment_terms":
		return s.cols.HasPaymentTerms
	default:
		return patchableFields[field]
	}
}

// Patch applies a sparse update: only recognized fields present in the input
// are written, everything else is left untouched. Net weight is never
// recomputed here; that stays the caller's responsibility.
func (s *orderService) Patch(id uint, input map[string]interface{}) error {
	fields := make(map[string]interface{})
	for name, value := range input {
		if !s.recognized(name) {
			continue
		}
		if name == "first_weight_time" || name == "second_weight_time" {
			fields[name] = normalizeTimestampValue(value)
			continue
		}
		fields[name] = value
	}
	if len(fields) == 0 {
		return ErrNoFields
	}
	return s.repo.UpdateFields(id, fields)
}

func (s *orderService) Delete(id uint) error {
	return s.repo.Delete(id)
}
