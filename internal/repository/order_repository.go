package repository

import (
	"errors"
	"fmt"

	"weighbridge/internal/models"
	"weighbridge/internal/schema"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// listLimit caps every listing; there is no pagination beyond it.
const listLimit = 200

// OrderRow is an order joined with the display fields of its customer,
// supplier and driver, matching the shape the frontends render.
type OrderRow struct {
	models.Order           `gorm:"embedded"`
	CustomerName           *string `json:"customer_name"`
	CustomerCompanyAddress *string `json:"customer_company_address"`
	SupplierName           *string `json:"supplier_name"`
	SupplierCompanyAddress *string `json:"supplier_company_address"`
	DriverName             *string `json:"driver_name"`
	DriverPhone            *string `json:"driver_phone"`
}

type OrderFilter struct {
	Status    string
	OrderType string
}

type OrderRepository interface {
	List(filter OrderFilter) ([]OrderRow, error)
	GetByID(id uint) (*OrderRow, error)
	GetByNumber(number string) (*OrderRow, error)
	Upsert(order *models.Order) (id uint, created bool, err error)
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}

type orderRepository struct {
	db   *gorm.DB
	cols schema.Columns
}

func NewOrderRepository(db *gorm.DB, cols schema.Columns) OrderRepository {
	return &orderRepository{db: db, cols: cols}
}

const orderSelect = `o.*,
	c.name AS customer_name, c.address AS customer_company_address,
	s.name AS supplier_name, s.address AS supplier_company_address,
	d.name AS driver_name, d.phone AS driver_phone`

func (r *orderRepository) joined() *gorm.DB {
	return r.db.Table("orders AS o").
		Select(orderSelect).
		Joins("LEFT JOIN companies AS c ON o.customer_id = c.id").
		Joins("LEFT JOIN companies AS s ON o.supplier_id = s.id").
		Joins("LEFT JOIN drivers AS d ON o.driver_id = d.id")
}

func (r *orderRepository) List(filter OrderFilter) ([]OrderRow, error) {
	q := r.joined()
	if filter.Status != "" {
		q = q.Where("o.status = ?", filter.Status)
	}
	// Filtering on a column the schema does not have is a no-op.
	if filter.OrderType != "" && r.cols.HasOrderType {
		q = q.Where("o.order_type = ?", filter.OrderType)
	}

	rows := make([]OrderRow, 0)
	err := q.Order("o.created_at DESC").Limit(listLimit).Scan(&rows).Error
	return rows, err
}

func (r *orderRepository) GetByID(id uint) (*OrderRow, error) {
	return r.getOne("o.id = ?", id)
}

func (r *orderRepository) GetByNumber(number string) (*OrderRow, error) {
	return r.getOne("o.order_number = ?", number)
}

func (r *orderRepository) getOne(cond string, arg interface{}) (*OrderRow, error) {
	var rows []OrderRow
	if err := r.joined().Where(cond, arg).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrOrderNotFound
	}
	return &rows[0], nil
}

// Upsert inserts the order, or, when a row with the same order_number exists,
// overwrites every other column of that row with the supplied values. The
// business key itself is never touched on the update path.
func (r *orderRepository) Upsert(order *models.Order) (uint, bool, error) {
	var existing models.Order
	err := r.db.Select("id").Where("order_number = ?", order.OrderNumber).First(&existing).Error
	switch {
	case err == nil:
		if err := r.db.Model(&models.Order{}).
			Where("id = ?", existing.ID).
			Updates(r.assignments(order)).Error; err != nil {
			return 0, false, fmt.Errorf("failed to update order: %w", err)
		}
		return existing.ID, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		tx := r.db
		if omit := r.omittedColumns(); len(omit) > 0 {
			tx = tx.Omit(omit...)
		}
		if err := tx.Create(order).Error; err != nil {
			return 0, false, fmt.Errorf("failed to create order: %w", err)
		}
		return order.ID, true, nil
	default:
		return 0, false, err
	}
}

// assignments is the full overwrite set for the duplicate-key path: every
// column except the business key takes the supplied value, nils included.
func (r *orderRepository) assignments(o *models.Order) map[string]interface{} {
	m := map[string]interface{}{
		"customer_id":             o.CustomerID,
		"supplier_id":             o.SupplierID,
		"driver_id":               o.DriverID,
		"num_bags":                o.NumBags,
		"plate_num":               o.PlateNum,
		"product":                 o.Product,
		"first_weight_time":       o.FirstWeightTime,
		"first_weight_kg":         o.FirstWeightKg,
		"second_weight_time":      o.SecondWeightTime,
		"second_weight_kg":        o.SecondWeightKg,
		"net_weight_kg":           o.NetWeightKg,
		"balance_id":              o.BalanceID,
		"customer_address":        o.CustomerAddress,
		"fees":                    o.Fees,
		"bill_date":               o.BillDate,
		"unit":                    o.Unit,
		"price":                   o.Price,
		"quantity":                o.Quantity,
		"total_price":             o.TotalPrice,
		"suggested_selling_price": o.SuggestedSellingPrice,
		"payment_method":          o.PaymentMethod,
		"signature":               o.Signature,
		"status":                  o.Status,
	}
	if r.cols.HasOrderType {
		m["order_type"] = o.OrderType
	}
	if r.cols.HasPaymentTerms {
		m["payment_terms"] = o.PaymentTerms
	}
	return m
}

func (r *orderRepository) omittedColumns() []string {
	var omit []string
	if !r.cols.HasOrderType {
		omit = append(omit, "OrderType")
	}
	if !r.cols.HasPaymentTerms {
		omit = append(omit, "PaymentTerms")
	}
	return omit
}

func (r *orderRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Delete(&models.Order{}, id).Error
}
