package schema

import (
	"weighbridge/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Columns records which optional order columns exist in this deployment's
// schema. Detected once at startup and passed by value into every layer that
// builds column lists; read-only afterwards.
type Columns struct {
	HasPaymentTerms bool
	HasOrderType    bool
}

// All reports the layout a fully-migrated schema has.
func All() Columns {
	return Columns{HasPaymentTerms: true, HasOrderType: true}
}

// Detect probes the orders table for the payment_terms and order_type
// columns. If the table itself cannot be seen (missing, or the probe fails
// on connectivity) both flags default to present: better to fail loudly on a
// real query later than to silently drop columns that do exist.
func Detect(db *gorm.DB) Columns {
	m := db.Migrator()
	if !m.HasTable(&models.Order{}) {
		log.Warn("schema probe could not find orders table, assuming all optional columns present")
		return All()
	}

	cols := Columns{
		HasPaymentTerms: m.HasColumn(&models.Order{}, "payment_terms"),
		HasOrderType:    m.HasColumn(&models.Order{}, "order_type"),
	}
	if !cols.HasPaymentTerms {
		log.Warn("orders.payment_terms column missing, payment terms disabled")
	}
	if !cols.HasOrderType {
		log.Warn("orders.order_type column missing, order type filtering disabled")
	}
	return cols
}
