package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"weighbridge/internal/models"

	"gorm.io/gorm"
)

const (
	StrategyMaxScan  = "maxscan"
	StrategySequence = "sequence"
)

// Allocator hands out the next human-readable order code for a prefix,
// e.g. Next("ORD", 4) -> "ORD-0042".
type Allocator interface {
	Next(prefix string, pad int) (string, error)
}

// New picks the allocation strategy. MaxScan reproduces the historical
// behavior: a read-then-write scan of existing order numbers with no
// isolation, so two concurrent allocations can hand out the same code.
// Sequence trades that compatibility for an atomic counter row.
func New(db *gorm.DB, strategy string) Allocator {
	if strategy == StrategySequence {
		return &counterAllocator{db: db}
	}
	return &maxScanAllocator{db: db}
}

type maxScanAllocator struct {
	db *gorm.DB
}

func (a *maxScanAllocator) Next(prefix string, pad int) (string, error) {
	max, err := scanMax(a.db, prefix)
	if err != nil {
		return "", err
	}
	return format(prefix, pad, max+1), nil
}

// scanMax finds the largest numeric suffix among codes starting with
// "<prefix>-". Non-numeric suffixes are skipped, an empty column yields 0.
func scanMax(db *gorm.DB, prefix string) (int64, error) {
	var numbers []string
	err := db.Model(&models.Order{}).
		Where("order_number LIKE ?", prefix+"-%").
		Pluck("order_number", &numbers).Error
	if err != nil {
		return 0, fmt.Errorf("failed to scan order numbers: %w", err)
	}

	var max int64
	for _, n := range numbers {
		suffix := strings.TrimPrefix(n, prefix+"-")
		v, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil || v < 0 {
			continue
		}
		if v > max {
			max = v
		}
	}
	return max, nil
}

type counterAllocator struct {
	db *gorm.DB
}

func (a *counterAllocator) Next(prefix string, pad int) (string, error) {
	var value int64
	err := a.db.Transaction(func(tx *gorm.DB) error {
		// The UPDATE takes a row lock until commit, so concurrent callers
		// serialize here and each reads back its own increment.
		res := tx.Model(&models.OrderCounter{}).
			Where("prefix = ?", prefix).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&models.OrderCounter{Prefix: prefix, Value: 1}).Error; err != nil {
				return err
			}
			value = 1
			return nil
		}

		var counter models.OrderCounter
		if err := tx.Where("prefix = ?", prefix).First(&counter).Error; err != nil {
			return err
		}
		value = counter.Value
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to advance order counter: %w", err)
	}
	return format(prefix, pad, value), nil
}

// Seed creates the counter row for a prefix from the current maximum in the
// orders table, so switching strategies continues the existing sequence.
// Existing counters are left alone.
func Seed(db *gorm.DB, prefix string) error {
	var counter models.OrderCounter
	err := db.Where("prefix = ?", prefix).First(&counter).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	max, err := scanMax(db, prefix)
	if err != nil {
		return err
	}
	return db.Create(&models.OrderCounter{Prefix: prefix, Value: max}).Error
}

// format zero-pads to the requested width but never truncates: the 10000th
// code under pad 4 comes out five digits wide.
func format(prefix string, pad int, value int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, pad, value)
}
