// Package estimator computes the derived cost estimate of a hall from its
// geometry and its material usage ledger.
package estimator

import (
	"errors"
	"math"

	"github.com/steelhall-dev/steelhall/internal/models"
	"gorm.io/gorm"
)

// BaseRatePerSquareUnit is the structural cost per unit of floor area.
// Currency-agnostic; the catalog prices carry the currency.
const BaseRatePerSquareUnit = 833.33

var ErrHallNotFound = errors.New("hall not found")

// Calculate computes the cost estimate for the hall, persists it onto the
// hall's CalculatedValue and returns the updated record.
//
// estimate = length * width * BaseRatePerSquareUnit + sum(quantity * price)
// over usage entries whose material still exists. Entries pointing at a
// deleted material contribute nothing; they are skipped, not an error.
//
// The read-then-write is not wrapped in a transaction. Two concurrent
// calculations of the same hall race and the later write wins, which is
// acceptable: the estimate is derived data and can always be recomputed.
func Calculate(db *gorm.DB, hallID uint) (*models.Hall, error) {
	var hall models.Hall

	if err := db.First(&hall, hallID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}

	var entries []models.MaterialUsage

	if err := db.Where("hall_id = ?", hall.ID).Find(&entries).Error; err != nil {
		return nil, err
	}

	value := hall.Length * hall.Width * BaseRatePerSquareUnit

	for _, entry := range entries {
		if entry.MaterialID == nil {
			continue
		}

		var material models.Material

		if err := db.First(&material, *entry.MaterialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		value += float64(entry.Quantity) * material.Price
	}

	value = roundMonetary(value)
	hall.CalculatedValue = &value

	if err := db.Save(&hall).Error; err != nil {
		return nil, err
	}

	return &hall, nil
}

// roundMonetary rounds half away from zero to two decimal places.
func roundMonetary(v float64) float64 {
	return math.Round(v*100) / 100
}
