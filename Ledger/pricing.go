package Ledger

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

// RateNotFoundError aborts a whole purchase batch: one line without a
// vendor rate means nothing from the batch is written.
type RateNotFoundError struct {
	VendorID    uint
	ScrapTypeID uint
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("vendor %d has no rate for scrap type %d", e.VendorID, e.ScrapTypeID)
}

// LookupVendorRate fetches the per-vendor rate and material name for one
// scrap type.
func LookupVendorRate(db *gorm.DB, vendorID, scrapTypeID uint) (decimal.Decimal, string, error) {
	var result struct {
		VendorRate   decimal.Decimal
		MaterialType string
	}
	err := db.Model(&Models.VendorRate{}).
		Joins("JOIN scrap_types st ON st.id = vendor_rates.scrap_type_id").
		Where("vendor_rates.vendor_id = ? AND vendor_rates.scrap_type_id = ?", vendorID, scrapTypeID).
		Select("vendor_rates.vendor_rate, st.material_type").
		Row().Scan(&result.VendorRate, &result.MaterialType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, "", &RateNotFoundError{VendorID: vendorID, ScrapTypeID: scrapTypeID}
		}
		return decimal.Zero, "", err
	}
	return result.VendorRate, result.MaterialType, nil
}

// LineAmount prices one weighed line: weight * rate, rounded to the paisa.
func LineAmount(weight, rate decimal.Decimal) decimal.Decimal {
	return weight.Mul(rate).Round(2)
}
