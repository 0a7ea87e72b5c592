package Ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

// FeriwalaBalance computes one street collector's balance on the fly:
// withdrawals minus purchases up to and including upTo (all history when
// upTo is empty). Nothing is persisted.
func FeriwalaBalance(db *gorm.DB, scope Scope, vendorID uint, upTo string) (decimal.Decimal, error) {
	purchaseQuery := db.Model(&Models.FeriwalaRecord{}).
		Where("company_id = ? AND godown_id = ? AND vendor_id = ?", scope.CompanyID, scope.GodownID, vendorID).
		Select("COALESCE(SUM(total_amount),0)")
	withdrawalQuery := db.Model(&Models.FeriwalaWithdrawal{}).
		Where("company_id = ? AND godown_id = ? AND vendor_id = ?", scope.CompanyID, scope.GodownID, vendorID).
		Select("COALESCE(SUM(amount),0)")
	if upTo != "" {
		purchaseQuery = purchaseQuery.Where("date <= ?", upTo)
		withdrawalQuery = withdrawalQuery.Where("date <= ?", upTo)
	}

	purchased, err := sumScan(purchaseQuery)
	if err != nil {
		return decimal.Zero, fmt.Errorf("feriwala purchases: %w", err)
	}
	withdrawn, err := sumScan(withdrawalQuery)
	if err != nil {
		return decimal.Zero, fmt.Errorf("feriwala withdrawals: %w", err)
	}

	return withdrawn.Sub(purchased).Round(2), nil
}

// VendorBalance is one row of the all-vendors balance listing.
type VendorBalance struct {
	VendorID   uint            `json:"vendor_id"`
	VendorName string          `json:"vendor_name"`
	Balance    decimal.Decimal `json:"balance"`
}

// FeriwalaBalances computes balances for every feriwala vendor, one
// aggregate per vendor.
func FeriwalaBalances(db *gorm.DB, scope Scope, upTo string) ([]VendorBalance, error) {
	var vendors []Models.Vendor
	if err := db.Where("vendor_type = ?", Models.VendorTypeFeriwala).Order("name ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}

	results := make([]VendorBalance, 0, len(vendors))
	for _, v := range vendors {
		balance, err := FeriwalaBalance(db, scope, v.ID, upTo)
		if err != nil {
			return nil, err
		}
		results = append(results, VendorBalance{VendorID: v.ID, VendorName: v.Name, Balance: balance})
	}
	return results, nil
}
