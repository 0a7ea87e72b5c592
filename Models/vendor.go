package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Vendor categories. Kabadiwala purchases keep a persisted daily balance
// snapshot; feriwala balances are computed on read.
const (
	VendorTypeKabadiwala = "kabadiwala"
	VendorTypeFeriwala   = "feriwala"
)

type Vendor struct {
	gorm.Model
	Name       string       `json:"name" gorm:"not null;uniqueIndex"`
	VendorType string       `json:"vendor_type" gorm:"not null;index"`
	Contact    string       `json:"contact"`
	Rates      []VendorRate `json:"rates,omitempty" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
}

// ScrapType is a material classification with a global base rate.
type ScrapType struct {
	gorm.Model
	MaterialType string          `json:"material_type" gorm:"not null;uniqueIndex"`
	GlobalRate   decimal.Decimal `json:"global_rate" gorm:"type:decimal(14,2);not null"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// VendorRate is a per-vendor price for one material. The rate is always
// global_rate + rate_offset; updating the global rate rewrites vendor_rate
// for every row of that material while keeping each offset.
type VendorRate struct {
	gorm.Model
	VendorID    uint            `json:"vendor_id" gorm:"not null;uniqueIndex:idx_vendor_material"`
	ScrapTypeID uint            `json:"scrap_type_id" gorm:"not null;uniqueIndex:idx_vendor_material"`
	VendorRate  decimal.Decimal `json:"vendor_rate" gorm:"type:decimal(14,2);not null"`
	RateOffset  decimal.Decimal `json:"rate_offset" gorm:"type:decimal(14,2);not null"`
}
