package Models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FeriwalaRecord is one purchase intake from a street collector. Feriwala
// balances are never snapshotted; readers aggregate these rows directly.
type FeriwalaRecord struct {
	gorm.Model
	CompanyID   uint            `json:"company_id" gorm:"not null;index:idx_feriwala_scope"`
	GodownID    uint            `json:"godown_id" gorm:"not null;index:idx_feriwala_scope"`
	VendorID    uint            `json:"vendor_id" gorm:"not null;index"`
	Date        string          `json:"date" gorm:"type:date;not null;index"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);not null"`
	Scraps      []FeriwalaScrap `json:"scraps,omitempty" gorm:"foreignKey:FeriwalaID;constraint:OnDelete:CASCADE"`
}

type FeriwalaScrap struct {
	gorm.Model
	FeriwalaID  uint            `json:"feriwala_id" gorm:"not null;index"`
	ScrapTypeID uint            `json:"scrap_type_id" gorm:"not null"`
	Material    string          `json:"material"`
	Weight      decimal.Decimal `json:"weight" gorm:"type:decimal(12,3);not null"`
	Rate        decimal.Decimal `json:"rate" gorm:"type:decimal(14,2);not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
}

// FeriwalaWithdrawal is a cash handout to a feriwala, recorded against the
// scope directly rather than a parent purchase.
type FeriwalaWithdrawal struct {
	gorm.Model
	CompanyID uint            `json:"company_id" gorm:"not null;index"`
	GodownID  uint            `json:"godown_id" gorm:"not null;index"`
	VendorID  uint            `json:"vendor_id" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Date      string          `json:"date" gorm:"type:date;not null;index"`
	Note      string          `json:"note"`
}
