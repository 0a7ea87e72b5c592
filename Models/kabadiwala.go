package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment settlement states on a purchase record.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// KabadiwalaRecord is one purchase intake from a scrap dealer, scoped to a
// company and godown. TotalAmount is the sum of its scrap lines and is
// rewritten whenever lines are inserted.
type KabadiwalaRecord struct {
	gorm.Model
	CompanyID      uint              `json:"company_id" gorm:"not null;index:idx_kabadi_scope"`
	GodownID       uint              `json:"godown_id" gorm:"not null;index:idx_kabadi_scope"`
	VendorID       uint              `json:"vendor_id" gorm:"not null;index"`
	KabadiwalaName string            `json:"kabadiwala_name"`
	Date           string            `json:"date" gorm:"type:date;not null;index"`
	TotalAmount    decimal.Decimal   `json:"total_amount" gorm:"type:decimal(14,2);not null"`
	PaymentMode    string            `json:"payment_mode"`
	PaymentStatus  string            `json:"payment_status"`
	Scraps         []KabadiwalaScrap `json:"scraps,omitempty" gorm:"foreignKey:KabadiwalaID;constraint:OnDelete:CASCADE"`
}

// KabadiwalaScrap is a single weighed line on a purchase record.
// Amount = weight * rate rounded to the paisa.
type KabadiwalaScrap struct {
	gorm.Model
	KabadiwalaID uint            `json:"kabadiwala_id" gorm:"not null;index"`
	ScrapTypeID  uint            `json:"scrap_type_id" gorm:"not null"`
	Material     string          `json:"material"`
	Weight       decimal.Decimal `json:"weight" gorm:"type:decimal(12,3);not null"`
	Rate         decimal.Decimal `json:"rate" gorm:"type:decimal(14,2);not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
}

// KabadiwalaPayment always points at a parent record; standalone payments
// get a zero-amount placeholder parent so the FK stays valid.
type KabadiwalaPayment struct {
	gorm.Model
	KabadiwalaID uint            `json:"kabadiwala_id" gorm:"not null;index"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Mode         string          `json:"mode"`
	Note         string          `json:"note"`
	Date         string          `json:"date" gorm:"type:date;not null;index"`
}

// KabadiwalaDailyBalance is the denormalized snapshot per
// (company, godown, vendor, date). CurrentBalance is always
// PreviousBalance - PurchaseAmount + PaidAmount; negative means the
// business owes the vendor.
type KabadiwalaDailyBalance struct {
	gorm.Model
	CompanyID       uint            `json:"company_id" gorm:"not null;uniqueIndex:idx_daily_balance_key"`
	GodownID        uint            `json:"godown_id" gorm:"not null;uniqueIndex:idx_daily_balance_key"`
	VendorID        uint            `json:"vendor_id" gorm:"not null;uniqueIndex:idx_daily_balance_key"`
	Date            string          `json:"date" gorm:"type:date;not null;uniqueIndex:idx_daily_balance_key"`
	PreviousBalance decimal.Decimal `json:"previous_balance" gorm:"type:decimal(14,2);not null"`
	PurchaseAmount  decimal.Decimal `json:"purchase_amount" gorm:"type:decimal(14,2);not null"`
	PaidAmount      decimal.Decimal `json:"paid_amount" gorm:"type:decimal(14,2);not null"`
	CurrentBalance  decimal.Decimal `json:"current_balance" gorm:"type:decimal(14,2);not null"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
