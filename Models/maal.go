package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaalIn approval states.
const (
	MaalInPending  = "pending"
	MaalInApproved = "approved"
	MaalInRejected = "rejected"
)

// MaalIn is an intake event header; items are added in a second step and
// the total is recomputed from them on every insert.
type MaalIn struct {
	gorm.Model
	CompanyID     uint            `json:"company_id" gorm:"not null;index:idx_maal_in_scope"`
	GodownID      uint            `json:"godown_id" gorm:"not null;index:idx_maal_in_scope"`
	Date          string          `json:"date" gorm:"type:date;not null;index"`
	SupplierName  string          `json:"supplier_name" gorm:"not null"`
	Source        string          `json:"source"`
	VehicleNumber string          `json:"vehicle_number"`
	Notes         string          `json:"notes"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);not null"`
	Status        string          `json:"status"`
	CreatedBy     string          `json:"created_by"`
	ApprovedBy    string          `json:"approved_by"`
	ApprovedAt    *time.Time      `json:"approved_at"`
	Items         []MaalInItem    `json:"items,omitempty" gorm:"foreignKey:MaalInID;constraint:OnDelete:CASCADE"`
}

type MaalInItem struct {
	gorm.Model
	MaalInID uint            `json:"maal_in_id" gorm:"not null;index"`
	Material string          `json:"material" gorm:"not null"`
	Weight   decimal.Decimal `json:"weight" gorm:"type:decimal(12,3);not null"`
	Rate     decimal.Decimal `json:"rate" gorm:"type:decimal(14,2);not null"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
}

// MaalOut is an outbound sale to a mill. Bill, original and GST amounts are
// derived from weight and rates at write time.
type MaalOut struct {
	gorm.Model
	CompanyID            uint            `json:"company_id" gorm:"not null;index:idx_maal_out_scope"`
	GodownID             uint            `json:"godown_id" gorm:"not null;index:idx_maal_out_scope"`
	FirmName             string          `json:"firm_name" gorm:"not null;index"`
	BillTo               string          `json:"bill_to"`
	ShipTo               string          `json:"ship_to"`
	Date                 string          `json:"date" gorm:"type:date;not null;index"`
	Weight               decimal.Decimal `json:"weight" gorm:"type:decimal(12,3);not null"`
	BillRate             decimal.Decimal `json:"bill_rate" gorm:"type:decimal(14,2);not null"`
	BillAmount           decimal.Decimal `json:"bill_amount" gorm:"type:decimal(14,2);not null"`
	OriginalRate         decimal.Decimal `json:"original_rate" gorm:"type:decimal(14,2);not null"`
	OriginalAmount       decimal.Decimal `json:"original_amount" gorm:"type:decimal(14,2);not null"`
	GstPercent           decimal.Decimal `json:"gst_percent" gorm:"type:decimal(5,2);not null"`
	GstAmount            decimal.Decimal `json:"gst_amount" gorm:"type:decimal(14,2);not null"`
	Freight              decimal.Decimal `json:"freight" gorm:"type:decimal(14,2);not null"`
	FreightPaymentStatus string          `json:"freight_payment_status"`
	VehicleNo            string          `json:"vehicle_no"`
}

type MaalOutPayment struct {
	gorm.Model
	CompanyID uint            `json:"company_id" gorm:"not null;index"`
	GodownID  uint            `json:"godown_id" gorm:"not null;index"`
	FirmName  string          `json:"firm_name" gorm:"not null;index"`
	MaalOutID *uint           `json:"maal_out_id" gorm:"index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Date      string          `json:"date" gorm:"type:date;not null;index"`
	Mode      string          `json:"mode"`
	Note      string          `json:"note"`
}
