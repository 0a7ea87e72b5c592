package Models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a general outgoing payment (rent, fuel, labour, chai...).
// Labour-category expenses also write a salary withdrawal for the worker.
type Expense struct {
	gorm.Model
	CompanyID   uint            `json:"company_id" gorm:"not null;index:idx_expense_scope"`
	GodownID    uint            `json:"godown_id" gorm:"not null;index:idx_expense_scope"`
	Date        string          `json:"date" gorm:"type:date;not null;index"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	PaymentMode string          `json:"payment_mode"`
	AccountID   uint            `json:"account_id" gorm:"not null;index"`
	PaidTo      string          `json:"paid_to" gorm:"not null"`
	CreatedBy   string          `json:"created_by"`
}
