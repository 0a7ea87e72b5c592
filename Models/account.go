package Models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account is a cash or bank ledger the business pays out of.
type Account struct {
	gorm.Model
	CompanyID   uint            `json:"company_id" gorm:"not null;index"`
	GodownID    uint            `json:"godown_id" gorm:"not null;index"`
	Name        string          `json:"name" gorm:"not null"`
	AccountType string          `json:"account_type"`
	Balance     decimal.Decimal `json:"balance" gorm:"type:decimal(14,2);not null"`
}

// AccountTransaction is one debit or credit against an account. The account
// balance is mutated in the same transaction that inserts this row.
type AccountTransaction struct {
	gorm.Model
	CompanyID uint            `json:"company_id" gorm:"not null;index"`
	GodownID  uint            `json:"godown_id" gorm:"not null;index"`
	AccountID uint            `json:"account_id" gorm:"not null;index"`
	Type      string          `json:"type" gorm:"not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Category  string          `json:"category"`
	Reference string          `json:"reference"`
}
