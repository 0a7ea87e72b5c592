package Models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TruckTransaction is one trip entry in the truck/driver ledger.
type TruckTransaction struct {
	gorm.Model
	CompanyID     uint            `json:"company_id" gorm:"not null;index:idx_truck_scope"`
	GodownID      uint            `json:"godown_id" gorm:"not null;index:idx_truck_scope"`
	Date          string          `json:"date" gorm:"type:date;not null;index"`
	DriverName    string          `json:"driver_name"`
	VehicleNumber string          `json:"vehicle_number"`
	TripDetails   string          `json:"trip_details"`
	Cost          decimal.Decimal `json:"cost" gorm:"type:decimal(14,2);not null"`
	FuelCost      decimal.Decimal `json:"fuel_cost" gorm:"type:decimal(14,2);not null"`
	Miscellaneous decimal.Decimal `json:"miscellaneous" gorm:"type:decimal(14,2);not null"`
	AmountPaid    decimal.Decimal `json:"amount_paid" gorm:"type:decimal(14,2);not null"`
	ReturnAmount  decimal.Decimal `json:"return_amount" gorm:"type:decimal(14,2);not null"`
}
