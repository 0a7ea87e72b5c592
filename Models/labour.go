package Models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Labour is a worker or contractor on the godown payroll.
type Labour struct {
	gorm.Model
	CompanyID     uint            `json:"company_id" gorm:"not null;index"`
	GodownID      uint            `json:"godown_id" gorm:"not null;index"`
	Name          string          `json:"name" gorm:"not null"`
	Contact       string          `json:"contact"`
	Role          string          `json:"role"`
	WorkerType    string          `json:"worker_type"`
	DailyWage     decimal.Decimal `json:"daily_wage" gorm:"type:decimal(14,2);not null"`
	MonthlySalary decimal.Decimal `json:"monthly_salary" gorm:"type:decimal(14,2);not null"`
	PerKgRate     decimal.Decimal `json:"per_kg_rate" gorm:"type:decimal(14,2);not null"`
	Status        string          `json:"status"`
	CreatedBy     string          `json:"created_by"`
}

// Attendance only ever holds "Present" rows; absences are not recorded.
type Attendance struct {
	gorm.Model
	CompanyID uint   `json:"company_id" gorm:"not null;index"`
	GodownID  uint   `json:"godown_id" gorm:"not null;index"`
	LabourID  uint   `json:"labour_id" gorm:"not null;uniqueIndex:idx_attendance_day"`
	Date      string `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_day"`
	Status    string `json:"status"`
}

// LabourSalary is the daily-wage accrual written when attendance is marked.
// One row per labour per day.
type LabourSalary struct {
	gorm.Model
	CompanyID uint            `json:"company_id" gorm:"not null;index"`
	GodownID  uint            `json:"godown_id" gorm:"not null;index"`
	LabourID  uint            `json:"labour_id" gorm:"not null;uniqueIndex:idx_salary_day"`
	Date      string          `json:"date" gorm:"type:date;not null;uniqueIndex:idx_salary_day"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Paid      bool            `json:"paid"`
}

// LabourWithdrawal is salary actually handed out.
type LabourWithdrawal struct {
	gorm.Model
	CompanyID uint            `json:"company_id" gorm:"not null;index"`
	GodownID  uint            `json:"godown_id" gorm:"not null;index"`
	LabourID  uint            `json:"labour_id" gorm:"not null;index"`
	Date      string          `json:"date" gorm:"type:date;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Mode      string          `json:"mode"`
	Type      string          `json:"type"`
}
