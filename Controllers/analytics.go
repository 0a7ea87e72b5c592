package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

// AnalyticsController handles analytics-related API endpoints
type AnalyticsController struct {
	DB *gorm.DB
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// Summary returns the overall purchase and payment totals for a godown.
func (c *AnalyticsController) Summary(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Vendors are global; only their ledger rows carry a scope.
	var vendorCount int64
	if err := c.DB.Model(&Models.Vendor{}).Count(&vendorCount).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}

	var purchased, paid decimal.Decimal
	row := c.DB.Model(&Models.KabadiwalaRecord{}).
		Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID).
		Select("COALESCE(SUM(total_amount),0)").Row()
	if err := row.Scan(&purchased); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}
	row = c.DB.Table("kabadiwala_payments").
		Joins("JOIN kabadiwala_records kr ON kr.id = kabadiwala_payments.kabadiwala_id").
		Where("kr.company_id = ? AND kr.godown_id = ? AND kabadiwala_payments.deleted_at IS NULL AND kr.deleted_at IS NULL",
			scope.CompanyID, scope.GodownID).
		Select("COALESCE(SUM(kabadiwala_payments.amount),0)").Row()
	if err := row.Scan(&paid); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}

	return ctx.JSON(fiber.Map{
		"vendor_count":    vendorCount,
		"total_purchased": purchased,
		"total_paid":      paid,
		"net_balance":     paid.Sub(purchased),
	})
}

// MonthlyTransactions sums purchases and payments by month over the last
// 12 months. Grouping happens in Go to stay portable across databases.
func (c *AnalyticsController) MonthlyTransactions(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	type MonthlyData struct {
		Month     string          `json:"month"`
		Purchased decimal.Decimal `json:"purchased"`
		Paid      decimal.Decimal `json:"paid"`
		Net       decimal.Decimal `json:"net"`
	}

	endDate := time.Now()
	startDate := endDate.AddDate(-1, 0, 0).Format("2006-01-02")

	var records []Models.KabadiwalaRecord
	err = c.DB.Where("company_id = ? AND godown_id = ? AND date >= ?",
		scope.CompanyID, scope.GodownID, startDate).
		Find(&records).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve records"})
	}

	type paymentRow struct {
		Date   string
		Amount decimal.Decimal
	}
	var payments []paymentRow
	err = c.DB.Table("kabadiwala_payments").
		Select("kabadiwala_payments.date, kabadiwala_payments.amount").
		Joins("JOIN kabadiwala_records kr ON kr.id = kabadiwala_payments.kabadiwala_id").
		Where("kr.company_id = ? AND kr.godown_id = ? AND kabadiwala_payments.date >= ? AND kabadiwala_payments.deleted_at IS NULL AND kr.deleted_at IS NULL",
			scope.CompanyID, scope.GodownID, startDate).
		Scan(&payments).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	monthlySummary := make(map[string]*MonthlyData)
	for i := 0; i < 12; i++ {
		date := endDate.AddDate(0, -i, 0)
		monthlySummary[date.Format("2006-01")] = &MonthlyData{Month: date.Format("Jan 2006")}
	}

	for _, record := range records {
		monthKey := record.Date
		if len(monthKey) >= 7 {
			monthKey = monthKey[:7]
		}
		if data, exists := monthlySummary[monthKey]; exists {
			data.Purchased = data.Purchased.Add(record.TotalAmount)
		}
	}
	for _, payment := range payments {
		monthKey := payment.Date
		if len(monthKey) >= 7 {
			monthKey = monthKey[:7]
		}
		if data, exists := monthlySummary[monthKey]; exists {
			data.Paid = data.Paid.Add(payment.Amount)
		}
	}

	var response []MonthlyData
	for i := 11; i >= 0; i-- {
		date := endDate.AddDate(0, -i, 0)
		if data, exists := monthlySummary[date.Format("2006-01")]; exists {
			data.Net = data.Paid.Sub(data.Purchased)
			response = append(response, *data)
		}
	}

	return ctx.JSON(response)
}

// TopVendors returns the vendors with the largest purchase volume.
func (c *AnalyticsController) TopVendors(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	type VendorSummary struct {
		ID          uint            `json:"id"`
		Name        string          `json:"name"`
		Purchased   decimal.Decimal `json:"purchased"`
		RecordCount int64           `json:"record_count"`
	}

	var results []VendorSummary
	err = c.DB.Raw(`
		SELECT
			v.id,
			v.name,
			COALESCE(SUM(r.total_amount),0) as purchased,
			COUNT(r.id) as record_count
		FROM vendors v
		JOIN kabadiwala_records r ON v.id = r.vendor_id
		WHERE v.deleted_at IS NULL
		AND r.deleted_at IS NULL
		AND r.company_id = ? AND r.godown_id = ?
		GROUP BY v.id, v.name
		ORDER BY purchased DESC
		LIMIT 5
	`, scope.CompanyID, scope.GodownID).Scan(&results).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve top vendors"})
	}

	return ctx.JSON(results)
}

// RecentActivity returns the most recent purchase records.
func (c *AnalyticsController) RecentActivity(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	type RecentRecord struct {
		ID         uint            `json:"id"`
		Date       string          `json:"date"`
		VendorName string          `json:"vendor_name"`
		Amount     decimal.Decimal `json:"amount"`
		Status     string          `json:"status"`
	}

	var results []RecentRecord
	err = c.DB.Raw(`
		SELECT
			r.id,
			r.date,
			v.name as vendor_name,
			r.total_amount as amount,
			r.payment_status as status
		FROM kabadiwala_records r
		JOIN vendors v ON r.vendor_id = v.id
		WHERE r.deleted_at IS NULL
		AND v.deleted_at IS NULL
		AND r.company_id = ? AND r.godown_id = ?
		ORDER BY r.date DESC, r.id DESC
		LIMIT 10
	`, scope.CompanyID, scope.GodownID).Scan(&results).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve activity"})
	}

	return ctx.JSON(results)
}
