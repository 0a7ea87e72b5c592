package Controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

func newAnalyticsApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	controller := NewAnalyticsController(db)
	app.Get("/api/analytics/summary", controller.Summary)
	app.Get("/api/analytics/monthly", controller.MonthlyTransactions)
	app.Get("/api/analytics/top-vendors", controller.TopVendors)
	app.Get("/api/analytics/recent-activity", controller.RecentActivity)
	return app
}

func seedKabadiwalaHistory(t *testing.T, db *gorm.DB, vendorID uint, date, purchased, paid string) {
	t.Helper()
	record := Models.KabadiwalaRecord{
		CompanyID: 1, GodownID: 1, VendorID: vendorID, Date: date,
		TotalAmount: decimal.RequireFromString(purchased),
	}
	require.NoError(t, db.Create(&record).Error)
	if paid != "0" {
		payment := Models.KabadiwalaPayment{
			KabadiwalaID: record.ID, Amount: decimal.RequireFromString(paid),
			Mode: "cash", Date: date,
		}
		require.NoError(t, db.Create(&payment).Error)
	}
}

func TestSummaryCountsGlobalVendors(t *testing.T) {
	db := newTestDB(t)
	app := newAnalyticsApp(db)

	raju := seedVendor(t, db, "Raju", Models.VendorTypeKabadiwala)
	seedVendor(t, db, "Shanti", Models.VendorTypeFeriwala)
	seedKabadiwalaHistory(t, db, raju.ID, "2025-06-01", "1000", "600")

	status, body := doJSON(t, app, "GET", "/api/analytics/summary?company_id=1&godown_id=1", nil)
	require.Equal(t, fiber.StatusOK, status)

	// Vendors carry no scope columns; the count is over all of them.
	assert.EqualValues(t, 2, body["vendor_count"])
	assert.Equal(t, "1000", body["total_purchased"])
	assert.Equal(t, "600", body["total_paid"])
	assert.Equal(t, "-400", body["net_balance"])
}

func TestSummaryEmptyScope(t *testing.T) {
	db := newTestDB(t)
	app := newAnalyticsApp(db)

	status, body := doJSON(t, app, "GET", "/api/analytics/summary?company_id=1&godown_id=1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 0, body["vendor_count"])
	assert.Equal(t, "0", body["total_purchased"])
}
