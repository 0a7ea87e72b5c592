package Controllers

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

func newFeriwalaApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	controller := NewFeriwalaController(db)
	app.Post("/api/feriwala/purchase", controller.AddPurchase)
	app.Get("/api/feriwala/records", controller.ListRecords)
	app.Post("/api/feriwala/withdraw", controller.RecordWithdrawal)
	app.Get("/api/feriwala/balance", controller.Balance)
	app.Get("/api/feriwala/balances", controller.Balances)
	return app
}

func TestFeriwalaPurchasePaysFromAccount(t *testing.T) {
	db := newTestDB(t)
	app := newFeriwalaApp(db)
	vendor := seedVendor(t, db, "Shanti", Models.VendorTypeFeriwala)
	material := seedMaterial(t, db, "Copper", "500")
	seedVendorRate(t, db, vendor.ID, material.ID, "520", "20")
	account := seedAccount(t, db, "Godown Cash", "10000")

	status, body := doJSON(t, app, "POST", "/api/feriwala/purchase", fiber.Map{
		"company_id": 1, "godown_id": 1, "vendor_id": vendor.ID,
		"account_id": account.ID, "date": "2025-04-01",
		"scraps": []fiber.Map{{"scrap_type_id": material.ID, "weight": "5"}},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "2600", body["total_amount"])
	assert.Equal(t, "Shanti", body["vendor"])

	var updated Models.Account
	require.NoError(t, db.First(&updated, account.ID).Error)
	assert.Equal(t, "7400", updated.Balance.String())

	var scrap Models.FeriwalaScrap
	require.NoError(t, db.First(&scrap).Error)
	assert.Equal(t, "Copper", scrap.Material)
	assert.Equal(t, "520", scrap.Rate.String())
}

func TestFeriwalaPurchaseMissingRateAborts(t *testing.T) {
	db := newTestDB(t)
	app := newFeriwalaApp(db)
	vendor := seedVendor(t, db, "Shanti", Models.VendorTypeFeriwala)
	account := seedAccount(t, db, "Godown Cash", "10000")

	status, body := doJSON(t, app, "POST", "/api/feriwala/purchase", fiber.Map{
		"company_id": 1, "godown_id": 1, "vendor_id": vendor.ID,
		"account_id": account.ID,
		"scraps": []fiber.Map{{"scrap_type_id": 42, "weight": "5"}},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "42")

	var recordCount int64
	db.Model(&Models.FeriwalaRecord{}).Count(&recordCount)
	assert.EqualValues(t, 0, recordCount)

	var updated Models.Account
	require.NoError(t, db.First(&updated, account.ID).Error)
	assert.Equal(t, "10000", updated.Balance.String())
}

func TestFeriwalaBalanceComputedOnRead(t *testing.T) {
	db := newTestDB(t)
	app := newFeriwalaApp(db)
	vendor := seedVendor(t, db, "Shanti", Models.VendorTypeFeriwala)
	material := seedMaterial(t, db, "Copper", "500")
	seedVendorRate(t, db, vendor.ID, material.ID, "500", "0")
	account := seedAccount(t, db, "Godown Cash", "10000")

	status, _ := doJSON(t, app, "POST", "/api/feriwala/purchase", fiber.Map{
		"company_id": 1, "godown_id": 1, "vendor_id": vendor.ID,
		"account_id": account.ID, "date": "2025-04-01",
		"scraps": []fiber.Map{{"scrap_type_id": material.ID, "weight": "2"}},
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, "POST", "/api/feriwala/withdraw", fiber.Map{
		"company_id": 1, "godown_id": 1, "vendor_id": vendor.ID,
		"amount": "1500", "date": "2025-04-02",
	})
	require.Equal(t, fiber.StatusOK, status)

	// Withdrawn 1500 against 1000 purchased: the feriwala owes 500.
	target := fmt.Sprintf("/api/feriwala/balance?company_id=1&godown_id=1&vendor_id=%d", vendor.ID)
	status, body := doJSON(t, app, "GET", target, nil)
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, "500", body["balance"])

	// No snapshot rows are ever written for feriwalas.
	var snapshotCount int64
	db.Model(&Models.KabadiwalaDailyBalance{}).Count(&snapshotCount)
	assert.EqualValues(t, 0, snapshotCount)
}
