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

func newVendorsApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	controller := NewVendorController(db)
	app.Get("/api/vendors", controller.GetVendors)
	app.Post("/api/vendors", controller.CreateVendor)
	app.Get("/api/vendors/:id", controller.GetVendor)
	app.Put("/api/vendors/:id", controller.UpdateVendor)
	app.Delete("/api/vendors/:id", controller.DeleteVendor)
	return app
}

func TestCreateVendorRejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	app := newVendorsApp(db)

	payload := fiber.Map{"name": "Raju", "vendor_type": "kabadiwala"}
	status, _ := doJSON(t, app, "POST", "/api/vendors", payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, "POST", "/api/vendors", payload)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body["error"], "already exists")
}

func TestCreateVendorRejectsUnknownType(t *testing.T) {
	db := newTestDB(t)
	app := newVendorsApp(db)

	status, _ := doJSON(t, app, "POST", "/api/vendors", fiber.Map{
		"name":        "Raju",
		"vendor_type": "wholesaler",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	var count int64
	db.Model(&Models.Vendor{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetVendorsFiltersByType(t *testing.T) {
	db := newTestDB(t)
	app := newVendorsApp(db)

	seedVendor(t, db, "Raju", Models.VendorTypeKabadiwala)
	seedVendor(t, db, "Shanti", Models.VendorTypeFeriwala)

	status, body := doJSON(t, app, "GET", "/api/vendors?vendor_type=feriwala", nil)
	require.Equal(t, fiber.StatusOK, status)

	vendors := body["vendors"].([]interface{})
	require.Len(t, vendors, 1)
	assert.Equal(t, "Shanti", vendors[0].(map[string]interface{})["name"])
}

func TestDeleteVendorRefusedWithLedgerHistory(t *testing.T) {
	db := newTestDB(t)
	app := newVendorsApp(db)

	vendor := seedVendor(t, db, "Raju", Models.VendorTypeKabadiwala)
	record := Models.KabadiwalaRecord{
		CompanyID: 1, GodownID: 1, VendorID: vendor.ID, Date: "2025-01-10",
	}
	require.NoError(t, db.Create(&record).Error)

	status, body := doJSON(t, app, "DELETE", fmt.Sprintf("/api/vendors/%d", vendor.ID), nil)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body["error"], "ledger history")

	var count int64
	db.Model(&Models.Vendor{}).Where("id = ?", vendor.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteVendorRemovesRateCard(t *testing.T) {
	db := newTestDB(t)
	app := newVendorsApp(db)

	vendor := seedVendor(t, db, "Raju", Models.VendorTypeKabadiwala)
	iron := seedMaterial(t, db, "Iron", "10")
	seedVendorRate(t, db, vendor.ID, iron.ID, "12", "2")

	status, _ := doJSON(t, app, "DELETE", fmt.Sprintf("/api/vendors/%d", vendor.ID), nil)
	require.Equal(t, fiber.StatusOK, status)

	var vendors, rates int64
	db.Model(&Models.Vendor{}).Count(&vendors)
	db.Model(&Models.VendorRate{}).Count(&rates)
	assert.Equal(t, int64(0), vendors)
	assert.Equal(t, int64(0), rates)
}

func TestUpdateVendorPersistsChanges(t *testing.T) {
	db := newTestDB(t)
	app := newVendorsApp(db)
	vendor := seedVendor(t, db, "Raju", Models.VendorTypeKabadiwala)

	status, body := doJSON(t, app, "PUT", fmt.Sprintf("/api/vendors/%d", vendor.ID), fiber.Map{
		"name": "Raju Bhai", "contact": "9876543210",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Raju Bhai", body["name"])

	var updated Models.Vendor
	require.NoError(t, db.First(&updated, vendor.ID).Error)
	assert.Equal(t, "Raju Bhai", updated.Name)
	assert.Equal(t, "9876543210", updated.Contact)
}
