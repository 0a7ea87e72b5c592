package Controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))
	Models.DB = db
	return db
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, method, target, body), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func seedVendor(t *testing.T, db *gorm.DB, name, vendorType string) Models.Vendor {
	t.Helper()
	vendor := Models.Vendor{Name: name, VendorType: vendorType}
	require.NoError(t, db.Create(&vendor).Error)
	return vendor
}

func seedMaterial(t *testing.T, db *gorm.DB, name, globalRate string) Models.ScrapType {
	t.Helper()
	material := Models.ScrapType{MaterialType: name, GlobalRate: decimal.RequireFromString(globalRate)}
	require.NoError(t, db.Create(&material).Error)
	return material
}

func seedVendorRate(t *testing.T, db *gorm.DB, vendorID, scrapTypeID uint, rate, offset string) {
	t.Helper()
	vendorRate := Models.VendorRate{
		VendorID:    vendorID,
		ScrapTypeID: scrapTypeID,
		VendorRate:  decimal.RequireFromString(rate),
		RateOffset:  decimal.RequireFromString(offset),
	}
	require.NoError(t, db.Create(&vendorRate).Error)
}

func seedAccount(t *testing.T, db *gorm.DB, name, balance string) Models.Account {
	t.Helper()
	account := Models.Account{
		CompanyID:   1,
		GodownID:    1,
		Name:        name,
		AccountType: "cash",
		Balance:     decimal.RequireFromString(balance),
	}
	require.NoError(t, db.Create(&account).Error)
	return account
}
