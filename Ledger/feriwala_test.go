package Ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

func createFeriwala(t *testing.T, db *gorm.DB, name string) Models.Vendor {
	t.Helper()
	vendor := Models.Vendor{Name: name, VendorType: Models.VendorTypeFeriwala}
	require.NoError(t, db.Create(&vendor).Error)
	return vendor
}

func addFeriwalaPurchase(t *testing.T, db *gorm.DB, vendorID uint, date, amount string) {
	t.Helper()
	record := Models.FeriwalaRecord{
		CompanyID:   testScope.CompanyID,
		GodownID:    testScope.GodownID,
		VendorID:    vendorID,
		Date:        date,
		TotalAmount: decimal.RequireFromString(amount),
	}
	require.NoError(t, db.Create(&record).Error)
}

func addFeriwalaWithdrawal(t *testing.T, db *gorm.DB, vendorID uint, date, amount string) {
	t.Helper()
	withdrawal := Models.FeriwalaWithdrawal{
		CompanyID: testScope.CompanyID,
		GodownID:  testScope.GodownID,
		VendorID:  vendorID,
		Date:      date,
		Amount:    decimal.RequireFromString(amount),
	}
	require.NoError(t, db.Create(&withdrawal).Error)
}

func TestFeriwalaBalanceComputedOnRead(t *testing.T) {
	db := newTestDB(t)
	vendor := createFeriwala(t, db, "Shanti")

	addFeriwalaPurchase(t, db, vendor.ID, "2025-05-01", "400")
	addFeriwalaWithdrawal(t, db, vendor.ID, "2025-05-02", "500")

	balance, err := FeriwalaBalance(db, testScope, vendor.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "100", balance.String())

	// Nothing is ever persisted for feriwala balances.
	var count int64
	db.Model(&Models.KabadiwalaDailyBalance{}).Where("vendor_id = ?", vendor.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestFeriwalaBalanceUpToDate(t *testing.T) {
	db := newTestDB(t)
	vendor := createFeriwala(t, db, "Shanti")

	addFeriwalaPurchase(t, db, vendor.ID, "2025-05-01", "400")
	addFeriwalaWithdrawal(t, db, vendor.ID, "2025-05-02", "500")
	addFeriwalaPurchase(t, db, vendor.ID, "2025-05-03", "250")

	balance, err := FeriwalaBalance(db, testScope, vendor.ID, "2025-05-02")
	require.NoError(t, err)
	assert.Equal(t, "100", balance.String())

	balance, err = FeriwalaBalance(db, testScope, vendor.ID, "2025-05-03")
	require.NoError(t, err)
	assert.Equal(t, "-150", balance.String())
}

func TestFeriwalaBalancesAllVendors(t *testing.T) {
	db := newTestDB(t)
	first := createFeriwala(t, db, "Amit")
	second := createFeriwala(t, db, "Shanti")
	createKabadiwala(t, db, "Raju") // excluded from the feriwala listing

	addFeriwalaPurchase(t, db, first.ID, "2025-05-01", "100")
	addFeriwalaWithdrawal(t, db, second.ID, "2025-05-01", "80")

	balances, err := FeriwalaBalances(db, testScope, "")
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, "Amit", balances[0].VendorName)
	assert.Equal(t, "-100", balances[0].Balance.String())
	assert.Equal(t, "80", balances[1].Balance.String())
}
