package Controllers

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

func newLabourApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	controller := NewLabourController(db)
	app.Post("/api/labour", controller.AddLabour)
	app.Get("/api/labour", controller.GetLabours)
	app.Post("/api/labour/attendance", controller.MarkAttendance)
	app.Get("/api/labour/attendance", controller.AttendanceByDate)
	app.Post("/api/labour/withdraw", controller.Withdraw)
	app.Get("/api/labour/salary/summary", controller.SalarySummary)
	app.Delete("/api/labour/:id", controller.DeleteLabour)
	return app
}

func seedLabour(t *testing.T, db *gorm.DB, name, dailyWage string) Models.Labour {
	t.Helper()
	labour := Models.Labour{
		CompanyID:  1,
		GodownID:   1,
		Name:       name,
		WorkerType: "daily",
		DailyWage:  decimal.RequireFromString(dailyWage),
		Status:     "active",
	}
	require.NoError(t, db.Create(&labour).Error)
	return labour
}

func TestMarkAttendanceAccruesDailyWage(t *testing.T) {
	db := newTestDB(t)
	app := newLabourApp(db)
	labour := seedLabour(t, db, "Mohan", "400")

	status, _ := doJSON(t, app, "POST", "/api/labour/attendance", fiber.Map{
		"company_id": 1, "godown_id": 1, "labour_id": labour.ID, "date": "2025-02-10",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var salaries []Models.LabourSalary
	require.NoError(t, db.Where("labour_id = ?", labour.ID).Find(&salaries).Error)
	require.Len(t, salaries, 1)
	assert.Equal(t, "400", salaries[0].Amount.String())
	assert.Equal(t, "2025-02-10", salaries[0].Date)

	var attendanceCount int64
	db.Model(&Models.Attendance{}).Where("labour_id = ?", labour.ID).Count(&attendanceCount)
	assert.EqualValues(t, 1, attendanceCount)
}

func TestMarkAttendanceRejectsDuplicateDay(t *testing.T) {
	db := newTestDB(t)
	app := newLabourApp(db)
	labour := seedLabour(t, db, "Mohan", "400")

	body := fiber.Map{"company_id": 1, "godown_id": 1, "labour_id": labour.ID, "date": "2025-02-10"}
	status, _ := doJSON(t, app, "POST", "/api/labour/attendance", body)
	require.Equal(t, fiber.StatusCreated, status)

	status, resp := doJSON(t, app, "POST", "/api/labour/attendance", body)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, resp["error"], "already marked")

	// No second accrual snuck in.
	var salaryCount int64
	db.Model(&Models.LabourSalary{}).Where("labour_id = ?", labour.ID).Count(&salaryCount)
	assert.EqualValues(t, 1, salaryCount)
}

func TestMarkAttendanceZeroWageSkipsAccrual(t *testing.T) {
	db := newTestDB(t)
	app := newLabourApp(db)
	labour := seedLabour(t, db, "Helper", "0")

	status, _ := doJSON(t, app, "POST", "/api/labour/attendance", fiber.Map{
		"company_id": 1, "godown_id": 1, "labour_id": labour.ID, "date": "2025-02-10",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var salaryCount int64
	db.Model(&Models.LabourSalary{}).Where("labour_id = ?", labour.ID).Count(&salaryCount)
	assert.EqualValues(t, 0, salaryCount)
}

func TestWithdrawDebitsAccountAndAllowsOverdraw(t *testing.T) {
	db := newTestDB(t)
	app := newLabourApp(db)
	labour := seedLabour(t, db, "Mohan", "400")
	account := seedAccount(t, db, "Godown Cash", "5000")

	// Worker earned nothing yet; overdrawing is still accepted.
	status, _ := doJSON(t, app, "POST", "/api/labour/withdraw", fiber.Map{
		"company_id": 1, "godown_id": 1, "labour_id": labour.ID,
		"amount": "600", "account_id": account.ID, "date": "2025-02-11",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var withdrawal Models.LabourWithdrawal
	require.NoError(t, db.Where("labour_id = ?", labour.ID).First(&withdrawal).Error)
	assert.Equal(t, "600", withdrawal.Amount.String())
	assert.Equal(t, "salary", withdrawal.Type)

	var updated Models.Account
	require.NoError(t, db.First(&updated, account.ID).Error)
	assert.Equal(t, "4400", updated.Balance.String())

	var txn Models.AccountTransaction
	require.NoError(t, db.Where("account_id = ?", account.ID).First(&txn).Error)
	assert.Equal(t, "600", txn.Amount.String())
}

func TestGetLaboursReportsRunningBalance(t *testing.T) {
	db := newTestDB(t)
	app := newLabourApp(db)
	labour := seedLabour(t, db, "Mohan", "400")

	for _, date := range []string{"2025-02-10", "2025-02-11"} {
		status, _ := doJSON(t, app, "POST", "/api/labour/attendance", fiber.Map{
			"company_id": 1, "godown_id": 1, "labour_id": labour.ID, "date": date,
		})
		require.Equal(t, fiber.StatusCreated, status)
	}
	status, _ := doJSON(t, app, "POST", "/api/labour/withdraw", fiber.Map{
		"company_id": 1, "godown_id": 1, "labour_id": labour.ID,
		"amount": "300", "date": "2025-02-12",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, "GET", "/api/labour?company_id=1&godown_id=1", nil)
	require.Equal(t, fiber.StatusOK, status)

	labours := body["labours"].([]interface{})
	require.Len(t, labours, 1)
	row := labours[0].(map[string]interface{})
	assert.Equal(t, "800", row["total_earned"])
	assert.Equal(t, "300", row["total_withdrawn"])
	assert.Equal(t, "500", row["balance"])
}

func TestDeleteLabourCascades(t *testing.T) {
	db := newTestDB(t)
	app := newLabourApp(db)
	labour := seedLabour(t, db, "Mohan", "400")

	status, _ := doJSON(t, app, "POST", "/api/labour/attendance", fiber.Map{
		"company_id": 1, "godown_id": 1, "labour_id": labour.ID, "date": "2025-02-10",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/api/labour/%d", labour.ID), nil)
	require.Equal(t, fiber.StatusOK, status)

	var labourCount, attendanceCount, salaryCount int64
	db.Model(&Models.Labour{}).Where("id = ?", labour.ID).Count(&labourCount)
	db.Model(&Models.Attendance{}).Where("labour_id = ?", labour.ID).Count(&attendanceCount)
	db.Model(&Models.LabourSalary{}).Where("labour_id = ?", labour.ID).Count(&salaryCount)
	assert.EqualValues(t, 0, labourCount)
	assert.EqualValues(t, 0, attendanceCount)
	assert.EqualValues(t, 0, salaryCount)
}
