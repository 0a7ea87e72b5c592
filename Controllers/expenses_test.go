package Controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

func newExpensesApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	controller := NewExpenseController(db)
	app.Post("/api/expenses", controller.CreateExpense)
	app.Get("/api/expenses", controller.ListExpenses)
	app.Get("/api/expenses/range", controller.ExpensesByRange)
	app.Get("/api/expenses/summary", controller.ExpenseSummary)
	app.Delete("/api/expenses/:id", controller.DeleteExpense)
	return app
}

func TestCreateExpenseDebitsAccount(t *testing.T) {
	db := newTestDB(t)
	app := newExpensesApp(db)
	account := seedAccount(t, db, "Godown Cash", "5000")

	status, body := doJSON(t, app, "POST", "/api/expenses", fiber.Map{
		"company_id": 1, "godown_id": 1, "account_id": account.ID,
		"amount": "750", "paid_to": "Diesel pump", "date": "2025-03-01",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])

	var expense Models.Expense
	require.NoError(t, db.First(&expense).Error)
	assert.Equal(t, "General", expense.Category)
	assert.Equal(t, "No description", expense.Description)
	assert.Equal(t, "cash", expense.PaymentMode)

	var updated Models.Account
	require.NoError(t, db.First(&updated, account.ID).Error)
	assert.Equal(t, "4250", updated.Balance.String())

	var txn Models.AccountTransaction
	require.NoError(t, db.Where("account_id = ?", account.ID).First(&txn).Error)
	assert.Equal(t, "expense", txn.Category)
	assert.Contains(t, txn.Reference, "Diesel pump")
}

func TestCreateLabourExpenseWritesSalaryWithdrawal(t *testing.T) {
	db := newTestDB(t)
	app := newExpensesApp(db)
	account := seedAccount(t, db, "Godown Cash", "5000")
	labour := seedLabour(t, db, "Mohan", "400")

	// Worker name matching is case-insensitive.
	status, _ := doJSON(t, app, "POST", "/api/expenses", fiber.Map{
		"company_id": 1, "godown_id": 1, "account_id": account.ID,
		"category": "Labour", "amount": "1200", "paid_to": "MOHAN", "date": "2025-03-05",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var withdrawal Models.LabourWithdrawal
	require.NoError(t, db.Where("labour_id = ?", labour.ID).First(&withdrawal).Error)
	assert.Equal(t, "1200", withdrawal.Amount.String())
	assert.Equal(t, "salary", withdrawal.Type)
	assert.Equal(t, "2025-03-05", withdrawal.Date)

	var updated Models.Account
	require.NoError(t, db.First(&updated, account.ID).Error)
	assert.Equal(t, "3800", updated.Balance.String())
}

func TestCreateLabourExpenseUnknownWorkerStillRecords(t *testing.T) {
	db := newTestDB(t)
	app := newExpensesApp(db)
	account := seedAccount(t, db, "Godown Cash", "5000")

	status, _ := doJSON(t, app, "POST", "/api/expenses", fiber.Map{
		"company_id": 1, "godown_id": 1, "account_id": account.ID,
		"category": "Labour", "amount": "500", "paid_to": "Outside helper",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var withdrawalCount, expenseCount int64
	db.Model(&Models.LabourWithdrawal{}).Count(&withdrawalCount)
	db.Model(&Models.Expense{}).Count(&expenseCount)
	assert.EqualValues(t, 0, withdrawalCount)
	assert.EqualValues(t, 1, expenseCount)
}

func TestExpenseSummaryGroupsByMode(t *testing.T) {
	db := newTestDB(t)
	app := newExpensesApp(db)
	account := seedAccount(t, db, "Godown Cash", "10000")

	for _, exp := range []fiber.Map{
		{"amount": "100", "payment_mode": "cash", "paid_to": "Tea stall"},
		{"amount": "250", "payment_mode": "UPI", "paid_to": "Hardware shop"},
		{"amount": "400", "payment_mode": "bank transfer", "paid_to": "Electrician"},
	} {
		exp["company_id"] = 1
		exp["godown_id"] = 1
		exp["account_id"] = account.ID
		exp["date"] = "2025-03-10"
		status, _ := doJSON(t, app, "POST", "/api/expenses", exp)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, body := doJSON(t, app, "GET", "/api/expenses/summary?company_id=1&godown_id=1", nil)
	require.Equal(t, fiber.StatusOK, status)

	summary := body["summary"].(map[string]interface{})
	assert.EqualValues(t, 3, summary["total_expenses"])
	assert.Equal(t, "750", summary["total_amount"])
	assert.Equal(t, "100", summary["total_cash"])
	assert.Equal(t, "250", summary["total_upi"])
	assert.Equal(t, "400", summary["total_bank"])
}

func TestListExpensesFiltersByDate(t *testing.T) {
	db := newTestDB(t)
	app := newExpensesApp(db)
	account := seedAccount(t, db, "Godown Cash", "10000")

	for _, date := range []string{"2025-03-10", "2025-03-11"} {
		status, _ := doJSON(t, app, "POST", "/api/expenses", fiber.Map{
			"company_id": 1, "godown_id": 1, "account_id": account.ID,
			"amount": "100", "paid_to": "Tea stall", "date": date,
		})
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, body := doJSON(t, app, "GET", "/api/expenses?company_id=1&godown_id=1&date=2025-03-11", nil)
	require.Equal(t, fiber.StatusOK, status)
	expenses := body["expenses"].([]interface{})
	require.Len(t, expenses, 1)
	assert.Equal(t, "2025-03-11", expenses[0].(map[string]interface{})["date"])
}
