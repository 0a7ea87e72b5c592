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

func newTruckApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	controller := NewTruckController(db)
	app.Post("/api/trucks", controller.CreateTransaction)
	app.Get("/api/trucks", controller.GetTransactions)
	app.Put("/api/trucks/:id", controller.UpdateTransaction)
	app.Delete("/api/trucks/:id", controller.DeleteTransaction)
	return app
}

func TestCreateTruckTransaction(t *testing.T) {
	db := newTestDB(t)
	app := newTruckApp(db)

	status, body := doJSON(t, app, "POST", "/api/trucks", fiber.Map{
		"company_id": 1, "godown_id": 1, "date": "2025-07-01",
		"driver_name": "Sunil", "vehicle_number": "MH12AB1234",
		"trip_details": "Godown to Pune mill", "cost": "3000",
		"fuel_cost": "1800", "amount_paid": "2000",
	})
	require.Equal(t, fiber.StatusCreated, status)

	txn := body["transaction"].(map[string]interface{})
	assert.Equal(t, "Sunil", txn["driver_name"])
	assert.Equal(t, "3000", txn["cost"])
	assert.Equal(t, "1800", txn["fuel_cost"])
}

func TestGetTruckTransactionsDateRange(t *testing.T) {
	db := newTestDB(t)
	app := newTruckApp(db)

	for _, date := range []string{"2025-07-01", "2025-07-15", "2025-08-01"} {
		status, _ := doJSON(t, app, "POST", "/api/trucks", fiber.Map{
			"company_id": 1, "godown_id": 1, "date": date, "driver_name": "Sunil",
		})
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, body := doJSON(t, app, "GET",
		"/api/trucks?company_id=1&godown_id=1&start_date=2025-07-01&end_date=2025-07-31", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["transactions"].([]interface{}), 2)
}

func TestUpdateTruckTransaction(t *testing.T) {
	db := newTestDB(t)
	app := newTruckApp(db)

	status, body := doJSON(t, app, "POST", "/api/trucks", fiber.Map{
		"company_id": 1, "godown_id": 1, "date": "2025-07-01",
		"driver_name": "Sunil", "cost": "3000",
	})
	require.Equal(t, fiber.StatusCreated, status)
	id := uint(body["transaction"].(map[string]interface{})["ID"].(float64))

	status, body = doJSON(t, app, "PUT", fmt.Sprintf("/api/trucks/%d", id), fiber.Map{
		"driver_name": "Ramesh", "cost": "3500",
	})
	require.Equal(t, fiber.StatusOK, status)

	var txn Models.TruckTransaction
	require.NoError(t, db.First(&txn, id).Error)
	assert.Equal(t, "Ramesh", txn.DriverName)
	assert.Equal(t, "3500", txn.Cost.String())
	assert.Equal(t, "2025-07-01", txn.Date)
}

func TestDeleteTruckTransaction(t *testing.T) {
	db := newTestDB(t)
	app := newTruckApp(db)

	status, body := doJSON(t, app, "POST", "/api/trucks", fiber.Map{
		"company_id": 1, "godown_id": 1, "driver_name": "Sunil",
	})
	require.Equal(t, fiber.StatusCreated, status)
	id := uint(body["transaction"].(map[string]interface{})["ID"].(float64))

	status, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/api/trucks/%d", id), nil)
	require.Equal(t, fiber.StatusOK, status)

	var count int64
	db.Model(&Models.TruckTransaction{}).Where("id = ?", id).Count(&count)
	assert.EqualValues(t, 0, count)
}
