package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

// TruckController handles the truck trip ledger.
type TruckController struct {
	DB *gorm.DB
}

// NewTruckController creates a new TruckController
func NewTruckController(db *gorm.DB) *TruckController {
	return &TruckController{DB: db}
}

type TruckTransactionInput struct {
	CompanyID     uint            `json:"company_id" validate:"required"`
	GodownID      uint            `json:"godown_id" validate:"required"`
	Date          string          `json:"date"`
	DriverName    string          `json:"driver_name" validate:"required"`
	VehicleNumber string          `json:"vehicle_number"`
	TripDetails   string          `json:"trip_details"`
	Cost          decimal.Decimal `json:"cost"`
	FuelCost      decimal.Decimal `json:"fuel_cost"`
	Miscellaneous decimal.Decimal `json:"miscellaneous"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	ReturnAmount  decimal.Decimal `json:"return_amount"`
}

// CreateTransaction records a truck trip.
func (c *TruckController) CreateTransaction(ctx *fiber.Ctx) error {
	var input TruckTransactionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	date, err := normalizeDate(input.Date)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	transaction := Models.TruckTransaction{
		CompanyID:     input.CompanyID,
		GodownID:      input.GodownID,
		Date:          date,
		DriverName:    input.DriverName,
		VehicleNumber: input.VehicleNumber,
		TripDetails:   input.TripDetails,
		Cost:          input.Cost,
		FuelCost:      input.FuelCost,
		Miscellaneous: input.Miscellaneous,
		AmountPaid:    input.AmountPaid,
		ReturnAmount:  input.ReturnAmount,
	}
	if err := c.DB.Create(&transaction).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record transaction"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "transaction": transaction})
}

// GetTransactions lists truck trips newest first, optionally by date range.
func (c *TruckController) GetTransactions(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	query := c.DB.Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID)
	if start := ctx.Query("start_date"); start != "" {
		query = query.Where("date >= ?", start)
	}
	if end := ctx.Query("end_date"); end != "" {
		query = query.Where("date <= ?", end)
	}

	var transactions []Models.TruckTransaction
	if err := query.Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transactions"})
	}

	return ctx.JSON(fiber.Map{"success": true, "transactions": transactions})
}

// UpdateTransaction edits a truck trip entry.
func (c *TruckController) UpdateTransaction(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.TruckTransaction
	if result := c.DB.First(&transaction, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	var input TruckTransactionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Date != "" {
		if _, err := normalizeDate(input.Date); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		transaction.Date = input.Date
	}
	if input.DriverName != "" {
		transaction.DriverName = input.DriverName
	}
	if input.VehicleNumber != "" {
		transaction.VehicleNumber = input.VehicleNumber
	}
	if input.TripDetails != "" {
		transaction.TripDetails = input.TripDetails
	}
	transaction.Cost = input.Cost
	transaction.FuelCost = input.FuelCost
	transaction.Miscellaneous = input.Miscellaneous
	transaction.AmountPaid = input.AmountPaid
	transaction.ReturnAmount = input.ReturnAmount

	if err := c.DB.Save(&transaction).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update transaction"})
	}

	return ctx.JSON(fiber.Map{"success": true, "transaction": transaction})
}

// DeleteTransaction removes a truck trip entry.
func (c *TruckController) DeleteTransaction(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.TruckTransaction
	if result := c.DB.First(&transaction, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	if err := c.DB.Delete(&transaction).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction"})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Transaction deleted successfully"})
}
