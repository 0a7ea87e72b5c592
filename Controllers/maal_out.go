package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

// MaalOutController handles outbound mill sales and their payments.
type MaalOutController struct {
	DB *gorm.DB
}

// NewMaalOutController creates a new MaalOutController
func NewMaalOutController(db *gorm.DB) *MaalOutController {
	return &MaalOutController{DB: db}
}

type MaalOutInput struct {
	CompanyID            uint            `json:"company_id" validate:"required"`
	GodownID             uint            `json:"godown_id" validate:"required"`
	FirmName             string          `json:"firm_name" validate:"required"`
	BillTo               string          `json:"bill_to"`
	ShipTo               string          `json:"ship_to"`
	Date                 string          `json:"date"`
	Weight               decimal.Decimal `json:"weight" validate:"required"`
	BillRate             decimal.Decimal `json:"bill_rate" validate:"required"`
	OriginalRate         decimal.Decimal `json:"original_rate"`
	GstPercent           decimal.Decimal `json:"gst_percent"`
	Freight              decimal.Decimal `json:"freight"`
	FreightPaymentStatus string          `json:"freight_payment_status"`
	VehicleNo            string          `json:"vehicle_no"`
}

// Bill, original and GST amounts are always derived here, never taken
// from the client.
func deriveSaleAmounts(sale *Models.MaalOut) {
	sale.BillAmount = sale.Weight.Mul(sale.BillRate).Round(2)
	sale.OriginalAmount = sale.Weight.Mul(sale.OriginalRate).Round(2)
	sale.GstAmount = sale.BillAmount.Mul(sale.GstPercent).Div(decimal.NewFromInt(100)).Round(2)
}

// AddSale records an outbound sale with derived amounts.
func (c *MaalOutController) AddSale(ctx *fiber.Ctx) error {
	var input MaalOutInput
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

	originalRate := input.OriginalRate
	if originalRate.IsZero() {
		originalRate = input.BillRate
	}

	sale := Models.MaalOut{
		CompanyID:            input.CompanyID,
		GodownID:             input.GodownID,
		FirmName:             input.FirmName,
		BillTo:               input.BillTo,
		ShipTo:               input.ShipTo,
		Date:                 date,
		Weight:               input.Weight,
		BillRate:             input.BillRate,
		OriginalRate:         originalRate,
		GstPercent:           input.GstPercent,
		Freight:              input.Freight,
		FreightPaymentStatus: input.FreightPaymentStatus,
		VehicleNo:            input.VehicleNo,
	}
	deriveSaleAmounts(&sale)

	if err := c.DB.Create(&sale).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record sale"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "sale": sale})
}

// UpdateSale edits a sale and re-derives its amounts.
func (c *MaalOutController) UpdateSale(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var sale Models.MaalOut
	if result := c.DB.First(&sale, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sale not found"})
	}

	var input MaalOutInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.FirmName != "" {
		sale.FirmName = input.FirmName
	}
	if input.BillTo != "" {
		sale.BillTo = input.BillTo
	}
	if input.ShipTo != "" {
		sale.ShipTo = input.ShipTo
	}
	if input.Date != "" {
		if _, err := normalizeDate(input.Date); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		sale.Date = input.Date
	}
	if !input.Weight.IsZero() {
		sale.Weight = input.Weight
	}
	if !input.BillRate.IsZero() {
		sale.BillRate = input.BillRate
	}
	if !input.OriginalRate.IsZero() {
		sale.OriginalRate = input.OriginalRate
	}
	sale.GstPercent = input.GstPercent
	sale.Freight = input.Freight
	if input.FreightPaymentStatus != "" {
		sale.FreightPaymentStatus = input.FreightPaymentStatus
	}
	if input.VehicleNo != "" {
		sale.VehicleNo = input.VehicleNo
	}
	deriveSaleAmounts(&sale)

	if err := c.DB.Save(&sale).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update sale"})
	}

	return ctx.JSON(fiber.Map{"success": true, "sale": sale})
}

// DeleteSale removes a sale. Its payments stay on the firm's account.
func (c *MaalOutController) DeleteSale(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var sale Models.MaalOut
	if result := c.DB.First(&sale, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sale not found"})
	}

	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		// Detach payments instead of deleting them.
		if err := tx.Model(&Models.MaalOutPayment{}).
			Where("maal_out_id = ?", sale.ID).
			Update("maal_out_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete sale"})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Sale deleted successfully"})
}

// ListSales returns sales filtered by exact date or by month (YYYY-MM).
func (c *MaalOutController) ListSales(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	query := c.DB.Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID)
	if date := ctx.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	} else if month := ctx.Query("month"); month != "" {
		query = query.Where("date LIKE ?", month+"%")
	}
	if firm := ctx.Query("firm_name"); firm != "" {
		query = query.Where("firm_name = ?", firm)
	}

	var sales []Models.MaalOut
	if err := query.Order("date DESC, created_at DESC").Find(&sales).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve sales"})
	}

	var totalBilled, totalGst decimal.Decimal
	for _, sale := range sales {
		totalBilled = totalBilled.Add(sale.BillAmount)
		totalGst = totalGst.Add(sale.GstAmount)
	}

	return ctx.JSON(fiber.Map{
		"success":      true,
		"sales":        sales,
		"total_billed": totalBilled,
		"total_gst":    totalGst,
	})
}

type MaalOutPaymentInput struct {
	CompanyID uint            `json:"company_id" validate:"required"`
	GodownID  uint            `json:"godown_id" validate:"required"`
	FirmName  string          `json:"firm_name" validate:"required"`
	MaalOutID *uint           `json:"maal_out_id"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Date      string          `json:"date"`
	Mode      string          `json:"mode"`
	Note      string          `json:"note"`
}

// AddPayment records money received from a firm, optionally tied to a sale.
func (c *MaalOutController) AddPayment(ctx *fiber.Ctx) error {
	var input MaalOutPaymentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil || !input.Amount.IsPositive() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	date, err := normalizeDate(input.Date)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.MaalOutID != nil {
		var sale Models.MaalOut
		if result := c.DB.First(&sale, *input.MaalOutID); result.Error != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sale not found"})
		}
	}

	payment := Models.MaalOutPayment{
		CompanyID: input.CompanyID,
		GodownID:  input.GodownID,
		FirmName:  input.FirmName,
		MaalOutID: input.MaalOutID,
		Amount:    input.Amount,
		Date:      date,
		Mode:      input.Mode,
		Note:      input.Note,
	}
	if err := c.DB.Create(&payment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "payment": payment})
}

// UpdatePayment edits a firm payment.
func (c *MaalOutController) UpdatePayment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	var payment Models.MaalOutPayment
	if result := c.DB.First(&payment, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	var input MaalOutPaymentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Amount.IsPositive() {
		payment.Amount = input.Amount
	}
	if input.Date != "" {
		if _, err := normalizeDate(input.Date); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		payment.Date = input.Date
	}
	if input.Mode != "" {
		payment.Mode = input.Mode
	}
	if input.Note != "" {
		payment.Note = input.Note
	}

	if err := c.DB.Save(&payment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	return ctx.JSON(fiber.Map{"success": true, "payment": payment})
}

// DeletePayment removes a firm payment.
func (c *MaalOutController) DeletePayment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	var payment Models.MaalOutPayment
	if result := c.DB.First(&payment, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	if err := c.DB.Delete(&payment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete payment"})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Payment deleted successfully"})
}

// ListPayments returns firm payments with outstanding totals per firm.
func (c *MaalOutController) ListPayments(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	query := c.DB.Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID)
	firm := ctx.Query("firm_name")
	if firm != "" {
		query = query.Where("firm_name = ?", firm)
	}

	var payments []Models.MaalOutPayment
	if err := query.Order("date DESC, created_at DESC").Find(&payments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	response := fiber.Map{"success": true, "payments": payments}

	if firm != "" {
		var billed decimal.Decimal
		row := c.DB.Model(&Models.MaalOut{}).
			Where("company_id = ? AND godown_id = ? AND firm_name = ?", scope.CompanyID, scope.GodownID, firm).
			Select("COALESCE(SUM(bill_amount),0)").Row()
		if err := row.Scan(&billed); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balance"})
		}
		var received decimal.Decimal
		for _, payment := range payments {
			received = received.Add(payment.Amount)
		}
		response["total_billed"] = billed
		response["total_received"] = received
		response["outstanding"] = billed.Sub(received)
	}

	return ctx.JSON(response)
}
