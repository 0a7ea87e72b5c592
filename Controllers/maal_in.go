package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ScrapBook/Ledger"
	"ScrapBook/Models"
)

// MaalInController handles two-step stock intake: header first, items after.
type MaalInController struct {
	DB *gorm.DB
}

// NewMaalInController creates a new MaalInController
func NewMaalInController(db *gorm.DB) *MaalInController {
	return &MaalInController{DB: db}
}

type CreateMaalInInput struct {
	CompanyID     uint   `json:"company_id" validate:"required"`
	GodownID      uint   `json:"godown_id" validate:"required"`
	Date          string `json:"date"`
	SupplierName  string `json:"supplier_name" validate:"required"`
	Source        string `json:"source"`
	VehicleNumber string `json:"vehicle_number"`
	Notes         string `json:"notes"`
	CreatedBy     string `json:"created_by"`
}

// CreateEntry opens an intake header with no items and a zero total.
func (c *MaalInController) CreateEntry(ctx *fiber.Ctx) error {
	var input CreateMaalInInput
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

	entry := Models.MaalIn{
		CompanyID:     input.CompanyID,
		GodownID:      input.GodownID,
		Date:          date,
		SupplierName:  input.SupplierName,
		Source:        input.Source,
		VehicleNumber: input.VehicleNumber,
		Notes:         input.Notes,
		TotalAmount:   decimal.Zero,
		Status:        Models.MaalInPending,
		CreatedBy:     input.CreatedBy,
	}
	if err := c.DB.Create(&entry).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create entry"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "entry": entry})
}

type MaalInItemInput struct {
	Material string          `json:"material" validate:"required"`
	Weight   decimal.Decimal `json:"weight" validate:"required"`
	Rate     decimal.Decimal `json:"rate" validate:"required"`
}

type AddMaalInItemsInput struct {
	Items []MaalInItemInput `json:"items" validate:"required,min=1,dive"`
}

// AddItems appends material lines to an intake entry and recomputes the
// header total from all of its items.
func (c *MaalInController) AddItems(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	var entry Models.MaalIn
	if result := c.DB.First(&entry, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Entry not found"})
	}
	if entry.Status == Models.MaalInApproved {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot modify an approved entry"})
	}

	var input AddMaalInItemsInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		for _, line := range input.Items {
			item := Models.MaalInItem{
				MaalInID: entry.ID,
				Material: line.Material,
				Weight:   line.Weight,
				Rate:     line.Rate,
				Amount:   Ledger.LineAmount(line.Weight, line.Rate),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		var total decimal.Decimal
		row := tx.Model(&Models.MaalInItem{}).
			Where("maal_in_id = ?", entry.ID).
			Select("COALESCE(SUM(amount),0)").Row()
		if err := row.Scan(&total); err != nil {
			return err
		}
		return tx.Model(&entry).Update("total_amount", total).Error
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add items"})
	}

	c.DB.Preload("Items").First(&entry, entry.ID)
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "entry": entry})
}

// ListEntries returns intake headers with their items, newest first.
func (c *MaalInController) ListEntries(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	query := c.DB.Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID)
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := ctx.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var entries []Models.MaalIn
	if err := query.Preload("Items").Order("date DESC, created_at DESC").Find(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve entries"})
	}

	return ctx.JSON(fiber.Map{"success": true, "entries": entries})
}

// GetEntry returns one intake entry with items.
func (c *MaalInController) GetEntry(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	var entry Models.MaalIn
	if result := c.DB.Preload("Items").First(&entry, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Entry not found"})
	}

	return ctx.JSON(fiber.Map{"success": true, "entry": entry})
}

type ApproveMaalInInput struct {
	Status     string `json:"status" validate:"required,oneof=approved rejected"`
	ApprovedBy string `json:"approved_by" validate:"required"`
}

// Approve moves a pending entry to approved or rejected. Owner only.
func (c *MaalInController) Approve(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	var input ApproveMaalInInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status must be approved or rejected"})
	}

	var entry Models.MaalIn
	if result := c.DB.First(&entry, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Entry not found"})
	}
	if entry.Status != Models.MaalInPending {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Entry already reviewed"})
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      input.Status,
		"approved_by": input.ApprovedBy,
		"approved_at": &now,
	}
	if err := c.DB.Model(&entry).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update entry"})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Entry " + input.Status})
}
