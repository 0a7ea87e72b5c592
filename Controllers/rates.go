package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ScrapBook/Models"
)

// RateController manages materials, global base rates and per-vendor rate
// overrides. A vendor's rate is always global_rate + rate_offset.
type RateController struct {
	DB *gorm.DB
}

// NewRateController creates a new RateController
func NewRateController(db *gorm.DB) *RateController {
	return &RateController{DB: db}
}

type AddMaterialInput struct {
	MaterialType string          `json:"material_type" validate:"required"`
	BaseRate     decimal.Decimal `json:"base_rate" validate:"required"`
}

// AddMaterial registers a new scrap material with its global base rate.
func (c *RateController) AddMaterial(ctx *fiber.Ctx) error {
	var input AddMaterialInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "material_type and base_rate required"})
	}

	material := Models.ScrapType{
		MaterialType: input.MaterialType,
		GlobalRate:   input.BaseRate,
		LastUpdated:  time.Now(),
	}
	if err := c.DB.Create(&material).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add material"})
	}

	return ctx.JSON(fiber.Map{"success": true, "material": material})
}

// GetGlobalRates lists all materials with their base rates.
func (c *RateController) GetGlobalRates(ctx *fiber.Ctx) error {
	var materials []Models.ScrapType
	if err := c.DB.Order("material_type ASC").Find(&materials).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve materials"})
	}

	return ctx.JSON(fiber.Map{"success": true, "materials": materials})
}

type UpdateGlobalRateInput struct {
	ScrapTypeID   uint            `json:"scrap_type_id" validate:"required"`
	NewGlobalRate decimal.Decimal `json:"new_global_rate" validate:"required"`
}

// UpdateGlobalRate changes a material's base rate and cascades to every
// vendor rate for that material, preserving each vendor's offset.
func (c *RateController) UpdateGlobalRate(ctx *fiber.Ctx) error {
	var input UpdateGlobalRateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "scrap_type_id and new_global_rate required"})
	}

	var material Models.ScrapType
	if result := c.DB.First(&material, input.ScrapTypeID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "scrap_type not found"})
	}

	var affected []Models.VendorRate
	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&material).Updates(map[string]interface{}{
			"global_rate":  input.NewGlobalRate,
			"last_updated": time.Now(),
		}).Error; err != nil {
			return err
		}

		// Bulk rewrite: new vendor rate = new global + stored offset.
		if err := tx.Model(&Models.VendorRate{}).
			Where("scrap_type_id = ?", input.ScrapTypeID).
			Update("vendor_rate", gorm.Expr("rate_offset + ?", input.NewGlobalRate)).Error; err != nil {
			return err
		}

		return tx.Where("scrap_type_id = ?", input.ScrapTypeID).Find(&affected).Error
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update global rate"})
	}

	material.GlobalRate = input.NewGlobalRate
	return ctx.JSON(fiber.Map{
		"success":          true,
		"updated_global":   material,
		"affected_vendors": affected,
	})
}

type SetVendorRateInput struct {
	VendorID    uint            `json:"vendor_id" validate:"required"`
	ScrapTypeID uint            `json:"scrap_type_id" validate:"required"`
	VendorRate  decimal.Decimal `json:"vendor_rate" validate:"required"`
}

// SetVendorRate creates or replaces a vendor's rate for one material. The
// offset is derived from the current global rate so later global updates
// keep this vendor's margin.
func (c *RateController) SetVendorRate(ctx *fiber.Ctx) error {
	var input SetVendorRateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "vendor_id, scrap_type_id, vendor_rate required"})
	}

	var material Models.ScrapType
	if result := c.DB.First(&material, input.ScrapTypeID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "material not found"})
	}

	rate := Models.VendorRate{
		VendorID:    input.VendorID,
		ScrapTypeID: input.ScrapTypeID,
		VendorRate:  input.VendorRate,
		RateOffset:  input.VendorRate.Sub(material.GlobalRate),
	}
	err := c.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vendor_id"}, {Name: "scrap_type_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vendor_rate", "rate_offset"}),
	}).Create(&rate).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to set vendor rate"})
	}

	return ctx.JSON(fiber.Map{"success": true, "vendor_rate": rate})
}

// VendorsWithRates returns every vendor with its rate card.
func (c *RateController) VendorsWithRates(ctx *fiber.Ctx) error {
	type rateRow struct {
		VendorID     uint            `json:"vendor_id"`
		VendorName   string          `json:"vendor_name"`
		VendorType   string          `json:"vendor_type"`
		RateID       uint            `json:"rate_id"`
		ScrapTypeID  uint            `json:"scrap_type_id"`
		MaterialType string          `json:"scrap_type"`
		VendorRate   decimal.Decimal `json:"vendor_rate"`
		RateOffset   decimal.Decimal `json:"rate_offset"`
	}

	var rows []rateRow
	err := c.DB.Model(&Models.Vendor{}).
		Joins("LEFT JOIN vendor_rates vr ON vr.vendor_id = vendors.id AND vr.deleted_at IS NULL").
		Joins("LEFT JOIN scrap_types st ON st.id = vr.scrap_type_id").
		Select("vendors.id AS vendor_id, vendors.name AS vendor_name, vendors.vendor_type, vr.id AS rate_id, vr.scrap_type_id, st.material_type, vr.vendor_rate, vr.rate_offset").
		Order("vendors.name ASC, st.material_type ASC").
		Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve vendors"})
	}

	type vendorRates struct {
		VendorID   uint      `json:"vendor_id"`
		VendorName string    `json:"vendor_name"`
		Type       string    `json:"type"`
		Rates      []rateRow `json:"rates"`
	}
	grouped := map[uint]*vendorRates{}
	order := []uint{}
	for _, r := range rows {
		v, ok := grouped[r.VendorID]
		if !ok {
			v = &vendorRates{VendorID: r.VendorID, VendorName: r.VendorName, Type: r.VendorType, Rates: []rateRow{}}
			grouped[r.VendorID] = v
			order = append(order, r.VendorID)
		}
		if r.ScrapTypeID != 0 {
			v.Rates = append(v.Rates, r)
		}
	}

	vendors := make([]vendorRates, 0, len(order))
	for _, id := range order {
		vendors = append(vendors, *grouped[id])
	}

	return ctx.JSON(fiber.Map{"success": true, "vendors": vendors})
}

// DeleteMaterial removes a scrap type and every vendor rate referencing it.
func (c *RateController) DeleteMaterial(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("scrap_type_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid material ID"})
	}

	var material Models.ScrapType
	if result := c.DB.First(&material, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
	}

	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scrap_type_id = ?", id).Delete(&Models.VendorRate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&material).Error
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete material"})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Material deleted"})
}
