package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ScrapBook/Models"
)

// VendorController handles vendor-related API endpoints
type VendorController struct {
	DB *gorm.DB
}

// NewVendorController creates a new VendorController
func NewVendorController(db *gorm.DB) *VendorController {
	return &VendorController{DB: db}
}

// GetVendors retrieves all vendors, optionally filtered by type
func (c *VendorController) GetVendors(ctx *fiber.Ctx) error {
	query := c.DB.Order("name ASC")
	if vendorType := ctx.Query("vendor_type"); vendorType != "" {
		query = query.Where("vendor_type = ?", vendorType)
	}

	var vendors []Models.Vendor
	if result := query.Find(&vendors); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve vendors"})
	}

	return ctx.JSON(fiber.Map{"vendors": vendors})
}

// GetVendor retrieves a single vendor by ID
func (c *VendorController) GetVendor(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	if result := c.DB.Preload("Rates").First(&vendor, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	return ctx.JSON(vendor)
}

type CreateVendorInput struct {
	Name       string `json:"name" validate:"required"`
	VendorType string `json:"vendor_type" validate:"required,oneof=kabadiwala feriwala"`
	Contact    string `json:"contact"`
}

// CreateVendor creates a new vendor
func (c *VendorController) CreateVendor(ctx *fiber.Ctx) error {
	var input CreateVendorInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and vendor_type required"})
	}

	vendor := Models.Vendor{
		Name:       input.Name,
		VendorType: input.VendorType,
		Contact:    input.Contact,
	}
	if result := c.DB.Create(&vendor); result.Error != nil {
		if strings.Contains(result.Error.Error(), "UNIQUE constraint") ||
			strings.Contains(result.Error.Error(), "unique constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A vendor with this name already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create vendor"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "vendor": vendor})
}

// UpdateVendor updates an existing vendor's name and contact
func (c *VendorController) UpdateVendor(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	if result := c.DB.First(&vendor, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	var input CreateVendorInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Contact != "" {
		updates["contact"] = input.Contact
	}
	if len(updates) > 0 {
		if err := c.DB.Model(&vendor).Updates(updates).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vendor"})
		}
	}

	return ctx.JSON(vendor)
}

// DeleteVendor removes a vendor and its rate assignments. Vendors with
// purchase or payment history are refused; deleting them would orphan the
// ledger rows their balances are derived from.
func (c *VendorController) DeleteVendor(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	if result := c.DB.First(&vendor, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	var history int64
	c.DB.Model(&Models.KabadiwalaRecord{}).Where("vendor_id = ?", id).Count(&history)
	if history == 0 {
		c.DB.Model(&Models.FeriwalaRecord{}).Where("vendor_id = ?", id).Count(&history)
	}
	if history == 0 {
		c.DB.Model(&Models.FeriwalaWithdrawal{}).Where("vendor_id = ?", id).Count(&history)
	}
	if history > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Vendor has ledger history and cannot be deleted",
		})
	}

	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vendor_id = ?", id).Delete(&Models.VendorRate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&vendor).Error
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete vendor"})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Vendor deleted"})
}
