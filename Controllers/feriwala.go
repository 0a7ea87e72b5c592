package Controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ScrapBook/Ledger"
	"ScrapBook/Models"
)

// FeriwalaController handles street-collector purchases and withdrawals.
// Feriwala balances are computed on every read, never snapshotted.
type FeriwalaController struct {
	DB *gorm.DB
}

// NewFeriwalaController creates a new FeriwalaController
func NewFeriwalaController(db *gorm.DB) *FeriwalaController {
	return &FeriwalaController{DB: db}
}

type AddFeriwalaInput struct {
	CompanyID uint             `json:"company_id" validate:"required"`
	GodownID  uint             `json:"godown_id" validate:"required"`
	VendorID  uint             `json:"vendor_id" validate:"required"`
	AccountID uint             `json:"account_id" validate:"required"`
	Scraps    []ScrapLineInput `json:"scraps" validate:"required,min=1,dive"`
	Date      string           `json:"date"`
}

// AddPurchase records a feriwala purchase, paid out of the given account
// immediately. A missing vendor rate aborts the whole batch.
func (c *FeriwalaController) AddPurchase(ctx *fiber.Ctx) error {
	var input AddFeriwalaInput
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

	var vendor Models.Vendor
	if result := c.DB.First(&vendor, input.VendorID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	scope := Ledger.Scope{CompanyID: input.CompanyID, GodownID: input.GodownID}
	var record Models.FeriwalaRecord

	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		record = Models.FeriwalaRecord{
			CompanyID:   input.CompanyID,
			GodownID:    input.GodownID,
			VendorID:    input.VendorID,
			Date:        date,
			TotalAmount: decimal.Zero,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range input.Scraps {
			rate, material, err := Ledger.LookupVendorRate(tx, input.VendorID, line.ScrapTypeID)
			if err != nil {
				return err
			}
			amount := Ledger.LineAmount(line.Weight, rate)
			total = total.Add(amount)

			scrap := Models.FeriwalaScrap{
				FeriwalaID:  record.ID,
				ScrapTypeID: line.ScrapTypeID,
				Material:    material,
				Weight:      line.Weight,
				Rate:        rate,
				Amount:      amount,
			}
			if err := tx.Create(&scrap).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&record).Update("total_amount", total).Error; err != nil {
			return err
		}
		record.TotalAmount = total

		reference := fmt.Sprintf("Purchase from %s", vendor.Name)
		return debitAccount(tx, scope, input.AccountID, total, "feriwala purchase", reference)
	})

	if txErr != nil {
		var rateErr *Ledger.RateNotFoundError
		if errors.As(txErr, &rateErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Vendor has no rate for scrap_type_id: %d", rateErr.ScrapTypeID),
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record purchase"})
	}

	return ctx.JSON(fiber.Map{
		"success":      true,
		"feriwala_id":  record.ID,
		"total_amount": record.TotalAmount,
		"vendor":       vendor.Name,
		"message":      "Feriwala purchase added successfully",
	})
}

// ListRecords returns purchases with their scrap lines, newest first.
func (c *FeriwalaController) ListRecords(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var records []Models.FeriwalaRecord
	result := c.DB.Preload("Scraps").
		Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID).
		Order("date DESC").Find(&records)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load records"})
	}

	return ctx.JSON(fiber.Map{"success": true, "records": records})
}

type FeriwalaWithdrawalInput struct {
	CompanyID uint            `json:"company_id" validate:"required"`
	GodownID  uint            `json:"godown_id" validate:"required"`
	VendorID  uint            `json:"vendor_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Date      string          `json:"date"`
	Note      string          `json:"note"`
}

// RecordWithdrawal registers a cash handout to a feriwala.
func (c *FeriwalaController) RecordWithdrawal(ctx *fiber.Ctx) error {
	var input FeriwalaWithdrawalInput
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

	var vendor Models.Vendor
	if result := c.DB.First(&vendor, input.VendorID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	withdrawal := Models.FeriwalaWithdrawal{
		CompanyID: input.CompanyID,
		GodownID:  input.GodownID,
		VendorID:  input.VendorID,
		Amount:    input.Amount,
		Date:      date,
		Note:      input.Note,
	}
	if err := c.DB.Create(&withdrawal).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record withdrawal"})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Withdrawal recorded"})
}

// Balance returns one feriwala's balance computed on the fly.
func (c *FeriwalaController) Balance(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	vendorID, err := strconv.Atoi(ctx.Query("vendor_id"))
	if err != nil || vendorID <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "vendor_id is required"})
	}

	balance, err := Ledger.FeriwalaBalance(c.DB, scope, uint(vendorID), ctx.Query("date"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balance"})
	}

	return ctx.JSON(fiber.Map{"success": true, "balance": balance})
}

// Balances returns every feriwala's balance, one aggregate per vendor.
func (c *FeriwalaController) Balances(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	balances, err := Ledger.FeriwalaBalances(c.DB, scope, ctx.Query("date"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load balances"})
	}

	return ctx.JSON(fiber.Map{"success": true, "balances": balances})
}
