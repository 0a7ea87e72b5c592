package Controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ScrapBook/Ledger"
	"ScrapBook/Models"
)

// KabadiwalaController handles scrap-dealer purchases, payments and the
// persisted daily balance snapshots.
type KabadiwalaController struct {
	DB *gorm.DB
}

// NewKabadiwalaController creates a new KabadiwalaController
func NewKabadiwalaController(db *gorm.DB) *KabadiwalaController {
	return &KabadiwalaController{DB: db}
}

type ScrapLineInput struct {
	ScrapTypeID uint            `json:"scrap_type_id" validate:"required"`
	Weight      decimal.Decimal `json:"weight" validate:"required"`
}

type AddKabadiwalaInput struct {
	CompanyID     uint             `json:"company_id" validate:"required"`
	GodownID      uint             `json:"godown_id" validate:"required"`
	VendorID      uint             `json:"vendor_id" validate:"required"`
	Scraps        []ScrapLineInput `json:"scraps" validate:"required,min=1,dive"`
	PaymentAmount decimal.Decimal  `json:"payment_amount"`
	PaymentMode   string           `json:"payment_mode"`
	AccountID     uint             `json:"account_id"`
	Note          string           `json:"note"`
	Date          string           `json:"date"`
}

// AddPurchase records a multi-line purchase. One missing vendor rate aborts
// the whole batch; nothing is written. The snapshot recompute runs in the
// same transaction, forward to today when the entry is back-dated.
func (c *KabadiwalaController) AddPurchase(ctx *fiber.Ctx) error {
	var input AddKabadiwalaInput
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
	mode := input.PaymentMode
	if mode == "" {
		mode = "cash"
	}

	var record Models.KabadiwalaRecord
	var balance Ledger.DayBalance

	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		record = Models.KabadiwalaRecord{
			CompanyID:      input.CompanyID,
			GodownID:       input.GodownID,
			VendorID:       input.VendorID,
			KabadiwalaName: vendor.Name,
			Date:           date,
			TotalAmount:    decimal.Zero,
			PaymentMode:    mode,
			PaymentStatus:  Models.PaymentStatusPending,
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

			scrap := Models.KabadiwalaScrap{
				KabadiwalaID: record.ID,
				ScrapTypeID:  line.ScrapTypeID,
				Material:     material,
				Weight:       line.Weight,
				Rate:         rate,
				Amount:       amount,
			}
			if err := tx.Create(&scrap).Error; err != nil {
				return err
			}
		}

		status := Models.PaymentStatusPending
		if input.PaymentAmount.GreaterThanOrEqual(total) && total.IsPositive() {
			status = Models.PaymentStatusPaid
		} else if input.PaymentAmount.IsPositive() {
			status = Models.PaymentStatusPartial
		}
		if err := tx.Model(&record).Updates(map[string]interface{}{
			"total_amount":   total,
			"payment_status": status,
		}).Error; err != nil {
			return err
		}
		record.TotalAmount = total
		record.PaymentStatus = status

		if input.PaymentAmount.IsPositive() {
			payment := Models.KabadiwalaPayment{
				KabadiwalaID: record.ID,
				Amount:       input.PaymentAmount,
				Mode:         mode,
				Note:         input.Note,
				Date:         date,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			if input.AccountID != 0 {
				reference := fmt.Sprintf("Payment to %s", vendor.Name)
				if err := debitAccount(tx, scope, input.AccountID, input.PaymentAmount, "kabadiwala payment", reference); err != nil {
					return err
				}
			}
		}

		if date < Ledger.Today() {
			return Ledger.RecomputeFrom(tx, scope, input.VendorID, date)
		}
		var err error
		balance, err = Ledger.UpsertDailyBalance(tx, scope, input.VendorID, date)
		return err
	})

	if txErr != nil {
		var rateErr *Ledger.RateNotFoundError
		if errors.As(txErr, &rateErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Vendor rate missing for scrap_type_id %d", rateErr.ScrapTypeID),
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record purchase"})
	}

	return ctx.JSON(fiber.Map{
		"success":      true,
		"kabadi_id":    record.ID,
		"total_amount": record.TotalAmount,
		"balance":      balance,
		"message":      "Kabadiwala purchase recorded successfully",
	})
}

// ListRecords returns purchase records for the manager view with item
// counts, weights and amounts paid.
func (c *KabadiwalaController) ListRecords(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var records []Models.KabadiwalaRecord
	result := c.DB.Preload("Scraps").
		Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID).
		Order("date DESC").Find(&records)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve records"})
	}

	type recordRow struct {
		Models.KabadiwalaRecord
		ItemsCount  int             `json:"items_count"`
		TotalWeight decimal.Decimal `json:"total_weight"`
		TotalPaid   decimal.Decimal `json:"total_paid"`
	}
	rows := make([]recordRow, 0, len(records))
	for _, r := range records {
		row := recordRow{KabadiwalaRecord: r, ItemsCount: len(r.Scraps), TotalWeight: decimal.Zero}
		for _, s := range r.Scraps {
			row.TotalWeight = row.TotalWeight.Add(s.Weight)
		}
		paid, err := sumPayments(c.DB, r.ID)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve records"})
		}
		row.TotalPaid = paid
		rows = append(rows, row)
	}

	return ctx.JSON(fiber.Map{"success": true, "kabadiwala": rows})
}

func sumPayments(db *gorm.DB, recordID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := db.Model(&Models.KabadiwalaPayment{}).
		Where("kabadiwala_id = ?", recordID).
		Select("COALESCE(SUM(amount),0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// OwnerList returns a flat material-level listing, optionally for one date.
func (c *KabadiwalaController) OwnerList(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	type entry struct {
		Date          string          `json:"date"`
		KabadiName    string          `json:"kabadi_name"`
		Material      string          `json:"material"`
		Weight        decimal.Decimal `json:"weight"`
		Rate          decimal.Decimal `json:"rate"`
		Amount        decimal.Decimal `json:"amount"`
		PaymentStatus string          `json:"payment_status"`
	}

	query := c.DB.Model(&Models.KabadiwalaScrap{}).
		Joins("JOIN kabadiwala_records kr ON kr.id = kabadiwala_scraps.kabadiwala_id").
		Where("kr.company_id = ? AND kr.godown_id = ? AND kr.deleted_at IS NULL", scope.CompanyID, scope.GodownID).
		Select("kr.date, kr.kabadiwala_name AS kabadi_name, kabadiwala_scraps.material, kabadiwala_scraps.weight, kabadiwala_scraps.rate, kabadiwala_scraps.amount, kr.payment_status").
		Order("kr.date DESC")
	if date := ctx.Query("date"); date != "" {
		query = query.Where("kr.date = ?", date)
	}

	var entries []entry
	if err := query.Scan(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve entries"})
	}

	return ctx.JSON(fiber.Map{"success": true, "entries": entries})
}

// DailyBalances aggregates every kabadiwala vendor live for the requested
// date. Reads never trust the snapshot table, so back-dated entries cannot
// serve stale numbers here; the snapshots exist for the owner day-book and
// are refreshed on write and by the nightly job.
func (c *KabadiwalaController) DailyBalances(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	date := ctx.Query("date")
	if date == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date is required"})
	}

	var vendors []Models.Vendor
	if err := c.DB.Where("vendor_type = ?", Models.VendorTypeKabadiwala).Order("name ASC").Find(&vendors).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load vendors"})
	}

	type balanceRow struct {
		VendorID        uint            `json:"vendor_id"`
		VendorName      string          `json:"vendor_name"`
		PreviousBalance decimal.Decimal `json:"previous_balance"`
		TodayPurchase   decimal.Decimal `json:"today_purchase"`
		TodayPaid       decimal.Decimal `json:"today_paid"`
		Balance         decimal.Decimal `json:"balance"`
	}

	balances := make([]balanceRow, 0, len(vendors))
	for _, v := range vendors {
		agg, err := Ledger.Aggregate(c.DB, scope, v.ID, date)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balances"})
		}
		previous := agg.PrevPaid.Sub(agg.PrevPurchase).Round(2)
		balances = append(balances, balanceRow{
			VendorID:        v.ID,
			VendorName:      v.Name,
			PreviousBalance: previous,
			TodayPurchase:   agg.TodayPurchase,
			TodayPaid:       agg.TodayPaid,
			Balance:         previous.Sub(agg.TodayPurchase).Add(agg.TodayPaid).Round(2),
		})
	}

	return ctx.JSON(fiber.Map{"success": true, "balances": balances})
}

type KabadiwalaWithdrawalInput struct {
	CompanyID    uint            `json:"company_id" validate:"required"`
	GodownID     uint            `json:"godown_id" validate:"required"`
	VendorID     uint            `json:"vendor_id" validate:"required"`
	KabadiwalaID uint            `json:"kabadiwala_id"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	Mode         string          `json:"mode"`
	Note         string          `json:"note"`
	AccountID    uint            `json:"account_id"`
	Date         string          `json:"date"`
}

// RecordWithdrawal registers a payment to a vendor. Without a target
// purchase a zero-amount placeholder record is created so the payment FK
// stays valid, then the snapshot is recomputed in the same transaction.
func (c *KabadiwalaController) RecordWithdrawal(ctx *fiber.Ctx) error {
	var input KabadiwalaWithdrawalInput
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

	scope := Ledger.Scope{CompanyID: input.CompanyID, GodownID: input.GodownID}
	mode := input.Mode
	if mode == "" {
		mode = "cash"
	}

	var balance Ledger.DayBalance
	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		parentID := input.KabadiwalaID
		if parentID == 0 {
			placeholder := Models.KabadiwalaRecord{
				CompanyID:      input.CompanyID,
				GodownID:       input.GodownID,
				VendorID:       input.VendorID,
				KabadiwalaName: vendor.Name,
				Date:           date,
				TotalAmount:    decimal.Zero,
				PaymentMode:    mode,
				PaymentStatus:  Models.PaymentStatusPaid,
			}
			if err := tx.Create(&placeholder).Error; err != nil {
				return err
			}
			parentID = placeholder.ID
		}

		payment := Models.KabadiwalaPayment{
			KabadiwalaID: parentID,
			Amount:       input.Amount,
			Mode:         mode,
			Note:         input.Note,
			Date:         date,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if input.AccountID != 0 {
			reference := fmt.Sprintf("Payment to %s", vendor.Name)
			if err := debitAccount(tx, scope, input.AccountID, input.Amount, "kabadiwala payment", reference); err != nil {
				return err
			}
		}

		if date < Ledger.Today() {
			return Ledger.RecomputeFrom(tx, scope, input.VendorID, date)
		}
		var err error
		balance, err = Ledger.UpsertDailyBalance(tx, scope, input.VendorID, date)
		return err
	})

	if txErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"balance": balance,
		"message": "Payment recorded and balance updated",
	})
}
