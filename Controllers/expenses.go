package Controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ScrapBook/Ledger"
	"ScrapBook/Models"
)

// ExpenseController handles general outgoing payments.
type ExpenseController struct {
	DB *gorm.DB
}

// NewExpenseController creates a new ExpenseController
func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db}
}

type CreateExpenseInput struct {
	CompanyID   uint            `json:"company_id" validate:"required"`
	GodownID    uint            `json:"godown_id" validate:"required"`
	AccountID   uint            `json:"account_id" validate:"required"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentMode string          `json:"payment_mode"`
	PaidTo      string          `json:"paid_to" validate:"required"`
	CreatedBy   string          `json:"created_by"`
	Date        string          `json:"date"`
}

// CreateExpense records an expense, debits the paying account, and for
// Labour-category expenses also writes a salary withdrawal for the worker.
func (c *ExpenseController) CreateExpense(ctx *fiber.Ctx) error {
	var input CreateExpenseInput
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

	category := input.Category
	if category == "" {
		category = "General"
	}
	description := input.Description
	if description == "" {
		description = "No description"
	}
	mode := input.PaymentMode
	if mode == "" {
		mode = "cash"
	}

	scope := Ledger.Scope{CompanyID: input.CompanyID, GodownID: input.GodownID}
	var expense Models.Expense

	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		expense = Models.Expense{
			CompanyID:   input.CompanyID,
			GodownID:    input.GodownID,
			Date:        date,
			Category:    category,
			Description: description,
			Amount:      input.Amount,
			PaymentMode: mode,
			AccountID:   input.AccountID,
			PaidTo:      input.PaidTo,
			CreatedBy:   input.CreatedBy,
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}

		// Labour expenses double as salary withdrawals for the worker.
		if category == "Labour" {
			var labour Models.Labour
			err := tx.Where("LOWER(name) = LOWER(?) AND company_id = ? AND godown_id = ?",
				input.PaidTo, input.CompanyID, input.GodownID).First(&labour).Error
			if err == nil {
				withdrawal := Models.LabourWithdrawal{
					CompanyID: input.CompanyID,
					GodownID:  input.GodownID,
					LabourID:  labour.ID,
					Date:      date,
					Amount:    input.Amount,
					Mode:      mode,
					Type:      "salary",
				}
				if err := tx.Create(&withdrawal).Error; err != nil {
					return err
				}
			}
		}

		reference := fmt.Sprintf("Paid to %s (%s)", input.PaidTo, description)
		return debitAccount(tx, scope, input.AccountID, input.Amount, "expense", reference)
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record expense"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"expense_id": expense.ID,
		"message":    fmt.Sprintf("Expense recorded successfully for %s", input.PaidTo),
	})
}

// ListExpenses returns expenses for a scope, optionally for one exact date.
func (c *ExpenseController) ListExpenses(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	query := c.DB.Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID)
	if date := ctx.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var expenses []Models.Expense
	if err := query.Order("date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve expenses"})
	}

	return ctx.JSON(fiber.Map{"success": true, "expenses": expenses})
}

// ExpensesByRange returns expenses within an inclusive date range.
func (c *ExpenseController) ExpensesByRange(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	start := ctx.Query("start_date", "2000-01-01")
	end := ctx.Query("end_date", "2100-12-31")

	var expenses []Models.Expense
	err = c.DB.Where("company_id = ? AND godown_id = ? AND date BETWEEN ? AND ?",
		scope.CompanyID, scope.GodownID, start, end).
		Order("date DESC").Find(&expenses).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve expenses"})
	}

	return ctx.JSON(fiber.Map{"success": true, "expenses": expenses})
}

// ExpenseSummary totals expenses by payment mode for dashboard cards.
func (c *ExpenseController) ExpenseSummary(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	start := ctx.Query("start_date", "2000-01-01")
	end := ctx.Query("end_date", "2100-12-31")

	type summaryRow struct {
		TotalExpenses int64           `json:"total_expenses"`
		TotalAmount   decimal.Decimal `json:"total_amount"`
		TotalCash     decimal.Decimal `json:"total_cash"`
		TotalUpi      decimal.Decimal `json:"total_upi"`
		TotalBank     decimal.Decimal `json:"total_bank"`
	}
	var summary summaryRow
	row := c.DB.Model(&Models.Expense{}).
		Where("company_id = ? AND godown_id = ? AND date BETWEEN ? AND ?",
			scope.CompanyID, scope.GodownID, start, end).
		Select(`COUNT(*),
			COALESCE(SUM(amount),0),
			COALESCE(SUM(CASE WHEN LOWER(payment_mode) = 'cash' THEN amount ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN LOWER(payment_mode) = 'upi' THEN amount ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN LOWER(payment_mode) IN ('bank transfer','bank') THEN amount ELSE 0 END),0)`).
		Row()
	if err := row.Scan(&summary.TotalExpenses, &summary.TotalAmount, &summary.TotalCash, &summary.TotalUpi, &summary.TotalBank); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}

	return ctx.JSON(fiber.Map{"success": true, "summary": summary})
}

// DeleteExpense removes an expense entry.
func (c *ExpenseController) DeleteExpense(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	var expense Models.Expense
	if result := c.DB.First(&expense, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Expense not found"})
	}

	if err := c.DB.Delete(&expense).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete expense"})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Expense deleted successfully"})
}
