package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ScrapBook/Ledger"
	"ScrapBook/Models"
)

// AccountController handles the cash/bank ledgers purchases, expenses and
// payments draw on.
type AccountController struct {
	DB *gorm.DB
}

// NewAccountController creates a new AccountController
func NewAccountController(db *gorm.DB) *AccountController {
	return &AccountController{DB: db}
}

// debitAccount writes the ledger entry and decrements the account balance
// inside the caller's transaction. The account row is locked so two
// concurrent debits cannot both read the same starting balance.
func debitAccount(tx *gorm.DB, scope Ledger.Scope, accountID uint, amount decimal.Decimal, category, reference string) error {
	var account Models.Account
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, accountID).Error; err != nil {
		return err
	}

	entry := Models.AccountTransaction{
		CompanyID: scope.CompanyID,
		GodownID:  scope.GodownID,
		AccountID: accountID,
		Type:      "debit",
		Amount:    amount,
		Category:  category,
		Reference: reference,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	return tx.Model(&account).
		Update("balance", account.Balance.Sub(amount)).Error
}

type CreateAccountInput struct {
	CompanyID   uint            `json:"company_id" validate:"required"`
	GodownID    uint            `json:"godown_id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	AccountType string          `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
}

// CreateAccount registers a cash or bank account.
func (c *AccountController) CreateAccount(ctx *fiber.Ctx) error {
	var input CreateAccountInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	account := Models.Account{
		CompanyID:   input.CompanyID,
		GodownID:    input.GodownID,
		Name:        input.Name,
		AccountType: input.AccountType,
		Balance:     input.Balance,
	}
	if err := c.DB.Create(&account).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "account": account})
}

// GetAccounts lists accounts for a scope.
func (c *AccountController) GetAccounts(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var accounts []Models.Account
	result := c.DB.Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID).
		Order("name ASC").Find(&accounts)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve accounts"})
	}

	return ctx.JSON(fiber.Map{"success": true, "accounts": accounts})
}

// GetTransactions lists ledger entries for one account, newest first.
func (c *AccountController) GetTransactions(ctx *fiber.Ctx) error {
	accountID, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	var account Models.Account
	if result := c.DB.First(&account, accountID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}

	var transactions []Models.AccountTransaction
	result := c.DB.Where("account_id = ?", accountID).Order("created_at DESC").Find(&transactions)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transactions"})
	}

	return ctx.JSON(fiber.Map{"success": true, "account": account, "transactions": transactions})
}
