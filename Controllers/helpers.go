package Controllers

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"ScrapBook/Ledger"
)

var validate = validator.New()

// scopeFromQuery reads the company/godown scope every ledger endpoint is
// keyed by.
func scopeFromQuery(ctx *fiber.Ctx) (Ledger.Scope, error) {
	companyID, err := strconv.Atoi(ctx.Query("company_id"))
	if err != nil || companyID <= 0 {
		return Ledger.Scope{}, fiber.NewError(fiber.StatusBadRequest, "company_id is required")
	}
	godownID, err := strconv.Atoi(ctx.Query("godown_id"))
	if err != nil || godownID <= 0 {
		return Ledger.Scope{}, fiber.NewError(fiber.StatusBadRequest, "godown_id is required")
	}
	return Ledger.Scope{CompanyID: uint(companyID), GodownID: uint(godownID)}, nil
}

// normalizeDate validates a YYYY-MM-DD date, defaulting empty input to
// today.
func normalizeDate(date string) (string, error) {
	if date == "" {
		return Ledger.Today(), nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}
	return date, nil
}
