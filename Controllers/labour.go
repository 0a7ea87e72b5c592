package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ScrapBook/Ledger"
	"ScrapBook/Models"
)

// LabourController handles workers, attendance, and salary bookkeeping.
type LabourController struct {
	DB *gorm.DB
}

// NewLabourController creates a new LabourController
func NewLabourController(db *gorm.DB) *LabourController {
	return &LabourController{DB: db}
}

type AddLabourInput struct {
	CompanyID     uint            `json:"company_id" validate:"required"`
	GodownID      uint            `json:"godown_id" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Contact       string          `json:"contact"`
	Role          string          `json:"role"`
	WorkerType    string          `json:"worker_type"`
	DailyWage     decimal.Decimal `json:"daily_wage"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	PerKgRate     decimal.Decimal `json:"per_kg_rate"`
	CreatedBy     string          `json:"created_by"`
}

// AddLabour registers a worker.
func (c *LabourController) AddLabour(ctx *fiber.Ctx) error {
	var input AddLabourInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	workerType := input.WorkerType
	if workerType == "" {
		workerType = "daily"
	}

	labour := Models.Labour{
		CompanyID:     input.CompanyID,
		GodownID:      input.GodownID,
		Name:          input.Name,
		Contact:       input.Contact,
		Role:          input.Role,
		WorkerType:    workerType,
		DailyWage:     input.DailyWage,
		MonthlySalary: input.MonthlySalary,
		PerKgRate:     input.PerKgRate,
		Status:        "active",
		CreatedBy:     input.CreatedBy,
	}
	if err := c.DB.Create(&labour).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add labour"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "labour": labour})
}

// GetLabours lists workers with lifetime earned and withdrawn totals.
func (c *LabourController) GetLabours(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var labours []Models.Labour
	err = c.DB.Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID).
		Order("name ASC").Find(&labours).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve labours"})
	}

	type labourRow struct {
		Models.Labour
		TotalEarned    decimal.Decimal `json:"total_earned"`
		TotalWithdrawn decimal.Decimal `json:"total_withdrawn"`
		Balance        decimal.Decimal `json:"balance"`
	}

	rows := make([]labourRow, 0, len(labours))
	for _, labour := range labours {
		earned, err := c.sumSalaries(labour.ID)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute earnings"})
		}
		withdrawn, err := c.sumWithdrawals(labour.ID)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute withdrawals"})
		}
		rows = append(rows, labourRow{
			Labour:         labour,
			TotalEarned:    earned,
			TotalWithdrawn: withdrawn,
			Balance:        earned.Sub(withdrawn),
		})
	}

	return ctx.JSON(fiber.Map{"success": true, "labours": rows})
}

func (c *LabourController) sumSalaries(labourID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := c.DB.Model(&Models.LabourSalary{}).
		Where("labour_id = ?", labourID).
		Select("COALESCE(SUM(amount),0)").Row()
	err := row.Scan(&total)
	return total, err
}

func (c *LabourController) sumWithdrawals(labourID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := c.DB.Model(&Models.LabourWithdrawal{}).
		Where("labour_id = ?", labourID).
		Select("COALESCE(SUM(amount),0)").Row()
	err := row.Scan(&total)
	return total, err
}

type MarkAttendanceInput struct {
	CompanyID uint   `json:"company_id" validate:"required"`
	GodownID  uint   `json:"godown_id" validate:"required"`
	LabourID  uint   `json:"labour_id" validate:"required"`
	Date      string `json:"date"`
}

// MarkAttendance records a present day and accrues the daily wage.
// Only presence is stored; a second call for the same day is rejected.
func (c *LabourController) MarkAttendance(ctx *fiber.Ctx) error {
	var input MarkAttendanceInput
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

	var labour Models.Labour
	if result := c.DB.First(&labour, input.LabourID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Labour not found"})
	}

	var existing int64
	c.DB.Model(&Models.Attendance{}).
		Where("labour_id = ? AND date = ?", input.LabourID, date).Count(&existing)
	if existing > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Attendance already marked for this date"})
	}

	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		attendance := Models.Attendance{
			CompanyID: input.CompanyID,
			GodownID:  input.GodownID,
			LabourID:  input.LabourID,
			Date:      date,
			Status:    "Present",
		}
		if err := tx.Create(&attendance).Error; err != nil {
			return err
		}

		// One accrual per day even if the salary row somehow exists already.
		var salaryCount int64
		tx.Model(&Models.LabourSalary{}).
			Where("labour_id = ? AND date = ?", input.LabourID, date).Count(&salaryCount)
		if salaryCount == 0 && labour.DailyWage.IsPositive() {
			salary := Models.LabourSalary{
				CompanyID: input.CompanyID,
				GodownID:  input.GodownID,
				LabourID:  input.LabourID,
				Date:      date,
				Amount:    labour.DailyWage,
			}
			if err := tx.Create(&salary).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark attendance"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Attendance marked"})
}

// AttendanceByDate returns which workers were present on a given date.
func (c *LabourController) AttendanceByDate(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	date := ctx.Query("date")
	if date == "" {
		date = Ledger.Today()
	}

	type attendanceRow struct {
		LabourID uint   `json:"labour_id"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		Status   string `json:"status"`
	}
	var rows []attendanceRow
	err = c.DB.Table("attendances").
		Select("attendances.labour_id, labours.name, labours.role, attendances.status").
		Joins("JOIN labours ON labours.id = attendances.labour_id").
		Where("attendances.company_id = ? AND attendances.godown_id = ? AND attendances.date = ? AND attendances.deleted_at IS NULL",
			scope.CompanyID, scope.GodownID, date).
		Order("labours.name ASC").
		Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve attendance"})
	}

	return ctx.JSON(fiber.Map{"success": true, "date": date, "attendance": rows})
}

type LabourWithdrawInput struct {
	CompanyID uint            `json:"company_id" validate:"required"`
	GodownID  uint            `json:"godown_id" validate:"required"`
	LabourID  uint            `json:"labour_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Mode      string          `json:"mode"`
	AccountID uint            `json:"account_id"`
	Date      string          `json:"date"`
}

// Withdraw pays out salary to a worker, optionally debiting an account.
// Overdrawing is allowed; the balance simply goes negative.
func (c *LabourController) Withdraw(ctx *fiber.Ctx) error {
	var input LabourWithdrawInput
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

	var labour Models.Labour
	if result := c.DB.First(&labour, input.LabourID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Labour not found"})
	}

	mode := input.Mode
	if mode == "" {
		mode = "cash"
	}
	scope := Ledger.Scope{CompanyID: input.CompanyID, GodownID: input.GodownID}

	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		withdrawal := Models.LabourWithdrawal{
			CompanyID: input.CompanyID,
			GodownID:  input.GodownID,
			LabourID:  input.LabourID,
			Date:      date,
			Amount:    input.Amount,
			Mode:      mode,
			Type:      "salary",
		}
		if err := tx.Create(&withdrawal).Error; err != nil {
			return err
		}
		if input.AccountID != 0 {
			return debitAccount(tx, scope, input.AccountID, input.Amount, "labour_salary", "Salary paid to "+labour.Name)
		}
		return nil
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record withdrawal"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Withdrawal recorded"})
}

// SalarySummary reports per-worker days present, earned, and withdrawn
// within a date range.
func (c *LabourController) SalarySummary(ctx *fiber.Ctx) error {
	scope, err := scopeFromQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	start := ctx.Query("start_date", "2000-01-01")
	end := ctx.Query("end_date", "2100-12-31")

	var labours []Models.Labour
	err = c.DB.Where("company_id = ? AND godown_id = ?", scope.CompanyID, scope.GodownID).
		Order("name ASC").Find(&labours).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve labours"})
	}

	type summaryRow struct {
		LabourID    uint            `json:"labour_id"`
		Name        string          `json:"name"`
		DaysPresent int64           `json:"days_present"`
		Earned      decimal.Decimal `json:"earned"`
		Withdrawn   decimal.Decimal `json:"withdrawn"`
		Balance     decimal.Decimal `json:"balance"`
	}

	summaries := make([]summaryRow, 0, len(labours))
	for _, labour := range labours {
		var days int64
		c.DB.Model(&Models.Attendance{}).
			Where("labour_id = ? AND date BETWEEN ? AND ?", labour.ID, start, end).
			Count(&days)

		var earned decimal.Decimal
		row := c.DB.Model(&Models.LabourSalary{}).
			Where("labour_id = ? AND date BETWEEN ? AND ?", labour.ID, start, end).
			Select("COALESCE(SUM(amount),0)").Row()
		if err := row.Scan(&earned); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute earnings"})
		}

		var withdrawn decimal.Decimal
		row = c.DB.Model(&Models.LabourWithdrawal{}).
			Where("labour_id = ? AND date BETWEEN ? AND ?", labour.ID, start, end).
			Select("COALESCE(SUM(amount),0)").Row()
		if err := row.Scan(&withdrawn); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute withdrawals"})
		}

		summaries = append(summaries, summaryRow{
			LabourID:    labour.ID,
			Name:        labour.Name,
			DaysPresent: days,
			Earned:      earned,
			Withdrawn:   withdrawn,
			Balance:     earned.Sub(withdrawn),
		})
	}

	return ctx.JSON(fiber.Map{"success": true, "summary": summaries})
}

// DeleteLabour removes a worker and their attendance and salary history.
func (c *LabourController) DeleteLabour(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid labour ID"})
	}

	var labour Models.Labour
	if result := c.DB.First(&labour, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Labour not found"})
	}

	txErr := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("labour_id = ?", labour.ID).Delete(&Models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("labour_id = ?", labour.ID).Delete(&Models.LabourSalary{}).Error; err != nil {
			return err
		}
		if err := tx.Where("labour_id = ?", labour.ID).Delete(&Models.LabourWithdrawal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&labour).Error
	})
	if txErr != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete labour"})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Labour deleted successfully"})
}
