package FiberConfig

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"ScrapBook/Controllers"
	"ScrapBook/Models"
	"ScrapBook/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	vendorController := Controllers.NewVendorController(db)
	rateController := Controllers.NewRateController(db)
	kabadiwalaController := Controllers.NewKabadiwalaController(db)
	feriwalaController := Controllers.NewFeriwalaController(db)
	accountController := Controllers.NewAccountController(db)
	expenseController := Controllers.NewExpenseController(db)
	labourController := Controllers.NewLabourController(db)
	truckController := Controllers.NewTruckController(db)
	maalInController := Controllers.NewMaalInController(db)
	maalOutController := Controllers.NewMaalOutController(db)
	analyticsController := Controllers.NewAnalyticsController(db)

	// API group
	api := app.Group("/api")

	// Vendor routes
	vendors := api.Group("/vendors", middleware.Verify(1))
	vendors.Get("/", vendorController.GetVendors)
	vendors.Post("/", vendorController.CreateVendor)
	vendors.Get("/with-rates", rateController.VendorsWithRates)
	vendors.Get("/:id", vendorController.GetVendor)
	vendors.Put("/:id", vendorController.UpdateVendor)
	vendors.Delete("/:id", vendorController.DeleteVendor)

	// Rate routes
	rates := api.Group("/rates", middleware.Verify(1))
	rates.Get("/", rateController.GetGlobalRates)
	rates.Post("/materials", rateController.AddMaterial)
	rates.Delete("/materials/:scrap_type_id", middleware.Verify(2), rateController.DeleteMaterial)
	rates.Put("/global", middleware.Verify(2), rateController.UpdateGlobalRate)
	rates.Post("/vendor", rateController.SetVendorRate)
	rates.Put("/vendor", rateController.SetVendorRate)

	// Kabadiwala routes
	kabadiwala := api.Group("/kabadiwala", middleware.Verify(1))
	kabadiwala.Post("/purchase", kabadiwalaController.AddPurchase)
	kabadiwala.Get("/records", kabadiwalaController.ListRecords)
	kabadiwala.Get("/owner-records", middleware.Verify(2), kabadiwalaController.OwnerList)
	kabadiwala.Get("/balances", kabadiwalaController.DailyBalances)
	kabadiwala.Post("/withdraw", kabadiwalaController.RecordWithdrawal)

	// Feriwala routes
	feriwala := api.Group("/feriwala", middleware.Verify(1))
	feriwala.Post("/purchase", feriwalaController.AddPurchase)
	feriwala.Get("/records", feriwalaController.ListRecords)
	feriwala.Post("/withdraw", feriwalaController.RecordWithdrawal)
	feriwala.Get("/balance", feriwalaController.Balance)
	feriwala.Get("/balances", feriwalaController.Balances)

	// Account routes
	accounts := api.Group("/accounts", middleware.Verify(1))
	accounts.Get("/", accountController.GetAccounts)
	accounts.Post("/", middleware.Verify(2), accountController.CreateAccount)
	accounts.Get("/:id/transactions", accountController.GetTransactions)

	// Expense routes
	expenses := api.Group("/expenses", middleware.Verify(1))
	expenses.Post("/", expenseController.CreateExpense)
	expenses.Get("/", expenseController.ListExpenses)
	expenses.Get("/range", expenseController.ExpensesByRange)
	expenses.Get("/summary", expenseController.ExpenseSummary)
	expenses.Delete("/:id", middleware.Verify(2), expenseController.DeleteExpense)

	// Labour routes
	labour := api.Group("/labour", middleware.Verify(1))
	labour.Post("/", labourController.AddLabour)
	labour.Get("/", labourController.GetLabours)
	labour.Post("/attendance", labourController.MarkAttendance)
	labour.Get("/attendance", labourController.AttendanceByDate)
	labour.Post("/withdraw", labourController.Withdraw)
	labour.Get("/salary/summary", labourController.SalarySummary)
	labour.Delete("/:id", middleware.Verify(2), labourController.DeleteLabour)

	// Truck routes
	trucks := api.Group("/trucks", middleware.Verify(1))
	trucks.Post("/", truckController.CreateTransaction)
	trucks.Get("/", truckController.GetTransactions)
	trucks.Put("/:id", truckController.UpdateTransaction)
	trucks.Delete("/:id", truckController.DeleteTransaction)

	// Maal in routes
	maalIn := api.Group("/maal-in", middleware.Verify(1))
	maalIn.Post("/", maalInController.CreateEntry)
	maalIn.Post("/:id/items", maalInController.AddItems)
	maalIn.Get("/", maalInController.ListEntries)
	maalIn.Get("/:id", maalInController.GetEntry)
	maalIn.Put("/:id/approve", middleware.Verify(2), maalInController.Approve)

	// Maal out routes
	maalOut := api.Group("/maal-out", middleware.Verify(1))
	maalOut.Post("/", maalOutController.AddSale)
	maalOut.Get("/", maalOutController.ListSales)
	maalOut.Post("/payments", maalOutController.AddPayment)
	maalOut.Get("/payments", maalOutController.ListPayments)
	maalOut.Put("/payments/:id", maalOutController.UpdatePayment)
	maalOut.Delete("/payments/:id", middleware.Verify(2), maalOutController.DeletePayment)
	maalOut.Put("/:id", maalOutController.UpdateSale)
	maalOut.Delete("/:id", middleware.Verify(2), maalOutController.DeleteSale)

	// Analytics routes
	analytics := api.Group("/analytics", middleware.Verify(2))
	analytics.Get("/summary", analyticsController.Summary)
	analytics.Get("/monthly", analyticsController.MonthlyTransactions)
	analytics.Get("/top-vendors", analyticsController.TopVendors)
	analytics.Get("/recent-activity", analyticsController.RecentActivity)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*", // Allow all origins
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, Models.DB)

	app.Post("/api/RegisterUser", middleware.Verify(4), Controllers.RegisterUser)
	app.Patch("/api/UpdateUser/:id", middleware.Verify(4), Controllers.UpdateUser)
	app.Get("/api/FetchUsers", middleware.Verify(4), Controllers.FetchUsers)
	app.Delete("/api/DeleteUser/:id", middleware.Verify(4), Controllers.DeleteUser)
	app.Post("/api/Login", Controllers.Login)
	app.Get("/api/validate-token", Controllers.ValidateToken)
	app.Use("/api/User", Controllers.User)
	app.Use("/api/Logout", Controllers.Logout)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
