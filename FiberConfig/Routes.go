package FiberConfig

import (
	"os"

	"Himal/Apis"
	"Himal/Controllers"
	"Himal/Models"
	"Himal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	reportController := Controllers.NewReportController(db)
	purchaseOrderController := Controllers.NewPurchaseOrderController(db)
	transactionController := Controllers.NewTransactionController(db)
	partyController := Controllers.NewPartyController(db)
	tripController := Controllers.NewTripController(db)
	financeController := Controllers.NewFinanceController(db)
	logController := Controllers.NewLogController(db)

	api := app.Group("/api")

	// Auth
	api.Post("/Login", Controllers.Login)
	api.Get("/validate-token", Controllers.ValidateToken)
	api.Use("/Logout", Controllers.Logout)
	api.Post("/RegisterUser", middleware.Verify(4), Controllers.RegisterUser)
	api.Get("/FetchUsers", middleware.Verify(4), Controllers.FetchUsers)
	api.Patch("/UpdateUser", middleware.Verify(4), Controllers.UpdateUser)
	api.Delete("/DeleteUser", middleware.Verify(4), Controllers.DeleteUser)
	api.Post("/UpdateToken", Models.UpdateToken)

	// Parties and ledgers
	parties := api.Group("/parties", middleware.Verify(1))
	parties.Get("/", partyController.GetAll)
	parties.Get("/:id", partyController.Get)
	parties.Post("/", middleware.Verify(2), partyController.Create)
	parties.Put("/:id", middleware.Verify(2), partyController.Update)
	parties.Delete("/:id", middleware.Verify(4), partyController.Delete)
	parties.Get("/:id/ledger", middleware.Verify(3), partyController.GetLedger)
	parties.Get("/:id/ledger/export", middleware.Verify(3), partyController.ExportLedger)
	api.Get("/accounts", middleware.Verify(3), Controllers.FetchAccounts)
	api.Post("/accounts", middleware.Verify(3), Controllers.CreateAccount)

	// Fleet
	api.Get("/vehicles", middleware.Verify(1), Controllers.FetchVehicles)
	api.Post("/vehicles", middleware.Verify(2), Controllers.CreateVehicle)
	api.Put("/vehicles/:id", middleware.Verify(2), Controllers.UpdateVehicle)
	api.Delete("/vehicles/:id", middleware.Verify(4), Controllers.DeleteVehicle)
	api.Get("/drivers", middleware.Verify(1), Controllers.FetchDrivers)
	api.Post("/drivers", middleware.Verify(2), Controllers.CreateDriver)
	api.Put("/drivers/:id", middleware.Verify(2), Controllers.UpdateDriver)
	api.Delete("/drivers/:id", middleware.Verify(4), Controllers.DeleteDriver)

	// Test reports
	reports := api.Group("/reports", middleware.Verify(1))
	reports.Get("/", reportController.GetAll)
	reports.Get("/:id", reportController.Get)
	reports.Post("/", middleware.Verify(2), reportController.Create)
	reports.Put("/:id", middleware.Verify(2), reportController.Update)
	reports.Delete("/:id", middleware.Verify(3), reportController.Delete)
	reports.Post("/:id/suggest-chart", middleware.Verify(2), reportController.SuggestChart)

	// Purchase orders
	orders := api.Group("/purchase-orders", middleware.Verify(1))
	orders.Get("/", purchaseOrderController.GetAll)
	orders.Post("/compare-summary", middleware.Verify(2), purchaseOrderController.CompareSummary)
	orders.Get("/:id", purchaseOrderController.Get)
	orders.Post("/", middleware.Verify(2), purchaseOrderController.Create)
	orders.Put("/:id", middleware.Verify(2), purchaseOrderController.Update)
	orders.Delete("/:id", middleware.Verify(4), purchaseOrderController.Delete)
	orders.Get("/:id/versions", purchaseOrderController.GetVersions)

	// Transactions and vouchers
	transactions := api.Group("/transactions", middleware.Verify(3))
	transactions.Get("/", transactionController.GetAll)
	transactions.Get("/:id", transactionController.Get)
	transactions.Post("/", transactionController.Create)
	transactions.Put("/:id", transactionController.Update)
	transactions.Delete("/:id", transactionController.Delete)
	api.Post("/vouchers/rewrite", middleware.Verify(3), transactionController.RewriteVoucher)

	// Trips
	trips := api.Group("/trips", middleware.Verify(1))
	trips.Get("/", tripController.GetAll)
	trips.Get("/:id", tripController.Get)
	trips.Post("/", middleware.Verify(2), tripController.Create)
	trips.Put("/:id", middleware.Verify(2), tripController.Update)
	trips.Delete("/:id", middleware.Verify(4), tripController.Delete)
	api.Post("/trips-recalculate", middleware.Verify(3), tripController.Recalculate)

	// HR and payroll
	api.Get("/employees", middleware.Verify(2), Apis.FetchEmployees)
	api.Post("/employees", middleware.Verify(3), Apis.CreateEmployee)
	api.Put("/employees/:id", middleware.Verify(3), Apis.UpdateEmployee)
	api.Get("/attendance", middleware.Verify(2), Apis.FetchAttendance)
	api.Post("/attendance", middleware.Verify(2), Apis.RecordAttendance)
	api.Post("/attendance/import", middleware.Verify(3), Apis.ImportAttendance)
	api.Get("/payroll", middleware.Verify(3), Apis.FetchPayroll)
	api.Post("/payroll/generate", middleware.Verify(3), Apis.GeneratePayroll)
	api.Get("/payroll/export", middleware.Verify(3), Apis.ExportPayroll)
	api.Get("/payroll/bonus-preview", middleware.Verify(3), Apis.PreviewBonus)

	// Finance utilities
	api.Get("/cheques", middleware.Verify(3), financeController.GetCheques)
	api.Post("/cheques", middleware.Verify(3), financeController.CreateCheque)
	api.Put("/cheques/:id", middleware.Verify(3), financeController.UpdateCheque)
	api.Delete("/cheques/:id", middleware.Verify(4), financeController.DeleteCheque)
	api.Get("/estimates", middleware.Verify(2), financeController.GetEstimates)
	api.Post("/estimates", middleware.Verify(2), financeController.CreateEstimate)
	api.Delete("/estimates/:id", middleware.Verify(3), financeController.DeleteEstimate)
	api.Get("/tds", middleware.Verify(3), financeController.GetTDSRecords)
	api.Post("/tds", middleware.Verify(3), financeController.CreateTDSRecord)

	// Analytics
	analytics := api.Group("/analytics", middleware.Verify(3))
	analytics.Get("/lead-times", Apis.FetchLeadTimeStats)
	analytics.Get("/monthly", Apis.FetchMonthlyTotals)
	api.Get("/stats/widget-data", middleware.Verify(1), Apis.FetchDashboard)

	// Documents
	api.Post("/documents/:kind/:id", middleware.Verify(2), Controllers.UploadDocument)
	api.Get("/documents/:kind/:id", middleware.Verify(1), Controllers.ListDocuments)
	api.Delete("/documents/:kind/:name", middleware.Verify(3), Controllers.DeleteDocument)

	// Logs
	api.Get("/logs", middleware.Verify(4), logController.GetLogs)
	api.Get("/logs/stats", middleware.Verify(4), logController.GetLogStats)
	api.Delete("/logs", middleware.Verify(4), logController.PurgeLogs)
}

func FiberConfig() {
	engine := html.New("./Templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, Models.DB)

	app.Static("/PartyDocuments", "PartyDocuments/")
	app.Static("/VehicleDocuments", "VehicleDocuments/")
	app.Static("/Thumbnails", "Thumbnails/")

	// Print views
	app.Get("/print/trip/:id", middleware.Verify(1), Controllers.RenderTripSheet)
	app.Get("/print/ledger/:id", middleware.Verify(3), Controllers.RenderLedger)
	app.Get("/print/cheque/:id", middleware.Verify(3), Controllers.RenderCheque)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
