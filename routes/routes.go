package routes

import (
	"github.com/gofiber/fiber/v2"

	"quotation-backend/controllers"
	"quotation-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/bootstrap", controllers.Bootstrap)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to handler transactions)
	protected.Use(middlewares.Idempotency())

	protected.Get("/me", controllers.Me)

	// Employees (admin only)
	admin := protected.Group("", middlewares.RequireAdmin())
	admin.Post("/employee", controllers.CreateEmployee)
	admin.Get("/employees", controllers.GetEmployees)
	admin.Put("/employee/:id", controllers.UpdateEmployee)
	admin.Delete("/employee/:id", controllers.DeleteEmployee)

	// Companies (mutation admin only)
	admin.Post("/company", controllers.CreateCompany)
	admin.Put("/company/:id", controllers.UpdateCompany)
	admin.Delete("/company/:id", controllers.DeleteCompany)
	protected.Get("/companies", controllers.GetCompanies)
	protected.Get("/company/:id", controllers.GetCompany)

	// Customers
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)
	protected.Get("/customer/:id", controllers.GetCustomer)
	protected.Put("/customer/:id", controllers.UpdateCustomer)
	protected.Delete("/customer/:id", controllers.DeleteCustomer)
	protected.Get("/customer/:id/portfolio", controllers.GetCustomerPortfolio)

	// Opportunities (pipeline board)
	protected.Post("/opportunity", controllers.CreateOpportunity)
	protected.Get("/opportunities", controllers.GetOpportunities)
	protected.Get("/opportunity/:id", controllers.GetOpportunity)
	protected.Put("/opportunity/:id", controllers.UpdateOpportunity)
	protected.Put("/opportunity/:id/stage", controllers.MoveStage)
	protected.Delete("/opportunity/:id", controllers.DeleteOpportunity)
	protected.Get("/opportunity/:id/value", controllers.GetOpportunityValue)

	// Quotations (numbered, revisioned documents)
	protected.Post("/quotation", controllers.CreateQuotation)
	protected.Get("/quotations", controllers.GetQuotations)
	protected.Get("/quotation/:id", controllers.GetQuotation)
	protected.Put("/quotation/:id", controllers.UpdateQuotation)
	protected.Put("/quotation/:id/status", controllers.UpdateQuotationStatus)
	protected.Delete("/quotation/:id", controllers.DeleteQuotation)
	protected.Get("/quotation/:id/print", controllers.PrintQuotation)
}
