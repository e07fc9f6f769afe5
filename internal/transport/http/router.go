package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/compass/backend/internal/handlers"
)

type Deps struct {
	DB               *gorm.DB
	OrderHandler     *handlers.OrderHandler
	PaymentHandler   *handlers.PaymentHandler
	ExpenseHandler   *handlers.ExpenseHandler
	LeadHandler      *handlers.LeadHandler
	ProjectHandler   *handlers.ProjectHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	SettingsHandler  *handlers.SettingsHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	admin := e.Group("/api/v1/admin")

	admin.GET("/orders", d.OrderHandler.ListOrders)
	admin.POST("/orders", d.OrderHandler.CreateOrder)
	admin.PATCH("/orders/:id", d.OrderHandler.PatchOrder)
	admin.DELETE("/orders/:id", d.OrderHandler.DeleteOrder)
	admin.GET("/orders/:id/balance", d.OrderHandler.GetBalance)

	admin.GET("/payments", d.PaymentHandler.ListPayments)
	admin.POST("/payments", d.PaymentHandler.CreatePayment)
	admin.PATCH("/payments/:id", d.PaymentHandler.PatchPayment)
	admin.DELETE("/payments/:id", d.PaymentHandler.DeletePayment)

	admin.GET("/expenses", d.ExpenseHandler.ListExpenses)
	admin.POST("/expenses", d.ExpenseHandler.CreateExpense)
	admin.PATCH("/expenses/:id", d.ExpenseHandler.PatchExpense)
	admin.DELETE("/expenses/:id", d.ExpenseHandler.DeleteExpense)

	admin.GET("/leads", d.LeadHandler.ListLeads)
	admin.PATCH("/leads/:id", d.LeadHandler.PatchLead)
	admin.DELETE("/leads/:id", d.LeadHandler.DeleteLead)

	admin.GET("/projects", d.ProjectHandler.ListProjects)
	admin.POST("/projects", d.ProjectHandler.CreateProject)
	admin.PATCH("/projects/:id", d.ProjectHandler.PatchProject)
	admin.DELETE("/projects/:id", d.ProjectHandler.DeleteProject)

	admin.GET("/analytics", d.AnalyticsHandler.GetSnapshot)

	admin.GET("/settings", d.SettingsHandler.GetSettings)
	admin.PATCH("/settings", d.SettingsHandler.PatchSettings)
}
