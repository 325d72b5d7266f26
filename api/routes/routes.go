package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"xrplbalance/api/metrics"
)

func InitRoutes(app *fiber.App, balance *BalanceHandler, m *metrics.Metrics) {
	app.Get("/healthz", Health)
	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	app.Get("/get_balance/", balance.GetBalance)

	api := app.Group("/api")
	api.Get("/get_balance/", balance.GetBalance)
}
