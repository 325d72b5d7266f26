package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"xrplbalance/api/metrics"
)

// MetricsMiddleware counts requests by method, matched route and final status.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		// Method is backed by the reused request buffer; labels outlive it.
		m.ObserveRequest(utils.CopyString(c.Method()), c.Route().Path, status)

		return err
	}
}
