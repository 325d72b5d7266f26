package routes

import (
	"github.com/gofiber/fiber/v2"

	"xrplbalance/api/types"
)

// Health reports liveness only and never touches the ledger.
func Health(ctx *fiber.Ctx) error {
	return ctx.JSON(types.HealthResponse{Status: "ok"})
}
