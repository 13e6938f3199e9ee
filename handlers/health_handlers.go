package handlers

import (
	"app/database"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth reports liveness, the active engine version and whether the
// ephemeris cache store is attached.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"status":          "ok",
			"engine_version":  scoringEngine.Version(),
			"ephemeris_cache": database.GetDB() != nil,
		},
	})
}
