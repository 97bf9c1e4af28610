package handlers

import (
	"github.com/HrudhyaRadesh/EcoSphereLive/middleware"
	"github.com/HrudhyaRadesh/EcoSphereLive/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App, statsService *services.StatsService, rankService *services.RankService) {
	// 🔓 Public landing-page numbers.
	app.Get("/api/global-stats", func(c *fiber.Ctx) error {
		stats, err := statsService.Get()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch global stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(stats)
	})

	// 🔒 Administrative full refresh: aggregate + every user's rank.
	admin := app.Group("/api/admin", middleware.UserContext())

	admin.Post("/recalculate-stats", func(c *fiber.Ctx) error {
		stats, err := statsService.Recalculate()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to recalculate stats",
				"cause": err.Error(),
			})
		}
		if err := rankService.RecomputeAll(nil); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to recompute rankings",
				"cause": err.Error(),
			})
		}
		return c.JSON(stats)
	})
}
