package handlers

import (
	"github.com/HrudhyaRadesh/EcoSphereLive/middleware"
	"github.com/HrudhyaRadesh/EcoSphereLive/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBadgeRoutes(app *fiber.App, badgeService *services.BadgeService) {
	secured := app.Group("/api", middleware.UserContext())

	secured.Get("/user/badges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		badges, err := badgeService.GetUserBadges(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch badges",
				"cause": err.Error(),
			})
		}
		return c.JSON(badges)
	})
}
