package handlers

import (
	"errors"

	"github.com/HrudhyaRadesh/EcoSphereLive/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRouteRoutes(app *fiber.App, routeService *services.RouteService) {
	// 🔓 Pure computation over a caller-supplied distance; no user state.
	app.Post("/api/routes/compare", func(c *fiber.Ctx) error {
		type Req struct {
			Distance float64 `json:"distance"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		routes, err := routeService.CompareModes(req.Distance)
		if err != nil {
			if errors.Is(err, services.ErrValidation) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compare routes",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{"routes": routes})
	})
}
