package handlers

import (
	"strconv"

	"github.com/HrudhyaRadesh/EcoSphereLive/middleware"
	"github.com/HrudhyaRadesh/EcoSphereLive/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, rankService *services.RankService) {
	// 🔓 Public — a token is optional and only flags the caller's own row.
	app.Get("/api/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))

		entries, err := rankService.TopUsers(limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch leaderboard",
				"cause": err.Error(),
			})
		}

		currentUserID := middleware.UserIDFromToken(c)

		response := make([]fiber.Map, len(entries))
		for i, e := range entries {
			response[i] = fiber.Map{
				"rank":            e.Rank,
				"username":        e.Username,
				"points":          e.Points,
				"co2_saved":       e.Co2Saved,
				"level":           e.Level,
				"is_current_user": currentUserID != "" && e.UserID == currentUserID,
			}
		}
		return c.JSON(response)
	})
}
