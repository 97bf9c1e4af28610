package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/HrudhyaRadesh/EcoSphereLive/middleware"
	"github.com/HrudhyaRadesh/EcoSphereLive/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func SetupActivityRoutes(app *fiber.App, metricsService *services.MetricsService) {
	validate := validator.New()

	// 🔐 Everything under here needs a verified user.
	secured := app.Group("/api", middleware.UserContext())

	secured.Post("/activities", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			ActivityType string          `json:"activity_type" validate:"required,max=128"`
			Co2Impact    float64         `json:"co2_impact"`
			PointsEarned int             `json:"points_earned" validate:"min=0"`
			Metadata     json.RawMessage `json:"metadata,omitempty"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "validation failed",
				"cause": err.Error(),
			})
		}

		activity, metrics, err := metricsService.RecordActivity(userID, services.ActivityInput{
			ActivityType: req.ActivityType,
			Co2Impact:    req.Co2Impact,
			PointsEarned: req.PointsEarned,
			Metadata:     datatypes.JSON(req.Metadata),
		})
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "no metrics record for user",
				})
			}
			if errors.Is(err, services.ErrValidation) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record activity",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"activity": activity,
			"metrics":  metrics,
		})
	})

	secured.Get("/user/metrics", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		metrics, err := metricsService.GetMetricsWithRank(userID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "no metrics record for user",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch metrics",
				"cause": err.Error(),
			})
		}
		return c.JSON(metrics)
	})

	secured.Get("/user/activities", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "50"))

		activities, err := metricsService.GetUserActivities(userID, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch activities",
				"cause": err.Error(),
			})
		}
		return c.JSON(activities)
	})

	secured.Get("/user/activities/month", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		activities, err := metricsService.GetActivitiesThisMonth(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch monthly activities",
				"cause": err.Error(),
			})
		}
		return c.JSON(activities)
	})

	secured.Get("/user/activities/summary", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		summary, err := metricsService.MonthlySummaryByType(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to summarize activities",
				"cause": err.Error(),
			})
		}
		return c.JSON(summary)
	})
}
