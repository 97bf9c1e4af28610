package handlers

import (
	"errors"
	"os"
	"time"

	"github.com/HrudhyaRadesh/EcoSphereLive/models"
	"github.com/HrudhyaRadesh/EcoSphereLive/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func SetupAuthRoutes(app *fiber.App, userService *services.UserService) {
	validate := validator.New()

	app.Post("/api/auth/register", func(c *fiber.Ctx) error {
		type Req struct {
			Username string  `json:"username" validate:"required,min=3,max=32"`
			Password string  `json:"password" validate:"required,min=8"`
			Email    *string `json:"email,omitempty" validate:"omitempty,email"`
			City     *string `json:"city,omitempty" validate:"omitempty,max=64"`
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

		user, err := userService.Register(req.Username, req.Password, req.City, req.Email)
		if err != nil {
			if errors.Is(err, services.ErrConflict) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": "username already taken",
				})
			}
			if errors.Is(err, services.ErrValidation) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "registration failed",
				"cause": err.Error(),
			})
		}

		token, err := issueToken(user)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to issue token",
				"cause": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"user":  user,
			"token": token,
		})
	})

	app.Post("/api/auth/login", func(c *fiber.Ctx) error {
		type Req struct {
			Username string `json:"username" validate:"required"`
			Password string `json:"password" validate:"required"`
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

		user, err := userService.Authenticate(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid credentials",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "login failed",
				"cause": err.Error(),
			})
		}

		token, err := issueToken(user)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to issue token",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"user":  user,
			"token": token,
		})
	})
}

func issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(os.Getenv("JWT_SECRET")))
}
