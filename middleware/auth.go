package middleware

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserContext verifies the Bearer token and attaches the caller's user id to
// the request context. Handlers behind it can trust c.Locals("user_id").
func UserContext() fiber.Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("❌ JWT_SECRET is not set — cannot authenticate requests")
	}

	return func(c *fiber.Ctx) error {
		userID, err := parseBearer(c.Get("Authorization"), secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "not authenticated",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// UserIDFromToken returns the caller's user id when a valid bearer token is
// present and "" otherwise. Used by public endpoints that only personalize
// their response (e.g. the leaderboard's is_current_user flag).
func UserIDFromToken(c *fiber.Ctx) string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return ""
	}
	userID, err := parseBearer(c.Get("Authorization"), secret)
	if err != nil {
		return ""
	}
	return userID
}

func parseBearer(authHeader, secret string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("missing authorization header")
	}
	raw := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", fmt.Errorf("missing subject")
	}
	return userID, nil
}
