package middleware

import (
	"errors"
	"strings"

	"app/config"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// JWTMiddleware validates the JWT token provided in the Authorization header.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Missing or malformed JWT"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Missing or malformed JWT"})
	}

	tokenStr := parts[1]
	claims := &models.JwtClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token signing method is what you expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid or expired JWT"})
	}

	c.Locals("clientID", claims.ClientID)

	return c.Next()
}

// ExtractClaims returns the claims stashed by JWTMiddleware.
func ExtractClaims(c *fiber.Ctx) (*models.JwtClaims, error) {
	clientID, ok := c.Locals("clientID").(string)
	if !ok || clientID == "" {
		return nil, errors.New("no claims in request context")
	}
	return &models.JwtClaims{ClientID: clientID}, nil
}
