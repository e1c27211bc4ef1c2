package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/modxnet/modxnet-backend/internal/config"
	"github.com/modxnet/modxnet-backend/internal/dto"
)

var ErrNoUser = errors.New("no authenticated user in context")

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// UserID extracts the user UUID from the JWT "sub" claim.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, ok := claimsFrom(c)
	if !ok {
		return uuid.Nil, ErrNoUser
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrNoUser
	}
	return uuid.Parse(sub)
}

func claimsFrom(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}
