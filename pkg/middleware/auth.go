// Package middleware holds the Fiber middleware shared by the web API.
package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kingstore/api/pkg/config"
)

var ErrNoIdentityInToken = errors.New("no identity in token")

// JwtProtected guards a route with bearer-token authentication. The parsed
// token lands in c.Locals("user") for handlers to read the identity from.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

// CurrentIdentityID reads the identity-provider account id out of the
// bearer token that JwtProtected stored on the request context.
func CurrentIdentityID(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", ErrNoIdentityInToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNoIdentityInToken
	}
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", ErrNoIdentityInToken
	}
	return id, nil
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		c.Set(fiber.HeaderContentType, "application/problem+json")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"title":  "Missing or malformed JWT",
			"status": fiber.StatusBadRequest,
		})
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"title":  "Invalid or expired JWT",
		"status": fiber.StatusUnauthorized,
	})
}
