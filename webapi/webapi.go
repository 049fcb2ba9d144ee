// Package webapi provides the HTTP surface of the storefront. It is
// organized into sub-packages per domain:
// - auth: registration, login, logout and password endpoints
// - store: session state, catalog, purchase and history endpoints
// - admin: balance writes, catalog management and the global ledger
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/kingstore/api/pkg/app"
	adminweb "github.com/kingstore/api/webapi/admin"
	authweb "github.com/kingstore/api/webapi/auth"
	"github.com/kingstore/api/webapi/common"
	storeweb "github.com/kingstore/api/webapi/store"
)

// SetupApp initializes Fiber with the shared middleware and every route.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
		OAuth2RedirectUrl:    "/auth/login",
	}))

	// Rate limiting keyed on the forwarded client IP when behind a proxy.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("King Store API is running! 👑")
	})

	authweb.Routes(fiberApp, a.Manager, a.Config)
	storeweb.Routes(fiberApp, a.Manager, a.Config)
	adminweb.Routes(fiberApp, a.Manager, a.Listings, a.Config)
	return fiberApp
}
