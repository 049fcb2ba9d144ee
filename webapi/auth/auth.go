// Package auth exposes the registration, login, logout and password
// endpoints on top of the session controller.
package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kingstore/api/pkg/config"
	"github.com/kingstore/api/pkg/middleware"
	"github.com/kingstore/api/pkg/service/session"
	"github.com/kingstore/api/webapi/common"
)

func Routes(app *fiber.App, manager *session.Manager, cfg *config.App) {
	app.Post("/auth/register", Register(manager))
	app.Post("/auth/login", Login(manager))
	app.Post("/auth/logout", middleware.JwtProtected(cfg.Auth.Jwt), Logout(manager))
	app.Put("/auth/password", middleware.JwtProtected(cfg.Auth.Jwt), ChangePassword(manager))
}

// Register creates an identity account and its storefront profile.
// @Summary Register a new user
// @Description Create an account with username, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/register [post]
func Register(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		if len(input.Password) > 72 {
			return common.ProblemDetailsJSON(c, "Invalid request body", nil, "Password too long", fiber.StatusBadRequest)
		}
		if err := manager.Register(c.Context(), input.Username, input.Email, input.Password); err != nil {
			return common.ProblemDetailsJSON(c, session.Localize(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, session.MsgRegisterSuccess, nil)
	}
}

// Login authenticates and returns a bearer token plus the derived view.
// @Summary User login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		token, sess, err := manager.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			// Auth failures collapse to one message to prevent enumeration.
			return common.ProblemDetailsJSON(c, session.Localize(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, session.MsgLoginSuccess, fiber.Map{
			"token":   token,
			"view":    sess.View(),
			"profile": sess.Profile(),
		})
	}
}

// Logout signs the authenticated identity out and detaches its session.
// @Summary User logout
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/logout [post]
// @Security Bearer
func Logout(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identityID, err := middleware.CurrentIdentityID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		manager.Logout(c.Context(), identityID)
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Logged out", nil)
	}
}

// ChangePassword updates the authenticated identity's password.
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordInput true "New password"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/password [put]
// @Security Bearer
func ChangePassword(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ChangePasswordInput](c)
		if input == nil {
			return err
		}
		identityID, err := middleware.CurrentIdentityID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		sess, err := manager.Resolve(c.Context(), identityID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		if err := sess.ChangePassword(c.Context(), input.NewPassword); err != nil {
			return common.ProblemDetailsJSON(c, session.Localize(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Password updated", nil)
	}
}
