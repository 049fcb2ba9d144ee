// Package admin exposes the admin dashboard endpoints: user listings with
// balance writes, catalog management and the global ledger. Every route is
// gated on the caller's profile carrying the admin flag.
package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kingstore/api/pkg/config"
	"github.com/kingstore/api/pkg/domain"
	"github.com/kingstore/api/pkg/dto"
	"github.com/kingstore/api/pkg/middleware"
	"github.com/kingstore/api/pkg/service/session"
	"github.com/kingstore/api/webapi/common"
)

func Routes(app *fiber.App, manager *session.Manager, listings *session.Listings, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/admin/users", protected, ListUsers(manager, listings))
	app.Put("/admin/users/:id/balance", protected, UpdateBalance(manager))
	app.Delete("/admin/users/:id", protected, DeleteUser(manager))
	app.Get("/admin/transactions", protected, ListTransactions(manager, listings))
	app.Post("/admin/offers", protected, AddOffer(manager))
	app.Put("/admin/offers/:id/price", protected, UpdateOfferPrice(manager))
	app.Delete("/admin/offers/:id", protected, DeleteOffer(manager))
}

// resolveAdmin returns the caller's session only when its profile carries
// the admin flag; otherwise the error response is already written.
func resolveAdmin(c *fiber.Ctx, manager *session.Manager) (*session.Session, error) {
	identityID, err := middleware.CurrentIdentityID(c)
	if err != nil {
		return nil, common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
	}
	sess, err := manager.Resolve(c.Context(), identityID)
	if err != nil {
		return nil, common.ProblemDetailsJSON(c, "Internal Server Error", err)
	}
	profile := sess.Profile()
	if profile == nil || !profile.IsAdmin {
		return nil, common.ProblemDetailsJSON(c, "Forbidden", domain.ErrNotAdmin)
	}
	return sess, nil
}

// ListUsers returns every profile with its balance.
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /admin/users [get]
// @Security Bearer
func ListUsers(manager *session.Manager, listings *session.Listings) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := resolveAdmin(c, manager)
		if sess == nil {
			return err
		}
		users, err := listings.Users(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users", users)
	}
}

// UpdateBalance sets a user's balance to an exact value.
// @Summary Update user balance
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body BalanceInput true "New balance"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /admin/users/{id}/balance [put]
// @Security Bearer
func UpdateBalance(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[BalanceInput](c)
		if input == nil {
			return err
		}
		sess, err := resolveAdmin(c, manager)
		if sess == nil {
			return err
		}
		if err := sess.UpdateBalance(c.Context(), c.Params("id"), *input.Balance); err != nil {
			return common.ProblemDetailsJSON(c, session.Localize(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance updated", nil)
	}
}

// DeleteUser removes a user's profile record.
// @Summary Delete user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /admin/users/{id} [delete]
// @Security Bearer
func DeleteUser(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := resolveAdmin(c, manager)
		if sess == nil {
			return err
		}
		if err := sess.DeleteUser(c.Context(), c.Params("id")); err != nil {
			return common.ProblemDetailsJSON(c, session.Localize(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User deleted", nil)
	}
}

// ListTransactions returns the flat global ledger, newest first.
// @Summary List all transactions
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /admin/transactions [get]
// @Security Bearer
func ListTransactions(manager *session.Manager, listings *session.Listings) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := resolveAdmin(c, manager)
		if sess == nil {
			return err
		}
		txs, err := listings.Transactions(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", txs)
	}
}

// AddOffer inserts a new catalog offer.
// @Summary Add catalog offer
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.OfferCreate true "Offer data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /admin/offers [post]
// @Security Bearer
func AddOffer(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.OfferCreate](c)
		if input == nil {
			return err
		}
		sess, err := resolveAdmin(c, manager)
		if sess == nil {
			return err
		}
		offer, err := sess.AddOffer(c.Context(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, session.Localize(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Offer added", offer)
	}
}

// UpdateOfferPrice reprices a catalog offer.
// @Summary Update offer price
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Offer ID"
// @Param request body PriceInput true "New price"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /admin/offers/{id}/price [put]
// @Security Bearer
func UpdateOfferPrice(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[PriceInput](c)
		if input == nil {
			return err
		}
		sess, err := resolveAdmin(c, manager)
		if sess == nil {
			return err
		}
		if err := sess.UpdateOfferPrice(c.Context(), c.Params("id"), input.Price); err != nil {
			return common.ProblemDetailsJSON(c, session.Localize(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Price updated", nil)
	}
}

// DeleteOffer removes a catalog offer.
// @Summary Delete offer
// @Tags admin
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /admin/offers/{id} [delete]
// @Security Bearer
func DeleteOffer(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := resolveAdmin(c, manager)
		if sess == nil {
			return err
		}
		if err := sess.DeleteOffer(c.Context(), c.Params("id")); err != nil {
			return common.ProblemDetailsJSON(c, session.Localize(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Offer deleted", nil)
	}
}
