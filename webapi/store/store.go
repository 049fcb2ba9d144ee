// Package store exposes the authenticated storefront endpoints: session
// state, the offer catalog, purchases and the caller's purchase history.
package store

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kingstore/api/pkg/config"
	"github.com/kingstore/api/pkg/middleware"
	"github.com/kingstore/api/pkg/service/session"
	"github.com/kingstore/api/webapi/common"
)

func Routes(app *fiber.App, manager *session.Manager, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/session", protected, GetSession(manager))
	app.Put("/session/view", protected, SetView(manager))
	app.Get("/offers", protected, ListOffers(manager))
	app.Post("/purchase", protected, Purchase(manager))
	app.Get("/transactions", protected, ListTransactions(manager))
}

func resolve(c *fiber.Ctx, manager *session.Manager) (*session.Session, error) {
	identityID, err := middleware.CurrentIdentityID(c)
	if err != nil {
		return nil, common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
	}
	sess, err := manager.Resolve(c.Context(), identityID)
	if err != nil {
		return nil, common.ProblemDetailsJSON(c, "Internal Server Error", err)
	}
	return sess, nil
}

// GetSession returns the caller's current view, profile and loading flag.
// @Summary Get session state
// @Tags store
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /session [get]
// @Security Bearer
func GetSession(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := resolve(c, manager)
		if sess == nil {
			return err
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Session state", fiber.Map{
			"view":    sess.View(),
			"profile": sess.Profile(),
			"loading": sess.IsLoading(),
		})
	}
}

// SetView navigates the session to a screen that needs no derivation.
// @Summary Set session view
// @Tags store
// @Accept json
// @Produce json
// @Param request body ViewInput true "Target view"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /session/view [put]
// @Security Bearer
func SetView(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ViewInput](c)
		if input == nil {
			return err
		}
		sess, err := resolve(c, manager)
		if sess == nil {
			return err
		}
		sess.SetView(session.View(input.View))
		return common.SuccessResponseJSON(c, fiber.StatusOK, "View updated", fiber.Map{
			"view": sess.View(),
		})
	}
}

// ListOffers returns the session's catalog snapshot.
// @Summary List catalog offers
// @Tags store
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /offers [get]
// @Security Bearer
func ListOffers(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := resolve(c, manager)
		if sess == nil {
			return err
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Offers", sess.Offers())
	}
}

// Purchase buys an offer against the caller's balance.
// @Summary Purchase an offer
// @Tags store
// @Accept json
// @Produce json
// @Param request body PurchaseInput true "Offer and player id"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /purchase [post]
// @Security Bearer
func Purchase(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[PurchaseInput](c)
		if input == nil {
			return err
		}
		sess, err := resolve(c, manager)
		if sess == nil {
			return err
		}
		result, err := sess.PurchaseOffer(c.Context(), input.GameOfferID, input.PlayerID)
		if err != nil {
			return common.ProblemDetailsJSON(c, session.Localize(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, session.MsgPurchaseSuccess, result)
	}
}

// ListTransactions returns the caller's purchase history, newest first.
// @Summary List own transactions
// @Tags store
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /transactions [get]
// @Security Bearer
func ListTransactions(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := resolve(c, manager)
		if sess == nil {
			return err
		}
		txs, err := sess.Transactions(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, session.Localize(err), err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", txs)
	}
}
