// Package app wires the shared dependencies into the storefront services.
package app

import (
	"context"
	"log/slog"

	"github.com/kingstore/api/pkg/cache"
	"github.com/kingstore/api/pkg/config"
	"github.com/kingstore/api/pkg/domain"
	"github.com/kingstore/api/pkg/eventbus"
	"github.com/kingstore/api/pkg/provider/identity"
	"github.com/kingstore/api/pkg/repository/offer"
	"github.com/kingstore/api/pkg/repository/transaction"
	"github.com/kingstore/api/pkg/repository/user"
	"github.com/kingstore/api/pkg/service/session"
)

// Deps contains everything the services are built from.
type Deps struct {
	IdentityProvider identity.Provider
	Users            user.Repository
	Offers           offer.Repository
	Ledger           transaction.Repository
	EventBus         eventbus.EventBus
	Cache            cache.Cache
	Logger           *slog.Logger
}

type App struct {
	Deps   *Deps
	Config *config.App

	SessionService *session.Service
	Manager        *session.Manager
	Listings       *session.Listings
}

func New(deps *Deps, cfg *config.App) *App {
	svc := session.New(
		deps.IdentityProvider,
		deps.Users,
		deps.Offers,
		deps.Ledger,
		deps.EventBus,
		cfg.Auth,
		deps.Logger,
	)
	a := &App{
		Deps:           deps,
		Config:         cfg,
		SessionService: svc,
		Manager:        session.NewManager(svc),
		Listings:       session.NewListings(svc, deps.Cache, cfg.Redis.ListingTTL),
	}
	a.setupEventBus()
	return a
}

// setupEventBus attaches the diagnostic subscribers: permission errors are
// surfaced for an operator regardless of which write tripped them, and
// auth-state transitions from the identity provider are logged.
func (a *App) setupEventBus() {
	log := a.Deps.Logger
	a.Deps.EventBus.Subscribe(domain.PermissionErrorEvent{}.Type(), func(_ context.Context, e domain.Event) {
		log.Warn("permission error observed", "event", e)
	})
	a.Deps.IdentityProvider.OnAuthStateChange(func(id *identity.Identity) {
		if id == nil {
			log.Debug("auth state changed", "state", "signed_out")
			return
		}
		log.Debug("auth state changed", "state", "signed_in", "userID", id.ID)
	})
}
