// Package initializer builds the infrastructure dependencies the services
// run on: logger, database, repositories, identity provider, event bus and
// the listing cache.
package initializer

import (
	"fmt"

	"github.com/kingstore/api/infra"
	infracache "github.com/kingstore/api/infra/cache"
	infraidentity "github.com/kingstore/api/infra/identity"
	offerrepo "github.com/kingstore/api/infra/repository/offer"
	txrepo "github.com/kingstore/api/infra/repository/transaction"
	userrepo "github.com/kingstore/api/infra/repository/user"
	"github.com/kingstore/api/pkg/app"
	"github.com/kingstore/api/pkg/config"
	"github.com/kingstore/api/pkg/eventbus"
)

// InitializeDependencies wires every infrastructure dependency from config.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	deps := &app.Deps{
		Logger:           logger,
		EventBus:         eventbus.NewSimpleEventBus(),
		IdentityProvider: infraidentity.New(db, cfg.Auth, logger),
		Users:            userrepo.New(db),
		Offers:           offerrepo.New(db),
		Ledger:           txrepo.New(db),
	}

	// Redis fronts the admin listings when configured; the in-memory cache
	// keeps single-node deployments dependency-free.
	if cfg.Redis.URL != "" {
		redisCache, err := infracache.NewRedisCache(cfg.Redis.URL, cfg.Redis.KeyPrefix, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.Cache = redisCache
	} else {
		logger.Info("no redis url configured, using in-memory listing cache")
		deps.Cache = infracache.NewMemoryCache()
	}

	return deps, nil
}
