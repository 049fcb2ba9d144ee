// Package infra wires the storefront to its backing services: the Postgres
// document tables, the Redis listing cache and the local identity provider.
package infra

import (
	"errors"
	"time"

	identityinfra "github.com/kingstore/api/infra/identity"
	offerinfra "github.com/kingstore/api/infra/repository/offer"
	transactioninfra "github.com/kingstore/api/infra/repository/transaction"
	userinfra "github.com/kingstore/api/infra/repository/user"
	"github.com/kingstore/api/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the Postgres connection and migrates the storefront
// tables.
func NewDBConnection(cnf *config.DB, appEnv string) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	connection, err := gorm.Open(postgres.Open(cnf.Url), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	if err := connection.AutoMigrate(
		&identityinfra.Account{},
		&userinfra.User{},
		&userinfra.AdminRole{},
		&offerinfra.GameOffer{},
		&transactioninfra.Transaction{},
		&transactioninfra.UserTransaction{},
	); err != nil {
		return nil, err
	}

	return connection, nil
}
