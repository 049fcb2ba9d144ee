package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kingstore/api/pkg/dto"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func sampleCreate() *dto.TransactionCreate {
	return &dto.TransactionCreate{
		UserID:               "uid-1",
		Username:             "alice",
		GameOfferID:          "pubg-1",
		GameOfferName:        "PUBG",
		GameOfferDescription: "60 شدة",
		Amount:               3500,
		PlayerID:             "player-77",
	}
}

func TestRepository_CreateGlobal(t *testing.T) {
	assert := assert.New(t)
	db, mock := setupMockDB(t)
	repo := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := repo.CreateGlobal(context.Background(), sampleCreate())
	assert.NoError(err)
	assert.NotEmpty(tx.ID)
	assert.Equal("alice", tx.Username)
	assert.False(tx.TransactionDate.IsZero())
}

func TestRepository_CreateForUser(t *testing.T) {
	assert := assert.New(t)
	db, mock := setupMockDB(t)
	repo := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "user_transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := repo.CreateForUser(context.Background(), sampleCreate())
	assert.NoError(err)
	assert.Equal("pubg-1", tx.GameOfferID)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "user_transactions" (.+) VALUES (.+)`).
		WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	_, err = repo.CreateForUser(context.Background(), sampleCreate())
	assert.Error(err)
}

func TestRepository_ListGlobal(t *testing.T) {
	assert := assert.New(t)
	db, mock := setupMockDB(t)
	repo := New(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "username", "game_offer_id", "game_offer_name",
		"game_offer_description", "amount", "player_id", "transaction_date",
	}).
		AddRow("tx-2", "uid-1", "alice", "ff-1", "Free Fire", "100 💎", int64(3400), "p1", now).
		AddRow("tx-1", "uid-1", "alice", "pubg-1", "PUBG", "60 شدة", int64(3500), "p1", now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT (.+) FROM "transactions" ORDER BY transaction_date desc`).
		WillReturnRows(rows)

	txs, err := repo.ListGlobal(context.Background())
	assert.NoError(err)
	assert.Len(txs, 2)
	assert.Equal("tx-2", txs[0].ID)
}

func TestRepository_ListForUser(t *testing.T) {
	assert := assert.New(t)
	db, mock := setupMockDB(t)
	repo := New(db)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "username", "game_offer_id", "game_offer_name",
		"game_offer_description", "amount", "player_id", "transaction_date",
	}).
		AddRow("tx-1", "uid-1", "alice", "pubg-1", "PUBG", "60 شدة", int64(3500), "p1", time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM "user_transactions" WHERE user_id = (.+) ORDER BY transaction_date desc`).
		WillReturnRows(rows)

	txs, err := repo.ListForUser(context.Background(), "uid-1")
	assert.NoError(err)
	assert.Len(txs, 1)
	assert.Equal("uid-1", txs[0].UserID)
}
