// Package transaction implements the Ledger Store on Postgres via gorm.
// Records are write-once; there is deliberately no update or delete here.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kingstore/api/pkg/dto"
	repotransaction "github.com/kingstore/api/pkg/repository/transaction"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) repotransaction.Repository {
	return &repository{db: db}
}

func (r *repository) CreateGlobal(ctx context.Context, create *dto.TransactionCreate) (*dto.TransactionRead, error) {
	row := &Transaction{
		ID:                   uuid.NewString(),
		UserID:               create.UserID,
		Username:             create.Username,
		GameOfferID:          create.GameOfferID,
		GameOfferName:        create.GameOfferName,
		GameOfferDescription: create.GameOfferDescription,
		Amount:               create.Amount,
		PlayerID:             create.PlayerID,
		TransactionDate:      time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return mapGlobalToDTO(row), nil
}

func (r *repository) CreateForUser(ctx context.Context, create *dto.TransactionCreate) (*dto.TransactionRead, error) {
	row := &UserTransaction{
		ID:                   uuid.NewString(),
		UserID:               create.UserID,
		Username:             create.Username,
		GameOfferID:          create.GameOfferID,
		GameOfferName:        create.GameOfferName,
		GameOfferDescription: create.GameOfferDescription,
		Amount:               create.Amount,
		PlayerID:             create.PlayerID,
		TransactionDate:      time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return mapUserToDTO(row), nil
}

func (r *repository) ListGlobal(ctx context.Context) ([]*dto.TransactionRead, error) {
	var rows []Transaction
	if err := r.db.WithContext(ctx).Order("transaction_date desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapGlobalToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) ListForUser(ctx context.Context, userID string) ([]*dto.TransactionRead, error) {
	var rows []UserTransaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("transaction_date desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapUserToDTO(&rows[i]))
	}
	return result, nil
}

func mapGlobalToDTO(row *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:                   row.ID,
		UserID:               row.UserID,
		Username:             row.Username,
		GameOfferID:          row.GameOfferID,
		GameOfferName:        row.GameOfferName,
		GameOfferDescription: row.GameOfferDescription,
		Amount:               row.Amount,
		PlayerID:             row.PlayerID,
		TransactionDate:      row.TransactionDate,
	}
}

func mapUserToDTO(row *UserTransaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:                   row.ID,
		UserID:               row.UserID,
		Username:             row.Username,
		GameOfferID:          row.GameOfferID,
		GameOfferName:        row.GameOfferName,
		GameOfferDescription: row.GameOfferDescription,
		Amount:               row.Amount,
		PlayerID:             row.PlayerID,
		TransactionDate:      row.TransactionDate,
	}
}
