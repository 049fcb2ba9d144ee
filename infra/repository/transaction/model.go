package transaction

import "time"

// Transaction is the gorm model behind the flat `transactions` collection
// the admin reviews.
type Transaction struct {
	ID                   string `gorm:"primaryKey"`
	UserID               string `gorm:"index;not null"`
	Username             string
	GameOfferID          string
	GameOfferName        string
	GameOfferDescription string
	Amount               int64  `gorm:"not null"`
	PlayerID             string `gorm:"not null"`
	TransactionDate      time.Time
}

func (Transaction) TableName() string { return "transactions" }

// UserTransaction is the per-user copy of the same record, the equivalent of
// the original `users/{id}/transactions` subcollection. It is written
// independently of the global row.
type UserTransaction struct {
	ID                   string `gorm:"primaryKey"`
	UserID               string `gorm:"index;not null"`
	Username             string
	GameOfferID          string
	GameOfferName        string
	GameOfferDescription string
	Amount               int64  `gorm:"not null"`
	PlayerID             string `gorm:"not null"`
	TransactionDate      time.Time
}

func (UserTransaction) TableName() string { return "user_transactions" }
