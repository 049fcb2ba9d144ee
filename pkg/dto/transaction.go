package dto

import "time"

// TransactionCreate carries the denormalized purchase record both ledger
// writes are built from. TransactionDate is assigned by the store.
type TransactionCreate struct {
	UserID               string `json:"userId"`
	Username             string `json:"username"`
	GameOfferID          string `json:"gameOfferId"`
	GameOfferName        string `json:"gameOfferName"`
	GameOfferDescription string `json:"gameOfferDescription"`
	Amount               int64  `json:"amount"`
	PlayerID             string `json:"playerId"`
}

// TransactionRead is a read-optimized view of a ledger entry.
type TransactionRead struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"userId"`
	Username             string    `json:"username"`
	GameOfferID          string    `json:"gameOfferId"`
	GameOfferName        string    `json:"gameOfferName"`
	GameOfferDescription string    `json:"gameOfferDescription"`
	Amount               int64     `json:"amount"`
	PlayerID             string    `json:"playerId"`
	TransactionDate      time.Time `json:"transactionDate"`
}
