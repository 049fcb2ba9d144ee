package domain

import "time"

// Transaction is an immutable record of a completed purchase. It snapshots
// the buyer's username and the offer's display fields at purchase time, so
// history stays readable after the offer or user is edited or deleted.
//
// Each purchase produces two copies of the same record: one scoped to the
// purchasing user (personal history) and one in the flat global ledger
// (admin review). The copies are written independently and are not
// transactional with each other or with the balance debit.
type Transaction struct {
	ID                   string
	UserID               string
	Username             string
	GameOfferID          string
	GameOfferName        string
	GameOfferDescription string
	Amount               int64
	PlayerID             string
	TransactionDate      time.Time
}
