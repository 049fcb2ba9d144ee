package identity

import "time"

// Account is the gorm model for provider accounts. It lives apart from the
// `users` profile table on purpose: deleting a profile does not delete the
// account, so orphaned accounts can exist, matching the store's documented
// behavior.
type Account struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Account) TableName() string { return "identity_accounts" }
