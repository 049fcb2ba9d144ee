// Package domain holds the storefront's core entities and their invariants:
// user profiles, catalog offers, ledger transactions and the diagnostic
// events published when a store write is rejected.
package domain

import (
	"errors"
	"strings"
)

// UserProfile is the stored record of a user: display name, balance and role.
// Its ID is the identity provider's account id, so there is exactly one
// profile per identity account.
//
// Invariants:
//   - Username is unique within the system (exact, case-sensitive match).
//   - Balance is expected to stay non-negative, but the purchase flow does
//     not enforce this atomically; two concurrent purchases can overdraw.
//   - IsAdmin is set at registration and never changes in normal operation.
type UserProfile struct {
	ID       string
	Username string
	Balance  int64
	IsAdmin  bool
}

// ErrUsernameRequired is returned when a profile is created without a
// display name.
var ErrUsernameRequired = errors.New("username is required")

// NewUserProfile builds a profile for a freshly created identity account.
// New profiles always start with a zero balance.
func NewUserProfile(id, username string, isAdmin bool) (*UserProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	return &UserProfile{
		ID:       id,
		Username: username,
		Balance:  0,
		IsAdmin:  isAdmin,
	}, nil
}

// AdminRole is an explicit role-assignment record, written at registration
// time for admin accounts. It is the authoritative marker the store's access
// rules key on; the profile's IsAdmin flag mirrors it for cheap reads.
type AdminRole struct {
	UserID string
}
