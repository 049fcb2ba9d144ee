package domain

import "errors"

var (
	// ErrInsufficientBalance is returned when a purchase costs more than the
	// buyer's current balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrOfferNotFound is returned when an offer id is absent from the catalog.
	ErrOfferNotFound = errors.New("offer not found")

	// ErrProfileNotFound is returned when a user profile cannot be found.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrUsernameTaken is returned when registering with a username that
	// already belongs to another profile.
	ErrUsernameTaken = errors.New("username taken")

	// ErrNotAuthenticated is returned when an operation requires a signed-in
	// profile and the session has none.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotAdmin is returned when a non-admin session invokes an admin-only
	// operation.
	ErrNotAdmin = errors.New("not admin")

	// ErrOfferPriceMustBePositive is returned when an offer is created or
	// repriced with a non-positive amount.
	ErrOfferPriceMustBePositive = errors.New("offer price must be positive")

	// ErrBalanceMustBeNonNegative is returned when an admin balance edit would
	// set a negative balance.
	ErrBalanceMustBeNonNegative = errors.New("balance must be non-negative")
)
