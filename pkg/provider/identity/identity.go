// Package identity declares the contract the storefront consumes from its
// identity provider: account creation, sign-in/out, password changes and a
// subscription to authentication-state changes. Credential storage, hashing
// and session tokens are the provider's problem, not the storefront's.
package identity

import (
	"context"
	"errors"
)

// ErrorCode classifies provider failures the storefront reacts to. Anything
// else is surfaced as an opaque provider error.
type ErrorCode string

const (
	CodeInvalidCredentials ErrorCode = "invalid-credentials"
	CodeEmailAlreadyInUse  ErrorCode = "email-already-in-use"
	CodeWeakPassword       ErrorCode = "weak-password"
)

// AuthError is a typed provider failure. The code decides which localized
// message the user sees; the underlying error never reaches them.
type AuthError struct {
	Code ErrorCode
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code)
}

func (e *AuthError) Unwrap() error { return e.Err }

// AsAuthError unwraps err into an *AuthError if there is one in the chain.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Identity is an authenticated provider account.
type Identity struct {
	ID    string
	Email string
}

// StateListener receives the current identity on every auth-state change,
// or nil when the account signed out.
type StateListener func(id *Identity)

// Provider is the identity provider surface the controller depends on.
type Provider interface {
	// CreateAccount registers email+password and returns the new identity.
	// The account is NOT signed in by this call.
	CreateAccount(ctx context.Context, email, password string) (*Identity, error)

	// SignIn authenticates and returns a session token for the identity.
	// Listeners are notified before SignIn returns the token.
	SignIn(ctx context.Context, email, password string) (token string, err error)

	// SignOut ends the session for the given identity id and notifies
	// listeners with nil.
	SignOut(ctx context.Context, id string)

	// ChangePassword replaces the password of the given identity.
	ChangePassword(ctx context.Context, id, newPassword string) error

	// Verify resolves a session token back to its identity.
	Verify(ctx context.Context, token string) (*Identity, error)

	// OnAuthStateChange registers a listener for sign-in/sign-out events.
	OnAuthStateChange(listener StateListener)
}
