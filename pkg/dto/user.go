// Package dto defines the read/create/update shapes exchanged between the
// services, the repositories and the web layer.
package dto

// UserCreate represents the data needed to create a new user profile.
type UserCreate struct {
	ID       string `json:"id"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Balance  int64  `json:"balance"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserUpdate represents the profile fields an admin may rewrite. Nil fields
// are left untouched.
type UserUpdate struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Balance  *int64  `json:"balance,omitempty" validate:"omitempty,gte=0"`
}

// UserRead is a read-optimized view of a user profile.
type UserRead struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
	IsAdmin  bool   `json:"isAdmin"`
}
