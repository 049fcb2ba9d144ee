package auth

// RegisterInput is the request body for account registration.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput is the request body for authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput is the request body for a password change.
type ChangePasswordInput struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
