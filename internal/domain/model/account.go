//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// SignUpRequest registers a new account. It never signs the caller in.
type SignUpRequest struct {
	Username  string `json:"username"   validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Phone     string `json:"phone"`
}

// ForgotPasswordRequest asks the backend to email a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest sets a new password using a reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
