// File: internal/auth/model.go
package auth

import (
	"github.com/McLeroy/loops-api/internal/user"
)

// RegisterRequest defines the structure for registration requests. The
// optional role field, when present, overrides the role implied by the
// route for the stored role set.
type RegisterRequest struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Password  string          `json:"password"`
	Role      string          `json:"role,omitempty"`
	Type      user.DriverType `json:"type,omitempty"`
}

// LoginRequest defines the structure for login requests.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddToRoleRequest defines the structure for role addition requests.
type AddToRoleRequest struct {
	Role  string `json:"role"`
	Token string `json:"token"`
}

// VerificationRequest defines the structure for email verification requests.
// Phone is accepted for parity with the registration payload; codes are
// delivered to the email address.
type VerificationRequest struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
	Phone  string `json:"phone,omitempty"`
}

// VerifyEmailRequest defines the structure for verification confirmations.
type VerifyEmailRequest struct {
	Email            string `json:"email"`
	Reason           string `json:"reason"`
	VerificationCode string `json:"verification_code"`
}

// PasswordResetRequest defines the structure for reset-code requests.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest defines the structure for the reset step itself.
type ResetPasswordRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
	Password         string `json:"password"`
}

// Result pairs the affected user with the session token for the device.
type Result struct {
	User  *user.User
	Token string
}
