// File: internal/shared/core.go
package shared

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserSnapshot is the lean user shape embedded in session tokens. Token
// generation depends only on this shape, never on stored state.
type UserSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Roles     []string  `json:"roles"`
}

// Claims is the JWT claims structure for session tokens.
type Claims struct {
	User UserSnapshot `json:"user"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session token payloads. Kept narrow so the
// signing algorithm can be swapped without touching the auth core.
type Codec interface {
	Sign(user UserSnapshot) (string, error)
	Verify(token string) (*UserSnapshot, error)
}

// Session is a persisted auth token record: at most one per
// (user, role, device) tuple.
type Session struct {
	UserID   uuid.UUID
	Role     string
	DeviceID string
	Token    string
}

// TokenService manages the session token lifecycle.
type TokenService interface {
	// Issue signs a token for the user snapshot and upserts it for the
	// (user, role, device) tuple, overwriting any prior token in place.
	Issue(ctx context.Context, user UserSnapshot, role, deviceID string) (string, error)
	// Verify looks up a token by (user, device, token); existence implies
	// validity.
	Verify(ctx context.Context, userID uuid.UUID, deviceID, token string) (*Session, error)
	// Get looks up by (token, device) only. In strict mode absence fails
	// with a not-found error; in lenient mode it returns nil.
	Get(ctx context.Context, token, deviceID string, strict bool) (*Session, error)
	// RevokeAll deletes every token for a user across all roles and devices.
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}
