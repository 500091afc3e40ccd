// File: internal/token/model.go
package token

import (
	"github.com/McLeroy/loops-api/internal/common"
	"github.com/McLeroy/loops-api/internal/shared"

	"github.com/google/uuid"
)

// AuthToken is a persisted session token. The composite unique index keeps
// at most one live token per (user, role, device) tuple; re-issuing for the
// same tuple overwrites in place.
type AuthToken struct {
	common.BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_auth_tokens_tuple;index"`
	Role     string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_auth_tokens_tuple"`
	DeviceID string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_auth_tokens_tuple"`
	Token    string    `gorm:"type:text;not null"`
}

// TableName specifies the table name for the AuthToken model.
func (AuthToken) TableName() string {
	return "auth_tokens"
}

// Session converts the record to its transport shape.
func (t *AuthToken) Session() *shared.Session {
	return &shared.Session{
		UserID:   t.UserID,
		Role:     t.Role,
		DeviceID: t.DeviceID,
		Token:    t.Token,
	}
}
