// File: internal/common/model.go
package common

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel defines common fields for GORM models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:current_timestamp"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:current_timestamp"`
}

// Platform roles. A user may hold several; each carries its own profile.
const (
	RoleRider  = "rider"
	RoleDriver = "driver"
)

// KnownRole reports whether the given role is one the platform issues
// sessions for.
func KnownRole(role string) bool {
	return role == RoleRider || role == RoleDriver
}
