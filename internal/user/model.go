// File: internal/user/model.go
package user

import (
	"time"

	"github.com/McLeroy/loops-api/internal/common"
	"github.com/McLeroy/loops-api/internal/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DriverType enumerates the vehicle classes the platform supports.
type DriverType string

const (
	DriverTypeCar        DriverType = "car"
	DriverTypeMotorcycle DriverType = "motorcycle"
	DriverTypeVan        DriverType = "van"
)

// SupportedDriverTypes returns the platform-supported driver type set.
func SupportedDriverTypes() []DriverType {
	return []DriverType{DriverTypeCar, DriverTypeMotorcycle, DriverTypeVan}
}

// IsSupportedDriverType reports whether t belongs to the supported set.
func IsSupportedDriverType(t DriverType) bool {
	for _, s := range SupportedDriverTypes() {
		if t == s {
			return true
		}
	}
	return false
}

// User represents an account in the database. A user carries at most one
// profile per role; an existing profile is preserved across re-login and
// role addition rather than recreated.
type User struct {
	common.BaseModel
	FirstName     string         `gorm:"type:varchar(100);not null" validate:"required"`
	LastName      string         `gorm:"type:varchar(100);not null" validate:"required"`
	Email         string         `gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,email"`
	Phone         string         `gorm:"type:varchar(32);not null;uniqueIndex" validate:"required"`
	EmailVerified bool           `gorm:"not null;default:false"`
	Roles         pq.StringArray `gorm:"type:text[];not null" validate:"required,min=1,dive,oneof=rider driver"`
	DriverProfile *DriverProfile `gorm:"foreignKey:UserID"`
	RiderProfile  *RiderProfile  `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// DriverProfile holds the driver-side state of an account.
type DriverProfile struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	Type          DriverType `gorm:"type:varchar(32);not null" json:"type" validate:"required"`
	Enabled       bool       `gorm:"not null;default:false" json:"enabled"`
	TotalRating   int64      `gorm:"not null;default:0" json:"total_rating"`
	AverageRating float64    `gorm:"not null;default:5" json:"average_rating"`
	Message       string     `gorm:"type:text" json:"message"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (DriverProfile) TableName() string {
	return "driver_profiles"
}

// RiderProfile holds the rider-side state of an account.
type RiderProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	Enabled       bool      `gorm:"not null;default:false" json:"enabled"`
	TotalRating   int64     `gorm:"not null;default:0" json:"total_rating"`
	AverageRating float64   `gorm:"not null;default:5" json:"average_rating"`
	Message       string    `gorm:"type:text" json:"message"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (RiderProfile) TableName() string {
	return "rider_profiles"
}

// NewDriverProfile initializes a fresh driver profile for the given type.
// Drivers start disabled until their documents are reviewed.
func NewDriverProfile(t DriverType) *DriverProfile {
	return &DriverProfile{
		ID:            uuid.New(),
		Type:          t,
		Enabled:       false,
		TotalRating:   0,
		AverageRating: 5,
		Message:       "Document not uploaded",
	}
}

// NewRiderProfile initializes a fresh rider profile with rating defaults.
func NewRiderProfile() *RiderProfile {
	return &RiderProfile{
		ID:            uuid.New(),
		Enabled:       false,
		TotalRating:   0,
		AverageRating: 5,
	}
}

// HasRole reports whether the user already holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AddRole adds a role with set semantics; duplicates are ignored.
func (u *User) AddRole(role string) {
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
	}
}

// Snapshot returns the lean user shape used for token signing.
func (u *User) Snapshot() shared.UserSnapshot {
	return shared.UserSnapshot{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     append([]string(nil), u.Roles...),
	}
}

// --- DTOs (Data Transfer Objects) for API responses ---

// Response defines the structure for user data sent in API responses.
type Response struct {
	ID            uuid.UUID      `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	EmailVerified bool           `json:"email_verified"`
	Roles         []string       `json:"roles"`
	DriverProfile *DriverProfile `json:"driver_profile,omitempty"`
	RiderProfile  *RiderProfile  `json:"rider_profile,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ToResponse converts a User model to a Response DTO.
func ToResponse(u *User) *Response {
	if u == nil {
		return nil
	}
	return &Response{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		EmailVerified: u.EmailVerified,
		Roles:         u.Roles,
		DriverProfile: u.DriverProfile,
		RiderProfile:  u.RiderProfile,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
