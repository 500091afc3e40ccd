// File: internal/verification/model.go
package verification

import (
	"time"

	"github.com/McLeroy/loops-api/internal/common"
)

// Reason identifies the flow a verification code belongs to.
type Reason string

const (
	ReasonSignUp        Reason = "sign_up"
	ReasonPasswordReset Reason = "password_reset"
)

// Verification is a short-lived code keyed by (email, reason). It is created
// fresh per request and transitions unverified -> verified exactly once upon
// a correct code submission. For the password-reset flow the verified record
// deliberately outlives the confirm call: a non-deleted verified reset
// record is the only valid precondition for the reset step.
type Verification struct {
	common.BaseModel
	Email     string    `gorm:"type:varchar(255);not null;index:idx_verifications_email_reason"`
	Reason    Reason    `gorm:"type:varchar(32);not null;index:idx_verifications_email_reason"`
	Code      string    `gorm:"type:varchar(16);not null"`
	Verified  bool      `gorm:"not null;default:false"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for the Verification model.
func (Verification) TableName() string {
	return "verifications"
}

// Expired reports whether the code's lifetime has passed.
func (v *Verification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
