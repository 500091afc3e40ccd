// File: internal/password/service.go
package password

import (
	"context"
	"errors"
	"time"

	"github.com/McLeroy/loops-api/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Credential stores a password hash keyed by user identity, separate from
// the user record.
type Credential struct {
	UserID    uuid.UUID `gorm:"type:uuid;primary_key"`
	Hash      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Credential model.
func (Credential) TableName() string {
	return "credentials"
}

// Service stores and validates password hashes keyed by user identity.
type Service interface {
	// Set replaces the stored hash for the user, creating it if absent.
	Set(ctx context.Context, userID uuid.UUID, plaintext string) error
	// Check reports whether the plaintext matches the stored hash. A user
	// without a stored credential never matches.
	Check(ctx context.Context, userID uuid.UUID, plaintext string) (bool, error)
}

type gormService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGORMService creates a new GORM-backed password service.
func NewGORMService(db *gorm.DB, logger *zap.Logger) Service {
	return &gormService{db: db, logger: logger}
}

func (s *gormService) Set(ctx context.Context, userID uuid.UUID, plaintext string) error {
	hash, err := common.HashPassword(plaintext)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err), zap.String("userID", userID.String()))
		return err
	}
	cred := Credential{UserID: userID, Hash: hash}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"hash", "updated_at"}),
		}).
		Create(&cred).Error
}

func (s *gormService) Check(ctx context.Context, userID uuid.UUID, plaintext string) (bool, error) {
	var cred Credential
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return common.CheckPasswordHash(plaintext, cred.Hash), nil
}
