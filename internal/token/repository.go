// File: internal/token/repository.go
package token

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for auth token persistence.
type Repository interface {
	// Upsert writes the token for its (user, role, device) tuple, replacing
	// any existing record. The upsert is the serialization point for
	// concurrent issuance; last write wins.
	Upsert(ctx context.Context, t *AuthToken) error
	Find(ctx context.Context, userID uuid.UUID, deviceID, token string) (*AuthToken, error)
	FindByToken(ctx context.Context, token, deviceID string) (*AuthToken, error)
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM auth token repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Upsert(ctx context.Context, t *AuthToken) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "role"}, {Name: "device_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
		}).
		Create(t).Error
}

func (r *gormRepository) Find(ctx context.Context, userID uuid.UUID, deviceID, token string) (*AuthToken, error) {
	var record AuthToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND device_id = ? AND token = ?", userID, deviceID, token).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *gormRepository) FindByToken(ctx context.Context, token, deviceID string) (*AuthToken, error) {
	var record AuthToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND device_id = ?", token, deviceID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *gormRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&AuthToken{}).Error
}
