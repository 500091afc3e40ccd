// File: internal/verification/repository.go
package verification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for verification record persistence.
type Repository interface {
	Create(ctx context.Context, v *Verification) error
	FindByCode(ctx context.Context, email string, reason Reason, code string) (*Verification, error)
	Update(ctx context.Context, v *Verification) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEmailAndReason(ctx context.Context, email string, reason Reason) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM verification repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, v *Verification) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *gormRepository) FindByCode(ctx context.Context, email string, reason Reason, code string) (*Verification, error) {
	var record Verification
	err := r.db.WithContext(ctx).
		Where("email = ? AND reason = ? AND code = ?", email, reason, code).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *gormRepository) Update(ctx context.Context, v *Verification) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Verification{}).Error
}

func (r *gormRepository) DeleteByEmailAndReason(ctx context.Context, email string, reason Reason) error {
	return r.db.WithContext(ctx).
		Where("email = ? AND reason = ?", email, reason).
		Delete(&Verification{}).Error
}

func (r *gormRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&Verification{})
	return result.RowsAffected, result.Error
}
